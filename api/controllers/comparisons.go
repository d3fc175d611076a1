package controllers

import (
	"net/http"

	"github.com/tommy-vpr/sales-report/api/responses"
	"github.com/tommy-vpr/sales-report/api/validators"
	"github.com/tommy-vpr/sales-report/internal/comparison"
	pkgerrors "github.com/tommy-vpr/sales-report/pkg/errors"
	"github.com/tommy-vpr/sales-report/pkg/logger"
)

// ComparePeriods compares two reporting months. All four query parameters
// (month1Year, month1Month, month2Year, month2Month) are required.
func ComparePeriods(svc comparison.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "comparison service unavailable"))
			return
		}

		var params comparison.Params
		var err error

		if params.Period1Year, err = validators.ParseQueryInt(r, "month1Year", 0, 2000, 2100); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if params.Period1Month, err = validators.ParseQueryInt(r, "month1Month", 0, 1, 12); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if params.Period2Year, err = validators.ParseQueryInt(r, "month2Year", 0, 2000, 2100); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if params.Period2Month, err = validators.ParseQueryInt(r, "month2Month", 0, 1, 12); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if params.Period1Year == 0 || params.Period1Month == 0 || params.Period2Year == 0 || params.Period2Month == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "both comparison periods are required"))
			return
		}

		data, err := svc.Compare(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, data)
	}
}
