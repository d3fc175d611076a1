package controllers

import (
	"net/http"
	"strings"

	"github.com/tommy-vpr/sales-report/api/responses"
	"github.com/tommy-vpr/sales-report/api/validators"
	"github.com/tommy-vpr/sales-report/internal/summary"
	"github.com/tommy-vpr/sales-report/pkg/enums"
	pkgerrors "github.com/tommy-vpr/sales-report/pkg/errors"
	"github.com/tommy-vpr/sales-report/pkg/logger"
)

// MonthlySummary serves the aggregated reporting view, optionally narrowed
// by year, month, platform, or a start/end month range.
func MonthlySummary(svc summary.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "summary service unavailable"))
			return
		}

		var filters summary.Filters
		var err error

		if filters.Year, err = validators.ParseQueryInt(r, "year", 0, 2000, 2100); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.Month, err = validators.ParseQueryInt(r, "month", 0, 1, 12); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.StartYear, err = validators.ParseQueryInt(r, "startYear", 0, 2000, 2100); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.StartMonth, err = validators.ParseQueryInt(r, "startMonth", 0, 1, 12); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.EndYear, err = validators.ParseQueryInt(r, "endYear", 0, 2000, 2100); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.EndMonth, err = validators.ParseQueryInt(r, "endMonth", 0, 1, 12); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("platform")); raw != "" {
			platform, err := enums.ParsePlatform(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown platform"))
				return
			}
			filters.Platform = platform
		}

		report, err := svc.Get(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// ReportPeriods lists every imported reporting month.
func ReportPeriods(svc summary.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "summary service unavailable"))
			return
		}

		report, err := svc.Periods(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}
