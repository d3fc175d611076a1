package controllers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/tommy-vpr/sales-report/api/responses"
	"github.com/tommy-vpr/sales-report/api/validators"
	"github.com/tommy-vpr/sales-report/internal/importer"
	pkgerrors "github.com/tommy-vpr/sales-report/pkg/errors"
	"github.com/tommy-vpr/sales-report/pkg/logger"
)

// ImportReport accepts a multipart upload ("file", optional "year"/"month"
// overrides) and runs it through the import pipeline.
func ImportReport(svc importer.Service, maxUploadBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "import service unavailable"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart upload"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file field is required"))
			return
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "could not read uploaded file"))
			return
		}
		if len(content) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "uploaded file is empty"))
			return
		}

		input := importer.Input{
			FileContent: string(content),
			FileName:    validators.SanitizeString(header.Filename, 255),
			Source:      "api",
		}

		if raw := strings.TrimSpace(r.FormValue("year")); raw != "" {
			year, err := strconv.Atoi(raw)
			if err != nil || year < 2000 || year > 2100 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "year must be a 4-digit year"))
				return
			}
			input.Year = year
		}
		if raw := strings.TrimSpace(r.FormValue("month")); raw != "" {
			month, err := strconv.Atoi(raw)
			if err != nil || month < 1 || month > 12 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "month must be between 1 and 12"))
				return
			}
			input.Month = month
		}

		result, err := svc.Import(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
