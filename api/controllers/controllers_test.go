package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tommy-vpr/sales-report/internal/comparison"
	"github.com/tommy-vpr/sales-report/internal/importer"
	"github.com/tommy-vpr/sales-report/internal/summary"
	"github.com/tommy-vpr/sales-report/pkg/config"
	pkgerrors "github.com/tommy-vpr/sales-report/pkg/errors"
	"github.com/tommy-vpr/sales-report/pkg/types"
)

type stubImporter struct {
	lastInput importer.Input
	result    *importer.Result
	err       error
}

func (s *stubImporter) Import(_ context.Context, input importer.Input) (*importer.Result, error) {
	s.lastInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubSummary struct {
	lastFilters summary.Filters
	report      *summary.Report
	periods     *summary.PeriodsReport
	err         error
}

func (s *stubSummary) Get(_ context.Context, filters summary.Filters) (*summary.Report, error) {
	s.lastFilters = filters
	return s.report, s.err
}

func (s *stubSummary) Periods(_ context.Context) (*summary.PeriodsReport, error) {
	return s.periods, s.err
}

type stubComparison struct {
	lastParams comparison.Params
	data       *comparison.Data
	err        error
}

func (s *stubComparison) Compare(_ context.Context, params comparison.Params) (*comparison.Data, error) {
	s.lastParams = params
	return s.data, s.err
}

func multipartUpload(t *testing.T, filename, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestImportReport_UploadsFile(t *testing.T) {
	svc := &stubImporter{result: &importer.Result{
		Period: importer.PeriodResult{Year: 2025, Month: 4, MonthName: "April"},
	}}
	handler := ImportReport(svc, 1<<20, nil)

	body, contentType := multipartUpload(t, "april.csv", "Platform,Impressions\nMeta Ads,1000\n", map[string]string{
		"year":  "2025",
		"month": "4",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "april.csv", svc.lastInput.FileName)
	assert.Equal(t, "api", svc.lastInput.Source)
	assert.Equal(t, 2025, svc.lastInput.Year)
	assert.Equal(t, 4, svc.lastInput.Month)
	assert.Contains(t, svc.lastInput.FileContent, "Meta Ads")
}

func TestImportReport_MissingFile(t *testing.T) {
	handler := ImportReport(&stubImporter{}, 1<<20, nil)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("year", "2025"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportReport_BadOverrides(t *testing.T) {
	handler := ImportReport(&stubImporter{}, 1<<20, nil)

	body, contentType := multipartUpload(t, "x.csv", "Platform,Impressions\n", map[string]string{"month": "13"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportReport_ServiceErrorPassesThrough(t *testing.T) {
	svc := &stubImporter{err: pkgerrors.New(pkgerrors.CodeValidation, "could not find header row")}
	handler := ImportReport(svc, 1<<20, nil)

	body, contentType := multipartUpload(t, "bad.csv", "nonsense", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "could not find header row", envelope.Error.Message)
}

func TestMonthlySummary_ParsesFilters(t *testing.T) {
	svc := &stubSummary{report: &summary.Report{}}
	handler := MonthlySummary(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/monthly-summary?year=2025&month=4&platform=META", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2025, svc.lastFilters.Year)
	assert.Equal(t, 4, svc.lastFilters.Month)
	assert.Equal(t, "META", string(svc.lastFilters.Platform))
}

func TestMonthlySummary_RejectsUnknownPlatform(t *testing.T) {
	handler := MonthlySummary(&stubSummary{report: &summary.Report{}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/monthly-summary?platform=GOOGLE", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestComparePeriods_RequiresBothPeriods(t *testing.T) {
	handler := ComparePeriods(&stubComparison{data: &comparison.Data{}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/compare?month1Year=2025&month1Month=3", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestComparePeriods_PassesParams(t *testing.T) {
	svc := &stubComparison{data: &comparison.Data{}}
	handler := ComparePeriods(svc, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/compare?month1Year=2025&month1Month=3&month2Year=2025&month2Month=4", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, comparison.Params{
		Period1Year: 2025, Period1Month: 3,
		Period2Year: 2025, Period2Month: 4,
	}, svc.lastParams)
}

func TestHealthLive(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Env = "development"

	rec := httptest.NewRecorder()
	HealthLive(cfg)(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "development", rec.Header().Get("X-SalesReport-Env"))
}
