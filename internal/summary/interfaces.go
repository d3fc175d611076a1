package summary

import (
	"context"

	"github.com/tommy-vpr/sales-report/pkg/db/models"
)

// Repository reads monthly summaries for reporting.
type Repository interface {
	FindSummaries(ctx context.Context, filters Filters) ([]models.MonthlySummary, error)
}

// Service exposes the reporting reads backed by monthly summaries.
type Service interface {
	Get(ctx context.Context, filters Filters) (*Report, error)
	Periods(ctx context.Context) (*PeriodsReport, error)
}
