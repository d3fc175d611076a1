package comparison

import (
	"context"
	"time"

	"github.com/tommy-vpr/sales-report/pkg/db/models"
)

// Repository reads monthly summaries for one reporting month.
type Repository interface {
	FindByMonth(ctx context.Context, month time.Time) ([]models.MonthlySummary, error)
}

// Service compares two reporting months.
type Service interface {
	Compare(ctx context.Context, params Params) (*Data, error)
}
