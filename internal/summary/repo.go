package summary

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tommy-vpr/sales-report/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a summary repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindSummaries(ctx context.Context, filters Filters) ([]models.MonthlySummary, error) {
	query := r.db.WithContext(ctx).Model(&models.MonthlySummary{})

	switch {
	case filters.StartYear != 0 && filters.StartMonth != 0 && filters.EndYear != 0 && filters.EndMonth != 0:
		start := time.Date(filters.StartYear, time.Month(filters.StartMonth), 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(filters.EndYear, time.Month(filters.EndMonth), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
		query = query.Where("month >= ? AND month <= ?", start, end)
	case filters.Year != 0 && filters.Month != 0:
		query = query.Where("month = ?", time.Date(filters.Year, time.Month(filters.Month), 1, 0, 0, 0, 0, time.UTC))
	case filters.Year != 0:
		query = query.Where("month >= ? AND month <= ?",
			time.Date(filters.Year, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(filters.Year, time.December, 31, 0, 0, 0, 0, time.UTC))
	}

	if filters.Platform != "" {
		query = query.Where("platform = ?", filters.Platform)
	}

	var summaries []models.MonthlySummary
	err := query.Order("month DESC").Order("platform ASC").Find(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}
