package comparison

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tommy-vpr/sales-report/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a comparison repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByMonth(ctx context.Context, month time.Time) ([]models.MonthlySummary, error) {
	var summaries []models.MonthlySummary
	err := r.db.WithContext(ctx).
		Where("month = ?", month).
		Order("platform ASC").
		Find(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}
