package importer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tommy-vpr/sales-report/pkg/db/models"
	"github.com/tommy-vpr/sales-report/pkg/enums"
)

// Repository defines persistence operations for the import tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindCampaignByName(ctx context.Context, name string, platform enums.Platform) (*models.Campaign, error)
	CreateCampaign(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error)
	FindMetric(ctx context.Context, campaignID uuid.UUID, reportDate time.Time, region string) (*models.CampaignMetric, error)
	CreateMetric(ctx context.Context, metric *models.CampaignMetric) (*models.CampaignMetric, error)
	UpdateMetric(ctx context.Context, metricID uuid.UUID, updates map[string]any) error
	FindMonthlySummary(ctx context.Context, platform enums.Platform, month time.Time) (*models.MonthlySummary, error)
	CreateMonthlySummary(ctx context.Context, summary *models.MonthlySummary) (*models.MonthlySummary, error)
	UpdateMonthlySummary(ctx context.Context, summaryID uuid.UUID, updates map[string]any) error
}

// Service runs import batches end to end.
type Service interface {
	Import(ctx context.Context, input Input) (*Result, error)
}
