package importer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tommy-vpr/sales-report/pkg/db/models"
	"github.com/tommy-vpr/sales-report/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an import repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindCampaignByName(ctx context.Context, name string, platform enums.Platform) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.WithContext(ctx).
		Where("name = ? AND platform = ?", name, platform).
		First(&campaign).Error
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (r *repository) CreateCampaign(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error) {
	if campaign.ID == uuid.Nil {
		campaign.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(campaign).Error; err != nil {
		return nil, err
	}
	return campaign, nil
}

func (r *repository) FindMetric(ctx context.Context, campaignID uuid.UUID, reportDate time.Time, region string) (*models.CampaignMetric, error) {
	var metric models.CampaignMetric
	err := r.db.WithContext(ctx).
		Where("campaign_id = ? AND report_date = ? AND region = ?", campaignID, reportDate, region).
		First(&metric).Error
	if err != nil {
		return nil, err
	}
	return &metric, nil
}

func (r *repository) CreateMetric(ctx context.Context, metric *models.CampaignMetric) (*models.CampaignMetric, error) {
	if metric.ID == uuid.Nil {
		metric.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(metric).Error; err != nil {
		return nil, err
	}
	return metric, nil
}

func (r *repository) UpdateMetric(ctx context.Context, metricID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.CampaignMetric{}).
		Where("id = ?", metricID).
		Updates(updates).Error
}

func (r *repository) FindMonthlySummary(ctx context.Context, platform enums.Platform, month time.Time) (*models.MonthlySummary, error) {
	var summary models.MonthlySummary
	err := r.db.WithContext(ctx).
		Where("platform = ? AND month = ?", platform, month).
		First(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *repository) CreateMonthlySummary(ctx context.Context, summary *models.MonthlySummary) (*models.MonthlySummary, error) {
	if summary.ID == uuid.Nil {
		summary.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(summary).Error; err != nil {
		return nil, err
	}
	return summary, nil
}

func (r *repository) UpdateMonthlySummary(ctx context.Context, summaryID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.MonthlySummary{}).
		Where("id = ?", summaryID).
		Updates(updates).Error
}
