package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CampaignMetric holds one normalized row of imported performance data.
// At most one row exists per (campaign_id, report_date, region); flat-file
// import always writes region "ALL". Rate fields are fractions, never
// pre-multiplied percentages.
type CampaignMetric struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CampaignID uuid.UUID `gorm:"column:campaign_id;type:uuid;not null;uniqueIndex:idx_campaign_metrics_key"`
	ReportDate time.Time `gorm:"column:report_date;not null;uniqueIndex:idx_campaign_metrics_key"`
	Region     string    `gorm:"column:region;not null;default:ALL;uniqueIndex:idx_campaign_metrics_key"`

	Impressions   int              `gorm:"column:impressions;not null"`
	Clicks        *int             `gorm:"column:clicks"`
	Spend         decimal.Decimal  `gorm:"column:spend;type:numeric(12,2);not null"`
	CTR           *float64         `gorm:"column:ctr;type:numeric(10,6)"`
	CPM           *float64         `gorm:"column:cpm;type:numeric(10,4)"`
	CPC           *float64         `gorm:"column:cpc;type:numeric(10,4)"`
	VideoViews    *int             `gorm:"column:video_views"`
	VideoViewRate *float64         `gorm:"column:video_view_rate;type:numeric(10,6)"`
	Purchases     *int             `gorm:"column:purchases"`
	PurchaseValue *decimal.Decimal `gorm:"column:purchase_value;type:numeric(12,2)"`
	ROAS          *float64         `gorm:"column:roas;type:numeric(10,4)"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Campaign *Campaign `gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE"`
}
