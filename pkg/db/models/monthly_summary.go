package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tommy-vpr/sales-report/pkg/enums"
)

// MonthlySummary is the per-platform, per-month rollup every reporting view
// reads. Import replaces it wholesale at batch end; it reflects the most
// recently completed batch for that platform/month.
type MonthlySummary struct {
	ID       uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Platform enums.Platform `gorm:"column:platform;type:platform;not null;uniqueIndex:idx_monthly_summaries_key"`
	Month    time.Time      `gorm:"column:month;not null;uniqueIndex:idx_monthly_summaries_key"`

	TotalSpend       decimal.Decimal  `gorm:"column:total_spend;type:numeric(14,2);not null"`
	TotalImpressions int64            `gorm:"column:total_impressions;not null"`
	TotalClicks      *int64           `gorm:"column:total_clicks"`
	TotalReach       *int64           `gorm:"column:total_reach"`
	AvgCTR           *float64         `gorm:"column:avg_ctr;type:numeric(10,6)"`
	AvgCPM           *float64         `gorm:"column:avg_cpm;type:numeric(10,4)"`
	AvgCPC           *float64         `gorm:"column:avg_cpc;type:numeric(10,4)"`
	TotalVideoViews  *int64           `gorm:"column:total_video_views"`
	TotalPurchases   *int64           `gorm:"column:total_purchases"`
	TotalRevenue     *decimal.Decimal `gorm:"column:total_revenue;type:numeric(14,2)"`
	AvgROAS          *float64         `gorm:"column:avg_roas;type:numeric(10,4)"`
	CampaignCount    int              `gorm:"column:campaign_count;not null;default:0"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
