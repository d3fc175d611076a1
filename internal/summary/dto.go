package summary

import (
	"time"

	"github.com/google/uuid"

	"github.com/tommy-vpr/sales-report/pkg/enums"
)

// Filters narrow the summary query. A fully-populated start/end range wins
// over year+month, which wins over year alone; platform combines with any of
// them.
type Filters struct {
	Year     int
	Month    int
	Platform enums.Platform

	StartYear  int
	StartMonth int
	EndYear    int
	EndMonth   int
}

// Item is one monthly summary row with NULL counters flattened to zero for
// presentation.
type Item struct {
	ID               uuid.UUID      `json:"id"`
	Platform         enums.Platform `json:"platform"`
	Month            time.Time      `json:"month"`
	MonthName        string         `json:"monthName"`
	TotalSpend       float64        `json:"totalSpend"`
	TotalImpressions int64          `json:"totalImpressions"`
	TotalClicks      int64          `json:"totalClicks"`
	TotalReach       int64          `json:"totalReach"`
	AvgCTR           float64        `json:"avgCtr"`
	AvgCPM           float64        `json:"avgCpm"`
	AvgCPC           float64        `json:"avgCpc"`
	TotalVideoViews  int64          `json:"totalVideoViews"`
	TotalPurchases   int64          `json:"totalPurchases"`
	TotalRevenue     float64        `json:"totalRevenue"`
	AvgROAS          float64        `json:"avgRoas"`
	CampaignCount    int            `json:"campaignCount"`
}

// Totals are the grand totals over the filtered rows; rates are recomputed
// as ratios of the summed counters.
type Totals struct {
	TotalSpend       float64 `json:"totalSpend"`
	TotalImpressions int64   `json:"totalImpressions"`
	TotalClicks      int64   `json:"totalClicks"`
	TotalVideoViews  int64   `json:"totalVideoViews"`
	TotalPurchases   int64   `json:"totalPurchases"`
	TotalRevenue     float64 `json:"totalRevenue"`
	CampaignCount    int     `json:"campaignCount"`
	AvgCTR           float64 `json:"avgCtr"`
	AvgCPM           float64 `json:"avgCpm"`
	AvgCPC           float64 `json:"avgCpc"`
	AvgROAS          float64 `json:"avgRoas"`
}

// PlatformMonth is one month's slice of a platform breakdown.
type PlatformMonth struct {
	Month       time.Time `json:"month"`
	MonthName   string    `json:"monthName"`
	Spend       float64   `json:"spend"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	Purchases   int64     `json:"purchases"`
	Revenue     float64   `json:"revenue"`
}

// PlatformBreakdown aggregates one platform across the filtered months.
type PlatformBreakdown struct {
	Platform         enums.Platform  `json:"platform"`
	TotalSpend       float64         `json:"totalSpend"`
	TotalImpressions int64           `json:"totalImpressions"`
	TotalClicks      int64           `json:"totalClicks"`
	TotalVideoViews  int64           `json:"totalVideoViews"`
	TotalPurchases   int64           `json:"totalPurchases"`
	TotalRevenue     float64         `json:"totalRevenue"`
	CampaignCount    int             `json:"campaignCount"`
	AvgCTR           float64         `json:"avgCtr"`
	AvgCPM           float64         `json:"avgCpm"`
	AvgCPC           float64         `json:"avgCpc"`
	AvgROAS          float64         `json:"avgRoas"`
	SpendShare       float64         `json:"spendShare"`
	Months           []PlatformMonth `json:"months"`
}

// TrendPoint rolls all platforms of one month into a single data point.
type TrendPoint struct {
	Month            time.Time        `json:"month"`
	MonthName        string           `json:"monthName"`
	TotalSpend       float64          `json:"totalSpend"`
	TotalImpressions int64            `json:"totalImpressions"`
	TotalClicks      int64            `json:"totalClicks"`
	TotalPurchases   int64            `json:"totalPurchases"`
	TotalRevenue     float64          `json:"totalRevenue"`
	Platforms        []enums.Platform `json:"platforms"`
}

// Report is the full monthly-summary payload.
type Report struct {
	Summaries         []Item              `json:"summaries"`
	Totals            Totals              `json:"totals"`
	PlatformBreakdown []PlatformBreakdown `json:"platformBreakdown"`
	MonthlyTrend      []TrendPoint        `json:"monthlyTrend"`
}

// PeriodInfo describes one imported reporting month.
type PeriodInfo struct {
	Year             int              `json:"year"`
	Month            int              `json:"month"`
	MonthName        string           `json:"monthName"`
	Label            string           `json:"label"`
	Platforms        []enums.Platform `json:"platforms"`
	PlatformCount    int              `json:"platformCount"`
	TotalSpend       float64          `json:"totalSpend"`
	TotalImpressions int64            `json:"totalImpressions"`
	CampaignCount    int              `json:"campaignCount"`
}

// PeriodsTotals are grand totals across every imported period.
type PeriodsTotals struct {
	TotalSpend       float64 `json:"totalSpend"`
	TotalImpressions int64   `json:"totalImpressions"`
	CampaignCount    int     `json:"campaignCount"`
}

// PeriodsReport lists every imported reporting month, newest first.
type PeriodsReport struct {
	Periods      []PeriodInfo  `json:"periods"`
	Years        []int         `json:"years"`
	TotalReports int           `json:"totalReports"`
	Totals       PeriodsTotals `json:"totals"`
}

func monthLabel(month time.Time) string {
	return month.Month().String() + " " + month.Format("2006")
}
