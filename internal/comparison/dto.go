package comparison

import (
	"time"

	"github.com/tommy-vpr/sales-report/pkg/enums"
)

// Params names the two reporting months to compare. Period1 is the baseline,
// period2 the month measured against it.
type Params struct {
	Period1Year  int
	Period1Month int
	Period2Year  int
	Period2Month int
}

// PeriodTotals aggregates every platform of one month; rates are ratios of
// the summed counters.
type PeriodTotals struct {
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

// PeriodBlock is one side of the comparison.
type PeriodBlock struct {
	Date          time.Time    `json:"date"`
	Label         string       `json:"label"`
	Totals        PeriodTotals `json:"totals"`
	PlatformCount int          `json:"platformCount"`
}

// Changes holds percentage deltas between the two periods. Nil means the
// baseline was zero and the current value is too, so no change is defined.
type Changes struct {
	TotalSpend       *float64 `json:"totalSpend"`
	TotalImpressions *float64 `json:"totalImpressions"`
	TotalClicks      *float64 `json:"totalClicks"`
	TotalPurchases   *float64 `json:"totalPurchases"`
	TotalRevenue     *float64 `json:"totalRevenue"`
	AvgCTR           *float64 `json:"avgCtr"`
	AvgCPM           *float64 `json:"avgCpm"`
	AvgCPC           *float64 `json:"avgCpc"`
	AvgROAS          *float64 `json:"avgRoas"`
}

// PlatformPeriodData is one platform's numbers within one period. A platform
// absent from a period contributes an all-zero record.
type PlatformPeriodData struct {
	Spend       float64 `json:"spend"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	CTR         float64 `json:"ctr"`
	CPM         float64 `json:"cpm"`
	Purchases   int64   `json:"purchases"`
	Revenue     float64 `json:"revenue"`
	ROAS        float64 `json:"roas"`
}

// PlatformChanges mirrors Changes at platform granularity.
type PlatformChanges struct {
	Spend       *float64 `json:"spend"`
	Impressions *float64 `json:"impressions"`
	Clicks      *float64 `json:"clicks"`
	CTR         *float64 `json:"ctr"`
	Purchases   *float64 `json:"purchases"`
	Revenue     *float64 `json:"revenue"`
	ROAS        *float64 `json:"roas"`
}

// PlatformComparison pairs one platform's two periods with their deltas.
type PlatformComparison struct {
	Platform enums.Platform     `json:"platform"`
	Period1  PlatformPeriodData `json:"period1"`
	Period2  PlatformPeriodData `json:"period2"`
	Changes  PlatformChanges    `json:"changes"`
}

// Data is the full comparison payload.
type Data struct {
	Period1            PeriodBlock          `json:"period1"`
	Period2            PeriodBlock          `json:"period2"`
	Changes            Changes              `json:"changes"`
	PlatformComparison []PlatformComparison `json:"platformComparison"`
}
