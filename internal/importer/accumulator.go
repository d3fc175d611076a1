package importer

import (
	"github.com/tommy-vpr/sales-report/pkg/enums"
)

// platformTotals is the running per-platform state for one batch. The rate
// metrics keep a sum/count pair fed only by rows that produced a value, so
// finalization averages per-row ratios instead of dividing grand totals.
type platformTotals struct {
	totalSpend       float64
	totalImpressions int64
	totalClicks      int64
	totalVideoViews  int64
	totalPurchases   int64
	totalRevenue     float64

	campaignCount int

	ctrSum   float64
	ctrCount int
	cpmSum   float64
	cpmCount int
	cpcSum   float64
	cpcCount int
	roasSum  float64
	roasCnt  int
}

// summaryTotals is the finalized per-platform rollup handed to persistence.
// Nil rate fields mean no row carried that metric and no fallback applied.
type summaryTotals struct {
	TotalSpend       float64
	TotalImpressions int64
	TotalClicks      int64
	TotalVideoViews  int64
	TotalPurchases   int64
	TotalRevenue     float64
	CampaignCount    int

	AvgCTR  *float64
	AvgCPM  *float64
	AvgCPC  *float64
	AvgROAS *float64
}

// accumulator folds parsed rows into per-platform totals. State is local to
// one batch; concurrent imports never share an accumulator.
type accumulator struct {
	byPlatform map[enums.Platform]*platformTotals
	order      []enums.Platform
}

func newAccumulator() *accumulator {
	return &accumulator{byPlatform: map[enums.Platform]*platformTotals{}}
}

// Add folds one row into its platform bucket. It never fails.
func (a *accumulator) Add(row *ParsedRow) {
	totals, ok := a.byPlatform[row.Platform]
	if !ok {
		totals = &platformTotals{}
		a.byPlatform[row.Platform] = totals
		a.order = append(a.order, row.Platform)
	}

	totals.totalSpend += row.Spend
	totals.totalImpressions += int64(row.Impressions)
	if row.Clicks != nil {
		totals.totalClicks += int64(*row.Clicks)
	}
	if row.VideoViews != nil {
		totals.totalVideoViews += int64(*row.VideoViews)
	}
	if row.Purchases != nil {
		totals.totalPurchases += int64(*row.Purchases)
	}
	if row.PurchaseValue != nil {
		totals.totalRevenue += *row.PurchaseValue
	}
	totals.campaignCount++

	if row.CTR != nil {
		totals.ctrSum += *row.CTR
		totals.ctrCount++
	}
	if row.CPM != nil {
		totals.cpmSum += *row.CPM
		totals.cpmCount++
	}
	if row.CPC != nil {
		totals.cpcSum += *row.CPC
		totals.cpcCount++
	}
	if row.ROAS != nil {
		totals.roasSum += *row.ROAS
		totals.roasCnt++
	}
}

// Platforms returns the touched platforms in first-seen order.
func (a *accumulator) Platforms() []enums.Platform {
	return a.order
}

// Finalize computes the summary rollup for one platform. CTR has no
// ratio-of-sums fallback; CPM/CPC/ROAS fall back to grand-total ratios when
// no per-row samples exist and the denominators allow it.
func (a *accumulator) Finalize(platform enums.Platform) (summaryTotals, bool) {
	totals, ok := a.byPlatform[platform]
	if !ok {
		return summaryTotals{}, false
	}

	out := summaryTotals{
		TotalSpend:       totals.totalSpend,
		TotalImpressions: totals.totalImpressions,
		TotalClicks:      totals.totalClicks,
		TotalVideoViews:  totals.totalVideoViews,
		TotalPurchases:   totals.totalPurchases,
		TotalRevenue:     totals.totalRevenue,
		CampaignCount:    totals.campaignCount,
	}

	if totals.ctrCount > 0 {
		v := totals.ctrSum / float64(totals.ctrCount)
		out.AvgCTR = &v
	}

	switch {
	case totals.cpmCount > 0:
		v := totals.cpmSum / float64(totals.cpmCount)
		out.AvgCPM = &v
	case totals.totalImpressions > 0:
		v := totals.totalSpend / float64(totals.totalImpressions) * 1000
		out.AvgCPM = &v
	}

	switch {
	case totals.cpcCount > 0:
		v := totals.cpcSum / float64(totals.cpcCount)
		out.AvgCPC = &v
	case totals.totalClicks > 0:
		v := totals.totalSpend / float64(totals.totalClicks)
		out.AvgCPC = &v
	}

	switch {
	case totals.roasCnt > 0:
		v := totals.roasSum / float64(totals.roasCnt)
		out.AvgROAS = &v
	case totals.totalRevenue > 0 && totals.totalSpend > 0:
		v := totals.totalRevenue / totals.totalSpend
		out.AvgROAS = &v
	}

	return out, true
}
