package comparison

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tommy-vpr/sales-report/pkg/db/models"
	"github.com/tommy-vpr/sales-report/pkg/enums"
	pkgerrors "github.com/tommy-vpr/sales-report/pkg/errors"
	"github.com/tommy-vpr/sales-report/pkg/logger"
)

type service struct {
	repo Repository
	log  *logger.Logger
}

// NewService builds the comparison service.
func NewService(repo Repository, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("comparison repository required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, log: log}, nil
}

func (s *service) Compare(ctx context.Context, params Params) (*Data, error) {
	period1 := time.Date(params.Period1Year, time.Month(params.Period1Month), 1, 0, 0, 0, 0, time.UTC)
	period2 := time.Date(params.Period2Year, time.Month(params.Period2Month), 1, 0, 0, 0, 0, time.UTC)

	period1Rows, err := s.repo.FindByMonth(ctx, period1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading baseline period failed")
	}
	period2Rows, err := s.repo.FindByMonth(ctx, period2)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading comparison period failed")
	}

	period1Totals := calculateTotals(period1Rows)
	period2Totals := calculateTotals(period2Rows)

	return &Data{
		Period1: PeriodBlock{
			Date:          period1,
			Label:         periodLabel(period1),
			Totals:        period1Totals,
			PlatformCount: len(period1Rows),
		},
		Period2: PeriodBlock{
			Date:          period2,
			Label:         periodLabel(period2),
			Totals:        period2Totals,
			PlatformCount: len(period2Rows),
		},
		Changes: Changes{
			TotalSpend:       change(period2Totals.TotalSpend, period1Totals.TotalSpend),
			TotalImpressions: change(float64(period2Totals.TotalImpressions), float64(period1Totals.TotalImpressions)),
			TotalClicks:      change(float64(period2Totals.TotalClicks), float64(period1Totals.TotalClicks)),
			TotalPurchases:   change(float64(period2Totals.TotalPurchases), float64(period1Totals.TotalPurchases)),
			TotalRevenue:     change(period2Totals.TotalRevenue, period1Totals.TotalRevenue),
			AvgCTR:           change(period2Totals.AvgCTR, period1Totals.AvgCTR),
			AvgCPM:           change(period2Totals.AvgCPM, period1Totals.AvgCPM),
			AvgCPC:           change(period2Totals.AvgCPC, period1Totals.AvgCPC),
			AvgROAS:          change(period2Totals.AvgROAS, period1Totals.AvgROAS),
		},
		PlatformComparison: buildPlatformComparison(period1Rows, period2Rows),
	}, nil
}

// change computes the percentage delta from prev to curr. A zero baseline
// reads as +100% growth when curr is positive, undefined otherwise.
func change(curr, prev float64) *float64 {
	if prev == 0 {
		if curr > 0 {
			v := 100.0
			return &v
		}
		return nil
	}
	v := (curr - prev) / prev * 100
	return &v
}

func periodLabel(month time.Time) string {
	return fmt.Sprintf("%s %d", month.Month(), month.Year())
}

func calculateTotals(rows []models.MonthlySummary) PeriodTotals {
	var totals PeriodTotals
	for _, row := range rows {
		totals.TotalSpend += row.TotalSpend.InexactFloat64()
		totals.TotalImpressions += row.TotalImpressions
		if row.TotalClicks != nil {
			totals.TotalClicks += *row.TotalClicks
		}
		if row.TotalVideoViews != nil {
			totals.TotalVideoViews += *row.TotalVideoViews
		}
		if row.TotalPurchases != nil {
			totals.TotalPurchases += *row.TotalPurchases
		}
		if row.TotalRevenue != nil {
			totals.TotalRevenue += row.TotalRevenue.InexactFloat64()
		}
		totals.CampaignCount += row.CampaignCount
	}

	if totals.TotalImpressions > 0 {
		totals.AvgCTR = float64(totals.TotalClicks) / float64(totals.TotalImpressions)
		totals.AvgCPM = totals.TotalSpend / float64(totals.TotalImpressions) * 1000
	}
	if totals.TotalClicks > 0 {
		totals.AvgCPC = totals.TotalSpend / float64(totals.TotalClicks)
	}
	if totals.TotalSpend > 0 {
		totals.AvgROAS = totals.TotalRevenue / totals.TotalSpend
	}
	return totals
}

func buildPlatformComparison(period1Rows, period2Rows []models.MonthlySummary) []PlatformComparison {
	period1By := indexByPlatform(period1Rows)
	period2By := indexByPlatform(period2Rows)

	var platforms []enums.Platform
	seen := map[enums.Platform]bool{}
	for _, row := range period1Rows {
		if !seen[row.Platform] {
			seen[row.Platform] = true
			platforms = append(platforms, row.Platform)
		}
	}
	for _, row := range period2Rows {
		if !seen[row.Platform] {
			seen[row.Platform] = true
			platforms = append(platforms, row.Platform)
		}
	}

	result := make([]PlatformComparison, 0, len(platforms))
	for _, platform := range platforms {
		p1 := extractPlatformData(period1By[platform])
		p2 := extractPlatformData(period2By[platform])

		result = append(result, PlatformComparison{
			Platform: platform,
			Period1:  p1,
			Period2:  p2,
			Changes: PlatformChanges{
				Spend:       change(p2.Spend, p1.Spend),
				Impressions: change(float64(p2.Impressions), float64(p1.Impressions)),
				Clicks:      change(float64(p2.Clicks), float64(p1.Clicks)),
				CTR:         change(p2.CTR, p1.CTR),
				Purchases:   change(float64(p2.Purchases), float64(p1.Purchases)),
				Revenue:     change(p2.Revenue, p1.Revenue),
				ROAS:        change(p2.ROAS, p1.ROAS),
			},
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Period2.Spend > result[j].Period2.Spend
	})
	return result
}

func indexByPlatform(rows []models.MonthlySummary) map[enums.Platform]*models.MonthlySummary {
	index := map[enums.Platform]*models.MonthlySummary{}
	for i := range rows {
		index[rows[i].Platform] = &rows[i]
	}
	return index
}

// extractPlatformData flattens one summary row for comparison. CPM is always
// recomputed from spend and impressions so both periods use the same basis.
func extractPlatformData(row *models.MonthlySummary) PlatformPeriodData {
	if row == nil {
		return PlatformPeriodData{}
	}

	data := PlatformPeriodData{
		Spend:       row.TotalSpend.InexactFloat64(),
		Impressions: row.TotalImpressions,
	}
	if row.TotalClicks != nil {
		data.Clicks = *row.TotalClicks
	}
	if row.AvgCTR != nil {
		data.CTR = *row.AvgCTR
	}
	if data.Impressions > 0 {
		data.CPM = data.Spend / float64(data.Impressions) * 1000
	}
	if row.TotalPurchases != nil {
		data.Purchases = *row.TotalPurchases
	}
	if row.TotalRevenue != nil {
		data.Revenue = row.TotalRevenue.InexactFloat64()
	}
	if row.AvgROAS != nil {
		data.ROAS = *row.AvgROAS
	}
	return data
}
