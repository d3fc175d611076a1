package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tommy-vpr/sales-report/pkg/db/models"
	"github.com/tommy-vpr/sales-report/pkg/enums"
	pkgerrors "github.com/tommy-vpr/sales-report/pkg/errors"
	"github.com/tommy-vpr/sales-report/pkg/logger"
	"github.com/tommy-vpr/sales-report/pkg/redis"
)

// ReportCache is the slice of the redis client the service needs. Nil means
// caching is disabled.
type ReportCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

type service struct {
	repo     Repository
	log      *logger.Logger
	cache    ReportCache
	cacheTTL time.Duration
}

// NewService builds the summary reporting service. cache may be nil.
func NewService(repo Repository, log *logger.Logger, cache ReportCache, cacheTTL time.Duration) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("summary repository required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, log: log, cache: cache, cacheTTL: cacheTTL}, nil
}

func (s *service) Get(ctx context.Context, filters Filters) (*Report, error) {
	cacheKey := reportCacheKey(filters)
	if cached, ok := s.fromCache(ctx, cacheKey); ok {
		var report Report
		if err := json.Unmarshal([]byte(cached), &report); err == nil {
			return &report, nil
		}
	}

	summaries, err := s.repo.FindSummaries(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading monthly summaries failed")
	}

	items := make([]Item, 0, len(summaries))
	for _, row := range summaries {
		items = append(items, toItem(row))
	}

	totals := calculateTotals(items)
	report := &Report{
		Summaries:         items,
		Totals:            totals,
		PlatformBreakdown: groupByPlatform(items, totals.TotalSpend),
		MonthlyTrend:      groupByMonth(items),
	}

	s.toCache(ctx, cacheKey, report)
	return report, nil
}

func (s *service) Periods(ctx context.Context) (*PeriodsReport, error) {
	cacheKey := redis.SummaryCacheKey("periods")
	if cached, ok := s.fromCache(ctx, cacheKey); ok {
		var report PeriodsReport
		if err := json.Unmarshal([]byte(cached), &report); err == nil {
			return &report, nil
		}
	}

	summaries, err := s.repo.FindSummaries(ctx, Filters{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading monthly summaries failed")
	}

	type periodKey struct {
		year  int
		month int
	}
	byPeriod := map[periodKey]*PeriodInfo{}
	var order []periodKey

	for _, row := range summaries {
		key := periodKey{year: row.Month.Year(), month: int(row.Month.Month())}
		info, ok := byPeriod[key]
		if !ok {
			info = &PeriodInfo{
				Year:      key.year,
				Month:     key.month,
				MonthName: time.Month(key.month).String(),
				Label:     fmt.Sprintf("%s %d", time.Month(key.month), key.year),
			}
			byPeriod[key] = info
			order = append(order, key)
		}
		info.Platforms = append(info.Platforms, row.Platform)
		info.TotalSpend += row.TotalSpend.InexactFloat64()
		info.TotalImpressions += row.TotalImpressions
		info.CampaignCount += row.CampaignCount
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].year != order[j].year {
			return order[i].year > order[j].year
		}
		return order[i].month > order[j].month
	})

	report := &PeriodsReport{Periods: make([]PeriodInfo, 0, len(order))}
	yearsSeen := map[int]bool{}
	for _, key := range order {
		info := byPeriod[key]
		info.PlatformCount = len(info.Platforms)
		report.Periods = append(report.Periods, *info)
		report.Totals.TotalSpend += info.TotalSpend
		report.Totals.TotalImpressions += info.TotalImpressions
		report.Totals.CampaignCount += info.CampaignCount
		if !yearsSeen[key.year] {
			yearsSeen[key.year] = true
			report.Years = append(report.Years, key.year)
		}
	}
	report.TotalReports = len(report.Periods)

	s.toCache(ctx, cacheKey, report)
	return report, nil
}

func (s *service) fromCache(ctx context.Context, key string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn(ctx, "summary cache read failed: "+err.Error())
		}
		return "", false
	}
	return cached, true
}

func (s *service) toCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
		s.log.Warn(ctx, "summary cache write failed: "+err.Error())
	}
}

func reportCacheKey(filters Filters) string {
	return redis.SummaryCacheKey(
		"report",
		strconv.Itoa(filters.Year),
		strconv.Itoa(filters.Month),
		string(filters.Platform),
		fmt.Sprintf("%d.%d-%d.%d", filters.StartYear, filters.StartMonth, filters.EndYear, filters.EndMonth),
	)
}

func toItem(row models.MonthlySummary) Item {
	return Item{
		ID:               row.ID,
		Platform:         row.Platform,
		Month:            row.Month,
		MonthName:        monthLabel(row.Month),
		TotalSpend:       row.TotalSpend.InexactFloat64(),
		TotalImpressions: row.TotalImpressions,
		TotalClicks:      int64Value(row.TotalClicks),
		TotalReach:       int64Value(row.TotalReach),
		AvgCTR:           floatValue(row.AvgCTR),
		AvgCPM:           floatValue(row.AvgCPM),
		AvgCPC:           floatValue(row.AvgCPC),
		TotalVideoViews:  int64Value(row.TotalVideoViews),
		TotalPurchases:   int64Value(row.TotalPurchases),
		TotalRevenue:     decimalValue(row.TotalRevenue),
		AvgROAS:          floatValue(row.AvgROAS),
		CampaignCount:    row.CampaignCount,
	}
}

func calculateTotals(items []Item) Totals {
	var totals Totals
	for _, item := range items {
		totals.TotalSpend += item.TotalSpend
		totals.TotalImpressions += item.TotalImpressions
		totals.TotalClicks += item.TotalClicks
		totals.TotalVideoViews += item.TotalVideoViews
		totals.TotalPurchases += item.TotalPurchases
		totals.TotalRevenue += item.TotalRevenue
		totals.CampaignCount += item.CampaignCount
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

func groupByPlatform(items []Item, totalSpend float64) []PlatformBreakdown {
	byPlatform := map[enums.Platform]*PlatformBreakdown{}
	var order []enums.Platform

	for _, item := range items {
		breakdown, ok := byPlatform[item.Platform]
		if !ok {
			breakdown = &PlatformBreakdown{Platform: item.Platform}
			byPlatform[item.Platform] = breakdown
			order = append(order, item.Platform)
		}

		breakdown.TotalSpend += item.TotalSpend
		breakdown.TotalImpressions += item.TotalImpressions
		breakdown.TotalClicks += item.TotalClicks
		breakdown.TotalVideoViews += item.TotalVideoViews
		breakdown.TotalPurchases += item.TotalPurchases
		breakdown.TotalRevenue += item.TotalRevenue
		breakdown.CampaignCount += item.CampaignCount
		breakdown.Months = append(breakdown.Months, PlatformMonth{
			Month:       item.Month,
			MonthName:   item.MonthName,
			Spend:       item.TotalSpend,
			Impressions: item.TotalImpressions,
			Clicks:      item.TotalClicks,
			Purchases:   item.TotalPurchases,
			Revenue:     item.TotalRevenue,
		})
	}

	result := make([]PlatformBreakdown, 0, len(order))
	for _, platform := range order {
		breakdown := byPlatform[platform]
		if breakdown.TotalImpressions > 0 {
			breakdown.AvgCTR = float64(breakdown.TotalClicks) / float64(breakdown.TotalImpressions)
			breakdown.AvgCPM = breakdown.TotalSpend / float64(breakdown.TotalImpressions) * 1000
		}
		if breakdown.TotalClicks > 0 {
			breakdown.AvgCPC = breakdown.TotalSpend / float64(breakdown.TotalClicks)
		}
		if breakdown.TotalSpend > 0 {
			breakdown.AvgROAS = breakdown.TotalRevenue / breakdown.TotalSpend
		}
		if totalSpend > 0 {
			breakdown.SpendShare = breakdown.TotalSpend / totalSpend * 100
		}
		result = append(result, *breakdown)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalSpend > result[j].TotalSpend
	})
	return result
}

func groupByMonth(items []Item) []TrendPoint {
	byMonth := map[int64]*TrendPoint{}
	var order []time.Time

	for _, item := range items {
		point, ok := byMonth[item.Month.Unix()]
		if !ok {
			point = &TrendPoint{Month: item.Month, MonthName: item.MonthName}
			byMonth[item.Month.Unix()] = point
			order = append(order, item.Month)
		}
		point.TotalSpend += item.TotalSpend
		point.TotalImpressions += item.TotalImpressions
		point.TotalClicks += item.TotalClicks
		point.TotalPurchases += item.TotalPurchases
		point.TotalRevenue += item.TotalRevenue
		point.Platforms = append(point.Platforms, item.Platform)
	}

	sort.Slice(order, func(i, j int) bool { return order[i].Before(order[j]) })

	result := make([]TrendPoint, 0, len(order))
	for _, month := range order {
		result = append(result, *byMonth[month.Unix()])
	}
	return result
}

func int64Value(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func floatValue(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func decimalValue(v *decimal.Decimal) float64 {
	if v == nil {
		return 0
	}
	return v.InexactFloat64()
}
