package importer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tommy-vpr/sales-report/pkg/db/models"
	"github.com/tommy-vpr/sales-report/pkg/enums"
	pkgerrors "github.com/tommy-vpr/sales-report/pkg/errors"
	"github.com/tommy-vpr/sales-report/pkg/logger"
	"github.com/tommy-vpr/sales-report/pkg/metrics"
	"github.com/tommy-vpr/sales-report/pkg/redis"
)

// regionAll is the sentinel region for flat-file imports, which carry no
// regional breakdown.
const regionAll = "ALL"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// SummaryCache invalidates cached reporting reads after a batch lands.
type SummaryCache interface {
	DelPattern(ctx context.Context, pattern string) error
}

type service struct {
	repo    Repository
	tx      txRunner
	log     *logger.Logger
	cache   SummaryCache
	metrics *metrics.ImportMetrics
}

// NewService builds the import service. cache and importMetrics may be nil;
// the service then skips invalidation and instrumentation respectively.
func NewService(repo Repository, tx txRunner, log *logger.Logger, cache SummaryCache, importMetrics *metrics.ImportMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("import repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:    repo,
		tx:      tx,
		log:     log,
		cache:   cache,
		metrics: importMetrics,
	}, nil
}

// Import parses, normalizes, and persists one export file. All row writes and
// summary rewrites happen in a single transaction; a failed batch leaves the
// store untouched.
func (s *service) Import(ctx context.Context, input Input) (*Result, error) {
	start := time.Now()
	ctx = s.log.WithImportFile(ctx, input.FileName)

	rows, _, unknownPlatforms, err := parseCSV(input.FileContent)
	if err != nil {
		s.metrics.IncFailure(input.Source)
		return nil, err
	}
	if len(rows) == 0 {
		s.metrics.IncFailure(input.Source)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no valid data found in CSV")
	}

	period := resolvePeriod(input.FileContent, input.FileName, input.Year, input.Month)
	ctx = s.log.WithFields(ctx, map[string]any{
		"period_year":  period.Year,
		"period_month": period.Month,
		"rows":         len(rows),
	})
	s.log.Info(ctx, "import batch parsed")

	result := &Result{
		Period: PeriodResult{
			Year:      period.Year,
			Month:     period.Month,
			MonthName: period.MonthName(),
		},
	}
	result.Skipped.UnknownPlatform = unknownPlatforms

	acc := newAccumulator()

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		for _, raw := range rows {
			parsed := normalizeRow(raw)
			if parsed == nil {
				result.Skipped.NoImpressions++
				continue
			}

			created, err := s.upsertRow(ctx, repo, parsed, period)
			if err != nil {
				return err
			}
			if created {
				result.Records.Created++
			} else {
				result.Records.Updated++
			}
			acc.Add(parsed)
		}

		for _, platform := range acc.Platforms() {
			totals, ok := acc.Finalize(platform)
			if !ok {
				continue
			}
			if err := s.writeSummary(ctx, repo, platform, period, totals); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(input.Source)
		if appErr := pkgerrors.As(err); appErr != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "import batch failed")
	}

	result.Records.Total = result.Records.Created + result.Records.Updated
	result.Summaries = SummaryResult{
		Platforms: acc.Platforms(),
		Count:     len(acc.Platforms()),
	}

	if s.cache != nil {
		if err := s.cache.DelPattern(ctx, redis.SummaryCachePattern()); err != nil {
			s.log.Warn(ctx, "summary cache invalidation failed: "+err.Error())
		}
	}

	s.metrics.ObserveDuration(input.Source, time.Since(start))
	s.metrics.AddRowsWritten("created", result.Records.Created)
	s.metrics.AddRowsWritten("updated", result.Records.Updated)
	s.metrics.AddRowsSkipped("unknown_platform", result.Skipped.UnknownPlatform)
	s.metrics.AddRowsSkipped("no_impressions", result.Skipped.NoImpressions)
	s.metrics.IncSuccess(input.Source)

	s.log.Info(ctx, "import batch committed: "+
		strconv.Itoa(result.Records.Created)+" created, "+
		strconv.Itoa(result.Records.Updated)+" updated, "+
		strconv.Itoa(result.Skipped.Total())+" skipped")

	return result, nil
}

// upsertRow lands one parsed row: find-or-create the month's campaign for the
// platform, then create or overwrite its metric row for the report date.
// Returns true when the metric row was newly created.
func (s *service) upsertRow(ctx context.Context, repo Repository, row *ParsedRow, period Period) (bool, error) {
	name := fmt.Sprintf("%s - %s %d", row.Platform, period.MonthName(), period.Year)

	campaign, err := repo.FindCampaignByName(ctx, name, row.Platform)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		campaign, err = repo.CreateCampaign(ctx, &models.Campaign{
			Name:      name,
			Platform:  row.Platform,
			StartDate: period.Normalized(),
			EndDate:   period.MonthEnd(),
		})
		if err != nil {
			return false, err
		}
	} else if err != nil {
		return false, err
	}

	reportDate := period.Normalized()
	existing, err := repo.FindMetric(ctx, campaign.ID, reportDate, regionAll)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_, err = repo.CreateMetric(ctx, &models.CampaignMetric{
			CampaignID:    campaign.ID,
			ReportDate:    reportDate,
			Region:        regionAll,
			Impressions:   row.Impressions,
			Clicks:        row.Clicks,
			Spend:         decimal.NewFromFloat(row.Spend),
			CTR:           row.CTR,
			CPM:           row.CPM,
			CPC:           row.CPC,
			VideoViews:    row.VideoViews,
			VideoViewRate: row.VideoViewRate,
			Purchases:     row.Purchases,
			PurchaseValue: moneyPtr(row.PurchaseValue),
			ROAS:          row.ROAS,
		})
		if err != nil {
			return false, err
		}
		return true, nil
	} else if err != nil {
		return false, err
	}

	return false, repo.UpdateMetric(ctx, existing.ID, map[string]any{
		"impressions":     row.Impressions,
		"clicks":          row.Clicks,
		"spend":           decimal.NewFromFloat(row.Spend),
		"ctr":             row.CTR,
		"cpm":             row.CPM,
		"cpc":             row.CPC,
		"video_views":     row.VideoViews,
		"video_view_rate": row.VideoViewRate,
		"purchases":       row.Purchases,
		"purchase_value":  moneyPtr(row.PurchaseValue),
		"roas":            row.ROAS,
	})
}

// writeSummary replaces the platform's monthly summary with the rollup of the
// current batch. Zero counters persist as NULL so reporting reads can tell
// "no data" from "zero activity".
func (s *service) writeSummary(ctx context.Context, repo Repository, platform enums.Platform, period Period, totals summaryTotals) error {
	month := period.Normalized()

	existing, err := repo.FindMonthlySummary(ctx, platform, month)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_, err = repo.CreateMonthlySummary(ctx, &models.MonthlySummary{
			Platform:         platform,
			Month:            month,
			TotalSpend:       decimal.NewFromFloat(totals.TotalSpend),
			TotalImpressions: totals.TotalImpressions,
			TotalClicks:      nullableCount(totals.TotalClicks),
			TotalVideoViews:  nullableCount(totals.TotalVideoViews),
			TotalPurchases:   nullableCount(totals.TotalPurchases),
			TotalRevenue:     nullableMoney(totals.TotalRevenue),
			AvgCTR:           totals.AvgCTR,
			AvgCPM:           totals.AvgCPM,
			AvgCPC:           totals.AvgCPC,
			AvgROAS:          totals.AvgROAS,
			CampaignCount:    totals.CampaignCount,
		})
		return err
	} else if err != nil {
		return err
	}

	return repo.UpdateMonthlySummary(ctx, existing.ID, map[string]any{
		"total_spend":       decimal.NewFromFloat(totals.TotalSpend),
		"total_impressions": totals.TotalImpressions,
		"total_clicks":      nullableCount(totals.TotalClicks),
		"total_video_views": nullableCount(totals.TotalVideoViews),
		"total_purchases":   nullableCount(totals.TotalPurchases),
		"total_revenue":     nullableMoney(totals.TotalRevenue),
		"avg_ctr":           totals.AvgCTR,
		"avg_cpm":           totals.AvgCPM,
		"avg_cpc":           totals.AvgCPC,
		"avg_roas":          totals.AvgROAS,
		"campaign_count":    totals.CampaignCount,
	})
}

func nullableCount(v int64) *int64 {
	if v == 0 {
		return nil
	}
	return &v
}

func nullableMoney(v float64) *decimal.Decimal {
	if v == 0 {
		return nil
	}
	d := decimal.NewFromFloat(v)
	return &d
}

func moneyPtr(v *float64) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := decimal.NewFromFloat(*v)
	return &d
}
