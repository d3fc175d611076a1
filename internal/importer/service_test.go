package importer

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tommy-vpr/sales-report/pkg/db/models"
	"github.com/tommy-vpr/sales-report/pkg/enums"
	pkgerrors "github.com/tommy-vpr/sales-report/pkg/errors"
	"github.com/tommy-vpr/sales-report/pkg/logger"
)

func setupImportTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	campaigns := `
CREATE TABLE IF NOT EXISTS campaigns (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  platform TEXT NOT NULL,
  start_date DATETIME NOT NULL,
  end_date DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (name, platform)
);`
	campaignMetrics := `
CREATE TABLE IF NOT EXISTS campaign_metrics (
  id TEXT PRIMARY KEY,
  campaign_id TEXT NOT NULL,
  report_date DATETIME NOT NULL,
  region TEXT NOT NULL DEFAULT 'ALL',
  impressions INTEGER NOT NULL,
  clicks INTEGER,
  spend NUMERIC NOT NULL,
  ctr REAL,
  cpm REAL,
  cpc REAL,
  video_views INTEGER,
  video_view_rate REAL,
  purchases INTEGER,
  purchase_value NUMERIC,
  roas REAL,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (campaign_id, report_date, region)
);`
	monthlySummaries := `
CREATE TABLE IF NOT EXISTS monthly_summaries (
  id TEXT PRIMARY KEY,
  platform TEXT NOT NULL,
  month DATETIME NOT NULL,
  total_spend NUMERIC NOT NULL,
  total_impressions INTEGER NOT NULL,
  total_clicks INTEGER,
  total_reach INTEGER,
  avg_ctr REAL,
  avg_cpm REAL,
  avg_cpc REAL,
  total_video_views INTEGER,
  total_purchases INTEGER,
  total_revenue NUMERIC,
  avg_roas REAL,
  campaign_count INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (platform, month)
);`
	for _, stmt := range []string{campaigns, campaignMetrics, monthlySummaries} {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

type recordingCache struct {
	patterns []string
}

func (c *recordingCache) DelPattern(_ context.Context, pattern string) error {
	c.patterns = append(c.patterns, pattern)
	return nil
}

func newImportService(t *testing.T, db *gorm.DB, cache SummaryCache) Service {
	t.Helper()
	log := logger.New(logger.Options{ServiceName: "import-test", Output: io.Discard})
	svc, err := NewService(NewRepository(db), gormTxRunner{db: db}, log, cache, nil)
	require.NoError(t, err)
	return svc
}

const aprilExport = "Monthly Ad Performance - April '25\n" +
	"Platform,Impressions,Link Clicks,Cost,CTR %,Purchases,Purchase Value\n" +
	"Meta Ads,\"10,000\",250,$500.00,2.5,10,1500\n" +
	"X Ads,2000,40,80,,,\n" +
	"Google Ads,500,10,20,,,\n" +
	"TOTAL,12500,300,600,,,\n"

func TestService_ImportCreatesRecordsAndSummaries(t *testing.T) {
	db := setupImportTestDB(t)
	cache := &recordingCache{}
	svc := newImportService(t, db, cache)

	result, err := svc.Import(context.Background(), Input{
		FileContent: aprilExport,
		FileName:    "april_upload.csv",
		Source:      "cli",
	})
	require.NoError(t, err)

	assert.Equal(t, PeriodResult{Year: 2025, Month: 4, MonthName: "April"}, result.Period)
	assert.Equal(t, RecordCounts{Created: 2, Updated: 0, Total: 2}, result.Records)
	assert.Equal(t, 1, result.Skipped.UnknownPlatform)
	assert.Equal(t, 0, result.Skipped.NoImpressions)
	assert.Equal(t, 2, result.Summaries.Count)
	assert.Equal(t, []enums.Platform{enums.PlatformMeta, enums.PlatformX}, result.Summaries.Platforms)

	var campaign models.Campaign
	require.NoError(t, db.Where("platform = ?", enums.PlatformMeta).First(&campaign).Error)
	assert.Equal(t, "META - April 2025", campaign.Name)

	var metric models.CampaignMetric
	require.NoError(t, db.Where("campaign_id = ?", campaign.ID).First(&metric).Error)
	assert.Equal(t, 10000, metric.Impressions)
	assert.Equal(t, "ALL", metric.Region)
	assert.InDelta(t, 500.0, metric.Spend.InexactFloat64(), 1e-6)
	require.NotNil(t, metric.CTR)
	assert.InDelta(t, 0.025, *metric.CTR, 1e-9)

	var summary models.MonthlySummary
	require.NoError(t, db.Where("platform = ?", enums.PlatformMeta).First(&summary).Error)
	assert.InDelta(t, 500.0, summary.TotalSpend.InexactFloat64(), 1e-6)
	assert.Equal(t, int64(10000), summary.TotalImpressions)
	require.NotNil(t, summary.TotalClicks)
	assert.Equal(t, int64(250), *summary.TotalClicks)
	assert.Equal(t, 1, summary.CampaignCount)
	require.NotNil(t, summary.TotalRevenue)
	assert.InDelta(t, 1500.0, summary.TotalRevenue.InexactFloat64(), 1e-6)

	// The X row carried no purchases; its counters stay NULL, not zero.
	var xSummary models.MonthlySummary
	require.NoError(t, db.Where("platform = ?", enums.PlatformX).First(&xSummary).Error)
	assert.Nil(t, xSummary.TotalPurchases)
	assert.Nil(t, xSummary.TotalRevenue)
	assert.Nil(t, xSummary.AvgROAS)

	require.Len(t, cache.patterns, 1)
	assert.Equal(t, "sr:summary:*", cache.patterns[0])
}

func TestService_ReimportIsIdempotent(t *testing.T) {
	db := setupImportTestDB(t)
	svc := newImportService(t, db, nil)

	input := Input{FileContent: aprilExport, FileName: "april_upload.csv", Source: "cli"}

	_, err := svc.Import(context.Background(), input)
	require.NoError(t, err)

	result, err := svc.Import(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, RecordCounts{Created: 0, Updated: 2, Total: 2}, result.Records)

	var campaignCount, metricCount, summaryCount int64
	require.NoError(t, db.Model(&models.Campaign{}).Count(&campaignCount).Error)
	require.NoError(t, db.Model(&models.CampaignMetric{}).Count(&metricCount).Error)
	require.NoError(t, db.Model(&models.MonthlySummary{}).Count(&summaryCount).Error)
	assert.Equal(t, int64(2), campaignCount)
	assert.Equal(t, int64(2), metricCount)
	assert.Equal(t, int64(2), summaryCount)

	// The rollup reflects the single batch, not the sum of both runs.
	var summary models.MonthlySummary
	require.NoError(t, db.Where("platform = ?", enums.PlatformMeta).First(&summary).Error)
	assert.InDelta(t, 500.0, summary.TotalSpend.InexactFloat64(), 1e-6)
	assert.Equal(t, 1, summary.CampaignCount)
}

func TestService_SummaryReplacedNotMerged(t *testing.T) {
	db := setupImportTestDB(t)
	svc := newImportService(t, db, nil)

	_, err := svc.Import(context.Background(), Input{FileContent: aprilExport, FileName: "april.csv"})
	require.NoError(t, err)

	revised := "Monthly Ad Performance - April '25\n" +
		"Platform,Impressions,Link Clicks,Cost\n" +
		"Meta Ads,4000,100,$200.00\n"
	_, err = svc.Import(context.Background(), Input{FileContent: revised, FileName: "april_v2.csv"})
	require.NoError(t, err)

	var summary models.MonthlySummary
	require.NoError(t, db.Where("platform = ?", enums.PlatformMeta).First(&summary).Error)
	assert.InDelta(t, 200.0, summary.TotalSpend.InexactFloat64(), 1e-6)
	assert.Equal(t, int64(4000), summary.TotalImpressions)

	// The X summary from the first batch is untouched by the second.
	var xSummary models.MonthlySummary
	require.NoError(t, db.Where("platform = ?", enums.PlatformX).First(&xSummary).Error)
	assert.InDelta(t, 80.0, xSummary.TotalSpend.InexactFloat64(), 1e-6)
}

func TestService_UnparsableFileFails(t *testing.T) {
	db := setupImportTestDB(t)
	svc := newImportService(t, db, nil)

	_, err := svc.Import(context.Background(), Input{FileContent: "no,header,here\n", FileName: "junk.csv"})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())

	var campaignCount int64
	require.NoError(t, db.Model(&models.Campaign{}).Count(&campaignCount).Error)
	assert.Zero(t, campaignCount)
}

func TestService_NoValidRowsFails(t *testing.T) {
	db := setupImportTestDB(t)
	svc := newImportService(t, db, nil)

	// Header parses, but every data row carries an unknown platform.
	content := "Platform,Impressions,Clicks,Cost\n" +
		"Google Ads,1000,10,50\n" +
		"Bing Ads,500,5,25\n"

	_, err := svc.Import(context.Background(), Input{FileContent: content, FileName: "unknown_only.csv"})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())

	var campaignCount, summaryCount int64
	require.NoError(t, db.Model(&models.Campaign{}).Count(&campaignCount).Error)
	require.NoError(t, db.Model(&models.MonthlySummary{}).Count(&summaryCount).Error)
	assert.Zero(t, campaignCount)
	assert.Zero(t, summaryCount)
}
