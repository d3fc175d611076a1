package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tommy-vpr/sales-report/pkg/migrate"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestCampaignMetricsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_campaign_metrics.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS campaign_metrics",
		"CONSTRAINT campaign_metrics_key UNIQUE (campaign_id, report_date, region)",
		"FOREIGN KEY (campaign_id) REFERENCES campaigns(id) ON DELETE CASCADE",
		"CHECK (impressions > 0)",
		"DROP TABLE IF EXISTS campaign_metrics",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMonthlySummariesMigrationHasNaturalKey(t *testing.T) {
	content := readMigration(t, "*_create_monthly_summaries.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS monthly_summaries",
		"CONSTRAINT monthly_summaries_platform_month_key UNIQUE (platform, month)",
		"DROP TABLE IF EXISTS monthly_summaries",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir failed validation: %v", err)
	}
}
