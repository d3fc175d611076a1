package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestImportMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewImportMetrics(reg)

	m.ObserveDuration("http", 250*time.Millisecond)
	m.AddRowsWritten("created", 3)
	m.AddRowsWritten("updated", 2)
	m.AddRowsSkipped("unknown_platform", 1)
	m.IncSuccess("http")
	m.IncFailure("cli")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	byName := map[string]*dto.MetricFamily{}
	for _, fam := range families {
		byName[fam.GetName()] = fam
	}

	for _, name := range []string{
		"import_duration_seconds",
		"import_rows_written",
		"import_rows_skipped",
		"import_success",
		"import_failure",
	} {
		if byName[name] == nil {
			t.Fatalf("expected metric family %s", name)
		}
	}

	written := byName["import_rows_written"]
	total := 0.0
	for _, metric := range written.GetMetric() {
		total += metric.GetCounter().GetValue()
	}
	if total != 5 {
		t.Fatalf("expected 5 written rows across outcomes, got %v", total)
	}
}

func TestImportMetricsNilSafe(t *testing.T) {
	var m *ImportMetrics
	m.ObserveDuration("http", time.Second)
	m.AddRowsWritten("created", 1)
	m.AddRowsSkipped("no_impressions", 1)
	m.IncSuccess("http")
	m.IncFailure("http")

	empty := NewImportMetrics(nil)
	empty.IncSuccess("http")
}
