package importer

import (
	"time"

	"github.com/tommy-vpr/sales-report/pkg/enums"
)

// Period identifies the reporting month an import batch belongs to.
type Period struct {
	Year  int
	Month int
}

// Normalized reports the first calendar day of the period in UTC. Both
// campaign metrics and monthly summaries are keyed off this date.
func (p Period) Normalized() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// MonthName returns the English month name used in campaign names and labels.
func (p Period) MonthName() string {
	return time.Month(p.Month).String()
}

// MonthEnd returns the last calendar day of the period.
func (p Period) MonthEnd() time.Time {
	return p.Normalized().AddDate(0, 1, -1)
}

// ParsedRow is the canonical, unit-consistent form of one imported data row.
// Every rate is a fraction (0.0538, not 5.38). Nil means the source cell was
// absent, "-", or zero; downstream averaging excludes nil samples.
type ParsedRow struct {
	Platform enums.Platform

	Impressions int
	Clicks      *int
	Spend       float64

	CTR *float64
	CPM *float64
	CPC *float64

	VideoViews    *int
	VideoViewRate *float64

	Purchases     *int
	PurchaseValue *float64
	ROAS          *float64
}

// Input carries one uploaded export file into the pipeline.
type Input struct {
	FileContent string
	FileName    string

	// Source labels where the batch came from ("api", "cli") for metrics.
	Source string

	// Year and Month override period inference when both are set.
	Year  int
	Month int
}

// SkipCounts surfaces why rows were dropped during normalization.
type SkipCounts struct {
	UnknownPlatform int `json:"unknownPlatform"`
	NoImpressions   int `json:"noImpressions"`
}

// Total returns the number of skipped rows across all reasons.
func (s SkipCounts) Total() int {
	return s.UnknownPlatform + s.NoImpressions
}

// PeriodResult describes the resolved reporting month.
type PeriodResult struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	MonthName string `json:"monthName"`
}

// RecordCounts reports per-row persistence outcomes.
type RecordCounts struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Total   int `json:"total"`
}

// SummaryResult lists the platforms whose monthly summaries were rewritten.
type SummaryResult struct {
	Platforms []enums.Platform `json:"platforms"`
	Count     int              `json:"count"`
}

// Result is the batch outcome returned to callers.
type Result struct {
	Period    PeriodResult  `json:"period"`
	Records   RecordCounts  `json:"records"`
	Skipped   SkipCounts    `json:"skipped"`
	Summaries SummaryResult `json:"summaries"`
}
