package importer

import (
	"strconv"
	"strings"

	"github.com/tommy-vpr/sales-report/pkg/enums"
)

// platformAliases maps the label variants seen across export dialects onto
// the closed platform set. This is process-wide constant configuration; keep
// it in sync with whatever dialects the exports produce.
var platformAliases = map[string]enums.Platform{
	"Meta Ads":          enums.PlatformMeta,
	"Meta":              enums.PlatformMeta,
	"X Ads":             enums.PlatformX,
	"X":                 enums.PlatformX,
	"Tik Tok Ads":       enums.PlatformTikTok,
	"TikTok Ads":        enums.PlatformTikTok,
	"TikTok":            enums.PlatformTikTok,
	"LinkedIn Ads":      enums.PlatformLinkedIn,
	"LinkedIn":          enums.PlatformLinkedIn,
	"Taboola":           enums.PlatformTaboola,
	"Vibe":              enums.PlatformVibeCTV,
	"Vibe CTV":          enums.PlatformVibeCTV,
	"Wholesale Central": enums.PlatformWholesaleCentral,
}

var numberCleaner = strings.NewReplacer(
	"$", "",
	"%", "",
	",", "",
	"\"", "",
	" ", "",
	"\t", "",
)

// parseNumber cleans a raw cell and parses it as a float. Empty cells, "-",
// and literal "0" all mean "absent", not zero; the distinction keeps dead
// cells out of rate-averaging denominators.
func parseNumber(value string) *float64 {
	if value == "" || value == "-" || value == "0" {
		return nil
	}
	cleaned := numberCleaner.Replace(value)
	num, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &num
}

// rowValue returns the first non-empty cell among the alias candidates.
// Metrics with multiple known header spellings list them in priority order.
func rowValue(row rawRow, keys ...string) string {
	for _, key := range keys {
		if val, ok := row[key]; ok && val != "" {
			return val
		}
	}
	return ""
}

// normalizeRow maps a raw row to a ParsedRow, deriving CPM/CPC/CTR/ROAS when
// the explicit column is missing. A nil result means the row was discarded:
// either the platform label is unknown or impressions did not parse to a
// positive number.
func normalizeRow(row rawRow) *ParsedRow {
	platform, ok := platformAliases[row["Platform"]]
	if !ok {
		return nil
	}

	impressions := parseNumber(row["Impressions"])
	if impressions == nil || *impressions <= 0 {
		return nil
	}

	clicks := parseNumber(rowValue(row, "Link Clicks", "Clicks"))
	spendVal := parseNumber(row["Cost"])
	spend := 0.0
	if spendVal != nil {
		spend = *spendVal
	}

	ctr := parseNumber(rowValue(row, "CTR %", "CTR"))
	cpc := parseNumber(rowValue(row, "CPC (cost per click)", "CPC"))
	cpm := parseNumber(rowValue(row, "CPM (cost per 1000 views)", "CPM"))
	videoViews := parseNumber(row["Video Views"])
	videoViewRate := parseNumber(row["Video View Rate"])
	purchases := parseNumber(row["Purchases"])
	purchaseValue := parseNumber(row["Purchase Value"])
	roas := parseNumber(rowValue(row, "ROAS %", "ROAS"))

	impressionCount := int(*impressions)

	parsed := &ParsedRow{
		Platform:      platform,
		Impressions:   impressionCount,
		Clicks:        toIntPtr(clicks),
		Spend:         spend,
		VideoViews:    toIntPtr(videoViews),
		Purchases:     toIntPtr(purchases),
		PurchaseValue: purchaseValue,
	}

	// Explicit columns win; derivation only fills gaps. Explicit rate cells
	// arrive as percentages and are stored as fractions.
	if cpm != nil {
		parsed.CPM = cpm
	} else {
		v := spend / float64(impressionCount) * 1000
		parsed.CPM = &v
	}

	if cpc != nil {
		parsed.CPC = cpc
	} else if clicks != nil && *clicks > 0 {
		v := spend / *clicks
		parsed.CPC = &v
	}

	if ctr != nil {
		v := *ctr / 100
		parsed.CTR = &v
	} else if clicks != nil && impressionCount > 0 {
		v := *clicks / float64(impressionCount)
		parsed.CTR = &v
	}

	if roas != nil {
		v := *roas / 100
		parsed.ROAS = &v
	} else if purchaseValue != nil && spend > 0 {
		v := *purchaseValue / spend
		parsed.ROAS = &v
	}

	if videoViewRate != nil {
		v := *videoViewRate / 100
		parsed.VideoViewRate = &v
	}

	return parsed
}

func toIntPtr(value *float64) *int {
	if value == nil {
		return nil
	}
	v := int(*value)
	return &v
}
