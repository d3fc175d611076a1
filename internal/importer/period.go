package importer

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

type monthToken struct {
	name  string
	month int
}

// monthTokens lists full month names followed by common abbreviations, in
// match priority order. Matching is substring-based over the lowercased
// line, so full names must come first.
var monthTokens = []monthToken{
	{"january", 1}, {"february", 2}, {"march", 3}, {"april", 4},
	{"may", 5}, {"june", 6}, {"july", 7}, {"august", 8},
	{"september", 9}, {"october", 10}, {"november", 11}, {"december", 12},
	{"jan", 1}, {"feb", 2}, {"mar", 3}, {"apr", 4},
	{"jun", 6}, {"jul", 7}, {"aug", 8},
	{"sep", 9}, {"sept", 9},
	{"oct", 10}, {"nov", 11}, {"dec", 12},
}

// contentYearRe accepts an optional leading apostrophe and 2-4 digits, so
// both "April '25" and "April 2025" resolve.
var contentYearRe = regexp.MustCompile(`'?(\d{2,4})`)

// filenameYearRe only accepts full 4-digit years; filenames don't use the
// apostrophe shorthand.
var filenameYearRe = regexp.MustCompile(`(\d{4})`)

// timeNow is swapped in tests to pin the current-period fallback.
var timeNow = time.Now

// resolvePeriod infers the reporting month. Priority: explicit caller
// override, then the first content line, then the filename, then the current
// system month. It never fails.
func resolvePeriod(content, filename string, yearOverride, monthOverride int) Period {
	if yearOverride != 0 && monthOverride != 0 {
		return Period{Year: yearOverride, Month: monthOverride}
	}

	firstLine := lineSplitRe.Split(content, 2)[0]
	lowerFirst := strings.ToLower(firstLine)

	for _, token := range monthTokens {
		if !strings.Contains(lowerFirst, token.name) {
			continue
		}
		year := timeNow().Year()
		if m := contentYearRe.FindStringSubmatch(firstLine); m != nil {
			parsed, _ := strconv.Atoi(m[1])
			if parsed < 100 {
				// Two-digit-year convention: '25 means 2025.
				parsed += 2000
			}
			year = parsed
		}
		return Period{Year: year, Month: token.month}
	}

	lowerFilename := strings.ToLower(filename)
	for _, token := range monthTokens {
		if !strings.Contains(lowerFilename, token.name) {
			continue
		}
		year := timeNow().Year()
		if m := filenameYearRe.FindStringSubmatch(filename); m != nil {
			year, _ = strconv.Atoi(m[1])
		}
		return Period{Year: year, Month: token.month}
	}

	now := timeNow()
	return Period{Year: now.Year(), Month: int(now.Month())}
}
