package importer

import (
	"regexp"
	"strings"

	pkgerrors "github.com/tommy-vpr/sales-report/pkg/errors"
)

// rawRow maps a header label to the (still string-typed) cell beneath it.
// It never leaves this package; normalization turns it into a ParsedRow.
type rawRow map[string]string

var lineSplitRe = regexp.MustCompile(`\r?\n`)

// parseCSV locates the header row and tokenizes every data line under it.
// The header row is the first line containing both "Platform" and
// "Impressions"; without one the file is unusable. Rows whose platform label
// is not in the alias table are dropped silently; the count of such drops is
// reported so the batch result can surface it.
func parseCSV(content string) ([]rawRow, []string, int, error) {
	var lines []string
	for _, line := range lineSplitRe.Split(content, -1) {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	headerIndex := -1
	for i, line := range lines {
		if strings.Contains(line, "Platform") && strings.Contains(line, "Impressions") {
			headerIndex = i
			break
		}
	}
	if headerIndex == -1 {
		return nil, nil, 0, pkgerrors.New(pkgerrors.CodeValidation,
			"could not find header row with Platform and Impressions columns")
	}

	headers := strings.Split(lines[headerIndex], ",")
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	var rows []rawRow
	unknownPlatforms := 0
	for i := headerIndex + 1; i < len(lines); i++ {
		line := lines[i]
		// Source sheets terminate the data block with a totals line or a
		// separator row whose first cell is empty.
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "TOTAL") || strings.HasPrefix(line, ",") {
			break
		}

		values := tokenizeLine(line)

		row := rawRow{}
		for idx, header := range headers {
			if header == "" {
				continue
			}
			if idx < len(values) {
				row[header] = values[idx]
			} else {
				row[header] = ""
			}
		}

		if _, ok := platformAliases[row["Platform"]]; ok {
			rows = append(rows, row)
		} else {
			unknownPlatforms++
		}
	}

	return rows, headers, unknownPlatforms, nil
}

// tokenizeLine splits a CSV line on commas, honoring double-quoted fields so
// embedded thousands separators survive. Escaped quotes inside fields are not
// supported; the export dialects never produce them.
func tokenizeLine(line string) []string {
	var values []string
	var current strings.Builder
	inQuotes := false

	for _, char := range line {
		switch {
		case char == '"':
			inQuotes = !inQuotes
		case char == ',' && !inQuotes:
			values = append(values, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(char)
		}
	}
	values = append(values, strings.TrimSpace(current.String()))

	return values
}
