package validators

import "strings"

// SanitizeString trims and length-bounds raw client input, such as uploaded
// report filenames before they reach logs and period inference.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}
