package env

import "os"

// Get returns the value of the given environment variable or a fallback.
// Structured settings belong in pkg/config; this covers bootstrap reads
// like LOG_FORMAT that happen before config is loaded.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
