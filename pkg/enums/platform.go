package enums

import "fmt"

// Platform represents the canonical platform enum in Postgres.
type Platform string

const (
	PlatformMeta             Platform = "META"
	PlatformX                Platform = "X"
	PlatformTikTok           Platform = "TIKTOK"
	PlatformLinkedIn         Platform = "LINKEDIN"
	PlatformTaboola          Platform = "TABOOLA"
	PlatformVibeCTV          Platform = "VIBE_CTV"
	PlatformWholesaleCentral Platform = "WHOLESALE_CENTRAL"
)

var validPlatforms = []Platform{
	PlatformMeta,
	PlatformX,
	PlatformTikTok,
	PlatformLinkedIn,
	PlatformTaboola,
	PlatformVibeCTV,
	PlatformWholesaleCentral,
}

// String implements fmt.Stringer.
func (p Platform) String() string {
	return string(p)
}

// IsValid reports whether the value is a known Platform.
func (p Platform) IsValid() bool {
	for _, candidate := range validPlatforms {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePlatform converts raw input into a Platform.
func ParsePlatform(value string) (Platform, error) {
	for _, candidate := range validPlatforms {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid platform %q", value)
}

// Platforms returns the closed set of known platforms.
func Platforms() []Platform {
	out := make([]Platform, len(validPlatforms))
	copy(out, validPlatforms)
	return out
}
