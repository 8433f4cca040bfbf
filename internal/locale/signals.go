package locale

import (
	"context"
	"strings"
)

// Signals are the raw detection inputs collected from a request. All fields
// are optional; a stored preference short-circuits collection entirely.
type Signals struct {
	BrowserLanguage string // raw tag, e.g. "en-US"
	TimezoneID      string // IANA identifier supplied by the client
	ClientIP        string
}

// GeoLookup is the one fallible, network-bound signal source.
type GeoLookup interface {
	CountryCode(ctx context.Context, ip string) (string, error)
}

// A detector inspects the signals and either names a country or declines.
// Detectors run strictly in priority order; the first hit wins and later
// detectors are never consulted.
type detector func(ctx context.Context, s Signals) (string, bool)

func geoDetector(geo GeoLookup) detector {
	return func(ctx context.Context, s Signals) (string, bool) {
		if geo == nil {
			return "", false
		}
		country, err := geo.CountryCode(ctx, s.ClientIP)
		if err != nil {
			// Timeouts and network errors demote silently to the next tier.
			return "", false
		}
		return country, true
	}
}

func timezoneDetector(_ context.Context, s Signals) (string, bool) {
	if s.TimezoneID == "" {
		return "", false
	}
	for _, tz := range timezoneCountry {
		if strings.Contains(s.TimezoneID, tz.substr) {
			return tz.country, true
		}
	}
	return "", false
}

// languagePrefix extracts the two-letter language code from a browser tag.
func languagePrefix(tag string) string {
	code, _, _ := strings.Cut(tag, "-")
	code = strings.ToLower(strings.TrimSpace(code))
	if len(code) < 2 {
		return ""
	}
	return code[:2]
}
