// Package profile classifies the requesting client into a device profile
// that selects a loading strategy.
//
// Crawlers and low-capability clients get the lite strategy: a minimal
// static asset subset and a short blocking budget, so time-to-ready stays
// small regardless of network conditions. The profile is fixed for the
// lifetime of a session.
package profile

import "strings"

// PerfMode selects between the full and reduced loading strategies.
type PerfMode string

const (
	PerfFull PerfMode = "full"
	PerfLite PerfMode = "lite"
)

// Profile describes the client for the lifetime of a session.
type Profile struct {
	PerfMode PerfMode
	IsBot    bool
}

// Lite reports whether the session should use the reduced strategy.
func (p Profile) Lite() bool {
	return p.IsBot || p.PerfMode == PerfLite
}

// String renders the profile for logging.
func (p Profile) String() string {
	if p.IsBot {
		return string(p.PerfMode) + "/bot"
	}
	return string(p.PerfMode)
}

// Classify derives a profile from the client user agent. patterns is the
// configured crawler substring list (already lowercased); forceMode, when
// "full" or "lite", overrides the derived perf mode.
func Classify(userAgent string, patterns []string, forceMode string) Profile {
	p := Profile{PerfMode: PerfFull}

	ua := strings.ToLower(strings.TrimSpace(userAgent))
	if ua != "" {
		for _, pattern := range patterns {
			if pattern == "" {
				continue
			}
			if strings.Contains(ua, pattern) {
				p.IsBot = true
				break
			}
		}
	}
	if p.IsBot {
		p.PerfMode = PerfLite
	}

	switch strings.ToLower(strings.TrimSpace(forceMode)) {
	case "full":
		p.PerfMode = PerfFull
	case "lite":
		p.PerfMode = PerfLite
	}
	return p
}
