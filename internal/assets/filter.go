package assets

import (
	"net/url"
	"strings"
)

var imageExtensions = map[string]struct{}{
	".avif": {},
	".webp": {},
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".svg":  {},
	".ico":  {},
}

// Filter decides which candidate strings count as loadable image
// references. It is built once per session from config.
type Filter struct {
	assetPrefix    string
	siteOrigin     string
	trustedOrigins []string
}

// NewFilter constructs a filter. siteOrigin and trustedOrigins must already
// be normalized (trailing slashes trimmed).
func NewFilter(assetPrefix, siteOrigin string, trustedOrigins []string) Filter {
	return Filter{
		assetPrefix:    assetPrefix,
		siteOrigin:     siteOrigin,
		trustedOrigins: trustedOrigins,
	}
}

// Accept reports whether the trimmed candidate is allowed, returning the
// trimmed value alongside. Rejected candidates are dropped, never errored.
func (f Filter) Accept(candidate string) (string, bool) {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return "", false
	}

	if strings.HasPrefix(trimmed, "data:image/") {
		return trimmed, true
	}
	if strings.HasPrefix(trimmed, f.assetPrefix) {
		return trimmed, true
	}

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		for _, origin := range f.trustedOrigins {
			if strings.HasPrefix(trimmed, origin+"/") {
				return trimmed, true
			}
		}
		if f.siteOrigin != "" && (trimmed == f.siteOrigin || strings.HasPrefix(trimmed, f.siteOrigin+"/")) {
			return trimmed, true
		}
		// Cross-origin absolute URL.
		return "", false
	}

	// Relative and root-relative paths are same-origin.
	if hasImageExtension(trimmed) {
		return trimmed, true
	}
	return "", false
}

func hasImageExtension(value string) bool {
	path := value
	if parsed, err := url.Parse(value); err == nil && parsed.Path != "" {
		path = parsed.Path
	}
	if idx := strings.LastIndexByte(path, '.'); idx >= 0 {
		ext := strings.ToLower(path[idx:])
		_, ok := imageExtensions[ext]
		return ok
	}
	return false
}
