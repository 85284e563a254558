package assets

import (
	"sort"

	"prewarm/internal/config"
	"prewarm/internal/content"
	"prewarm/internal/profile"
)

// Sets is the discovery output: a bounded, ordered critical set and the
// deduplicated extended superset. Membership is decided once per session
// and never recomputed.
type Sets struct {
	Critical []string
	Extended []string
}

// liteSeedCount is how many static seeds survive the lite/bot collapse.
const liteSeedCount = 2

// Discover scans the manifest for image references and partitions them
// into critical and extended sets per the configured budgets.
func Discover(manifest *content.Manifest, prof profile.Profile, cfg *config.Config) Sets {
	filter := NewFilter(cfg.Content.AssetPrefix, cfg.Content.SiteOrigin, cfg.Content.TrustedOrigins)
	seeds := cfg.Discovery.StaticSeeds

	if prof.Lite() {
		subset := seeds
		if len(subset) > liteSeedCount {
			subset = subset[:liteSeedCount]
		}
		critical := dedupe(filterAll(filter, subset))
		extended := append([]string(nil), critical...)
		return Sets{Critical: critical, Extended: extended}
	}

	critical := buildCritical(manifest, filter, seeds, cfg)
	extended := buildExtended(manifest, filter, critical, seeds)
	return Sets{Critical: critical, Extended: extended}
}

// buildCritical walks the fixed content locations in priority order and
// caps the result at the configured maximum.
func buildCritical(manifest *content.Manifest, filter Filter, seeds []string, cfg *config.Config) []string {
	candidates := make([]string, 0, len(seeds)+16)
	candidates = append(candidates, seeds...)

	if manifest != nil {
		candidates = append(candidates,
			manifest.Profile.PortraitURL,
			manifest.Profile.AboutURL,
			manifest.Brand.IconURL,
		)
		for _, name := range variantNames(manifest.Brand.IconVariants) {
			candidates = append(candidates, manifest.Brand.IconVariants[name])
		}
		candidates = append(candidates, entryImages(manifest.Projects, cfg.Discovery.MaxProjectImages)...)
		candidates = append(candidates, entryImages(manifest.Cinema, cfg.Discovery.MaxCinemaImages)...)
		candidates = append(candidates, entryImages(manifest.Testimonials, cfg.Discovery.MaxTestimonialImages)...)
	}

	critical := dedupe(filterAll(filter, candidates))
	if limit := cfg.Preload.MaxCriticalAssets; len(critical) > limit {
		critical = critical[:limit]
	}
	return critical
}

// buildExtended walks every image-bearing string in the manifest and
// returns the order-preserving union of critical, the static seeds, and
// the full walk. Seeds are not part of the manifest walk, so they are
// re-appended here: the critical cap may have truncated some of them.
func buildExtended(manifest *content.Manifest, filter Filter, critical, seeds []string) []string {
	combined := make([]string, 0, len(critical)+len(seeds)+16)
	combined = append(combined, critical...)
	combined = append(combined, filterAll(filter, seeds)...)
	combined = append(combined, filterAll(filter, manifest.ImageStrings())...)
	return dedupe(combined)
}

func entryImages(entries []content.Entry, limit int) []string {
	if limit <= 0 {
		return nil
	}
	images := make([]string, 0, limit)
	for _, entry := range entries {
		if len(images) == limit {
			break
		}
		images = append(images, entry.ImageURL)
	}
	return images
}

func filterAll(filter Filter, candidates []string) []string {
	accepted := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if value, ok := filter.Accept(candidate); ok {
			accepted = append(accepted, value)
		}
	}
	return accepted
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	return result
}

// variantNames orders icon variant keys so discovery output is
// deterministic across runs.
func variantNames(variants map[string]string) []string {
	if len(variants) == 0 {
		return nil
	}
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
