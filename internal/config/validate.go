package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePreload(); err != nil {
		return err
	}
	if err := c.validateContent(); err != nil {
		return err
	}
	if err := c.validateDiscovery(); err != nil {
		return err
	}
	if err := c.validateProfile(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePreload() error {
	if err := ensurePositiveMap(map[string]int{
		"preload.blocking_deadline_ms":      c.Preload.BlockingDeadlineMs,
		"preload.lite_blocking_deadline_ms": c.Preload.LiteBlockingDeadlineMs,
		"preload.per_asset_timeout_ms":      c.Preload.PerAssetTimeoutMs,
		"preload.max_parallel_workers":      c.Preload.MaxParallelWorkers,
		"preload.max_critical_assets":       c.Preload.MaxCriticalAssets,
		"preload.total_deadline_ms":         c.Preload.TotalDeadlineMs,
	}); err != nil {
		return err
	}
	if c.Preload.GraceDelayMs < 0 {
		return errors.New("preload.grace_delay_ms must not be negative")
	}
	if c.Preload.TotalDeadlineMs <= c.Preload.BlockingDeadlineMs {
		return errors.New("preload.total_deadline_ms must exceed preload.blocking_deadline_ms")
	}
	return nil
}

func (c *Config) validateContent() error {
	if !strings.HasPrefix(c.Content.AssetPrefix, "/") {
		return errors.New("content.asset_prefix must start with /")
	}
	if c.Content.SiteOrigin != "" {
		if err := validateOrigin("content.site_origin", c.Content.SiteOrigin); err != nil {
			return err
		}
	}
	for _, origin := range c.Content.TrustedOrigins {
		if err := validateOrigin("content.trusted_origins", origin); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateDiscovery() error {
	return ensureNonNegativeMap(map[string]int{
		"discovery.max_project_images":     c.Discovery.MaxProjectImages,
		"discovery.max_cinema_images":      c.Discovery.MaxCinemaImages,
		"discovery.max_testimonial_images": c.Discovery.MaxTestimonialImages,
	})
}

func (c *Config) validateProfile() error {
	switch c.Profile.ForcePerfMode {
	case "", "full", "lite":
		return nil
	default:
		return fmt.Errorf("profile.force_perf_mode must be empty, \"full\", or \"lite\" (got %q)", c.Profile.ForcePerfMode)
	}
}

func validateOrigin(field, origin string) error {
	parsed, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("%s: invalid URL %q: %w", field, origin, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s: %q must use http or https", field, origin)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s: %q is missing a host", field, origin)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for field, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive (got %d)", field, value)
		}
	}
	return nil
}

func ensureNonNegativeMap(values map[string]int) error {
	for field, value := range values {
		if value < 0 {
			return fmt.Errorf("%s must not be negative (got %d)", field, value)
		}
	}
	return nil
}
