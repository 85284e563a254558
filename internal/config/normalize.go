package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeContent(); err != nil {
		return err
	}
	c.normalizeDiscovery()
	c.normalizeProfile()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.JournalDir, err = expandPath(c.Paths.JournalDir); err != nil {
		return fmt.Errorf("paths.journal_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeContent() error {
	var err error
	c.Content.ManifestPath = strings.TrimSpace(c.Content.ManifestPath)
	if c.Content.ManifestPath != "" {
		if c.Content.ManifestPath, err = expandPath(c.Content.ManifestPath); err != nil {
			return fmt.Errorf("content.manifest_path: %w", err)
		}
	}
	c.Content.SiteOrigin = strings.TrimRight(strings.TrimSpace(c.Content.SiteOrigin), "/")
	c.Content.AssetPrefix = strings.TrimSpace(c.Content.AssetPrefix)
	if c.Content.AssetPrefix == "" {
		c.Content.AssetPrefix = defaultAssetPrefix
	}
	trimmed := make([]string, 0, len(c.Content.TrustedOrigins))
	for _, origin := range c.Content.TrustedOrigins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "" {
			continue
		}
		trimmed = append(trimmed, origin)
	}
	c.Content.TrustedOrigins = trimmed
	return nil
}

func (c *Config) normalizeDiscovery() {
	seeds := make([]string, 0, len(c.Discovery.StaticSeeds))
	seen := make(map[string]struct{}, len(c.Discovery.StaticSeeds))
	for _, seed := range c.Discovery.StaticSeeds {
		seed = strings.TrimSpace(seed)
		if seed == "" {
			continue
		}
		if _, ok := seen[seed]; ok {
			continue
		}
		seen[seed] = struct{}{}
		seeds = append(seeds, seed)
	}
	c.Discovery.StaticSeeds = seeds
}

func (c *Config) normalizeProfile() {
	patterns := make([]string, 0, len(c.Profile.CrawlerPatterns))
	for _, pattern := range c.Profile.CrawlerPatterns {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}
		patterns = append(patterns, pattern)
	}
	c.Profile.CrawlerPatterns = patterns
	c.Profile.ForcePerfMode = strings.ToLower(strings.TrimSpace(c.Profile.ForcePerfMode))
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
