// Package testsupport centralizes fixtures shared across prewarm tests:
// temp-dir configs, journal stores, manifests, and a manual clock.
package testsupport

import (
	"path/filepath"
	"testing"

	"prewarm/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.JournalDir = filepath.Join(base, "journal")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Content.ManifestPath = filepath.Join(base, "content.json")
	cfg.Content.SiteOrigin = "https://example.com"
	cfg.Content.TrustedOrigins = []string{"https://cdn.example-storage.com"}

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithWorkers overrides the parallel worker count.
func WithWorkers(n int) ConfigOption {
	return func(c *config.Config) {
		c.Preload.MaxParallelWorkers = n
	}
}

// WithBudgets overrides the session deadlines, all in milliseconds.
func WithBudgets(blocking, perAsset, total int) ConfigOption {
	return func(c *config.Config) {
		c.Preload.BlockingDeadlineMs = blocking
		c.Preload.PerAssetTimeoutMs = perAsset
		c.Preload.TotalDeadlineMs = total
	}
}
