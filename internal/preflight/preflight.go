package preflight

import (
	"context"

	"prewarm/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Origin checks are only run when the corresponding origin is configured.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// Journal directory (always checked)
	results = append(results, CheckDirectoryAccess("Journal directory", cfg.Paths.JournalDir))

	// Log directory (when configured)
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}

	// Content manifest
	results = append(results, CheckManifest(cfg.Content.ManifestPath))

	// Site origin (when configured; relative asset paths resolve against it)
	if cfg.Content.SiteOrigin != "" {
		results = append(results, CheckOrigin(ctx, "Site origin", cfg.Content.SiteOrigin))
	}

	// Trusted asset hosts
	for _, origin := range cfg.Content.TrustedOrigins {
		results = append(results, CheckOrigin(ctx, "Trusted origin", origin))
	}

	return results
}
