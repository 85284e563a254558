package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"prewarm/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantJournal := filepath.Join(tempHome, ".local", "share", "prewarm", "journal")
	if cfg.Paths.JournalDir != wantJournal {
		t.Fatalf("unexpected journal dir: got %q want %q", cfg.Paths.JournalDir, wantJournal)
	}
	if cfg.Preload.BlockingDeadlineMs != 5000 {
		t.Fatalf("unexpected blocking deadline: %d", cfg.Preload.BlockingDeadlineMs)
	}
	if cfg.Preload.LiteBlockingDeadlineMs != 900 {
		t.Fatalf("unexpected lite blocking deadline: %d", cfg.Preload.LiteBlockingDeadlineMs)
	}
	if cfg.Preload.MaxCriticalAssets != 10 {
		t.Fatalf("unexpected critical cap: %d", cfg.Preload.MaxCriticalAssets)
	}
	if cfg.Content.AssetPrefix != "/assets/" {
		t.Fatalf("unexpected asset prefix: %q", cfg.Content.AssetPrefix)
	}
	if len(cfg.Discovery.StaticSeeds) == 0 {
		t.Fatal("expected default static seeds")
	}
	if len(cfg.Profile.CrawlerPatterns) == 0 {
		t.Fatal("expected default crawler patterns")
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("unexpected log format: %q", cfg.Logging.Format)
	}
}

func TestLoadParsesFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[preload]
blocking_deadline_ms = 1200
max_parallel_workers = 2

[content]
site_origin = "https://example.com/"
trusted_origins = ["https://cdn.example-storage.com/"]

[profile]
crawler_patterns = [" GoogleBot ", ""]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if cfg.Preload.BlockingDeadlineMs != 1200 {
		t.Fatalf("override not applied: %d", cfg.Preload.BlockingDeadlineMs)
	}
	if cfg.Preload.MaxParallelWorkers != 2 {
		t.Fatalf("override not applied: %d", cfg.Preload.MaxParallelWorkers)
	}
	if cfg.Content.SiteOrigin != "https://example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Content.SiteOrigin)
	}
	if got := cfg.Content.TrustedOrigins; len(got) != 1 || got[0] != "https://cdn.example-storage.com" {
		t.Fatalf("unexpected trusted origins: %v", got)
	}
	if got := cfg.Profile.CrawlerPatterns; len(got) != 1 || got[0] != "googlebot" {
		t.Fatalf("expected patterns lowercased and trimmed, got %v", got)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "zero workers",
			mutate: func(c *config.Config) { c.Preload.MaxParallelWorkers = 0 },
			want:   "max_parallel_workers",
		},
		{
			name:   "total below blocking",
			mutate: func(c *config.Config) { c.Preload.TotalDeadlineMs = c.Preload.BlockingDeadlineMs },
			want:   "total_deadline_ms",
		},
		{
			name:   "relative asset prefix",
			mutate: func(c *config.Config) { c.Content.AssetPrefix = "assets/" },
			want:   "asset_prefix",
		},
		{
			name:   "bad trusted origin",
			mutate: func(c *config.Config) { c.Content.TrustedOrigins = []string{"ftp://cdn.example.com"} },
			want:   "trusted_origins",
		},
		{
			name:   "bad perf mode",
			mutate: func(c *config.Config) { c.Profile.ForcePerfMode = "turbo" },
			want:   "force_perf_mode",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSampleWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(content), "[preload]") {
		t.Fatal("expected sample to contain preload section")
	}
}
