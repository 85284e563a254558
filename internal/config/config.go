package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	JournalDir string `toml:"journal_dir"`
	LogDir     string `toml:"log_dir"`
}

// Content describes where the site content manifest lives and which asset
// references the discovery filter may accept.
type Content struct {
	ManifestPath   string   `toml:"manifest_path"`
	SiteOrigin     string   `toml:"site_origin"`
	AssetPrefix    string   `toml:"asset_prefix"`
	TrustedOrigins []string `toml:"trusted_origins"`
}

// Preload contains the timing and concurrency budgets for a session.
type Preload struct {
	BlockingDeadlineMs     int `toml:"blocking_deadline_ms"`
	LiteBlockingDeadlineMs int `toml:"lite_blocking_deadline_ms"`
	PerAssetTimeoutMs      int `toml:"per_asset_timeout_ms"`
	MaxParallelWorkers     int `toml:"max_parallel_workers"`
	MaxCriticalAssets      int `toml:"max_critical_assets"`
	TotalDeadlineMs        int `toml:"total_deadline_ms"`
	GraceDelayMs           int `toml:"grace_delay_ms"`
}

// Discovery contains the static seed list and per-category walk limits.
type Discovery struct {
	StaticSeeds          []string `toml:"static_seeds"`
	MaxProjectImages     int      `toml:"max_project_images"`
	MaxCinemaImages      int      `toml:"max_cinema_images"`
	MaxTestimonialImages int      `toml:"max_testimonial_images"`
}

// Profile contains device and crawler classification settings.
type Profile struct {
	CrawlerPatterns []string `toml:"crawler_patterns"`
	ForcePerfMode   string   `toml:"force_perf_mode"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for prewarm.
//
// Configuration sections by subsystem:
//   - Paths: journal and log directories
//   - Content: manifest location and discovery allow-list origins
//   - Preload: deadline, timeout, and concurrency budgets
//   - Discovery: static seeds and per-category walk limits
//   - Profile: crawler patterns and perf-mode override
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Content   Content   `toml:"content"`
	Preload   Preload   `toml:"preload"`
	Discovery Discovery `toml:"discovery"`
	Profile   Profile   `toml:"profile"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/prewarm/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The second return
// value is the resolved path and the third reports whether a file existed
// there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("prewarm.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for session journaling and logs.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.JournalDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// BlockingDeadline returns the blocking phase budget, honoring the reduced
// lite/bot deadline when lite is true.
func (c *Config) BlockingDeadline(lite bool) time.Duration {
	if lite {
		return time.Duration(c.Preload.LiteBlockingDeadlineMs) * time.Millisecond
	}
	return time.Duration(c.Preload.BlockingDeadlineMs) * time.Millisecond
}

// PerAssetTimeout returns the per-asset settlement budget.
func (c *Config) PerAssetTimeout() time.Duration {
	return time.Duration(c.Preload.PerAssetTimeoutMs) * time.Millisecond
}

// TotalDeadline returns the absolute watchdog budget.
func (c *Config) TotalDeadline() time.Duration {
	return time.Duration(c.Preload.TotalDeadlineMs) * time.Millisecond
}

// GraceDelay returns the delay between deadline resolution and the loading
// flag flipping false.
func (c *Config) GraceDelay() time.Duration {
	return time.Duration(c.Preload.GraceDelayMs) * time.Millisecond
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
