package config

const (
	defaultJournalDir             = "~/.local/share/prewarm/journal"
	defaultLogDir                 = "~/.local/share/prewarm/logs"
	defaultManifestPath           = "content.json"
	defaultAssetPrefix            = "/assets/"
	defaultBlockingDeadlineMs     = 5000
	defaultLiteBlockingDeadlineMs = 900
	defaultPerAssetTimeoutMs      = 8000
	defaultMaxParallelWorkers     = 4
	defaultMaxCriticalAssets      = 10
	defaultTotalDeadlineMs        = 15000
	defaultGraceDelayMs           = 250
	defaultMaxProjectImages       = 3
	defaultMaxCinemaImages        = 3
	defaultMaxTestimonialImages   = 2
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

func defaultStaticSeeds() []string {
	return []string{
		"/assets/hero-backdrop.avif",
		"/assets/brand-mark.svg",
		"/assets/nav-texture.webp",
		"/assets/grain-overlay.png",
	}
}

func defaultCrawlerPatterns() []string {
	return []string{
		"googlebot",
		"bingbot",
		"duckduckbot",
		"baiduspider",
		"yandex",
		"slurp",
		"crawler",
		"spider",
		"headless",
		"lighthouse",
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			JournalDir: defaultJournalDir,
			LogDir:     defaultLogDir,
		},
		Content: Content{
			ManifestPath: defaultManifestPath,
			AssetPrefix:  defaultAssetPrefix,
		},
		Preload: Preload{
			BlockingDeadlineMs:     defaultBlockingDeadlineMs,
			LiteBlockingDeadlineMs: defaultLiteBlockingDeadlineMs,
			PerAssetTimeoutMs:      defaultPerAssetTimeoutMs,
			MaxParallelWorkers:     defaultMaxParallelWorkers,
			MaxCriticalAssets:      defaultMaxCriticalAssets,
			TotalDeadlineMs:        defaultTotalDeadlineMs,
			GraceDelayMs:           defaultGraceDelayMs,
		},
		Discovery: Discovery{
			StaticSeeds:          defaultStaticSeeds(),
			MaxProjectImages:     defaultMaxProjectImages,
			MaxCinemaImages:      defaultMaxCinemaImages,
			MaxTestimonialImages: defaultMaxTestimonialImages,
		},
		Profile: Profile{
			CrawlerPatterns: defaultCrawlerPatterns(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
