package assets_test

import (
	"testing"

	"prewarm/internal/assets"
	"prewarm/internal/config"
	"prewarm/internal/content"
	"prewarm/internal/profile"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Content.SiteOrigin = "https://example.com"
	cfg.Content.TrustedOrigins = []string{"https://cdn.example-storage.com"}
	return &cfg
}

func testManifest() *content.Manifest {
	return &content.Manifest{
		Profile: content.Profile{
			PortraitURL: "/assets/portrait.avif",
			AboutURL:    "/assets/about.webp",
		},
		Brand: content.Brand{
			IconURL: "/assets/icon.svg",
			IconVariants: map[string]string{
				"32":  "/assets/icon-32.png",
				"180": "/assets/icon-180.png",
			},
		},
		Projects: []content.Entry{
			{ImageURL: "/assets/projects/one.webp"},
			{ImageURL: "/assets/projects/two.webp"},
			{ImageURL: "/assets/projects/three.webp"},
			{ImageURL: "/assets/projects/four.webp"},
		},
		Cinema: []content.Entry{
			{ImageURL: "https://cdn.example-storage.com/cinema/reel.webp"},
		},
		Testimonials: []content.Entry{
			{ImageURL: "/assets/people/one.jpg"},
		},
	}
}

func TestDiscoverSeedsBothSets(t *testing.T) {
	cfg := testConfig()
	sets := assets.Discover(testManifest(), profile.Profile{PerfMode: profile.PerfFull}, cfg)

	for _, seed := range cfg.Discovery.StaticSeeds {
		if !contains(sets.Critical, seed) {
			t.Fatalf("critical missing seed %q: %v", seed, sets.Critical)
		}
		if !contains(sets.Extended, seed) {
			t.Fatalf("extended missing seed %q: %v", seed, sets.Extended)
		}
	}
}

func TestDiscoverCapsCriticalSet(t *testing.T) {
	cfg := testConfig()
	cfg.Preload.MaxCriticalAssets = 2

	sets := assets.Discover(testManifest(), profile.Profile{PerfMode: profile.PerfFull}, cfg)
	if len(sets.Critical) != 2 {
		t.Fatalf("expected critical capped at 2, got %d: %v", len(sets.Critical), sets.Critical)
	}
	// Truncated candidates still belong to the extended set.
	if !contains(sets.Extended, "/assets/portrait.avif") {
		t.Fatalf("expected truncated asset in extended set: %v", sets.Extended)
	}
	if len(sets.Extended) <= len(sets.Critical) {
		t.Fatalf("expected extended to exceed critical: %v", sets.Extended)
	}
}

func TestDiscoverTruncatedSeedsStayInExtendedSet(t *testing.T) {
	cfg := testConfig()
	// Cap below the seed count so the tail seeds fall out of critical.
	cfg.Preload.MaxCriticalAssets = 2

	sets := assets.Discover(testManifest(), profile.Profile{PerfMode: profile.PerfFull}, cfg)
	for _, seed := range cfg.Discovery.StaticSeeds {
		if !contains(sets.Extended, seed) {
			t.Fatalf("extended missing seed %q after critical cap: %v", seed, sets.Extended)
		}
	}
}

func TestDiscoverRespectsCategoryLimits(t *testing.T) {
	cfg := testConfig()
	cfg.Preload.MaxCriticalAssets = 50
	cfg.Discovery.MaxProjectImages = 2

	sets := assets.Discover(testManifest(), profile.Profile{PerfMode: profile.PerfFull}, cfg)
	if contains(sets.Critical, "/assets/projects/three.webp") {
		t.Fatalf("expected third project image excluded from critical: %v", sets.Critical)
	}
	if !contains(sets.Extended, "/assets/projects/three.webp") {
		t.Fatalf("expected third project image in extended: %v", sets.Extended)
	}
}

func TestDiscoverDeduplicatesOverlap(t *testing.T) {
	cfg := testConfig()
	manifest := testManifest()
	// Same URL as a static seed and a project image.
	manifest.Projects[0].ImageURL = cfg.Discovery.StaticSeeds[0]

	sets := assets.Discover(manifest, profile.Profile{PerfMode: profile.PerfFull}, cfg)
	if n := count(sets.Extended, cfg.Discovery.StaticSeeds[0]); n != 1 {
		t.Fatalf("expected overlapping URL counted once, got %d", n)
	}
	if n := count(sets.Critical, cfg.Discovery.StaticSeeds[0]); n != 1 {
		t.Fatalf("expected overlapping URL once in critical, got %d", n)
	}
}

func TestDiscoverDropsCrossOrigin(t *testing.T) {
	cfg := testConfig()
	manifest := testManifest()
	manifest.Projects[0].ImageURL = "https://evil.example.net/tracker.png"

	sets := assets.Discover(manifest, profile.Profile{PerfMode: profile.PerfFull}, cfg)
	if contains(sets.Extended, "https://evil.example.net/tracker.png") {
		t.Fatalf("expected cross-origin URL dropped: %v", sets.Extended)
	}
}

func TestDiscoverTrimsWhitespace(t *testing.T) {
	cfg := testConfig()
	manifest := testManifest()
	manifest.Profile.PortraitURL = "  /assets/portrait.avif  "

	sets := assets.Discover(manifest, profile.Profile{PerfMode: profile.PerfFull}, cfg)
	if !contains(sets.Critical, "/assets/portrait.avif") {
		t.Fatalf("expected trimmed URL in critical: %v", sets.Critical)
	}
	if contains(sets.Extended, "  /assets/portrait.avif  ") {
		t.Fatal("expected untrimmed duplicate to be absent")
	}
}

func TestDiscoverLiteCollapsesToStaticSubset(t *testing.T) {
	cfg := testConfig()
	sets := assets.Discover(testManifest(), profile.Profile{PerfMode: profile.PerfLite}, cfg)

	if len(sets.Critical) != 2 {
		t.Fatalf("expected 2 lite assets, got %v", sets.Critical)
	}
	if len(sets.Extended) != len(sets.Critical) {
		t.Fatalf("expected extended == critical for lite profile, got %v", sets.Extended)
	}
	for i := range sets.Critical {
		if sets.Critical[i] != cfg.Discovery.StaticSeeds[i] {
			t.Fatalf("expected lite subset from static seeds, got %v", sets.Critical)
		}
	}
}

func TestDiscoverBotCollapsesRegardlessOfMode(t *testing.T) {
	cfg := testConfig()
	sets := assets.Discover(testManifest(), profile.Profile{PerfMode: profile.PerfFull, IsBot: true}, cfg)
	if len(sets.Extended) != 2 {
		t.Fatalf("expected bot session reduced to static subset, got %v", sets.Extended)
	}
}

func TestFilterAcceptRules(t *testing.T) {
	filter := assets.NewFilter("/assets/", "https://example.com", []string{"https://cdn.example-storage.com"})

	cases := []struct {
		in   string
		want bool
	}{
		{"data:image/png;base64,iVBORw0KGgo=", true},
		{"/assets/hero.avif", true},
		{"/assets/fonts/display.woff2", true}, // under the asset prefix, extension not required
		{"https://cdn.example-storage.com/img/a.webp", true},
		{"https://example.com/media/a.png", true},
		{"https://other.example.org/a.png", false},
		{"relative/path.jpg", true},
		{"relative/path", false},
		{"   ", false},
		{"Just a plain title string", false},
	}

	for _, tc := range cases {
		if _, got := filter.Accept(tc.in); got != tc.want {
			t.Errorf("Accept(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func contains(values []string, want string) bool {
	return count(values, want) > 0
}

func count(values []string, want string) int {
	n := 0
	for _, value := range values {
		if value == want {
			n++
		}
	}
	return n
}
