package profile_test

import (
	"testing"

	"prewarm/internal/config"
	"prewarm/internal/profile"
)

func TestClassify(t *testing.T) {
	patterns := config.Default().Profile.CrawlerPatterns

	cases := []struct {
		name      string
		userAgent string
		force     string
		wantBot   bool
		wantLite  bool
	}{
		{
			name:      "desktop browser",
			userAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
			wantLite:  false,
		},
		{
			name:      "googlebot",
			userAgent: "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
			wantBot:   true,
			wantLite:  true,
		},
		{
			name:      "headless chrome",
			userAgent: "Mozilla/5.0 HeadlessChrome/120.0",
			wantBot:   true,
			wantLite:  true,
		},
		{
			name:      "forced lite",
			userAgent: "Mozilla/5.0",
			force:     "lite",
			wantLite:  true,
		},
		{
			name:      "bot stays bot under forced full",
			userAgent: "bingbot/2.0",
			force:     "full",
			wantBot:   true,
			wantLite:  true,
		},
		{
			name:     "empty user agent",
			wantLite: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := profile.Classify(tc.userAgent, patterns, tc.force)
			if p.IsBot != tc.wantBot {
				t.Fatalf("IsBot = %v, want %v", p.IsBot, tc.wantBot)
			}
			if p.Lite() != tc.wantLite {
				t.Fatalf("Lite() = %v, want %v", p.Lite(), tc.wantLite)
			}
		})
	}
}
