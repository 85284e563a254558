package content_test

import (
	"os"
	"path/filepath"
	"testing"

	"prewarm/internal/content"
)

func TestLoadParsesManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.json")
	data := `{
  "profile": {"portraitUrl": "/assets/portrait.avif", "aboutUrl": "/assets/about.webp"},
  "brand": {"iconUrl": "/assets/icon.svg", "iconVariants": {"32": "/assets/icon-32.png", "180": "/assets/icon-180.png"}},
  "projects": [{"title": "Atrium", "imageUrl": "/assets/projects/atrium.webp"}],
  "cinema": [{"title": "Night Reel", "imageUrl": "/assets/cinema/night.webp"}],
  "testimonials": [{"author": "J. Doe", "imageUrl": "/assets/people/jdoe.jpg"}]
}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	manifest, err := content.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if manifest.Profile.PortraitURL != "/assets/portrait.avif" {
		t.Fatalf("unexpected portrait: %q", manifest.Profile.PortraitURL)
	}
	if len(manifest.Brand.IconVariants) != 2 {
		t.Fatalf("unexpected icon variants: %v", manifest.Brand.IconVariants)
	}
	if len(manifest.Projects) != 1 || manifest.Projects[0].ImageURL != "/assets/projects/atrium.webp" {
		t.Fatalf("unexpected projects: %v", manifest.Projects)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := content.Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing manifest")
	}
}

func TestImageStringsWalkOrderIsStable(t *testing.T) {
	manifest := &content.Manifest{
		Profile: content.Profile{PortraitURL: "a", AboutURL: "b"},
		Brand: content.Brand{
			IconURL:      "c",
			IconVariants: map[string]string{"512": "f", "180": "e", "32": "d"},
		},
		Projects:     []content.Entry{{ImageURL: "g"}},
		Cinema:       []content.Entry{{ImageURL: "h"}},
		Testimonials: []content.Entry{{ImageURL: "i"}},
	}

	want := []string{"a", "b", "c", "e", "d", "f", "g", "h", "i"}
	got := manifest.ImageStrings()
	if len(got) != len(want) {
		t.Fatalf("unexpected walk length: got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("walk order mismatch at %d: got %v want %v", i, got, want)
		}
	}
}

func TestImageStringsNilManifest(t *testing.T) {
	var manifest *content.Manifest
	if got := manifest.ImageStrings(); got != nil {
		t.Fatalf("expected nil for nil manifest, got %v", got)
	}
}
