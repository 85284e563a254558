// Package content models the site content manifest the preload pipeline
// scans for image references.
//
// The manifest mirrors the CMS export: a profile block, brand iconography
// with size variants, and ordered portfolio, cinema, and testimonial
// entries. Every image field is optional; discovery tolerates partial
// manifests.
package content

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Profile holds the primary portrait and about-page imagery.
type Profile struct {
	PortraitURL string `json:"portraitUrl"`
	AboutURL    string `json:"aboutUrl"`
}

// Brand holds the site icon and its size variants keyed by variant name
// (e.g. "32", "180", "512").
type Brand struct {
	IconURL      string            `json:"iconUrl"`
	IconVariants map[string]string `json:"iconVariants"`
}

// Entry is a single portfolio, cinema, or testimonial item.
type Entry struct {
	Title    string `json:"title,omitempty"`
	Author   string `json:"author,omitempty"`
	ImageURL string `json:"imageUrl"`
}

// Manifest is the full content tree handed to asset discovery.
type Manifest struct {
	Profile      Profile `json:"profile"`
	Brand        Brand   `json:"brand"`
	Projects     []Entry `json:"projects"`
	Cinema       []Entry `json:"cinema"`
	Testimonials []Entry `json:"testimonials"`
}

// Load reads and decodes a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &manifest, nil
}

// ImageStrings returns every string field in the manifest that may carry an
// image reference, in a stable walk order. Discovery applies its allow-list
// filter on top of this.
func (m *Manifest) ImageStrings() []string {
	if m == nil {
		return nil
	}
	values := make([]string, 0, 8+len(m.Brand.IconVariants)+len(m.Projects)+len(m.Cinema)+len(m.Testimonials))
	values = append(values, m.Profile.PortraitURL, m.Profile.AboutURL, m.Brand.IconURL)
	for _, name := range sortedKeys(m.Brand.IconVariants) {
		values = append(values, m.Brand.IconVariants[name])
	}
	for _, entry := range m.Projects {
		values = append(values, entry.ImageURL)
	}
	for _, entry := range m.Cinema {
		values = append(values, entry.ImageURL)
	}
	for _, entry := range m.Testimonials {
		values = append(values, entry.ImageURL)
	}
	return values
}

func sortedKeys(variants map[string]string) []string {
	if len(variants) == 0 {
		return nil
	}
	keys := make([]string, 0, len(variants))
	for key := range variants {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
