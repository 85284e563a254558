package testsupport

import (
	"fmt"

	"prewarm/internal/content"
)

// NewManifest builds a manifest with the requested number of project
// images plus a portrait, brand icon, and one testimonial.
func NewManifest(projects int) *content.Manifest {
	manifest := &content.Manifest{
		Profile: content.Profile{
			PortraitURL: "/assets/portrait.avif",
		},
		Brand: content.Brand{
			IconURL: "/assets/icon.svg",
		},
		Testimonials: []content.Entry{
			{Author: "A. Reviewer", ImageURL: "/assets/people/reviewer.jpg"},
		},
	}
	for i := 0; i < projects; i++ {
		manifest.Projects = append(manifest.Projects, content.Entry{
			Title:    fmt.Sprintf("Project %d", i+1),
			ImageURL: fmt.Sprintf("/assets/projects/p%d.webp", i+1),
		})
	}
	return manifest
}
