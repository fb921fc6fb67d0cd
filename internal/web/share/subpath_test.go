package share

import (
	"testing"

	"github.com/meridianworks/meridian.studio/internal/storage"
)

func TestRouteSubPath(t *testing.T) {
	t.Parallel()

	content := storage.ShareableContent{
		PrimaryUnitKey: "hero-banner",
		SubRoutes: map[string]string{
			"gallery": "project-gallery",
			"contact": "contact-card",
		},
	}

	tests := []struct {
		name string
		rest string
		want Route
	}{
		{"primary", "", Route{UnitKey: "hero-banner"}},
		{"primary trailing slash", "/", Route{UnitKey: "hero-banner"}},
		{"known sub", "gallery", Route{UnitKey: "project-gallery", Sub: "gallery"}},
		{"sub trailing slash", "gallery/", Route{UnitKey: "project-gallery", Sub: "gallery"}},
		{"other sub", "contact", Route{UnitKey: "contact-card", Sub: "contact"}},
		{"unknown sub", "pricing", Route{NotFound: true}},
		{"nested path", "gallery/photos", Route{NotFound: true}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := RouteSubPath(content, tc.rest); got != tc.want {
				t.Fatalf("RouteSubPath(%q) = %+v, want %+v", tc.rest, got, tc.want)
			}
		})
	}
}

func TestRouteSubPathEmptyRouteValue(t *testing.T) {
	t.Parallel()

	content := storage.ShareableContent{
		PrimaryUnitKey: "hero-banner",
		SubRoutes:      map[string]string{"broken": ""},
	}
	if got := RouteSubPath(content, "broken"); !got.NotFound {
		t.Fatalf("RouteSubPath(broken) = %+v, want NotFound", got)
	}
}

func TestRouteSubPathHubWithoutPrimaryUnit(t *testing.T) {
	t.Parallel()

	content := storage.ShareableContent{
		SubRoutes: map[string]string{"gallery": "project-gallery"},
	}
	if got := RouteSubPath(content, ""); !got.Hub {
		t.Fatalf("RouteSubPath(\"\") = %+v, want Hub", got)
	}
	if got := RouteSubPath(content, "gallery"); got.UnitKey != "project-gallery" {
		t.Fatalf("RouteSubPath(gallery) = %+v, want project-gallery", got)
	}
}

func TestRouteSubPathNoSubRoutes(t *testing.T) {
	t.Parallel()

	content := storage.ShareableContent{PrimaryUnitKey: "hero-banner"}
	if got := RouteSubPath(content, "anything"); !got.NotFound {
		t.Fatalf("RouteSubPath = %+v, want NotFound", got)
	}
	if got := RouteSubPath(content, ""); got.UnitKey != "hero-banner" {
		t.Fatalf("RouteSubPath = %+v, want primary", got)
	}
}
