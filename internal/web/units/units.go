// Package units holds the registry of renderable content units.
//
// A unit is a reusable page block addressed by a stable key. Share
// records and playground pages reference units by key, so an unknown
// key must degrade to the fallback unit rather than fail the page.
package units

import (
	"sort"

	"github.com/a-h/templ"

	"github.com/meridianworks/meridian.studio/internal/web/templates"
)

// FallbackKey is the unit served when a requested key is not registered.
const FallbackKey = "fallback"

// Context carries the data a unit renders with.
type Context struct {
	// Title and Description come from the share record or page.
	Title       string
	Description string
}

// Unit is one registered content unit.
type Unit struct {
	Key   string
	Name  string
	Build func(Context) templ.Component
}

// Registry resolves unit keys to units. The zero value is not usable;
// construct with NewRegistry.
type Registry struct {
	units map[string]Unit
}

// NewRegistry returns a registry seeded with the fallback unit.
func NewRegistry() *Registry {
	r := &Registry{units: make(map[string]Unit)}
	r.Register(Unit{
		Key:  FallbackKey,
		Name: "Fallback",
		Build: func(c Context) templ.Component {
			return templates.Section("",
				templates.Heading(c.Title, c.Description),
				templates.Paragraph("This content is not available right now."),
			)
		},
	})
	return r
}

// Register adds or replaces a unit. Units without a key or builder are
// ignored.
func (r *Registry) Register(u Unit) {
	if u.Key == "" || u.Build == nil {
		return
	}
	r.units[u.Key] = u
}

// Get returns the unit for key when registered.
func (r *Registry) Get(key string) (Unit, bool) {
	u, ok := r.units[key]
	return u, ok
}

// Render builds the component for key, falling back to the fallback
// unit when the key is unknown.
func (r *Registry) Render(key string, c Context) templ.Component {
	if u, ok := r.units[key]; ok {
		return u.Build(c)
	}
	return r.units[FallbackKey].Build(c)
}

// Keys returns the registered unit keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.units))
	for key := range r.units {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
