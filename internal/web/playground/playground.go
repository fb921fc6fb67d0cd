// Package playground serves the component demo surface on the
// Fieldnotes brand. Every registered unit renders with sample data so
// designers can review blocks before they ship on a share page.
package playground

import (
	"net/http"

	"github.com/meridianworks/meridian.studio/internal/web/module"
	"github.com/meridianworks/meridian.studio/internal/web/platform/pagerender"
	"github.com/meridianworks/meridian.studio/internal/web/routepath"
	"github.com/meridianworks/meridian.studio/internal/web/templates"
	"github.com/meridianworks/meridian.studio/internal/web/units"
)

// Option configures a playground module.
type Option func(*Module)

// WithUnits sets the unit registry on display.
func WithUnits(u *units.Registry) Option {
	return func(m *Module) { m.units = u }
}

// Module serves the unit demo pages.
type Module struct {
	units *units.Registry
}

// New returns a playground module configured by the given options.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	if m.units == nil {
		m.units = units.DefaultRegistry()
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "playground" }

// Mount wires playground route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+routepath.Playground, m.handleIndex)
	mux.HandleFunc("GET "+routepath.PlaygroundPrefix+"{$}", m.handleIndex)
	mux.HandleFunc("GET "+routepath.PlaygroundUnitPattern, m.handleUnit)
	return module.Mount{Prefix: routepath.PlaygroundPrefix, Handler: mux}, nil
}

func (m Module) handleIndex(w http.ResponseWriter, r *http.Request) {
	keys := m.units.Keys()
	links := make([]templates.NavLink, 0, len(keys))
	for _, key := range keys {
		links = append(links, templates.NavLink{Label: key, Href: routepath.PlaygroundUnit(key)})
	}
	_ = pagerender.Write(w, r, pagerender.Page{
		Title: "Playground",
		Body: templates.Section("",
			templates.Heading("Playground", "Every registered unit, rendered with sample data."),
			templates.LinkList(links),
		),
	})
}

func (m Module) handleUnit(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("unit")
	if _, ok := m.units.Get(key); !ok {
		http.NotFound(w, r)
		return
	}
	_ = pagerender.Write(w, r, pagerender.Page{
		Title: key,
		Body: templates.Section("",
			templates.Heading(key, ""),
			m.units.Render(key, units.Context{
				Title:       "Sample title",
				Description: "Sample description for the " + key + " unit.",
			}),
		),
	})
}
