// Package public serves the brand marketing pages.
package public

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/meridianworks/meridian.studio/internal/web/brand"
	"github.com/meridianworks/meridian.studio/internal/web/module"
	"github.com/meridianworks/meridian.studio/internal/web/platform/pagerender"
	"github.com/meridianworks/meridian.studio/internal/web/platform/webctx"
	"github.com/meridianworks/meridian.studio/internal/web/routepath"
	"github.com/meridianworks/meridian.studio/internal/web/templates"
)

// page is one marketing page for every brand.
type page struct {
	title string
	body  func(id brand.Identity) templ.Component
}

var pages = map[string]page{
	"about": {
		title: "About",
		body: func(id brand.Identity) templ.Component {
			return templates.Section("",
				templates.Heading("About "+id.DisplayName, ""),
				templates.Paragraph(id.DisplayName+" is a small design and engineering studio."),
			)
		},
	},
	"services": {
		title: "Services",
		body: func(id brand.Identity) templ.Component {
			return templates.Section("",
				templates.Heading("Services", ""),
				templates.Paragraph("Product design, web engineering, and ongoing support."),
			)
		},
	},
	"contact": {
		title: "Contact",
		body: func(id brand.Identity) templ.Component {
			return templates.Section("",
				templates.Heading("Contact", ""),
				templates.LinkList([]templates.NavLink{
					{Label: "hello@" + id.CanonicalHost, Href: "mailto:hello@" + id.CanonicalHost},
				}),
			)
		},
	},
}

// Module serves the marketing surface at the site root.
type Module struct{}

// New returns the marketing module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "public" }

// Mount wires marketing route handlers. The module owns the root
// prefix, so it also serves the site-wide 404 page.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", m.handleHome)
	mux.HandleFunc("GET /{page}", m.handlePage)
	mux.HandleFunc("/", m.handleNotFound)
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}

func (m Module) handleHome(w http.ResponseWriter, r *http.Request) {
	id := brandFrom(r)
	_ = pagerender.Write(w, r, pagerender.Page{
		Title:       id.DisplayName,
		Description: id.DisplayName + " - design and engineering studio",
		Body: templates.Section("",
			templates.Heading(id.DisplayName, "Design and engineering for small teams."),
			templates.LinkList([]templates.NavLink{
				{Label: "About", Href: "/about"},
				{Label: "Services", Href: "/services"},
				{Label: "Contact", Href: "/contact"},
			}),
		),
	})
}

func (m Module) handlePage(w http.ResponseWriter, r *http.Request) {
	entry, ok := pages[r.PathValue("page")]
	if !ok {
		m.handleNotFound(w, r)
		return
	}
	id := brandFrom(r)
	_ = pagerender.Write(w, r, pagerender.Page{
		Title: entry.title,
		Body:  entry.body(id),
	})
}

func (m Module) handleNotFound(w http.ResponseWriter, r *http.Request) {
	_ = pagerender.Write(w, r, pagerender.Page{
		Title:      "Not found",
		StatusCode: http.StatusNotFound,
		Body:       templates.Paragraph("There is no page at this address."),
	})
}

func brandFrom(r *http.Request) brand.Identity {
	if g, ok := webctx.GateFrom(r.Context()); ok {
		return g.Brand
	}
	return brand.DefaultRegistry().Default()
}
