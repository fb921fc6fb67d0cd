package share

import (
	"net/http"
	"sort"

	"github.com/meridianworks/meridian.studio/internal/storage"
	"github.com/meridianworks/meridian.studio/internal/web/module"
	apperrors "github.com/meridianworks/meridian.studio/internal/web/platform/errors"
	"github.com/meridianworks/meridian.studio/internal/web/platform/httpx"
	"github.com/meridianworks/meridian.studio/internal/web/platform/pagerender"
	"github.com/meridianworks/meridian.studio/internal/web/routepath"
	"github.com/meridianworks/meridian.studio/internal/web/templates"
	"github.com/meridianworks/meridian.studio/internal/web/units"
)

// Option configures a share module.
type Option func(*Module)

// WithResolver sets the share token resolver.
func WithResolver(r *Resolver) Option {
	return func(m *Module) { m.resolver = r }
}

// WithUnits sets the unit registry used to render share pages.
func WithUnits(u *units.Registry) Option {
	return func(m *Module) { m.units = u }
}

// Module serves token-scoped public share pages.
type Module struct {
	resolver *Resolver
	units    *units.Registry
}

// New returns a share module configured by the given options.
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
func (Module) ID() string { return "share" }

// Healthy reports whether the module can resolve tokens.
func (m Module) Healthy() bool { return m.resolver != nil && m.resolver.Store != nil }

// Mount wires share route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+routepath.SharePattern, m.handlePage)
	mux.HandleFunc("GET "+routepath.ShareRestPattern, m.handlePage)
	return module.Mount{Prefix: routepath.SharePrefix, Handler: mux}, nil
}

func (m Module) handlePage(w http.ResponseWriter, r *http.Request) {
	// Share pages reflect revocation on the next request, so no
	// intermediary may hold onto one.
	w.Header().Set("Cache-Control", "no-store")
	if m.resolver == nil {
		httpx.WriteError(w, apperrors.E(apperrors.KindUnavailable, "share resolution is unavailable"))
		return
	}
	content, err := m.resolver.Resolve(r.Context(), r.PathValue("token"))
	if err != nil {
		m.writeFailure(w, r, err)
		return
	}

	route := RouteSubPath(content, r.PathValue("rest"))
	if route.NotFound {
		m.writeNotFound(w, r)
		return
	}
	if route.Hub {
		m.writeHub(w, r, content)
		return
	}
	title := content.Title
	if route.Sub != "" {
		title = content.Title + " - " + route.Sub
	}
	_ = pagerender.Write(w, r, pagerender.Page{
		Title:       title,
		Description: content.Description,
		Body: m.units.Render(route.UnitKey, units.Context{
			Title:       content.Title,
			Description: content.Description,
		}),
	})
}

// writeHub lists a record's sub-routes when it has no primary unit.
func (m Module) writeHub(w http.ResponseWriter, r *http.Request, content storage.ShareableContent) {
	names := make([]string, 0, len(content.SubRoutes))
	for name := range content.SubRoutes {
		names = append(names, name)
	}
	sort.Strings(names)
	links := make([]templates.NavLink, 0, len(names))
	for _, name := range names {
		links = append(links, templates.NavLink{
			Label: name,
			Href:  routepath.ShareSub(content.Token, name),
		})
	}
	_ = pagerender.Write(w, r, pagerender.Page{
		Title:       content.Title,
		Description: content.Description,
		Body: templates.Section("",
			templates.Heading(content.Title, content.Description),
			templates.LinkList(links),
		),
	})
}

func (m Module) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	if apperrors.KindOf(err) == apperrors.KindNotFound {
		m.writeNotFound(w, r)
		return
	}
	httpx.WriteError(w, err)
}

func (m Module) writeNotFound(w http.ResponseWriter, r *http.Request) {
	_ = pagerender.Write(w, r, pagerender.Page{
		Title:      "Not found",
		StatusCode: http.StatusNotFound,
		Body:       templates.Paragraph("This link is no longer available."),
	})
}
