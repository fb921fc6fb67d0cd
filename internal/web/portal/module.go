package portal

import (
	"net/http"
	"sort"

	"github.com/meridianworks/meridian.studio/internal/storage"
	"github.com/meridianworks/meridian.studio/internal/web/module"
	apperrors "github.com/meridianworks/meridian.studio/internal/web/platform/errors"
	"github.com/meridianworks/meridian.studio/internal/web/platform/httpx"
	"github.com/meridianworks/meridian.studio/internal/web/platform/pagerender"
	"github.com/meridianworks/meridian.studio/internal/web/platform/webctx"
	"github.com/meridianworks/meridian.studio/internal/web/routepath"
	"github.com/meridianworks/meridian.studio/internal/web/templates"
	"github.com/meridianworks/meridian.studio/internal/web/units"
)

// sections maps portal sub-pages to the units that render them.
var sections = map[string]string{
	"files":   "document-list",
	"contact": "contact-card",
}

// Option configures a portal module.
type Option func(*Module)

// WithGuard sets the tenant ownership guard.
func WithGuard(g *Guard) Option {
	return func(m *Module) { m.guard = g }
}

// WithUnits sets the unit registry used to render portal sections.
func WithUnits(u *units.Registry) Option {
	return func(m *Module) { m.units = u }
}

// Module serves the authenticated client portal.
type Module struct {
	guard *Guard
	units *units.Registry
}

// New returns a portal module configured by the given options.
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
func (Module) ID() string { return "portal" }

// Healthy reports whether the module can authorize tenants.
func (m Module) Healthy() bool { return m.guard != nil }

// Mount wires portal route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+routepath.Portal, m.handleHome)
	mux.HandleFunc("GET "+routepath.PortalPrefix+"{$}", m.handleHome)
	mux.HandleFunc("GET "+routepath.PortalPattern, m.handleTenant)
	mux.HandleFunc("GET "+routepath.PortalRestPattern, m.handleTenant)
	return module.Mount{Prefix: routepath.PortalPrefix, Handler: mux}, nil
}

// handleHome sends the viewer to their own tenant. Admins have no home
// tenant and are sent to the console instead.
func (m Module) handleHome(w http.ResponseWriter, r *http.Request) {
	sess := webctx.SessionFrom(r.Context())
	if sess == nil || m.guard == nil {
		httpx.WriteError(w, apperrors.E(apperrors.KindUnauthorized, "sign in to view the portal"))
		return
	}
	if slug, ok := m.guard.HomeSlug(r.Context(), sess.UserID); ok {
		httpx.WriteRedirect(w, r, routepath.PortalTenant(slug))
		return
	}
	profile, err := m.guard.Profiles.Load(r.Context(), sess.UserID)
	if err == nil && profile.IsActive && profile.Role == storage.RoleAdmin {
		httpx.WriteRedirect(w, r, routepath.Admin)
		return
	}
	httpx.WriteError(w, apperrors.E(apperrors.KindForbidden, "no portal tenant for this account"))
}

func (m Module) handleTenant(w http.ResponseWriter, r *http.Request) {
	sess := webctx.SessionFrom(r.Context())
	if sess == nil || m.guard == nil {
		httpx.WriteError(w, apperrors.E(apperrors.KindUnauthorized, "sign in to view the portal"))
		return
	}
	slug := r.PathValue("slug")
	profile, err := m.guard.Authorize(r.Context(), sess.UserID, slug)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	ctx := webctx.WithProfile(r.Context(), profile)
	r = r.WithContext(ctx)

	rest := r.PathValue("rest")
	if rest == "" {
		m.writeDashboard(w, r, slug)
		return
	}
	unitKey, ok := sections[rest]
	if !ok {
		http.NotFound(w, r)
		return
	}
	_ = pagerender.Write(w, r, pagerender.Page{
		Title: slug + " - " + rest,
		Body: m.units.Render(unitKey, units.Context{
			Title:       rest,
			Description: "Tenant " + slug,
		}),
	})
}

func (m Module) writeDashboard(w http.ResponseWriter, r *http.Request, slug string) {
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)
	links := make([]templates.NavLink, 0, len(names))
	for _, name := range names {
		links = append(links, templates.NavLink{
			Label: name,
			Href:  routepath.PortalTenant(slug) + "/" + name,
		})
	}
	_ = pagerender.Write(w, r, pagerender.Page{
		Title: slug,
		Body: templates.Section("",
			templates.Heading(slug, "Client portal"),
			templates.LinkList(links),
		),
	})
}
