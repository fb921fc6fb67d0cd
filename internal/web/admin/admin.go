// Package admin serves the staff console on the canonical brand.
//
// The request gate already guarantees an active admin profile for every
// route here except the console's own sign-in page.
package admin

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/meridianworks/meridian.studio/internal/platform/random"
	"github.com/meridianworks/meridian.studio/internal/storage"
	authmod "github.com/meridianworks/meridian.studio/internal/web/auth"
	"github.com/meridianworks/meridian.studio/internal/web/module"
	apperrors "github.com/meridianworks/meridian.studio/internal/web/platform/errors"
	"github.com/meridianworks/meridian.studio/internal/web/platform/httpx"
	"github.com/meridianworks/meridian.studio/internal/web/platform/requestmeta"
	"github.com/meridianworks/meridian.studio/internal/web/routepath"
	"github.com/meridianworks/meridian.studio/internal/web/session"
	"github.com/meridianworks/meridian.studio/internal/web/units"
)

// Option configures an admin module.
type Option func(*Module)

// WithShares sets the share record store.
func WithShares(s storage.ShareStore) Option {
	return func(m *Module) { m.shares = s }
}

// WithSessions sets the session provider backing the console sign-in.
func WithSessions(p *session.Provider) Option {
	return func(m *Module) { m.sessions = p }
}

// WithUnits sets the unit registry listed in the create form.
func WithUnits(u *units.Registry) Option {
	return func(m *Module) { m.units = u }
}

// WithSchemePolicy sets the request scheme policy for origin checks.
func WithSchemePolicy(p requestmeta.SchemePolicy) Option {
	return func(m *Module) { m.policy = p }
}

// WithClock overrides the mutation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(m *Module) { m.now = now }
}

// Module serves share management and the admin sign-in page.
type Module struct {
	shares   storage.ShareStore
	sessions *session.Provider
	units    *units.Registry
	policy   requestmeta.SchemePolicy
	now      func() time.Time
}

// New returns an admin module configured by the given options.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	if m.units == nil {
		m.units = units.DefaultRegistry()
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "admin" }

// Healthy reports whether the console can reach its share store.
func (m Module) Healthy() bool { return m.shares != nil }

// Mount wires admin route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+routepath.Admin, m.handleConsole)
	mux.HandleFunc("GET "+routepath.AdminPrefix+"{$}", m.handleConsole)
	mux.HandleFunc("GET "+routepath.AdminLogin, m.handleLoginPage)
	mux.HandleFunc("POST "+routepath.AdminLogin, m.handleLoginSubmit)
	mux.HandleFunc("POST "+routepath.AdminShareCreatePattern, m.handleShareCreate)
	mux.HandleFunc("POST "+routepath.AdminShareRevokePattern, m.handleShareRevoke)
	mux.HandleFunc("POST "+routepath.AdminShareRestorePattern, m.handleShareRestore)
	return module.Mount{Prefix: routepath.AdminPrefix, Handler: mux}, nil
}

func (m Module) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	authmod.HandleLoginPage(w, r, routepath.AdminLogin, "Admin sign-in")
}

func (m Module) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	authmod.HandleSubmit(w, r, m.sessions, routepath.AdminLogin, "Admin sign-in", routepath.Admin)
}

// requireSameOrigin guards share mutations against cross-site posts.
func (m Module) requireSameOrigin(w http.ResponseWriter, r *http.Request) bool {
	if requestmeta.HasSameOriginProof(r, m.policy) {
		return true
	}
	httpx.WriteError(w, apperrors.E(apperrors.KindForbidden, "cross-origin request refused"))
	return false
}

func (m Module) handleShareCreate(w http.ResponseWriter, r *http.Request) {
	if !m.requireSameOrigin(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		httpx.WriteError(w, apperrors.E(apperrors.KindInvalidInput, "the form could not be read"))
		return
	}
	title := strings.TrimSpace(r.PostFormValue("title"))
	primaryUnit := strings.TrimSpace(r.PostFormValue("primary_unit"))
	if title == "" || primaryUnit == "" {
		httpx.WriteError(w, apperrors.E(apperrors.KindInvalidInput, "title and primary unit are required"))
		return
	}
	if _, ok := m.units.Get(primaryUnit); !ok {
		httpx.WriteError(w, apperrors.E(apperrors.KindInvalidInput, "unknown primary unit"))
		return
	}
	subRoutes, err := parseSubRoutes(r.PostFormValue("sub_routes"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	token, err := random.NewShareToken()
	if err != nil {
		log.Printf("share token generation failed err=%v", err)
		httpx.WriteError(w, apperrors.E(apperrors.KindUnknown, "could not create the share"))
		return
	}
	now := m.now()
	content := storage.ShareableContent{
		ID:             random.NewID(),
		Token:          token,
		Title:          title,
		Description:    strings.TrimSpace(r.PostFormValue("description")),
		Visibility:     storage.VisibilityActive,
		PrimaryUnitKey: primaryUnit,
		SubRoutes:      subRoutes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := m.shares.PutShareableContent(r.Context(), content); err != nil {
		log.Printf("share create failed id=%s err=%v", content.ID, err)
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteRedirect(w, r, routepath.Admin)
}

func (m Module) handleShareRevoke(w http.ResponseWriter, r *http.Request) {
	m.setVisibility(w, r, storage.VisibilityRevoked)
}

func (m Module) handleShareRestore(w http.ResponseWriter, r *http.Request) {
	m.setVisibility(w, r, storage.VisibilityActive)
}

func (m Module) setVisibility(w http.ResponseWriter, r *http.Request, visibility storage.ShareVisibility) {
	if !m.requireSameOrigin(w, r) {
		return
	}
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		httpx.WriteError(w, apperrors.E(apperrors.KindInvalidInput, "share id is required"))
		return
	}
	if err := m.shares.SetShareVisibility(r.Context(), id, visibility, m.now()); err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteRedirect(w, r, routepath.Admin)
}

// parseSubRoutes reads "name=unit" lines into a sub-route map.
func parseSubRoutes(raw string) (map[string]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	routes := make(map[string]string)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, unitKey, ok := strings.Cut(line, "=")
		name = strings.TrimSpace(name)
		unitKey = strings.TrimSpace(unitKey)
		if !ok || name == "" || unitKey == "" {
			return nil, apperrors.E(apperrors.KindInvalidInput, "sub-routes must be name=unit lines")
		}
		routes[name] = unitKey
	}
	return routes, nil
}
