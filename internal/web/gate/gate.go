// Package gate evaluates every request before feature routing.
//
// The gate classifies the path, resolves the brand for the host, checks
// that the brand serves the route family, resolves the session, and
// enforces the family's authentication level. The evaluation is stashed
// on the request context so downstream handlers never re-derive it.
package gate

import (
	"context"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/meridianworks/meridian.studio/internal/identity"
	"github.com/meridianworks/meridian.studio/internal/storage"
	"github.com/meridianworks/meridian.studio/internal/web/access"
	"github.com/meridianworks/meridian.studio/internal/web/brand"
	"github.com/meridianworks/meridian.studio/internal/web/platform/httpx"
	"github.com/meridianworks/meridian.studio/internal/web/platform/metrics"
	"github.com/meridianworks/meridian.studio/internal/web/platform/webctx"
	"github.com/meridianworks/meridian.studio/internal/web/routepath"
)

const tracerName = "meridian.studio/web/gate"

// Decision labels recorded on the gate metrics counter.
const (
	decisionAllow         = "allow"
	decisionRedirectLogin = "redirect_login"
	decisionRedirectBrand = "redirect_brand"
	decisionRedirectHome  = "redirect_home"
	decisionForbidden     = "forbidden"
	decisionNotFound      = "not_found"
)

// SessionResolver resolves the signed-in user for a request, rotating
// or clearing session cookies on w as needed.
type SessionResolver interface {
	Resolve(w http.ResponseWriter, r *http.Request) *identity.Session
}

// ProfileLoader loads the portal profile for an authenticated user.
type ProfileLoader interface {
	Load(ctx context.Context, authUserID string) (*storage.PortalProfile, error)
}

// Gate is the request evaluation middleware.
type Gate struct {
	Brands   *brand.Registry
	Sessions SessionResolver
	Profiles ProfileLoader
	Metrics  *metrics.Registry
}

// Wrap returns next guarded by the gate.
func (g *Gate) Wrap(next http.Handler) http.Handler {
	if next == nil {
		next = http.NotFoundHandler()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A request already evaluated passes through unchanged, so
		// nesting the gate is harmless.
		if _, ok := webctx.GateFrom(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx, span := otel.Tracer(tracerName).Start(r.Context(), "gate.Evaluate")
		defer span.End()
		r = r.WithContext(ctx)

		class := access.Classify(r.URL.Path)
		id := g.resolveBrand(r)
		span.SetAttributes(
			attribute.String("gate.family", string(class.Family)),
			attribute.String("gate.level", class.Level.String()),
			attribute.String("gate.brand", id.Key),
		)

		// Session resolution runs on every request, whatever the
		// outcome below, so cookie rotation and expiry are never
		// deferred by a redirect.
		var sess *identity.Session
		if g.Sessions != nil {
			sess = g.Sessions.Resolve(w, r)
		}
		ctx = webctx.WithGate(ctx, webctx.Gate{Brand: id, Class: class})
		ctx = webctx.WithSession(ctx, sess)

		if !id.Serves(class.Family) {
			switch class.Family {
			case access.FamilyAdmin:
				// The admin console lives on the canonical brand only.
				g.finish(span, class, decisionRedirectBrand)
				httpx.WriteRedirect(w, r, canonicalURL(g.Brands.AdminBrand(), r.URL))
				return
			case access.FamilyPlayground:
				// Playground content has one home brand; send the
				// visitor there instead of a dead end.
				g.finish(span, class, decisionRedirectBrand)
				httpx.WriteRedirect(w, r, canonicalURL(g.Brands.PlaygroundBrand(), r.URL))
				return
			}
			g.finish(span, class, decisionNotFound)
			http.NotFound(w, r)
			return
		}

		// A signed-in visitor has no business on the admin sign-in
		// page; send them to the console instead of a re-login loop.
		if sess != nil && r.URL.Path == routepath.AdminLogin {
			g.finish(span, class, decisionRedirectHome)
			httpx.WriteRedirect(w, r, routepath.Admin)
			return
		}

		switch class.Level {
		case access.LevelAuthenticated:
			if sess == nil {
				g.finish(span, class, decisionRedirectLogin)
				httpx.WriteRedirect(w, r, routepath.LoginFor(routepath.Login, r.URL.RequestURI(), overrideKey(r, id)))
				return
			}
		case access.LevelAdmin:
			if sess == nil {
				g.finish(span, class, decisionRedirectLogin)
				httpx.WriteRedirect(w, r, routepath.LoginFor(routepath.AdminLogin, r.URL.RequestURI(), ""))
				return
			}
			profile := g.loadProfile(ctx, sess.UserID)
			if profile == nil || !profile.IsActive || profile.Role != storage.RoleAdmin {
				g.finish(span, class, decisionForbidden)
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			ctx = webctx.WithProfile(ctx, profile)
		}

		g.finish(span, class, decisionAllow)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolveBrand maps the host to a brand, honoring the override query
// parameter on local hosts only.
func (g *Gate) resolveBrand(r *http.Request) brand.Identity {
	if brand.IsLocalHost(r.Host) {
		if key := r.URL.Query().Get(routepath.BrandQueryKey); key != "" {
			if id, ok := g.Brands.ByKey(key); ok {
				return id
			}
		}
	}
	return g.Brands.ResolveHost(r.Host)
}

func (g *Gate) loadProfile(ctx context.Context, authUserID string) *storage.PortalProfile {
	if g.Profiles == nil {
		return nil
	}
	profile, err := g.Profiles.Load(ctx, authUserID)
	if err != nil {
		return nil
	}
	return profile
}

func (g *Gate) finish(span trace.Span, class access.Class, decision string) {
	span.SetAttributes(attribute.String("gate.decision", decision))
	g.Metrics.CountGateDecision(string(class.Family), decision)
}

// overrideKey preserves an explicit local-host brand override across the
// login redirect so the developer stays on the brand under test.
func overrideKey(r *http.Request, id brand.Identity) string {
	if brand.IsLocalHost(r.Host) && r.URL.Query().Get(routepath.BrandQueryKey) != "" {
		return id.Key
	}
	return ""
}

// canonicalURL rebuilds the request URL on a brand's canonical host.
func canonicalURL(id brand.Identity, u *url.URL) string {
	redirect := url.URL{
		Scheme:   "https",
		Host:     id.CanonicalHost,
		Path:     u.Path,
		RawQuery: u.RawQuery,
	}
	return redirect.String()
}
