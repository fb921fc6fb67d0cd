// Package session resolves the signed-in user for web requests.
//
// A session travels as an access/refresh cookie pair. Resolution prefers
// the local access token and only calls the identity service when the
// access token is missing or expired. Refresh tokens rotate on every
// refresh, so a reused token means the cookie pair is stale or stolen
// and the session is terminated.
package session

import (
	"errors"
	"log"
	"net/http"

	"github.com/meridianworks/meridian.studio/internal/identity"
	"github.com/meridianworks/meridian.studio/internal/web/platform/metrics"
	"github.com/meridianworks/meridian.studio/internal/web/platform/requestmeta"
	"github.com/meridianworks/meridian.studio/internal/web/platform/sessioncookie"
)

// Refresh outcome labels recorded on the session metrics counter.
const (
	outcomeLocal   = "local"
	outcomeRotated = "rotated"
	outcomeReused  = "reused"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
)

// Provider resolves sessions from request cookies.
type Provider struct {
	Identity  identity.Client
	Inspector *identity.TokenInspector
	Metrics   *metrics.Registry
	Policy    requestmeta.SchemePolicy
}

// Resolve returns the session for the request, or nil for anonymous
// requests. It may rotate the session cookies on w as a side effect:
// a successful refresh writes the new pair, and a refresh rejected by
// the identity service clears both cookies. Transient identity outages
// leave the cookies untouched so the session can recover.
func (p *Provider) Resolve(w http.ResponseWriter, r *http.Request) *identity.Session {
	if p == nil || r == nil {
		return nil
	}
	pair, ok := sessioncookie.Read(r)
	if !ok {
		return nil
	}

	if p.Inspector != nil && pair.AccessToken != "" {
		if sess, ok := p.Inspector.Inspect(pair.AccessToken); ok {
			sess.RefreshToken = pair.RefreshToken
			p.Metrics.CountSessionRefresh(outcomeLocal)
			return &sess
		}
	}

	if p.Identity == nil {
		return nil
	}
	sess, err := p.Identity.Refresh(r.Context(), pair.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrRefreshReused):
			p.Metrics.CountSessionRefresh(outcomeReused)
			sessioncookie.ClearWithPolicy(w, r, p.Policy)
		case errors.Is(err, identity.ErrRefreshInvalid):
			p.Metrics.CountSessionRefresh(outcomeInvalid)
			sessioncookie.ClearWithPolicy(w, r, p.Policy)
		default:
			p.Metrics.CountSessionRefresh(outcomeError)
			log.Printf("session refresh failed path=%s err=%v", r.URL.Path, err)
		}
		return nil
	}

	p.Metrics.CountSessionRefresh(outcomeRotated)
	sessioncookie.WriteWithPolicy(w, r, sessioncookie.Pair{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
	}, p.Policy)
	return &sess
}

// SignIn exchanges credentials for a session and installs its cookies.
func (p *Provider) SignIn(w http.ResponseWriter, r *http.Request, email string, password string) (*identity.Session, error) {
	if p == nil || p.Identity == nil {
		return nil, errors.New("identity client is required")
	}
	sess, err := p.Identity.SignIn(r.Context(), email, password)
	if err != nil {
		return nil, err
	}
	sessioncookie.WriteWithPolicy(w, r, sessioncookie.Pair{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
	}, p.Policy)
	return &sess, nil
}

// SignOut revokes the session best-effort and always clears the cookies.
func (p *Provider) SignOut(w http.ResponseWriter, r *http.Request) {
	if p == nil {
		return
	}
	if pair, ok := sessioncookie.Read(r); ok && p.Identity != nil {
		if err := p.Identity.SignOut(r.Context(), pair.AccessToken); err != nil {
			log.Printf("session sign-out revoke failed err=%v", err)
		}
	}
	sessioncookie.ClearWithPolicy(w, r, p.Policy)
}
