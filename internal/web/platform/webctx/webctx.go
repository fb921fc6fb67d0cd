// Package webctx provides shared web request context helpers.
//
// The request gate stashes its evaluation here once per request; feature
// handlers read it back instead of re-deriving brand or session state.
package webctx

import (
	"context"

	"github.com/meridianworks/meridian.studio/internal/identity"
	"github.com/meridianworks/meridian.studio/internal/storage"
	"github.com/meridianworks/meridian.studio/internal/web/access"
	"github.com/meridianworks/meridian.studio/internal/web/brand"
)

type contextKey int

const (
	gateKey contextKey = iota
	sessionKey
	profileKey
)

// Gate is the request gate evaluation attached to a request context.
type Gate struct {
	Brand brand.Identity
	Class access.Class
}

// WithGate attaches a gate evaluation to the context.
func WithGate(ctx context.Context, g Gate) context.Context {
	return context.WithValue(ctx, gateKey, g)
}

// GateFrom returns the gate evaluation when present.
func GateFrom(ctx context.Context) (Gate, bool) {
	if ctx == nil {
		return Gate{}, false
	}
	g, ok := ctx.Value(gateKey).(Gate)
	return g, ok
}

// WithSession attaches the resolved session to the context.
func WithSession(ctx context.Context, s *identity.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFrom returns the resolved session, or nil for anonymous requests.
func SessionFrom(ctx context.Context) *identity.Session {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(sessionKey).(*identity.Session)
	return s
}

// WithProfile attaches the portal profile loaded by the ownership guard.
func WithProfile(ctx context.Context, p *storage.PortalProfile) context.Context {
	return context.WithValue(ctx, profileKey, p)
}

// ProfileFrom returns the portal profile, or nil when none was loaded.
func ProfileFrom(ctx context.Context) *storage.PortalProfile {
	if ctx == nil {
		return nil
	}
	p, _ := ctx.Value(profileKey).(*storage.PortalProfile)
	return p
}
