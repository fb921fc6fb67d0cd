// Package identity wraps the external identity provider behind a narrow port.
//
// The provider owns credentials, passwords, and refresh-token rotation. This
// package exposes only what the gateway needs: exchanging a refresh token for
// a rotated pair, password sign-in, sign-out, and local access-token
// inspection. Provider-specific error shapes never leak past this boundary;
// they are normalized into the sentinel errors below.
package identity

import (
	"context"
	"errors"
	"time"
)

// ErrRefreshReused indicates the refresh token was already consumed by a
// concurrent rotation. The session must be treated as signed out, not retried.
var ErrRefreshReused = errors.New("refresh token already used")

// ErrRefreshInvalid indicates the refresh token is structurally invalid or
// unknown to the provider.
var ErrRefreshInvalid = errors.New("refresh token invalid")

// Session is the provider-issued identity for one authenticated user.
type Session struct {
	UserID       string
	ExpiresAt    time.Time
	AccessToken  string
	RefreshToken string
}

// Client is the identity provider port consumed by the session layer.
type Client interface {
	// Refresh exchanges a refresh token for a rotated access/refresh pair.
	// A consumed or malformed token yields ErrRefreshReused or
	// ErrRefreshInvalid; any other error is a provider availability failure.
	Refresh(ctx context.Context, refreshToken string) (Session, error)

	// SignIn performs a password grant and returns a fresh session pair.
	SignIn(ctx context.Context, email string, password string) (Session, error)

	// SignOut revokes the session behind the access token. Best effort: the
	// caller clears local cookies regardless of the result.
	SignOut(ctx context.Context, accessToken string) error
}
