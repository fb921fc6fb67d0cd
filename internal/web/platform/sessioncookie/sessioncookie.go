// Package sessioncookie centralizes web session cookie behavior.
//
// Sessions travel as a pair of cookies: a short-lived access token and
// a longer-lived refresh token. Both are host-only, HttpOnly, and Lax.
package sessioncookie

import (
	"net/http"
	"strings"
	"time"

	"github.com/meridianworks/meridian.studio/internal/web/platform/requestmeta"
)

// Cookie names for the session token pair.
const (
	AccessName  = "meridian_access"
	RefreshName = "meridian_refresh"
)

// refreshMaxAge bounds how long a refresh token cookie survives.
const refreshMaxAge = 30 * 24 * time.Hour

// Pair is the token pair carried by the session cookies.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

// Read returns the trimmed session token pair. A session is present
// only when the refresh token is; a lone access cookie is ignored.
func Read(r *http.Request) (Pair, bool) {
	if r == nil {
		return Pair{}, false
	}
	refresh := cookieValue(r, RefreshName)
	if refresh == "" {
		return Pair{}, false
	}
	return Pair{
		AccessToken:  cookieValue(r, AccessName),
		RefreshToken: refresh,
	}, true
}

// Write sets the session cookie pair for the current request context.
func Write(w http.ResponseWriter, r *http.Request, pair Pair) {
	WriteWithPolicy(w, r, pair, requestmeta.SchemePolicy{})
}

// WriteWithPolicy sets the session cookie pair using the provided scheme policy.
func WriteWithPolicy(w http.ResponseWriter, r *http.Request, pair Pair, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	secure := requestmeta.IsHTTPSWithPolicy(r, policy)
	http.SetCookie(w, &http.Cookie{
		Name:     AccessName,
		Value:    strings.TrimSpace(pair.AccessToken),
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshName,
		Value:    strings.TrimSpace(pair.RefreshToken),
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(refreshMaxAge / time.Second),
	})
}

// Clear expires both session cookies for the current request context.
func Clear(w http.ResponseWriter, r *http.Request) {
	ClearWithPolicy(w, r, requestmeta.SchemePolicy{})
}

// ClearWithPolicy expires both session cookies using the provided scheme policy.
func ClearWithPolicy(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	secure := requestmeta.IsHTTPSWithPolicy(r, policy)
	for _, name := range []string{AccessName, RefreshName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
	}
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil || cookie == nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}
