package auth

import (
	"net/http"

	"github.com/meridianworks/meridian.studio/internal/web/module"
	"github.com/meridianworks/meridian.studio/internal/web/platform/httpx"
	"github.com/meridianworks/meridian.studio/internal/web/routepath"
	"github.com/meridianworks/meridian.studio/internal/web/session"
)

// LogoutModule serves the sign-out endpoint.
type LogoutModule struct {
	Sessions *session.Provider
}

// ID returns a stable module identifier.
func (LogoutModule) ID() string { return "logout" }

// Mount wires the sign-out handler.
func (m LogoutModule) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	// The header renders sign-out as a plain link, so GET works too.
	mux.HandleFunc("GET "+routepath.Logout, m.handleLogout)
	mux.HandleFunc("POST "+routepath.Logout, m.handleLogout)
	return module.Mount{Prefix: routepath.Logout, Handler: mux}, nil
}

func (m LogoutModule) handleLogout(w http.ResponseWriter, r *http.Request) {
	m.Sessions.SignOut(w, r)
	httpx.WriteRedirect(w, r, routepath.Root)
}
