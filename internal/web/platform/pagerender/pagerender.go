// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"

	"github.com/meridianworks/meridian.studio/internal/web/access"
	"github.com/meridianworks/meridian.studio/internal/web/brand"
	"github.com/meridianworks/meridian.studio/internal/web/platform/httpx"
	"github.com/meridianworks/meridian.studio/internal/web/platform/webctx"
	"github.com/meridianworks/meridian.studio/internal/web/routepath"
	"github.com/meridianworks/meridian.studio/internal/web/templates"
)

// Page describes a module page response.
type Page struct {
	Title       string
	Description string
	StatusCode  int
	Body        templ.Component
}

// Write renders page inside the brand shell resolved by the request gate.
// Rendering buffers the whole document so template failures surface as a
// 500 instead of a truncated page.
func Write(w http.ResponseWriter, r *http.Request, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}

	id := brandFor(r)
	shell := templates.Shell{
		Title:       page.Title,
		Description: page.Description,
		BrandName:   id.DisplayName,
		NavLinks:    navLinks(r, id),
	}

	var buf bytes.Buffer
	if err := templates.Layout(shell, page.Body).Render(httpx.RequestContext(r), &buf); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}

func brandFor(r *http.Request) brand.Identity {
	if r != nil {
		if g, ok := webctx.GateFrom(r.Context()); ok {
			return g.Brand
		}
	}
	return brand.DefaultRegistry().Default()
}

// navLinks derives header navigation from the brand's families and the
// viewer's signed-in state.
func navLinks(r *http.Request, id brand.Identity) []templates.NavLink {
	var links []templates.NavLink
	if id.Serves(access.FamilyPortal) {
		links = append(links, templates.NavLink{Label: "Client portal", Href: routepath.Portal})
	}
	if id.Serves(access.FamilyPlayground) {
		links = append(links, templates.NavLink{Label: "Playground", Href: routepath.Playground})
	}
	if r != nil && webctx.SessionFrom(r.Context()) != nil {
		links = append(links, templates.NavLink{Label: "Sign out", Href: routepath.Logout})
	} else if id.Serves(access.FamilyAuth) {
		links = append(links, templates.NavLink{Label: "Sign in", Href: routepath.Login})
	}
	return links
}
