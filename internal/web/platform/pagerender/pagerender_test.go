package pagerender

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/meridianworks/meridian.studio/internal/identity"
	"github.com/meridianworks/meridian.studio/internal/web/access"
	"github.com/meridianworks/meridian.studio/internal/web/brand"
	"github.com/meridianworks/meridian.studio/internal/web/platform/webctx"
	"github.com/meridianworks/meridian.studio/internal/web/templates"
)

func body(text string) templ.Component {
	return templates.Paragraph(text)
}

func TestWriteUsesGateBrand(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(webctx.WithGate(r.Context(), webctx.Gate{
		Brand: brand.Identity{
			Key:         "northbeam",
			DisplayName: "Northbeam",
			Families:    []access.Family{access.FamilyMarketing, access.FamilyPortal, access.FamilyAuth},
		},
	}))
	rec := httptest.NewRecorder()
	if err := Write(rec, r, Page{Title: "About", Body: body("hello")}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	html := rec.Body.String()
	if !strings.Contains(html, "Northbeam") {
		t.Fatalf("brand name missing:\n%s", html)
	}
	if !strings.Contains(html, "Client portal") || strings.Contains(html, "Playground") {
		t.Fatalf("nav mismatch for brand families:\n%s", html)
	}
	if !strings.Contains(html, "Sign in") {
		t.Fatalf("anonymous request missing sign-in link:\n%s", html)
	}
}

func TestWriteShowsSignOutForSignedInViewer(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := webctx.WithGate(r.Context(), webctx.Gate{Brand: brand.DefaultRegistry().Default()})
	ctx = webctx.WithSession(ctx, &identity.Session{UserID: "user-1"})
	r = r.WithContext(ctx)

	rec := httptest.NewRecorder()
	if err := Write(rec, r, Page{Title: "Portal", Body: body("files")}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	html := rec.Body.String()
	if !strings.Contains(html, "Sign out") || strings.Contains(html, "Sign in<") {
		t.Fatalf("signed-in nav mismatch:\n%s", html)
	}
}

func TestWriteFallsBackToDefaultBrand(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	if err := Write(rec, httptest.NewRequest(http.MethodGet, "/", nil), Page{Body: body("x")}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "Meridian Works") {
		t.Fatalf("default brand missing:\n%s", rec.Body.String())
	}
}

func TestWriteReportsRenderFailure(t *testing.T) {
	t.Parallel()

	failing := templ.ComponentFunc(func(context.Context, io.Writer) error {
		return io.ErrClosedPipe
	})
	rec := httptest.NewRecorder()
	if err := Write(rec, httptest.NewRequest(http.MethodGet, "/", nil), Page{Body: failing}); err == nil {
		t.Fatal("Write did not surface render failure")
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestWriteCustomStatus(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	if err := Write(rec, httptest.NewRequest(http.MethodGet, "/", nil), Page{
		Title:      "Not found",
		StatusCode: http.StatusNotFound,
		Body:       body("missing"),
	}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
