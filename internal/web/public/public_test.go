package public

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/meridianworks/meridian.studio/internal/web/brand"
	"github.com/meridianworks/meridian.studio/internal/web/platform/webctx"
)

func mountPublic(t *testing.T) http.Handler {
	t.Helper()
	mount, err := New().Mount()
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return mount.Handler
}

func withBrand(r *http.Request, key string) *http.Request {
	registry := brand.DefaultRegistry()
	id, _ := registry.ByKey(key)
	return r.WithContext(webctx.WithGate(r.Context(), webctx.Gate{Brand: id}))
}

func TestHomeRendersBrandName(t *testing.T) {
	t.Parallel()

	handler := mountPublic(t)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, withBrand(httptest.NewRequest(http.MethodGet, "/", nil), brand.KeyNorthbeam))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Northbeam") {
		t.Fatalf("home missing brand:\n%s", rec.Body.String())
	}
}

func TestMarketingPages(t *testing.T) {
	t.Parallel()

	handler := mountPublic(t)
	for _, path := range []string{"/about", "/services", "/contact"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, withBrand(httptest.NewRequest(http.MethodGet, path, nil), brand.KeyMeridian))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d, want %d", path, rec.Code, http.StatusOK)
		}
	}
}

func TestContactUsesBrandHost(t *testing.T) {
	t.Parallel()

	handler := mountPublic(t)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, withBrand(httptest.NewRequest(http.MethodGet, "/contact", nil), brand.KeyNorthbeam))
	if !strings.Contains(rec.Body.String(), "hello@northbeam.co") {
		t.Fatalf("contact missing brand host:\n%s", rec.Body.String())
	}
}

func TestUnknownPageIs404(t *testing.T) {
	t.Parallel()

	handler := mountPublic(t)
	for _, path := range []string{"/no-such-page", "/deep/path"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, withBrand(httptest.NewRequest(http.MethodGet, path, nil), brand.KeyMeridian))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s status = %d, want %d", path, rec.Code, http.StatusNotFound)
		}
	}
}
