package requestmeta

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsHTTPS(t *testing.T) {
	t.Parallel()

	plain := httptest.NewRequest(http.MethodGet, "http://meridian.studio/", nil)
	if IsHTTPS(plain) {
		t.Fatal("plain request reported HTTPS")
	}

	secured := httptest.NewRequest(http.MethodGet, "http://meridian.studio/", nil)
	secured.URL.Scheme = ""
	secured.TLS = &tls.ConnectionState{}
	if !IsHTTPS(secured) {
		t.Fatal("TLS request not reported HTTPS")
	}
}

func TestIsHTTPSWithForwardedProto(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "http://meridian.studio/", nil)
	r.URL.Scheme = ""
	r.Header.Set("X-Forwarded-Proto", "https")

	if IsHTTPS(r) {
		t.Fatal("forwarded proto honored without policy opt-in")
	}
	if !IsHTTPSWithPolicy(r, SchemePolicy{TrustForwardedProto: true}) {
		t.Fatal("forwarded proto ignored despite policy opt-in")
	}
}

func TestHasSameOriginProof(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		origin  string
		referer string
		want    bool
	}{
		{"no headers", "", "", false},
		{"matching origin", "http://meridian.studio", "", true},
		{"matching referer", "", "http://meridian.studio/admin", true},
		{"foreign origin", "http://evil.test", "", false},
		{"scheme mismatch", "https://meridian.studio", "", false},
		{"origin wins over referer", "http://evil.test", "http://meridian.studio/admin", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodPost, "http://meridian.studio/admin/share/create", nil)
			if tc.origin != "" {
				r.Header.Set("Origin", tc.origin)
			}
			if tc.referer != "" {
				r.Header.Set("Referer", tc.referer)
			}
			if got := HasSameOriginProof(r, SchemePolicy{}); got != tc.want {
				t.Fatalf("HasSameOriginProof = %v, want %v", got, tc.want)
			}
		})
	}
}
