package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRegistryServesRecordedSamples(t *testing.T) {
	t.Parallel()

	m := NewRegistry()
	m.ObserveRequest("portal", http.StatusOK, 25*time.Millisecond)
	m.CountGateDecision("portal", "allow")
	m.CountShareLookup("active")
	m.CountSessionRefresh("rotated")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"meridian_web_request_duration_seconds",
		`meridian_web_gate_decisions_total{decision="allow",family="portal"} 1`,
		`meridian_web_share_lookups_total{outcome="active"} 1`,
		`meridian_web_session_refresh_total{outcome="rotated"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("scrape body missing %q:\n%s", want, body)
		}
	}
}

func TestNilRegistryIsSafe(t *testing.T) {
	t.Parallel()

	var m *Registry
	m.ObserveRequest("marketing", http.StatusOK, time.Millisecond)
	m.CountGateDecision("marketing", "allow")
	m.CountShareLookup("missing")
	m.CountSessionRefresh("reused")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
