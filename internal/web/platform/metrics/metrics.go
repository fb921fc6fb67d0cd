// Package metrics exposes Prometheus instruments for the web service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the service instruments with their Prometheus registry.
type Registry struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	gateDecisions   *prometheus.CounterVec
	shareLookups    *prometheus.CounterVec
	sessionRefresh  *prometheus.CounterVec
}

// NewRegistry builds a registry with all service instruments registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	m := &Registry{
		registry: reg,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "meridian",
			Subsystem: "web",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route family and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"family", "status"}),
		gateDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meridian",
			Subsystem: "web",
			Name:      "gate_decisions_total",
			Help:      "Request gate outcomes by route family and decision.",
		}, []string{"family", "decision"}),
		shareLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meridian",
			Subsystem: "web",
			Name:      "share_lookups_total",
			Help:      "Share token resolutions by outcome.",
		}, []string{"outcome"}),
		sessionRefresh: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meridian",
			Subsystem: "web",
			Name:      "session_refresh_total",
			Help:      "Session refresh attempts by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.requestDuration, m.gateDecisions, m.shareLookups, m.sessionRefresh)
	return m
}

// ObserveRequest records one served request.
func (m *Registry) ObserveRequest(family string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(family, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// CountGateDecision records one request gate outcome.
func (m *Registry) CountGateDecision(family string, decision string) {
	if m == nil {
		return
	}
	m.gateDecisions.WithLabelValues(family, decision).Inc()
}

// CountShareLookup records one share token resolution outcome.
func (m *Registry) CountShareLookup(outcome string) {
	if m == nil {
		return
	}
	m.shareLookups.WithLabelValues(outcome).Inc()
}

// CountSessionRefresh records one session refresh outcome.
func (m *Registry) CountSessionRefresh(outcome string) {
	if m == nil {
		return
	}
	m.sessionRefresh.WithLabelValues(outcome).Inc()
}

// Handler returns the scrape endpoint for this registry.
func (m *Registry) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
