// Package brand resolves the request host to a site brand.
//
// Each deployment serves several brands from one binary. The registry
// maps hostnames to brands by ordered substring matching, so staging
// hosts such as northbeam.staging.meridian.studio resolve like their
// production counterparts without extra entries.
package brand

import (
	"net"
	"strings"

	"github.com/meridianworks/meridian.studio/internal/web/access"
)

// Identity describes one brand served by the site.
type Identity struct {
	// Key is the stable identifier used in logs, templates, and the
	// local-host override query parameter.
	Key string
	// DisplayName is the human-facing brand name.
	DisplayName string
	// CanonicalHost is the primary production hostname.
	CanonicalHost string
	// Families lists the route families this brand serves. Requests for
	// a family outside the list are redirected to the canonical brand
	// or refused, depending on the family.
	Families []access.Family
}

// Serves reports whether the brand serves the given route family.
func (id Identity) Serves(family access.Family) bool {
	for _, f := range id.Families {
		if f == family {
			return true
		}
	}
	return false
}

// rule pairs a hostname fragment with the brand it selects.
type rule struct {
	fragment string
	key      string
}

// Registry resolves hostnames to brand identities. Rules are evaluated
// in insertion order and the first fragment contained in the hostname
// wins, so more specific fragments must be registered first.
type Registry struct {
	rules      []rule
	identities map[string]Identity
	defaultKey string
}

// NewRegistry returns an empty registry with the given default brand.
// The default identity must be added before the registry is used.
func NewRegistry(defaultKey string) *Registry {
	return &Registry{
		identities: make(map[string]Identity),
		defaultKey: defaultKey,
	}
}

// Add registers a brand identity and the hostname fragments that select
// it. Fragments are matched case-insensitively against the request host
// with any port stripped.
func (r *Registry) Add(id Identity, fragments ...string) {
	r.identities[id.Key] = id
	for _, fragment := range fragments {
		fragment = strings.ToLower(strings.TrimSpace(fragment))
		if fragment == "" {
			continue
		}
		r.rules = append(r.rules, rule{fragment: fragment, key: id.Key})
	}
}

// ResolveHost returns the brand for a request host. Unknown hosts,
// local hosts, and raw IPs resolve to the default brand.
func (r *Registry) ResolveHost(host string) Identity {
	hostname := normalizeHost(host)
	if hostname != "" && !IsLocalHost(hostname) {
		for _, rl := range r.rules {
			if strings.Contains(hostname, rl.fragment) {
				return r.identities[rl.key]
			}
		}
	}
	return r.identities[r.defaultKey]
}

// ByKey returns the brand registered under key, if any.
func (r *Registry) ByKey(key string) (Identity, bool) {
	id, ok := r.identities[strings.ToLower(strings.TrimSpace(key))]
	return id, ok
}

// Default returns the default brand identity.
func (r *Registry) Default() Identity {
	return r.identities[r.defaultKey]
}

// AdminBrand returns the brand that serves the admin console. Exactly
// one registered brand carries the admin family.
func (r *Registry) AdminBrand() Identity {
	for _, rl := range r.rules {
		if id := r.identities[rl.key]; id.Serves(access.FamilyAdmin) {
			return id
		}
	}
	return r.Default()
}

// PlaygroundBrand returns the brand that serves the component
// playground. Exactly one registered brand carries the playground
// family.
func (r *Registry) PlaygroundBrand() Identity {
	for _, rl := range r.rules {
		if id := r.identities[rl.key]; id.Serves(access.FamilyPlayground) {
			return id
		}
	}
	return r.Default()
}

// IsLocalHost reports whether hostname is a development host, where the
// brand override query parameter is honored.
func IsLocalHost(host string) bool {
	hostname := normalizeHost(host)
	if hostname == "localhost" || strings.HasSuffix(hostname, ".localhost") {
		return true
	}
	if ip := net.ParseIP(hostname); ip != nil {
		return ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified()
	}
	return false
}

// normalizeHost lowercases host and strips any port.
func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return strings.Trim(host, "[]")
}
