// Package modules assembles the default web module set and mounts it
// on a root mux.
package modules

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/meridianworks/meridian.studio/internal/storage"
	"github.com/meridianworks/meridian.studio/internal/web/admin"
	"github.com/meridianworks/meridian.studio/internal/web/auth"
	"github.com/meridianworks/meridian.studio/internal/web/module"
	"github.com/meridianworks/meridian.studio/internal/web/platform/metrics"
	"github.com/meridianworks/meridian.studio/internal/web/platform/requestmeta"
	"github.com/meridianworks/meridian.studio/internal/web/playground"
	"github.com/meridianworks/meridian.studio/internal/web/portal"
	"github.com/meridianworks/meridian.studio/internal/web/public"
	"github.com/meridianworks/meridian.studio/internal/web/session"
	"github.com/meridianworks/meridian.studio/internal/web/share"
	"github.com/meridianworks/meridian.studio/internal/web/units"
)

// Dependencies carries the shared backends modules are built from.
type Dependencies struct {
	Shares       storage.ShareStore
	Profiles     *portal.Profiles
	Sessions     *session.Provider
	Units        *units.Registry
	Metrics      *metrics.Registry
	SchemePolicy requestmeta.SchemePolicy
}

// Default returns the full module set for the site.
func Default(deps Dependencies) []module.Module {
	if deps.Units == nil {
		deps.Units = units.DefaultRegistry()
	}
	return []module.Module{
		public.New(),
		auth.New(auth.WithSessions(deps.Sessions)),
		auth.LogoutModule{Sessions: deps.Sessions},
		share.New(
			share.WithResolver(&share.Resolver{Store: deps.Shares, Metrics: deps.Metrics}),
			share.WithUnits(deps.Units),
		),
		portal.New(
			portal.WithGuard(&portal.Guard{Profiles: deps.Profiles}),
			portal.WithUnits(deps.Units),
		),
		admin.New(
			admin.WithShares(deps.Shares),
			admin.WithSessions(deps.Sessions),
			admin.WithUnits(deps.Units),
			admin.WithSchemePolicy(deps.SchemePolicy),
		),
		playground.New(playground.WithUnits(deps.Units)),
	}
}

// Compose mounts the module set on a root mux. Prefixes ending in a
// slash also claim their slashless alias so /portal and /portal/ land
// in the same module.
func Compose(mods []module.Module) (http.Handler, error) {
	root := http.NewServeMux()
	seen := make(map[string]string)

	for _, feature := range mods {
		if feature == nil {
			return nil, fmt.Errorf("module is nil")
		}
		mount, err := feature.Mount()
		if err != nil {
			return nil, fmt.Errorf("mount module %q: %w", feature.ID(), err)
		}
		prefix := strings.TrimSpace(mount.Prefix)
		if prefix == "" || !strings.HasPrefix(prefix, "/") {
			return nil, fmt.Errorf("module %q has invalid prefix %q", feature.ID(), mount.Prefix)
		}
		if mount.Handler == nil {
			return nil, fmt.Errorf("module %q has nil handler", feature.ID())
		}
		if previous, ok := seen[prefix]; ok {
			return nil, fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
		}
		seen[prefix] = feature.ID()

		root.Handle(prefix, mount.Handler)
		if alias := strings.TrimSuffix(prefix, "/"); alias != "" && alias != prefix {
			root.Handle(alias, mount.Handler)
		}
	}
	return root, nil
}

// Health reports false when any module with a health signal is down.
func Health(mods []module.Module) bool {
	for _, feature := range mods {
		if reporter, ok := feature.(module.HealthReporter); ok && !reporter.Healthy() {
			return false
		}
	}
	return true
}
