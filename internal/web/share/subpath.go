package share

import (
	"strings"

	"github.com/meridianworks/meridian.studio/internal/storage"
)

// Route is the outcome of routing a share sub-path.
type Route struct {
	// UnitKey is the unit to render; empty when NotFound or Hub.
	UnitKey string
	// Sub is the matched sub-route name, empty for the primary page.
	Sub string
	// Hub reports a record with no primary unit; the page lists the
	// record's sub-routes instead of rendering a unit.
	Hub bool
	// NotFound reports a sub-path with no route entry.
	NotFound bool
}

// RouteSubPath maps the rest of a share URL to a unit key.
//
// An empty rest serves the record's primary unit, or the hub listing
// when the record has none. A single-segment rest is looked up in the
// record's sub-routes; unknown names and deeper paths have no route.
// Trailing slashes are tolerated.
func RouteSubPath(content storage.ShareableContent, rest string) Route {
	rest = strings.Trim(strings.TrimSpace(rest), "/")
	if rest == "" {
		if content.PrimaryUnitKey == "" {
			return Route{Hub: true}
		}
		return Route{UnitKey: content.PrimaryUnitKey}
	}
	if strings.Contains(rest, "/") {
		return Route{NotFound: true}
	}
	unitKey, ok := content.SubRoutes[rest]
	if !ok || unitKey == "" {
		return Route{NotFound: true}
	}
	return Route{UnitKey: unitKey, Sub: rest}
}
