// Package access classifies request paths into route families and the
// authentication level each family demands. Classification is pure: it
// looks only at the path, never at the session or the host.
package access

import (
	"strings"

	"github.com/meridianworks/meridian.studio/internal/web/routepath"
)

// Family identifies the area of the site a path belongs to.
type Family string

const (
	// FamilyMarketing is the public brochure surface, including the root.
	FamilyMarketing Family = "marketing"
	// FamilyPortal is the authenticated client portal.
	FamilyPortal Family = "portal"
	// FamilyAdmin is the staff console.
	FamilyAdmin Family = "admin"
	// FamilyShare is token-scoped public content under the share prefix.
	FamilyShare Family = "share"
	// FamilyPlayground is the internal component demo surface.
	FamilyPlayground Family = "playground"
	// FamilyAuth covers login and logout endpoints.
	FamilyAuth Family = "auth"
	// FamilySystem covers operational endpoints such as health and metrics.
	FamilySystem Family = "system"
)

// Level is the minimum authentication a family requires.
type Level int

const (
	// LevelPublic routes serve anonymous requests.
	LevelPublic Level = iota
	// LevelAuthenticated routes require any signed-in user.
	LevelAuthenticated
	// LevelAdmin routes require a signed-in user with the admin role.
	LevelAdmin
)

// String implements fmt.Stringer for log and span attributes.
func (l Level) String() string {
	switch l {
	case LevelPublic:
		return "public"
	case LevelAuthenticated:
		return "authenticated"
	case LevelAdmin:
		return "admin"
	}
	return "unknown"
}

// Class is the result of classifying one request path.
type Class struct {
	Family Family
	Level  Level
}

// Classify maps a request path to its route family and required level.
// Admin is checked before auth so /admin/login lands in the auth family
// with its admin-specific login page handled downstream.
func Classify(path string) Class {
	switch {
	case path == routepath.AdminLogin:
		return Class{Family: FamilyAuth, Level: LevelPublic}
	case path == routepath.Login || path == routepath.Logout:
		return Class{Family: FamilyAuth, Level: LevelPublic}
	case path == routepath.Health || path == routepath.Metrics:
		return Class{Family: FamilySystem, Level: LevelPublic}
	case path == routepath.Admin || strings.HasPrefix(path, routepath.AdminPrefix):
		return Class{Family: FamilyAdmin, Level: LevelAdmin}
	case path == routepath.Portal || strings.HasPrefix(path, routepath.PortalPrefix):
		return Class{Family: FamilyPortal, Level: LevelAuthenticated}
	case strings.HasPrefix(path, routepath.SharePrefix):
		return Class{Family: FamilyShare, Level: LevelPublic}
	case path == routepath.Playground || strings.HasPrefix(path, routepath.PlaygroundPrefix):
		return Class{Family: FamilyPlayground, Level: LevelPublic}
	}
	return Class{Family: FamilyMarketing, Level: LevelPublic}
}
