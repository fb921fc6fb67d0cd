package storage

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// PortalRole classifies a portal profile's access breadth.
type PortalRole string

const (
	// RoleClient restricts a profile to the tenant slice it owns.
	RoleClient PortalRole = "client"
	// RoleAdmin grants access to every tenant slice and the admin console.
	RoleAdmin PortalRole = "admin"
)

// PortalProfile links an identity-provider user to a portal role.
//
// A client profile always carries the tenant slug it owns; an admin profile
// may leave OwnedTenantSlug empty since ownership checks never apply to it.
type PortalProfile struct {
	AuthUserID      string
	Role            PortalRole
	OwnedTenantSlug string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ShareVisibility is the publication state of a share link.
type ShareVisibility string

const (
	// VisibilityActive makes the share link resolvable.
	VisibilityActive ShareVisibility = "active"
	// VisibilityRevoked hides the share link; resolution treats it as absent.
	VisibilityRevoked ShareVisibility = "revoked"
)

// ShareableContent is a token-addressed public content record.
//
// PrimaryUnitKey and SubRoutes are operator-authored metadata: the primary
// key names the unit rendered at the bare token URL, and SubRoutes maps a
// single trailing path segment to a unit key.
type ShareableContent struct {
	ID             string
	Token          string
	Title          string
	Description    string
	Visibility     ShareVisibility
	PrimaryUnitKey string
	SubRoutes      map[string]string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsActive reports whether the record is publicly resolvable.
func (c ShareableContent) IsActive() bool {
	return c.Visibility == VisibilityActive
}

// Valid reports whether the role is a known portal role.
func (r PortalRole) Valid() bool {
	return r == RoleClient || r == RoleAdmin
}

// NormalizeSlug canonicalizes a tenant slug for comparisons and storage keys.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// PortalProfileStore reads portal profiles keyed by identity-provider user id.
type PortalProfileStore interface {
	GetPortalProfile(ctx context.Context, authUserID string) (PortalProfile, error)
	PutPortalProfile(ctx context.Context, profile PortalProfile) error
}

// ShareStore persists shareable content records.
//
// Reads must hit the backing store on every call: share revocation has to be
// observable on the immediately following request, so implementations must
// not layer a cache behind GetShareableContentByToken.
type ShareStore interface {
	GetShareableContentByToken(ctx context.Context, token string) (ShareableContent, error)
	PutShareableContent(ctx context.Context, content ShareableContent) error
	ListShareableContent(ctx context.Context) ([]ShareableContent, error)
	SetShareVisibility(ctx context.Context, id string, visibility ShareVisibility, updatedAt time.Time) error
}
