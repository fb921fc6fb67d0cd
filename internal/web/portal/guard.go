package portal

import (
	"context"

	"github.com/meridianworks/meridian.studio/internal/storage"
	apperrors "github.com/meridianworks/meridian.studio/internal/web/platform/errors"
)

// Guard decides whether an authenticated user may view a tenant's
// portal. Authentication is the gate's concern; the guard only answers
// the ownership question.
type Guard struct {
	Profiles *Profiles
}

// Authorize returns the profile when authUserID may view the tenant
// portal for slug. Admins may view any tenant; clients only their own.
func (g *Guard) Authorize(ctx context.Context, authUserID string, slug string) (*storage.PortalProfile, error) {
	slug = storage.NormalizeSlug(slug)
	if slug == "" {
		return nil, apperrors.E(apperrors.KindInvalidInput, "tenant slug is required")
	}
	profile, err := g.Profiles.Load(ctx, authUserID)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, apperrors.E(apperrors.KindForbidden, "no portal profile for this account")
		}
		return nil, err
	}
	if !profile.IsActive {
		return nil, apperrors.E(apperrors.KindForbidden, "portal profile is deactivated")
	}
	switch profile.Role {
	case storage.RoleAdmin:
		return profile, nil
	case storage.RoleClient:
		if profile.OwnedTenantSlug == slug {
			return profile, nil
		}
		return nil, apperrors.E(apperrors.KindForbidden, "tenant belongs to another account")
	}
	return nil, apperrors.E(apperrors.KindForbidden, "unrecognized portal role")
}

// HomeSlug returns the tenant a user lands on when visiting the bare
// portal path. Admins have no single tenant and get no home slug.
func (g *Guard) HomeSlug(ctx context.Context, authUserID string) (string, bool) {
	profile, err := g.Profiles.Load(ctx, authUserID)
	if err != nil || !profile.IsActive {
		return "", false
	}
	if profile.Role == storage.RoleClient && profile.OwnedTenantSlug != "" {
		return profile.OwnedTenantSlug, true
	}
	return "", false
}
