package portal

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/meridianworks/meridian.studio/internal/storage"
)

const (
	profileTTL     = 5 * time.Minute
	profileCleanup = 10 * time.Minute
)

// Profiles loads portal profiles with a short-lived in-process cache.
// Profile data changes rarely and every portal and admin request needs
// it, so stale reads up to the TTL are acceptable. Share lookups must
// never go through a cache like this; revocation has to be immediate.
type Profiles struct {
	store storage.PortalProfileStore
	cache *gocache.Cache
	group singleflight.Group
}

// NewProfiles builds a cached profile loader over store.
func NewProfiles(store storage.PortalProfileStore) *Profiles {
	return &Profiles{
		store: store,
		cache: gocache.New(profileTTL, profileCleanup),
	}
}

// Load returns the profile for authUserID, from cache when fresh.
func (p *Profiles) Load(ctx context.Context, authUserID string) (*storage.PortalProfile, error) {
	if cached, ok := p.cache.Get(authUserID); ok {
		profile := cached.(storage.PortalProfile)
		return &profile, nil
	}
	// Collapse concurrent misses for the same user into one store read.
	loaded, err, _ := p.group.Do(authUserID, func() (any, error) {
		profile, err := p.store.GetPortalProfile(ctx, authUserID)
		if err != nil {
			return nil, err
		}
		p.cache.Set(authUserID, profile, gocache.DefaultExpiration)
		return profile, nil
	})
	if err != nil {
		return nil, err
	}
	profile := loaded.(storage.PortalProfile)
	return &profile, nil
}

// Invalidate drops the cached profile after an admin-side change.
func (p *Profiles) Invalidate(authUserID string) {
	p.cache.Delete(authUserID)
}
