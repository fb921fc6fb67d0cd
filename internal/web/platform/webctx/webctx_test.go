package webctx

import (
	"context"
	"testing"

	"github.com/meridianworks/meridian.studio/internal/identity"
	"github.com/meridianworks/meridian.studio/internal/storage"
	"github.com/meridianworks/meridian.studio/internal/web/access"
	"github.com/meridianworks/meridian.studio/internal/web/brand"
)

func TestGateRoundTrip(t *testing.T) {
	t.Parallel()

	if _, ok := GateFrom(context.Background()); ok {
		t.Fatal("GateFrom reported a value on an empty context")
	}

	g := Gate{
		Brand: brand.Identity{Key: "meridian"},
		Class: access.Class{Family: access.FamilyPortal, Level: access.LevelAuthenticated},
	}
	ctx := WithGate(context.Background(), g)
	got, ok := GateFrom(ctx)
	if !ok {
		t.Fatal("GateFrom missed stored value")
	}
	if got.Brand.Key != "meridian" || got.Class.Family != access.FamilyPortal {
		t.Fatalf("gate = %+v, want stored value", got)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()

	if got := SessionFrom(context.Background()); got != nil {
		t.Fatalf("SessionFrom = %+v, want nil", got)
	}

	s := &identity.Session{UserID: "user-1"}
	ctx := WithSession(context.Background(), s)
	if got := SessionFrom(ctx); got == nil || got.UserID != "user-1" {
		t.Fatalf("SessionFrom = %+v, want user-1", got)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	t.Parallel()

	if got := ProfileFrom(context.Background()); got != nil {
		t.Fatalf("ProfileFrom = %+v, want nil", got)
	}

	p := &storage.PortalProfile{AuthUserID: "user-1", Role: storage.RoleClient}
	ctx := WithProfile(context.Background(), p)
	if got := ProfileFrom(ctx); got == nil || got.AuthUserID != "user-1" {
		t.Fatalf("ProfileFrom = %+v, want user-1", got)
	}
}
