package share

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/meridianworks/meridian.studio/internal/storage"
	apperrors "github.com/meridianworks/meridian.studio/internal/web/platform/errors"
)

type fakeShareStore struct {
	byToken map[string]storage.ShareableContent
	err     error
	lookups int
}

func (f *fakeShareStore) GetShareableContentByToken(_ context.Context, token string) (storage.ShareableContent, error) {
	f.lookups++
	if f.err != nil {
		return storage.ShareableContent{}, f.err
	}
	content, ok := f.byToken[token]
	if !ok {
		return storage.ShareableContent{}, storage.ErrNotFound
	}
	return content, nil
}

func (f *fakeShareStore) PutShareableContent(context.Context, storage.ShareableContent) error {
	return nil
}

func (f *fakeShareStore) ListShareableContent(context.Context) ([]storage.ShareableContent, error) {
	return nil, nil
}

func (f *fakeShareStore) SetShareVisibility(context.Context, string, storage.ShareVisibility, time.Time) error {
	return nil
}

func activeContent(token string) storage.ShareableContent {
	now := time.Now()
	return storage.ShareableContent{
		ID:             "rec-1",
		Token:          token,
		Title:          "Harbor Works",
		Visibility:     storage.VisibilityActive,
		PrimaryUnitKey: "hero-banner",
		SubRoutes:      map[string]string{"gallery": "project-gallery"},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestResolveActiveToken(t *testing.T) {
	t.Parallel()

	store := &fakeShareStore{byToken: map[string]storage.ShareableContent{
		"tok-1": activeContent("tok-1"),
	}}
	r := &Resolver{Store: store}

	content, err := r.Resolve(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if content.Title != "Harbor Works" {
		t.Fatalf("content = %+v, want Harbor Works", content)
	}
}

func TestResolveMissingToken(t *testing.T) {
	t.Parallel()

	r := &Resolver{Store: &fakeShareStore{byToken: map[string]storage.ShareableContent{}}}
	_, err := r.Resolve(context.Background(), "ghost")
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestResolveRevokedTokenLooksMissing(t *testing.T) {
	t.Parallel()

	revoked := activeContent("tok-1")
	revoked.Visibility = storage.VisibilityRevoked
	r := &Resolver{Store: &fakeShareStore{byToken: map[string]storage.ShareableContent{
		"tok-1": revoked,
	}}}

	_, err := r.Resolve(context.Background(), "tok-1")
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
	active, err := (&Resolver{Store: &fakeShareStore{byToken: map[string]storage.ShareableContent{}}}).Resolve(context.Background(), "tok-1")
	_ = active
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("missing err = %v, want identical not found", err)
	}
}

func TestResolveStoreFailureStaysGeneric(t *testing.T) {
	t.Parallel()

	r := &Resolver{Store: &fakeShareStore{err: errors.New("db locked")}}
	_, err := r.Resolve(context.Background(), "tok-1")
	if err == nil || apperrors.KindOf(err) == apperrors.KindNotFound {
		t.Fatalf("err = %v, want generic failure", err)
	}
}

func TestResolveAlwaysHitsStore(t *testing.T) {
	t.Parallel()

	store := &fakeShareStore{byToken: map[string]storage.ShareableContent{
		"tok-1": activeContent("tok-1"),
	}}
	r := &Resolver{Store: store}
	for i := 0; i < 3; i++ {
		if _, err := r.Resolve(context.Background(), "tok-1"); err != nil {
			t.Fatalf("Resolve: %v", err)
		}
	}
	if store.lookups != 3 {
		t.Fatalf("store lookups = %d, want one per resolve", store.lookups)
	}
}

func TestResolveEmptyToken(t *testing.T) {
	t.Parallel()

	store := &fakeShareStore{}
	r := &Resolver{Store: store}
	_, err := r.Resolve(context.Background(), "   ")
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
	if store.lookups != 0 {
		t.Fatalf("store lookups = %d, want 0 for blank token", store.lookups)
	}
}
