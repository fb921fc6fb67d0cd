// Package sqlite implements gateway persistence over SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/meridianworks/meridian.studio/internal/platform/storage/sqlitemigrate"
	"github.com/meridianworks/meridian.studio/internal/storage"
	"github.com/meridianworks/meridian.studio/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store implements storage.PortalProfileStore and storage.ShareStore over a
// single SQLite file. Both read models share one visibility boundary so an
// admin visibility flip is observable by the very next share lookup.
type Store struct {
	sqlDB *sql.DB
}

// toMillis normalizes timestamps into millisecond precision for storage.
func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// fromMillis restores millisecond precision and keeps UTC normalization.
func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the gateway SQLite store and applies bundled migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetPortalProfile returns the profile for an identity-provider user id.
func (s *Store) GetPortalProfile(ctx context.Context, authUserID string) (storage.PortalProfile, error) {
	authUserID = strings.TrimSpace(authUserID)
	if authUserID == "" {
		return storage.PortalProfile{}, storage.ErrNotFound
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT auth_user_id, role, owned_tenant_slug, is_active, created_at, updated_at
FROM portal_profiles
WHERE auth_user_id = ?`, authUserID)

	var (
		profile   storage.PortalProfile
		role      string
		isActive  int64
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(&profile.AuthUserID, &role, &profile.OwnedTenantSlug, &isActive, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.PortalProfile{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.PortalProfile{}, fmt.Errorf("get portal profile: %w", err)
	}
	profile.Role = storage.PortalRole(role)
	profile.IsActive = isActive != 0
	profile.CreatedAt = fromMillis(createdAt)
	profile.UpdatedAt = fromMillis(updatedAt)
	return profile, nil
}

// PutPortalProfile inserts or replaces a portal profile.
func (s *Store) PutPortalProfile(ctx context.Context, profile storage.PortalProfile) error {
	profile.AuthUserID = strings.TrimSpace(profile.AuthUserID)
	if profile.AuthUserID == "" {
		return fmt.Errorf("auth user id is required")
	}
	if !profile.Role.Valid() {
		return fmt.Errorf("unknown portal role %q", profile.Role)
	}
	if profile.Role == storage.RoleClient && storage.NormalizeSlug(profile.OwnedTenantSlug) == "" {
		return fmt.Errorf("client profile requires an owned tenant slug")
	}

	isActive := 0
	if profile.IsActive {
		isActive = 1
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO portal_profiles (auth_user_id, role, owned_tenant_slug, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (auth_user_id) DO UPDATE SET
    role = excluded.role,
    owned_tenant_slug = excluded.owned_tenant_slug,
    is_active = excluded.is_active,
    updated_at = excluded.updated_at`,
		profile.AuthUserID,
		string(profile.Role),
		storage.NormalizeSlug(profile.OwnedTenantSlug),
		isActive,
		toMillis(profile.CreatedAt),
		toMillis(profile.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put portal profile: %w", err)
	}
	return nil
}

// GetShareableContentByToken returns the record for an exact token match.
//
// The lookup deliberately reads the live row every call; see storage.ShareStore.
func (s *Store) GetShareableContentByToken(ctx context.Context, token string) (storage.ShareableContent, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return storage.ShareableContent{}, storage.ErrNotFound
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, token, title, description, visibility, primary_unit_key, sub_routes, created_at, updated_at
FROM shareable_content
WHERE token = ?`, token)
	return scanShareableContent(row)
}

// PutShareableContent inserts or replaces a shareable content record.
func (s *Store) PutShareableContent(ctx context.Context, content storage.ShareableContent) error {
	content.ID = strings.TrimSpace(content.ID)
	content.Token = strings.TrimSpace(content.Token)
	if content.ID == "" || content.Token == "" {
		return fmt.Errorf("content id and token are required")
	}
	if content.Visibility != storage.VisibilityActive && content.Visibility != storage.VisibilityRevoked {
		return fmt.Errorf("unknown visibility %q", content.Visibility)
	}

	subRoutes := content.SubRoutes
	if subRoutes == nil {
		subRoutes = map[string]string{}
	}
	encoded, err := json.Marshal(subRoutes)
	if err != nil {
		return fmt.Errorf("encode sub routes: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO shareable_content
    (id, token, title, description, visibility, primary_unit_key, sub_routes, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    token = excluded.token,
    title = excluded.title,
    description = excluded.description,
    visibility = excluded.visibility,
    primary_unit_key = excluded.primary_unit_key,
    sub_routes = excluded.sub_routes,
    updated_at = excluded.updated_at`,
		content.ID,
		content.Token,
		content.Title,
		content.Description,
		string(content.Visibility),
		content.PrimaryUnitKey,
		string(encoded),
		toMillis(content.CreatedAt),
		toMillis(content.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put shareable content: %w", err)
	}
	return nil
}

// ListShareableContent returns all records, newest first.
func (s *Store) ListShareableContent(ctx context.Context) ([]storage.ShareableContent, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, token, title, description, visibility, primary_unit_key, sub_routes, created_at, updated_at
FROM shareable_content
ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list shareable content: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []storage.ShareableContent
	for rows.Next() {
		record, err := scanShareableContent(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shareable content: %w", err)
	}
	return records, nil
}

// SetShareVisibility flips a record's publication state.
func (s *Store) SetShareVisibility(ctx context.Context, id string, visibility storage.ShareVisibility, updatedAt time.Time) error {
	if visibility != storage.VisibilityActive && visibility != storage.VisibilityRevoked {
		return fmt.Errorf("unknown visibility %q", visibility)
	}
	result, err := s.sqlDB.ExecContext(ctx,
		"UPDATE shareable_content SET visibility = ?, updated_at = ? WHERE id = ?",
		string(visibility), toMillis(updatedAt), strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("set share visibility: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set share visibility rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShareableContent(row rowScanner) (storage.ShareableContent, error) {
	var (
		content    storage.ShareableContent
		visibility string
		subRoutes  string
		createdAt  int64
		updatedAt  int64
	)
	err := row.Scan(
		&content.ID,
		&content.Token,
		&content.Title,
		&content.Description,
		&visibility,
		&content.PrimaryUnitKey,
		&subRoutes,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ShareableContent{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.ShareableContent{}, fmt.Errorf("scan shareable content: %w", err)
	}

	content.Visibility = storage.ShareVisibility(visibility)
	content.CreatedAt = fromMillis(createdAt)
	content.UpdatedAt = fromMillis(updatedAt)
	content.SubRoutes = map[string]string{}
	if strings.TrimSpace(subRoutes) != "" {
		if err := json.Unmarshal([]byte(subRoutes), &content.SubRoutes); err != nil {
			return storage.ShareableContent{}, fmt.Errorf("decode sub routes: %w", err)
		}
	}
	return content, nil
}
