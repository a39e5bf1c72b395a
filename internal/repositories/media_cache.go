package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// MediaCacheRepository persists resolved media paths so repeated
// exports skip directory scans for assets that were already located.
// One row exists per (platform, title, asset) triple.
type MediaCacheRepository struct {
	db *sql.DB
}

// NewMediaCacheRepository creates a new MediaCacheRepository with the given database connection
func NewMediaCacheRepository(db *sql.DB) *MediaCacheRepository {
	return &MediaCacheRepository{db: db}
}

// Get returns the cached path for an asset, or "" when no entry exists.
func (r *MediaCacheRepository) Get(platform, title, asset string) (string, error) {
	query := `
		SELECT path
		FROM media_cache
		WHERE platform = ? AND title = ? AND asset = ?
	`

	var path string
	err := r.db.QueryRow(query, platform, title, asset).Scan(&path)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read media cache: %w", err)
	}
	return path, nil
}

// Put stores a resolved path, replacing any previous entry for the
// same triple.
func (r *MediaCacheRepository) Put(platform, title, asset, path string) error {
	query := `
		INSERT INTO media_cache (platform, title, asset, path)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (platform, title, asset) DO UPDATE SET path = excluded.path
	`

	if _, err := r.db.Exec(query, platform, title, asset, path); err != nil {
		return fmt.Errorf("failed to write media cache: %w", err)
	}
	return nil
}

// Purge drops every cached entry. Used after moving or re-importing a
// media library.
func (r *MediaCacheRepository) Purge() (int64, error) {
	result, err := r.db.Exec(`DELETE FROM media_cache`)
	if err != nil {
		return 0, fmt.Errorf("failed to purge media cache: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged rows: %w", err)
	}
	return count, nil
}
