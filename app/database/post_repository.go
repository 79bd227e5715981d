package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"devfolio/app/blog"
)

var _ PostRepository = (*SQLitePostRepository)(nil)

// SQLitePostRepository stores normalized post sets in SQLite so that
// repeated aggregation requests inside the freshness window skip the
// upstream API entirely.
type SQLitePostRepository struct {
	db *DB
}

func NewPostRepository(db *DB) *SQLitePostRepository {
	return &SQLitePostRepository{db: db}
}

func (r *SQLitePostRepository) GetFresh(username string, limit int, ttl time.Duration) ([]blog.Post, error) {
	cutoff := time.Now().UTC().Add(-ttl)

	var payload []byte
	err := r.db.QueryRow(`
		SELECT payload FROM cached_posts
		WHERE username = ? AND post_limit = ? AND fetched_at > ?
	`, username, limit, cutoff).Scan(&payload)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cached posts: %w", err)
	}

	var posts []blog.Post
	if err := json.Unmarshal(payload, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode cached posts: %w", err)
	}

	return posts, nil
}

func (r *SQLitePostRepository) Upsert(username string, limit int, posts []blog.Post) error {
	payload, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("failed to encode posts: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO cached_posts (username, post_limit, payload, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (username, post_limit)
		DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at
	`, username, limit, payload, time.Now().UTC())

	if err != nil {
		return fmt.Errorf("failed to upsert cached posts: %w", err)
	}

	return nil
}

func (r *SQLitePostRepository) PurgeStale(ttl time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-ttl)

	result, err := r.db.Exec(`DELETE FROM cached_posts WHERE fetched_at <= ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge stale posts: %w", err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged rows: %w", err)
	}

	return purged, nil
}

func (r *SQLitePostRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM cached_posts`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count cached posts: %w", err)
	}
	return count, nil
}
