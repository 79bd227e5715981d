package database

import (
	"time"

	"devfolio/app/blog"
)

type PostRepository interface {
	// GetFresh returns the cached posts for (username, limit) when
	// fetched within ttl, or nil on a miss.
	GetFresh(username string, limit int, ttl time.Duration) ([]blog.Post, error)
	Upsert(username string, limit int, posts []blog.Post) error
	PurgeStale(ttl time.Duration) (int64, error)
	Count() (int, error)
}
