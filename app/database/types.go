package database

import (
	"time"
)

// CachedPosts is one cached result set, keyed by the author handle and
// the requested post count.
type CachedPosts struct {
	Username  string
	Limit     int
	Payload   []byte // JSON-encoded []blog.Post
	FetchedAt time.Time
}
