// Package hook owns the "fetch posts for display" lifecycle on behalf
// of presentational consumers: it calls the aggregation endpoint,
// tracks the loading/error/success transitions, derives summary
// statistics and supports manual retry. Consumers see the Snapshot
// surface and nothing else.
package hook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"devfolio/app/blog"
)

const defaultLimit = 10

const defaultTimeout = 10 * time.Second

// State is the loader's lifecycle state. The tagged representation
// keeps illegal combinations (loading and error at once) unrepresentable.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Snapshot is one consistent view of the loader state.
type Snapshot struct {
	State State
	Posts []blog.Post
	Err   string
}

type envelope struct {
	Success bool        `json:"success"`
	Posts   []blog.Post `json:"posts"`
	Total   int         `json:"total"`
	Error   string      `json:"error"`
	Message string      `json:"message"`
}

// Loader fetches posts from the aggregation endpoint. Every request
// carries a sequence number; only the response matching the most
// recently issued request may be applied, so a stale in-flight answer
// for a superseded limit is discarded instead of overwriting newer
// state. After Close the loader never mutates state again.
type Loader struct {
	baseURL    string
	httpClient *http.Client

	mu     sync.Mutex
	limit  int
	state  State
	posts  []blog.Post
	errMsg string
	seq    uint64
	closed bool
	subs   []chan Snapshot

	inflight sync.WaitGroup
}

func NewLoader(baseURL string, limit int) *Loader {
	if limit <= 0 {
		limit = defaultLimit
	}

	return &Loader{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		limit: limit,
		state: StateIdle,
	}
}

// Start issues the initial fetch.
func (l *Loader) Start(ctx context.Context) {
	l.fetch(ctx)
}

// Refetch repeats the request for the current limit, re-entering the
// loading transition.
func (l *Loader) Refetch(ctx context.Context) {
	l.fetch(ctx)
}

// SetLimit changes the requested post count and re-runs the fetch from
// scratch, superseding any request still in flight.
func (l *Loader) SetLimit(ctx context.Context, limit int) {
	if limit <= 0 {
		limit = defaultLimit
	}

	l.mu.Lock()
	l.limit = limit
	l.mu.Unlock()

	l.fetch(ctx)
}

// Close detaches the loader: in-flight responses are discarded on
// arrival and subscriber channels are closed.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.closed = true

	for _, sub := range l.subs {
		close(sub)
	}
	l.subs = nil
}

// Wait blocks until no request is in flight. Intended for orderly
// shutdown after Close.
func (l *Loader) Wait() {
	l.inflight.Wait()
}

// Subscribe returns a channel receiving a snapshot on every state
// transition. Slow receivers skip intermediate snapshots rather than
// block the loader.
func (l *Loader) Subscribe() <-chan Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	sub := make(chan Snapshot, 16)
	l.subs = append(l.subs, sub)
	return sub
}

func (l *Loader) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

func (l *Loader) Posts() []blog.Post {
	return l.Snapshot().Posts
}

func (l *Loader) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state == StateLoading
}

func (l *Loader) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errMsg
}

// Stats derives the summary statistics from the current post list at
// read time. They are never stored, so they cannot go stale.
func (l *Loader) Stats() blog.Stats {
	return blog.ComputeStats(l.Snapshot().Posts)
}

func (l *Loader) fetch(ctx context.Context) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}

	l.seq++
	seq := l.seq
	limit := l.limit
	l.state = StateLoading
	l.errMsg = ""
	l.notifyLocked()
	l.mu.Unlock()

	l.inflight.Add(1)
	go func() {
		defer l.inflight.Done()
		posts, errMsg := l.doRequest(ctx, limit)
		l.apply(seq, posts, errMsg)
	}()
}

// apply commits a completed request, unless a newer request has been
// issued or the loader is closed.
func (l *Loader) apply(seq uint64, posts []blog.Post, errMsg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || seq != l.seq {
		return
	}

	if errMsg != "" {
		l.state = StateError
		l.errMsg = errMsg
		l.posts = nil
	} else {
		l.state = StateSuccess
		l.errMsg = ""
		l.posts = posts
	}

	l.notifyLocked()
}

// doRequest performs one call against the aggregation endpoint and
// folds every failure mode into a single human-readable message.
func (l *Loader) doRequest(ctx context.Context, limit int) ([]blog.Post, string) {
	url := fmt.Sprintf("%s/api/blog?limit=%d", l.baseURL, limit)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Sprintf("failed to create request: %v", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Sprintf("failed to fetch posts: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Sprintf("failed to read response: %v", err)
	}

	var env envelope
	parseErr := json.Unmarshal(body, &env)

	if resp.StatusCode != http.StatusOK {
		if parseErr == nil {
			if env.Message != "" {
				return nil, env.Message
			}
			if env.Error != "" {
				return nil, env.Error
			}
		}
		return nil, fmt.Sprintf("HTTP error: %d", resp.StatusCode)
	}

	if parseErr != nil {
		return nil, fmt.Sprintf("failed to decode response: %v", parseErr)
	}

	if !env.Success {
		if env.Message != "" {
			return nil, env.Message
		}
		if env.Error != "" {
			return nil, env.Error
		}
		return nil, "failed to fetch posts"
	}

	return env.Posts, ""
}

func (l *Loader) snapshotLocked() Snapshot {
	posts := make([]blog.Post, len(l.posts))
	copy(posts, l.posts)

	return Snapshot{
		State: l.state,
		Posts: posts,
		Err:   l.errMsg,
	}
}

func (l *Loader) notifyLocked() {
	snapshot := l.snapshotLocked()
	for _, sub := range l.subs {
		select {
		case sub <- snapshot:
		default:
		}
	}
}
