package hook

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"devfolio/app/blog"
)

func waitForState(t *testing.T, sub <-chan Snapshot, want State) Snapshot {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case snapshot, ok := <-sub:
			if !ok {
				t.Fatal("Subscription closed while waiting")
			}
			if snapshot.State == want {
				return snapshot
			}
		case <-deadline:
			t.Fatalf("Timed out waiting for state %v", want)
		}
	}
}

func postsEnvelope(posts []blog.Post) []byte {
	data, _ := json.Marshal(map[string]any{
		"success": true,
		"posts":   posts,
		"total":   len(posts),
	})
	return data
}

func TestLoaderSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(postsEnvelope([]blog.Post{
			{ID: "1", Title: "First", ReadTime: "4 min", Views: 10, Reactions: 1},
			{ID: "2", Title: "Second", ReadTime: "6 min", Views: 20, Reactions: 2},
		}))
	}))
	defer server.Close()

	loader := NewLoader(server.URL, 10)
	sub := loader.Subscribe()

	loader.Start(context.Background())

	waitForState(t, sub, StateLoading)
	snapshot := waitForState(t, sub, StateSuccess)

	if len(snapshot.Posts) != 2 {
		t.Fatalf("Expected 2 posts, got: %d", len(snapshot.Posts))
	}
	if snapshot.Err != "" {
		t.Errorf("Expected no error, got: %s", snapshot.Err)
	}

	stats := loader.Stats()
	if stats.FeaturedPost == nil || stats.FeaturedPost.ID != "1" {
		t.Errorf("Expected featured post '1', got: %+v", stats.FeaturedPost)
	}
	if len(stats.RegularPosts) != 1 {
		t.Errorf("Expected 1 regular post, got: %d", len(stats.RegularPosts))
	}
	if stats.TotalViews != 30 || stats.TotalReactions != 3 {
		t.Errorf("Expected totals 30/3, got: %d/%d", stats.TotalViews, stats.TotalReactions)
	}
	if stats.AverageReadTime != 5 {
		t.Errorf("Expected average read time 5, got: %d", stats.AverageReadTime)
	}
}

func TestLoaderUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "upstream_error", "message": "dev.to API error: 503"}`))
	}))
	defer server.Close()

	loader := NewLoader(server.URL, 10)
	sub := loader.Subscribe()

	loader.Start(context.Background())
	snapshot := waitForState(t, sub, StateError)

	if snapshot.Err != "dev.to API error: 503" {
		t.Errorf("Expected the envelope message, got: %s", snapshot.Err)
	}
	if len(snapshot.Posts) != 0 {
		t.Errorf("Expected empty posts on error, got: %d", len(snapshot.Posts))
	}
	if loader.Loading() {
		t.Error("Expected loading cleared after error")
	}
}

func TestLoaderFalsySuccessEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "message": "nope"}`))
	}))
	defer server.Close()

	loader := NewLoader(server.URL, 10)
	sub := loader.Subscribe()

	loader.Start(context.Background())
	snapshot := waitForState(t, sub, StateError)

	if snapshot.Err != "nope" {
		t.Errorf("Expected 'nope', got: %s", snapshot.Err)
	}
}

func TestLoaderTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	loader := NewLoader(server.URL, 10)
	sub := loader.Subscribe()

	loader.Start(context.Background())
	snapshot := waitForState(t, sub, StateError)

	if snapshot.Err == "" {
		t.Error("Expected a transport-level error message")
	}
}

func TestLoaderRefetch(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write(postsEnvelope([]blog.Post{{ID: strconv.Itoa(requests)}}))
	}))
	defer server.Close()

	loader := NewLoader(server.URL, 10)
	sub := loader.Subscribe()

	loader.Start(context.Background())
	waitForState(t, sub, StateSuccess)

	loader.Refetch(context.Background())
	waitForState(t, sub, StateLoading)
	snapshot := waitForState(t, sub, StateSuccess)

	if requests != 2 {
		t.Errorf("Expected 2 requests, got: %d", requests)
	}
	if snapshot.Posts[0].ID != "2" {
		t.Errorf("Expected refreshed posts, got: %s", snapshot.Posts[0].ID)
	}
}

func TestLoaderStaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := r.URL.Query().Get("limit")
		if limit == "3" {
			// Simulate a slow round-trip for the superseded request
			<-release
		}
		w.Write(postsEnvelope([]blog.Post{{ID: limit, Title: "limit " + limit}}))
	}))
	defer server.Close()

	loader := NewLoader(server.URL, 3)
	sub := loader.Subscribe()

	loader.Start(context.Background())
	waitForState(t, sub, StateLoading)

	// The limit changes while the first request is still in flight
	loader.SetLimit(context.Background(), 5)
	snapshot := waitForState(t, sub, StateSuccess)
	if snapshot.Posts[0].ID != "5" {
		t.Fatalf("Expected posts for limit 5, got: %s", snapshot.Posts[0].ID)
	}

	// Let the stale response arrive; it must be discarded
	close(release)
	loader.Wait()

	final := loader.Snapshot()
	if final.State != StateSuccess {
		t.Errorf("Expected success state, got: %v", final.State)
	}
	if final.Posts[0].ID != "5" {
		t.Errorf("Expected stale response discarded, got posts for limit %s", final.Posts[0].ID)
	}
}

func TestLoaderCloseDiscardsInFlight(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write(postsEnvelope([]blog.Post{{ID: "1"}}))
	}))
	defer server.Close()

	loader := NewLoader(server.URL, 10)
	sub := loader.Subscribe()

	loader.Start(context.Background())
	waitForState(t, sub, StateLoading)

	loader.Close()
	close(release)
	loader.Wait()

	// No state mutation after Close
	if snapshot := loader.Snapshot(); snapshot.State != StateLoading {
		t.Errorf("Expected state frozen at loading, got: %v", snapshot.State)
	}

	if _, ok := <-sub; ok {
		t.Error("Expected subscription channel closed")
	}
}

func TestLoaderDefaultLimit(t *testing.T) {
	var gotLimit string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		w.Write(postsEnvelope(nil))
	}))
	defer server.Close()

	loader := NewLoader(server.URL, 0)
	sub := loader.Subscribe()

	loader.Start(context.Background())
	waitForState(t, sub, StateSuccess)

	if gotLimit != "10" {
		t.Errorf("Expected default limit 10, got: %s", gotLimit)
	}
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		StateIdle:    "idle",
		StateLoading: "loading",
		StateSuccess: "success",
		StateError:   "error",
		State(99):    "unknown",
	}

	for state, expected := range cases {
		if got := state.String(); got != expected {
			t.Errorf("State(%d).String(): expected %q, got %q", state, expected, got)
		}
	}
}

func ExampleLoader() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(postsEnvelope([]blog.Post{{ID: "1", Title: "Hello"}}))
	}))
	defer server.Close()

	loader := NewLoader(server.URL, 10)
	sub := loader.Subscribe()

	loader.Start(context.Background())
	for snapshot := range sub {
		if snapshot.State == StateSuccess {
			fmt.Println(snapshot.Posts[0].Title)
			loader.Close()
		}
	}
	// Output: Hello
}
