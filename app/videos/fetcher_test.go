package videos

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const channelFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015"
      xmlns:media="http://search.yahoo.com/mrss/"
      xmlns="http://www.w3.org/2005/Atom">
  <id>yt:channel:UC123</id>
  <title>Test Channel</title>
  <entry>
    <id>yt:video:abc123</id>
    <yt:videoId>abc123</yt:videoId>
    <title>First Video</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=abc123"/>
    <published>2024-02-01T12:00:00+00:00</published>
    <media:group>
      <media:title>First Video</media:title>
      <media:thumbnail url="https://i.ytimg.com/vi/abc123/hqdefault.jpg" width="480" height="360"/>
    </media:group>
  </entry>
  <entry>
    <id>yt:video:def456</id>
    <yt:videoId>def456</yt:videoId>
    <title>Second Video</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=def456"/>
    <published>2024-01-15T09:30:00+00:00</published>
  </entry>
</feed>`

func newTestFetcher(serverURL string) *Fetcher {
	fetcher := NewFetcher("test-agent")
	fetcher.feedURLTemplate = serverURL + "/feeds/videos.xml?channel_id=%s"
	return fetcher
}

func TestRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("channel_id"); got != "UC123" {
			t.Errorf("Expected channel_id 'UC123', got: %s", got)
		}
		w.Header().Set("Content-Type", "application/atom+xml")
		fmt.Fprint(w, channelFeed)
	}))
	defer server.Close()

	fetcher := newTestFetcher(server.URL)
	videos, err := fetcher.Run(context.Background(), "UC123", 10)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("Expected 2 videos, got: %d", len(videos))
	}

	first := videos[0]
	if first.ID != "abc123" {
		t.Errorf("Expected ID 'abc123', got: %s", first.ID)
	}
	if first.Title != "First Video" {
		t.Errorf("Expected title 'First Video', got: %s", first.Title)
	}
	if first.URL != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("Expected watch URL, got: %s", first.URL)
	}
	if first.Thumbnail != "https://i.ytimg.com/vi/abc123/hqdefault.jpg" {
		t.Errorf("Expected media thumbnail, got: %s", first.Thumbnail)
	}
	if first.PublishedAt != "2024-02-01T12:00:00Z" {
		t.Errorf("Expected published timestamp, got: %s", first.PublishedAt)
	}

	// Second entry has no media:group, thumbnail falls back to the known URL scheme
	if videos[1].Thumbnail != "https://i.ytimg.com/vi/def456/hqdefault.jpg" {
		t.Errorf("Expected fallback thumbnail, got: %s", videos[1].Thumbnail)
	}
}

func TestRunLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, channelFeed)
	}))
	defer server.Close()

	fetcher := newTestFetcher(server.URL)
	videos, err := fetcher.Run(context.Background(), "UC123", 1)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(videos) != 1 {
		t.Fatalf("Expected 1 video, got: %d", len(videos))
	}
}

func TestRunUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	fetcher := newTestFetcher(server.URL)
	if _, err := fetcher.Run(context.Background(), "UC123", 10); err == nil {
		t.Fatal("Expected error for upstream 503")
	}
}
