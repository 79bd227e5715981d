package videos

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const feedURLTemplate = "https://www.youtube.com/feeds/videos.xml?channel_id=%s"

const defaultTimeout = 10 * time.Second

// Fetcher retrieves and normalizes a YouTube channel's upload feed.
type Fetcher struct {
	feedURLTemplate string
	userAgent       string
	httpClient      *http.Client
	gofeedParser    *gofeed.Parser
}

func NewFetcher(userAgent string) *Fetcher {
	return &Fetcher{
		feedURLTemplate: feedURLTemplate,
		userAgent:       userAgent,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		gofeedParser: gofeed.NewParser(),
	}
}

func (f *Fetcher) Run(ctx context.Context, channelID string, limit int) ([]Video, error) {
	data, err := f.fetchFeed(ctx, fmt.Sprintf(f.feedURLTemplate, channelID))
	if err != nil {
		return nil, err
	}

	feed, err := f.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse channel feed: %w", err)
	}

	videos := make([]Video, 0, len(feed.Items))
	for _, item := range feed.Items {
		if limit > 0 && len(videos) >= limit {
			break
		}
		videos = append(videos, f.normalizeItem(item))
	}

	return videos, nil
}

func (f *Fetcher) fetchFeed(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

func (f *Fetcher) normalizeItem(item *gofeed.Item) Video {
	// Entry IDs look like "yt:video:VIDEOID"
	id := strings.TrimPrefix(item.GUID, "yt:video:")

	video := Video{
		ID:        id,
		Title:     item.Title,
		URL:       item.Link,
		Thumbnail: f.extractThumbnail(item),
	}

	if video.Thumbnail == "" && id != "" {
		video.Thumbnail = fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", id)
	}

	if item.PublishedParsed != nil {
		video.PublishedAt = item.PublishedParsed.UTC().Format(time.RFC3339)
	} else {
		video.PublishedAt = item.Published
	}

	return video
}

// extractThumbnail digs the media:group/media:thumbnail URL out of the
// feed extensions.
func (f *Fetcher) extractThumbnail(item *gofeed.Item) string {
	media, ok := item.Extensions["media"]
	if !ok {
		return ""
	}

	for _, group := range media["group"] {
		for _, thumbnail := range group.Children["thumbnail"] {
			if url := thumbnail.Attrs["url"]; url != "" {
				return url
			}
		}
	}

	return ""
}
