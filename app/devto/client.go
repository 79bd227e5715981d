package devto

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrNotFound is returned when the requested article does not exist upstream.
var ErrNotFound = errors.New("article not found")

const defaultTimeout = 10 * time.Second

// Client is a read-only client for the dev.to public API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewClient(baseURL, userAgent string) *Client {
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// ListArticles fetches the published articles of a single author,
// newest first, as returned by the upstream API.
func (c *Client) ListArticles(ctx context.Context, username string, perPage int) ([]Article, error) {
	query := url.Values{}
	query.Set("username", username)
	query.Set("per_page", strconv.Itoa(perPage))

	data, err := c.get(ctx, "/articles?"+query.Encode())
	if err != nil {
		return nil, err
	}

	var articles []Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("failed to decode articles payload: %w", err)
	}

	return articles, nil
}

// GetArticle fetches a single article by its numeric ID. The show endpoint
// flips tag_list and tags compared to the index endpoint, so tags are
// decoded separately and copied over.
func (c *Client) GetArticle(ctx context.Context, id string) (*Article, error) {
	data, err := c.get(ctx, "/articles/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	var detail struct {
		Article
		TagList json.RawMessage `json:"tag_list"`
		Tags    []string        `json:"tags"`
	}
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, fmt.Errorf("failed to decode article payload: %w", err)
	}

	article := detail.Article
	article.TagList = detail.Tags

	return &article, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from dev.to: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dev.to API error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
