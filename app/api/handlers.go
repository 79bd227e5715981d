package api

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"devfolio/app/blog"
	"devfolio/app/content"
	"devfolio/app/database"
	"devfolio/app/devto"
)

const defaultPostLimit = 10

// NewHandler wires the aggregation handler. The default author handle
// and channel are injected here instead of read from ambient state, so
// tests can exercise arbitrary handles.
func NewHandler(articleSource ArticleSource, postRepo database.PostRepository,
	videoSource VideoSource, contentCache *content.Cache,
	defaultUsername, defaultChannelID string, cacheTTL time.Duration, version string) *Handler {
	return &Handler{
		articleSource:    articleSource,
		normalizer:       blog.NewNormalizer(),
		extractor:        blog.NewExcerptExtractor(),
		postRepo:         postRepo,
		videoSource:      videoSource,
		contentCache:     contentCache,
		defaultUsername:  defaultUsername,
		defaultChannelID: defaultChannelID,
		cacheTTL:         cacheTTL,
		version:          version,
	}
}

// GetBlog is the aggregation endpoint: it fetches the configured
// author's articles from dev.to, normalizes them and returns the full
// list in a success envelope. A fresh cached set short-circuits the
// upstream call.
func (h *Handler) GetBlog(c *gin.Context) {
	username := cmp.Or(c.Query("username"), h.defaultUsername)
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dev.to username is not configured"})
		return
	}

	limit := parseLimit(c.Query("limit"))

	if h.postRepo != nil {
		posts, err := h.postRepo.GetFresh(username, limit, h.cacheTTL)
		if err != nil {
			slog.Warn("Cache lookup failed", "username", username, "error", err)
		}
		if posts != nil {
			h.servePosts(c, posts)
			return
		}
	}

	articles, err := h.articleSource.ListArticles(c.Request.Context(), username, limit)
	if err != nil {
		slog.Error("Upstream fetch failed", "username", username, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "upstream_error",
			"message": err.Error(),
		})
		return
	}

	posts := h.normalizer.Run(articles)

	if h.postRepo != nil {
		if err := h.postRepo.Upsert(username, limit, posts); err != nil {
			slog.Warn("Cache store failed", "username", username, "error", err)
		}
	}

	h.servePosts(c, posts)
}

func (h *Handler) servePosts(c *gin.Context, posts []blog.Post) {
	// Freshness hint for intermediaries, not a correctness requirement
	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", int(h.cacheTTL.Seconds())))
	c.JSON(http.StatusOK, BlogResponse{
		Success: true,
		Posts:   posts,
		Total:   len(posts),
	})
}

// GetBlogPost fetches a single article by ID. Articles published
// without a description get a plain-text excerpt extracted from the
// body HTML.
func (h *Handler) GetBlogPost(c *gin.Context) {
	id := c.Param("id")
	if _, err := strconv.Atoi(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "post ID must be numeric"})
		return
	}

	article, err := h.articleSource.GetArticle(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, devto.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		slog.Error("Upstream fetch failed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "upstream_error",
			"message": err.Error(),
		})
		return
	}

	posts := h.normalizer.Run([]devto.Article{*article})
	post := posts[0]

	if article.Description == "" && article.BodyHTML != "" {
		if excerpt, err := h.extractor.Run(article.BodyHTML); err == nil {
			post.Excerpt = excerpt
		} else {
			slog.Debug("Excerpt extraction failed", "id", id, "error", err)
		}
	}

	c.JSON(http.StatusOK, BlogPostResponse{
		Success: true,
		Post:    post,
	})
}

// GetVideos fetches and normalizes the configured YouTube channel's
// upload feed.
func (h *Handler) GetVideos(c *gin.Context) {
	channelID := cmp.Or(c.Query("channel"), h.defaultChannelID)
	if channelID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "YouTube channel is not configured"})
		return
	}

	limit := parseLimit(c.Query("limit"))

	channelVideos, err := h.videoSource.Run(c.Request.Context(), channelID, limit)
	if err != nil {
		slog.Error("Channel feed fetch failed", "channel", channelID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "upstream_error",
			"message": err.Error(),
		})
		return
	}

	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", int(h.cacheTTL.Seconds())))
	c.JSON(http.StatusOK, VideosResponse{
		Success: true,
		Videos:  channelVideos,
		Total:   len(channelVideos),
	})
}

// GetContentSection serves a static site content section (projects,
// skills, experience) from the YAML content cache.
func (h *Handler) GetContentSection(c *gin.Context) {
	sectionName := c.Param("section")

	document, err := h.contentCache.GetSection(sectionName)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "content section not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"section": sectionName,
		"data":    document,
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   h.version,
	}

	if h.postRepo != nil {
		if cachedCount, err := h.postRepo.Count(); err == nil {
			health["cached_post_sets"] = cachedCount
		}
	}

	if h.contentCache != nil {
		health["content_sections"] = h.contentCache.GetSectionCount()
	}

	c.JSON(http.StatusOK, health)
}

// parseLimit falls back to the default for anything that is not a
// positive integer.
func parseLimit(raw string) int {
	if raw == "" {
		return defaultPostLimit
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return defaultPostLimit
	}

	return limit
}
