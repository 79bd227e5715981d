package api

import (
	"context"
	"time"

	"devfolio/app/blog"
	"devfolio/app/content"
	"devfolio/app/database"
	"devfolio/app/devto"
	"devfolio/app/videos"
)

type ArticleSource interface {
	ListArticles(ctx context.Context, username string, perPage int) ([]devto.Article, error)
	GetArticle(ctx context.Context, id string) (*devto.Article, error)
}

var _ ArticleSource = (*devto.Client)(nil)

type VideoSource interface {
	Run(ctx context.Context, channelID string, limit int) ([]videos.Video, error)
}

var _ VideoSource = (*videos.Fetcher)(nil)

type ExcerptExtractorInterface interface {
	Run(htmlData string) (string, error)
}

var _ ExcerptExtractorInterface = (*blog.ExcerptExtractor)(nil)

type Handler struct {
	articleSource    ArticleSource
	normalizer       *blog.Normalizer
	extractor        ExcerptExtractorInterface
	postRepo         database.PostRepository
	videoSource      VideoSource
	contentCache     *content.Cache
	defaultUsername  string
	defaultChannelID string
	cacheTTL         time.Duration
	version          string
}

// BlogResponse is the success envelope of the aggregation endpoint.
type BlogResponse struct {
	Success bool        `json:"success"`
	Posts   []blog.Post `json:"posts"`
	Total   int         `json:"total"`
}

// BlogPostResponse is the success envelope of the single-post endpoint.
type BlogPostResponse struct {
	Success bool      `json:"success"`
	Post    blog.Post `json:"post"`
}

// VideosResponse is the success envelope of the videos endpoint.
type VideosResponse struct {
	Success bool           `json:"success"`
	Videos  []videos.Video `json:"videos"`
	Total   int            `json:"total"`
}
