package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"devfolio/app/blog"
	"devfolio/app/database"
)

// RefreshPostsTask warms the post cache for one author so that the
// aggregation endpoint keeps answering from SQLite inside the
// freshness window.
type RefreshPostsTask struct {
	Task
	username      string
	limit         int
	ttl           time.Duration
	articleLister ArticleLister
	normalizer    *blog.Normalizer
	postRepo      database.PostRepository
}

func NewRefreshPostsTask(username string, limit int, ttl time.Duration,
	articleLister ArticleLister, postRepo database.PostRepository) *RefreshPostsTask {
	return &RefreshPostsTask{
		Task:          NewTask(TaskTypeRefreshPosts, username),
		username:      username,
		limit:         limit,
		ttl:           ttl,
		articleLister: articleLister,
		normalizer:    blog.NewNormalizer(),
		postRepo:      postRepo,
	}
}

func (t *RefreshPostsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	// Refresh at half the TTL so readers never see a cold cache
	fresh, err := t.postRepo.GetFresh(t.username, t.limit, t.ttl/2)
	if err != nil {
		return fmt.Errorf("failed to check cache freshness: %w", err)
	}
	if fresh != nil {
		slog.Debug("Cache still fresh, skipping", "username", t.username)
		return nil
	}

	articles, err := t.articleLister.ListArticles(ctx, t.username, t.limit)
	if err != nil {
		return fmt.Errorf("failed to fetch articles: %w", err)
	}

	posts := t.normalizer.Run(articles)

	if err := t.postRepo.Upsert(t.username, t.limit, posts); err != nil {
		return fmt.Errorf("failed to store posts: %w", err)
	}

	slog.Info("Task completed",
		"type", "RefreshPosts",
		"username", t.username,
		"duration", t.GetDuration(),
		"posts", len(posts))

	return nil
}
