package tasks

import (
	"context"

	"devfolio/app/devto"
)

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to manage background cache refreshing.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// ArticleLister is the slice of the dev.to client the refresh task needs.
type ArticleLister interface {
	ListArticles(ctx context.Context, username string, perPage int) ([]devto.Article, error)
}

var _ ArticleLister = (*devto.Client)(nil)
