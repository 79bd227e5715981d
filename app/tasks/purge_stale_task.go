package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"devfolio/app/database"
)

// PurgeStaleTask drops cache rows that have aged well past the
// freshness window, keeping the database from growing with abandoned
// (username, limit) combinations.
type PurgeStaleTask struct {
	Task
	retention time.Duration
	postRepo  database.PostRepository
}

func NewPurgeStaleTask(retention time.Duration, postRepo database.PostRepository) *PurgeStaleTask {
	return &PurgeStaleTask{
		Task:      NewTask(TaskTypePurgeStale, "cache"),
		retention: retention,
		postRepo:  postRepo,
	}
}

func (t *PurgeStaleTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	purged, err := t.postRepo.PurgeStale(t.retention)
	if err != nil {
		return fmt.Errorf("failed to purge stale cache rows: %w", err)
	}

	if purged > 0 {
		slog.Info("Task completed",
			"type", "PurgeStale",
			"duration", t.GetDuration(),
			"purged", purged)
	}

	return nil
}
