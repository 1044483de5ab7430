package usecase

import (
	"context"
	"log"

	"jobtrack/internal/database"
	"jobtrack/internal/repository"
	"jobtrack/internal/ws"
)

type BulkDeleteUsecase interface {
	DeleteJobs(ctx context.Context, ids []int64) (int64, error)
	ClearAll(ctx context.Context) error
}

type BulkDelete struct {
	db     database.DB
	jobs   repository.JobRepository
	meta   repository.MetaRepository
	cache  Cache
	logger *log.Logger
}

func NewBulkDeleteUsecase(db database.DB, jobs repository.JobRepository, meta repository.MetaRepository, cache Cache, logger *log.Logger) *BulkDelete {
	return &BulkDelete{db: db, jobs: jobs, meta: meta, cache: cache, logger: logger}
}

// DeleteJobs removes the selected jobs and cascades to their metadata in one
// transaction. An empty selection is rejected before any store call.
func (u *BulkDelete) DeleteJobs(ctx context.Context, ids []int64) (int64, error) {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return 0, ErrEmptySelection
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Delete] begin failed | error=%v", err)
		}
		return 0, ErrInternal
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	deleted, err := u.jobs.DeleteByIDs(ctx, tx, ids)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Delete] jobs delete failed | error=%v", err)
		}
		return 0, ErrInternal
	}
	if _, err := u.meta.DeleteByJobIDs(ctx, tx, ids); err != nil {
		if u.logger != nil {
			u.logger.Printf("[Delete] meta cascade failed | error=%v", err)
		}
		return 0, ErrInternal
	}

	if err := tx.Commit(ctx); err != nil {
		if u.logger != nil {
			u.logger.Printf("[Delete] commit failed | error=%v", err)
		}
		return 0, ErrInternal
	}

	invalidateJobsCache(ctx, u.cache)
	ws.NotifyJobsUpdated("delete")

	return deleted, nil
}

// ClearAll wipes jobs and metadata; the status lookup stays seeded.
func (u *BulkDelete) ClearAll(ctx context.Context) error {
	if err := u.jobs.TruncateAll(ctx, u.db); err != nil {
		if u.logger != nil {
			u.logger.Printf("[Delete] clear all failed | error=%v", err)
		}
		return ErrInternal
	}

	invalidateJobsCache(ctx, u.cache)
	ws.NotifyJobsUpdated("clear")
	return nil
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
