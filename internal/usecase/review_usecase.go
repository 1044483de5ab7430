package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"time"

	"jobtrack/internal/domain/job"
	"jobtrack/internal/repository"
)

// PageSize is the fixed review-table window.
const PageSize = 50

const snapshotTTL = 5 * time.Minute

type ReviewParams struct {
	DateFrom string // YYYY-MM-DD, inclusive from start of day; empty = open
	DateTo   string // YYYY-MM-DD, inclusive to end of day; empty = open
	Page     int    // 1-based; callers reset to 1 on every new filter
}

type JobItem struct {
	ID          int64
	CreateDate  time.Time
	Company     string
	JobPosition string
	Link        string
	StatusID    int
	StatusLabel string
}

// JobPage is one window over the snapshot, with the navigation state the
// review table needs to disable prev/next at the boundaries.
type JobPage struct {
	Items      []JobItem
	Page       int
	TotalPages int
	Total      int
	HasPrev    bool
	HasNext    bool
}

type ReviewUsecase interface {
	ListJobs(ctx context.Context, params ReviewParams) (JobPage, error)
}

type Review struct {
	jobs     repository.JobRepository
	statuses job.StatusMap
	cache    Cache
	logger   *log.Logger
}

func NewReviewUsecase(jobs repository.JobRepository, statuses job.StatusMap, cache Cache, logger *log.Logger) *Review {
	return &Review{jobs: jobs, statuses: statuses, cache: cache, logger: logger}
}

func (u *Review) ListJobs(ctx context.Context, params ReviewParams) (JobPage, error) {
	filter, err := parseDateFilter(params.DateFrom, params.DateTo)
	if err != nil {
		return JobPage{}, ErrInvalidInput
	}

	snapshot, err := u.loadSnapshot(ctx, params, filter)
	if err != nil {
		return JobPage{}, ErrInternal
	}

	return paginate(snapshot, params.Page), nil
}

func (u *Review) loadSnapshot(ctx context.Context, params ReviewParams, filter repository.JobListFilter) ([]JobItem, error) {
	cacheKey := jobsListCacheKey(params.DateFrom, params.DateTo)

	if u.cache != nil {
		var cached []JobItem
		hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && hit {
			if u.logger != nil {
				u.logger.Printf("[Review] Cache HIT: %s", cacheKey)
			}
			return cached, nil
		}
	}

	rows, err := u.jobs.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	snapshot := make([]JobItem, 0, len(rows))
	for _, r := range rows {
		snapshot = append(snapshot, JobItem{
			ID:          r.ID,
			CreateDate:  r.CreateDate,
			Company:     r.Company,
			JobPosition: r.JobPosition,
			Link:        r.Link,
			StatusID:    r.StatusID,
			StatusLabel: u.statuses.Label(r.StatusID),
		})
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, cacheKey, snapshot, snapshotTTL)
	}
	return snapshot, nil
}

func paginate(snapshot []JobItem, page int) JobPage {
	total := len(snapshot)
	totalPages := (total + PageSize - 1) / PageSize

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return JobPage{
		Items:      snapshot[start:end],
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
		HasPrev:    page > 1,
		HasNext:    totalPages > 0 && page < totalPages,
	}
}

// parseDateFilter widens the day bounds to be inclusive on both ends:
// from at 00:00:00, to at 23:59:59.
func parseDateFilter(dateFrom, dateTo string) (repository.JobListFilter, error) {
	var f repository.JobListFilter

	if dateFrom != "" {
		d, err := time.ParseInLocation("2006-01-02", dateFrom, time.UTC)
		if err != nil {
			return repository.JobListFilter{}, err
		}
		f.From = &d
	}
	if dateTo != "" {
		d, err := time.ParseInLocation("2006-01-02", dateTo, time.UTC)
		if err != nil {
			return repository.JobListFilter{}, err
		}
		end := d.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		f.To = &end
	}
	return f, nil
}

func jobsListCacheKey(dateFrom, dateTo string) string {
	sum := sha256.Sum256([]byte(dateFrom + "|" + dateTo))
	return "jobs:list:" + hex.EncodeToString(sum[:])
}

func invalidateJobsCache(ctx context.Context, c Cache) {
	if c == nil {
		return
	}
	_ = c.DeleteByPattern(ctx, "jobs:list:*")
}
