package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"jobtrack/internal/database"
	"jobtrack/internal/domain/job"
	"jobtrack/internal/repository"
	"jobtrack/internal/ws"
)

const searchLimit = 10

type AddJobInput struct {
	Company     string
	JobPosition string
	Link        string
}

type CaptureUsecase interface {
	AddJob(ctx context.Context, in AddJobInput) (JobItem, error)
	SearchJobs(ctx context.Context, term string) ([]JobItem, error)
	UpdateStatus(ctx context.Context, jobID int64, statusID int) error
}

type Capture struct {
	db       database.DB
	jobs     repository.JobRepository
	statuses job.StatusMap
	cache    Cache
	logger   *log.Logger
	now      func() time.Time
}

func NewCaptureUsecase(db database.DB, jobs repository.JobRepository, statuses job.StatusMap, cache Cache, logger *log.Logger) *Capture {
	return &Capture{db: db, jobs: jobs, statuses: statuses, cache: cache, logger: logger, now: time.Now}
}

// AddJob appends one record with the default status. All three fields are
// required after trimming.
func (u *Capture) AddJob(ctx context.Context, in AddJobInput) (JobItem, error) {
	company := strings.TrimSpace(in.Company)
	position := strings.TrimSpace(in.JobPosition)
	link := strings.TrimSpace(in.Link)
	if company == "" || position == "" || link == "" {
		return JobItem{}, ErrInvalidInput
	}

	j := job.Job{
		CreateDate:  u.now().UTC(),
		Company:     company,
		JobPosition: position,
		Link:        link,
		StatusID:    job.DefaultStatusID,
	}

	id, err := u.jobs.Insert(ctx, u.db, j)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Capture] insert failed | error=%v", err)
		}
		return JobItem{}, ErrInternal
	}
	j.ID = id

	invalidateJobsCache(ctx, u.cache)
	ws.NotifyJobsUpdated("add")

	return u.toItem(j), nil
}

// SearchJobs matches the term case-insensitively against company or link and
// returns the newest ten hits.
func (u *Capture) SearchJobs(ctx context.Context, term string) ([]JobItem, error) {
	term = strings.TrimSpace(term)

	rows, err := u.jobs.Search(ctx, term, searchLimit)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Capture] search failed | error=%v", err)
		}
		return nil, ErrInternal
	}

	out := make([]JobItem, 0, len(rows))
	for _, j := range rows {
		out = append(out, u.toItem(j))
	}
	return out, nil
}

func (u *Capture) UpdateStatus(ctx context.Context, jobID int64, statusID int) error {
	if jobID <= 0 || statusID <= 0 {
		return ErrInvalidInput
	}

	if err := u.jobs.UpdateStatus(ctx, jobID, statusID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		if u.logger != nil {
			u.logger.Printf("[Capture] status update failed | job_id=%d error=%v", jobID, err)
		}
		return ErrInternal
	}

	invalidateJobsCache(ctx, u.cache)
	ws.NotifyJobsUpdated("status")
	return nil
}

func (u *Capture) toItem(j job.Job) JobItem {
	return JobItem{
		ID:          j.ID,
		CreateDate:  j.CreateDate,
		Company:     j.Company,
		JobPosition: j.JobPosition,
		Link:        j.Link,
		StatusID:    j.StatusID,
		StatusLabel: u.statuses.Label(j.StatusID),
	}
}
