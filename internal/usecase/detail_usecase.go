package usecase

import (
	"context"
	"errors"
	"log"

	"jobtrack/internal/domain/job"
	"jobtrack/internal/repository"
)

type JobDetail struct {
	Job  JobItem
	Meta []job.Meta
}

type DetailUsecase interface {
	GetJob(ctx context.Context, id int64) (JobDetail, error)
}

type Detail struct {
	jobs     repository.JobRepository
	meta     repository.MetaRepository
	statuses job.StatusMap
	logger   *log.Logger
}

func NewDetailUsecase(jobs repository.JobRepository, meta repository.MetaRepository, statuses job.StatusMap, logger *log.Logger) *Detail {
	return &Detail{jobs: jobs, meta: meta, statuses: statuses, logger: logger}
}

func (u *Detail) GetJob(ctx context.Context, id int64) (JobDetail, error) {
	if id <= 0 {
		return JobDetail{}, ErrInvalidInput
	}

	j, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return JobDetail{}, ErrNotFound
		}
		if u.logger != nil {
			u.logger.Printf("[Detail] lookup failed | job_id=%d error=%v", id, err)
		}
		return JobDetail{}, ErrInternal
	}

	meta, err := u.meta.ListByJobID(ctx, id)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Detail] meta lookup failed | job_id=%d error=%v", id, err)
		}
		return JobDetail{}, ErrInternal
	}

	return JobDetail{
		Job: JobItem{
			ID:          j.ID,
			CreateDate:  j.CreateDate,
			Company:     j.Company,
			JobPosition: j.JobPosition,
			Link:        j.Link,
			StatusID:    j.StatusID,
			StatusLabel: u.statuses.Label(j.StatusID),
		},
		Meta: meta,
	}, nil
}
