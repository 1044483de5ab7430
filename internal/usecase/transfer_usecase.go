package usecase

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"jobtrack/internal/csvio"
	"jobtrack/internal/database"
	"jobtrack/internal/domain/job"
	"jobtrack/internal/repository"
	"jobtrack/internal/ws"
)

type ImportResult struct {
	Imported int
	Skipped  []csvio.SkippedRow
}

type TransferUsecase interface {
	ImportCSV(ctx context.Context, text string) (ImportResult, error)
	ExportCSV(ctx context.Context) (content string, filename string, err error)
}

type Transfer struct {
	db       database.DB
	jobs     repository.JobRepository
	statuses job.StatusMap
	cache    Cache
	logger   *log.Logger
	now      func() time.Time
}

func NewTransferUsecase(db database.DB, jobs repository.JobRepository, statuses job.StatusMap, cache Cache, logger *log.Logger) *Transfer {
	return &Transfer{db: db, jobs: jobs, statuses: statuses, cache: cache, logger: logger, now: time.Now}
}

// ImportCSV reconciles CSV rows against the job collection inside a single
// transaction: a row with the ID of an existing job replaces that job's
// fields, any other row inserts a new record with a store-assigned id. The
// whole import is atomic; on any write failure nothing is committed and the
// reported count is zero.
func (u *Transfer) ImportCSV(ctx context.Context, text string) (ImportResult, error) {
	decoded, err := csvio.Decode(text)
	if err != nil {
		if errors.Is(err, csvio.ErrBadHeader) {
			return ImportResult{}, ErrBadHeader
		}
		return ImportResult{}, ErrInvalidInput
	}

	for _, s := range decoded.Skipped {
		if u.logger != nil {
			u.logger.Printf("[Import] skipping row | line=%d reason=%s", s.Line, s.Reason)
		}
	}

	if len(decoded.Rows) == 0 {
		return ImportResult{Skipped: decoded.Skipped}, ErrNoRows
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Import] begin failed | error=%v", err)
		}
		return ImportResult{Skipped: decoded.Skipped}, ErrInternal
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	written := 0
	for _, row := range decoded.Rows {
		if err := u.reconcileRow(ctx, tx, row); err != nil {
			if u.logger != nil {
				u.logger.Printf("[Import] row write failed, rolling back | error=%v", err)
			}
			return ImportResult{Skipped: decoded.Skipped}, ErrInternal
		}
		written++
	}

	if err := tx.Commit(ctx); err != nil {
		if u.logger != nil {
			u.logger.Printf("[Import] commit failed | error=%v", err)
		}
		return ImportResult{Skipped: decoded.Skipped}, ErrInternal
	}

	invalidateJobsCache(ctx, u.cache)
	ws.NotifyJobsUpdated("import")

	return ImportResult{Imported: written, Skipped: decoded.Skipped}, nil
}

func (u *Transfer) reconcileRow(ctx context.Context, tx database.Tx, row csvio.Row) error {
	j := job.Job{
		Company:     row.Company,
		JobPosition: row.JobPosition,
		Link:        row.Link,
		CreateDate:  u.parseCreateDate(row.CreateDate),
		StatusID:    u.statuses.Resolve(row.Status),
	}

	if id, err := strconv.ParseInt(row.ID, 10, 64); err == nil {
		exists, err := u.jobs.Exists(ctx, tx, id)
		if err != nil {
			return err
		}
		if exists {
			j.ID = id
			return u.jobs.Replace(ctx, tx, j)
		}
		// Unknown id: insert fresh, the supplied id is ignored.
	}

	_, err := u.jobs.Insert(ctx, tx, j)
	return err
}

func (u *Transfer) parseCreateDate(raw string) time.Time {
	if raw == "" {
		return u.now().UTC()
	}
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	if u.logger != nil {
		u.logger.Printf("[Import] unparseable CreateDate, defaulting to now | value=%q", raw)
	}
	return u.now().UTC()
}

// ExportCSV renders the full collection newest-first with status labels
// resolved. It never mutates the store.
func (u *Transfer) ExportCSV(ctx context.Context) (string, string, error) {
	jobs, err := u.jobs.List(ctx, repository.JobListFilter{})
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Export] list failed | error=%v", err)
		}
		return "", "", ErrInternal
	}

	rows := make([]csvio.Row, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, csvio.Row{
			ID:          strconv.FormatInt(j.ID, 10),
			CreateDate:  j.CreateDate.UTC().Format(time.RFC3339),
			Company:     j.Company,
			JobPosition: j.JobPosition,
			Link:        j.Link,
			Status:      u.statuses.Label(j.StatusID),
		})
	}

	return csvio.Encode(rows), csvio.ExportFilename(u.now()), nil
}
