package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobtrack/internal/database"
	"jobtrack/internal/domain/job"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("not found")

// JobListFilter bounds the collection by creation date. Nil bounds are open;
// both nil means the whole collection.
type JobListFilter struct {
	From *time.Time
	To   *time.Time
}

// Methods that participate in import/delete batches take a database.Querier
// so the caller decides the transaction scope.
type JobRepository interface {
	List(ctx context.Context, f JobListFilter) ([]job.Job, error)
	GetByID(ctx context.Context, id int64) (job.Job, error)
	Search(ctx context.Context, term string, limit int) ([]job.Job, error)
	UpdateStatus(ctx context.Context, id int64, statusID int) error

	Exists(ctx context.Context, q database.Querier, id int64) (bool, error)
	Insert(ctx context.Context, q database.Querier, j job.Job) (int64, error)
	Replace(ctx context.Context, q database.Querier, j job.Job) error
	DeleteByIDs(ctx context.Context, q database.Querier, ids []int64) (int64, error)
	TruncateAll(ctx context.Context, q database.Querier) error
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, create_date, company, job_position, link, status_id`

func (r *PostgresJobRepository) List(ctx context.Context, f JobListFilter) ([]job.Job, error) {
	var (
		conds []string
		args  []any
	)
	if f.From != nil {
		args = append(args, *f.From)
		conds = append(conds, fmt.Sprintf("create_date >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		conds = append(conds, fmt.Sprintf("create_date <= $%d", len(args)))
	}

	query := `SELECT ` + jobColumns + ` FROM jobs`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY create_date DESC, id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanJobs(rows)
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id int64) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (r *PostgresJobRepository) Search(ctx context.Context, term string, limit int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 10
	}
	pattern := "%" + term + "%"
	rows, err := r.db.Query(
		ctx,
		`SELECT `+jobColumns+` FROM jobs
		 WHERE company ILIKE $1 OR link ILIKE $1
		 ORDER BY create_date DESC, id DESC
		 LIMIT $2`,
		pattern, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanJobs(rows)
}

func (r *PostgresJobRepository) UpdateStatus(ctx context.Context, id int64, statusID int) error {
	n, err := r.db.Exec(ctx, `UPDATE jobs SET status_id = $2 WHERE id = $1`, id, statusID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) Exists(ctx context.Context, q database.Querier, id int64) (bool, error) {
	row := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM jobs WHERE id = $1)`, id)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresJobRepository) Insert(ctx context.Context, q database.Querier, j job.Job) (int64, error) {
	row := q.QueryRow(
		ctx,
		`INSERT INTO jobs (create_date, company, job_position, link, status_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		j.CreateDate, j.Company, j.JobPosition, j.Link, j.StatusID,
	)
	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Replace overwrites every field except the identifier.
func (r *PostgresJobRepository) Replace(ctx context.Context, q database.Querier, j job.Job) error {
	n, err := q.Exec(
		ctx,
		`UPDATE jobs SET create_date = $2, company = $3, job_position = $4, link = $5, status_id = $6
		 WHERE id = $1`,
		j.ID, j.CreateDate, j.Company, j.JobPosition, j.Link, j.StatusID,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) DeleteByIDs(ctx context.Context, q database.Querier, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return q.Exec(ctx, `DELETE FROM jobs WHERE id = ANY($1)`, ids)
}

func (r *PostgresJobRepository) TruncateAll(ctx context.Context, q database.Querier) error {
	_, err := q.Exec(ctx, `TRUNCATE jobs, jobs_meta RESTART IDENTITY`)
	return err
}

type jobRow interface {
	Scan(dest ...any) error
}

func scanJob(row jobRow) (job.Job, error) {
	var j job.Job
	if err := row.Scan(&j.ID, &j.CreateDate, &j.Company, &j.JobPosition, &j.Link, &j.StatusID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func scanJobs(rows database.Rows) ([]job.Job, error) {
	out := make([]job.Job, 0)
	for rows.Next() {
		var j job.Job
		if err := rows.Scan(&j.ID, &j.CreateDate, &j.Company, &j.JobPosition, &j.Link, &j.StatusID); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
