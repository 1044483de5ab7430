package repository

import (
	"context"

	"jobtrack/internal/database"
	"jobtrack/internal/domain/job"
)

type MetaRepository interface {
	ListByJobID(ctx context.Context, jobID int64) ([]job.Meta, error)
	Insert(ctx context.Context, q database.Querier, m job.Meta) (int64, error)
	DeleteByJobIDs(ctx context.Context, q database.Querier, jobIDs []int64) (int64, error)
}

type PostgresMetaRepository struct {
	db database.DB
}

func NewPostgresMetaRepository(db database.DB) *PostgresMetaRepository {
	return &PostgresMetaRepository{db: db}
}

func (r *PostgresMetaRepository) ListByJobID(ctx context.Context, jobID int64) ([]job.Meta, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, job_id, label, value FROM jobs_meta WHERE job_id = $1 ORDER BY id ASC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Meta, 0)
	for rows.Next() {
		var m job.Meta
		if err := rows.Scan(&m.ID, &m.JobID, &m.Label, &m.Value); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMetaRepository) Insert(ctx context.Context, q database.Querier, m job.Meta) (int64, error) {
	row := q.QueryRow(
		ctx,
		`INSERT INTO jobs_meta (job_id, label, value) VALUES ($1, $2, $3) RETURNING id`,
		m.JobID, m.Label, m.Value,
	)
	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// DeleteByJobIDs is the cascade half of a bulk delete. It runs in the same
// transaction as the job deletes.
func (r *PostgresMetaRepository) DeleteByJobIDs(ctx context.Context, q database.Querier, jobIDs []int64) (int64, error) {
	if len(jobIDs) == 0 {
		return 0, nil
	}
	return q.Exec(ctx, `DELETE FROM jobs_meta WHERE job_id = ANY($1)`, jobIDs)
}
