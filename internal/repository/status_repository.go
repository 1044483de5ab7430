package repository

import (
	"context"

	"jobtrack/internal/database"
	"jobtrack/internal/domain/job"
)

type StatusRepository interface {
	GetAll(ctx context.Context) ([]job.StatusEntry, error)
}

type PostgresStatusRepository struct {
	db database.DB
}

func NewPostgresStatusRepository(db database.DB) *PostgresStatusRepository {
	return &PostgresStatusRepository{db: db}
}

func (r *PostgresStatusRepository) GetAll(ctx context.Context) ([]job.StatusEntry, error) {
	rows, err := r.db.Query(ctx, `SELECT id, label FROM status ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.StatusEntry, 0)
	for rows.Next() {
		var e job.StatusEntry
		if err := rows.Scan(&e.ID, &e.Label); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
