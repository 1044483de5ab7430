package seeder

import (
	"context"
	"fmt"

	"jobtrack/internal/database"
	"jobtrack/internal/domain/job"
)

// StatusSeeder inserts the fixed application stages. Existing rows are left
// untouched so relabeled installs keep their labels.
type StatusSeeder struct{}

func (StatusSeeder) Name() string {
	return "status"
}

func (StatusSeeder) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}

	if err := EnsureTableColumns(ctx, db, "status", "id", "label"); err != nil {
		return err
	}

	for _, e := range job.StatusSeed() {
		_, err := db.Exec(
			ctx,
			`INSERT INTO status (id, label) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
			e.ID, e.Label,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
