package app

import (
	"context"
	"log"
	"os"
	"time"

	"jobtrack/internal/capture"
	"jobtrack/internal/config"
	"jobtrack/internal/database"
	"jobtrack/internal/database/migration"
	"jobtrack/internal/database/seeder"
	dbpostgres "jobtrack/internal/database/postgres"
	"jobtrack/internal/domain/job"
	"jobtrack/internal/infrastructure/cache"
	"jobtrack/internal/repository"
	"jobtrack/internal/ws"
)

type Container struct {
	Config   config.Config
	DB       database.DB
	Cache    *cache.Redis
	Statuses job.StatusMap
	Hub      *ws.Hub
	Peeker   *capture.Peeker
	Logger   *log.Logger
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := (migration.Runner{Dir: "migrations"}).Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	statuses := loadStatuses(ctx, db, logger)
	redis := cache.NewRedis(cfg.Redis, logger)

	hub := ws.NewHub(logger)
	go hub.Run()
	ws.SetDefaultHub(hub)

	return &Container{
		Config:   cfg,
		DB:       db,
		Cache:    redis,
		Statuses: statuses,
		Hub:      hub,
		Peeker:   capture.NewPeeker(cfg.Peek, logger),
		Logger:   logger,
	}, nil
}

// loadStatuses reads the status catalog from the store; when that fails the
// built-in seed keeps label resolution working.
func loadStatuses(ctx context.Context, db database.DB, logger *log.Logger) job.StatusMap {
	entries, err := repository.NewPostgresStatusRepository(db).GetAll(ctx)
	if err != nil || len(entries) == 0 {
		if logger != nil {
			logger.Printf("[App] status load fell back to seed | error=%v", err)
		}
		return job.NewStatusMap(job.StatusSeed())
	}
	return job.NewStatusMap(entries)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
