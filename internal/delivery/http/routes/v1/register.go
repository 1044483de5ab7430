package v1

import (
	"log"

	"jobtrack/internal/capture"
	"jobtrack/internal/database"
	"jobtrack/internal/delivery/http/handler"
	"jobtrack/internal/domain/job"
	"jobtrack/internal/repository"
	"jobtrack/internal/usecase"
	"jobtrack/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Deps carries the shared infrastructure the v1 routes build on.
type Deps struct {
	DB       database.DB
	Cache    usecase.Cache
	Statuses job.StatusMap
	Peeker   *capture.Peeker
	WS       *ws.Handler
	Logger   *log.Logger
}

func Register(r fiber.Router, d Deps) {
	if r == nil {
		return
	}

	jobRepo := repository.NewPostgresJobRepository(d.DB)
	metaRepo := repository.NewPostgresMetaRepository(d.DB)

	reviewUC := usecase.NewReviewUsecase(jobRepo, d.Statuses, d.Cache, d.Logger)
	captureUC := usecase.NewCaptureUsecase(d.DB, jobRepo, d.Statuses, d.Cache, d.Logger)
	detailUC := usecase.NewDetailUsecase(jobRepo, metaRepo, d.Statuses, d.Logger)
	deleteUC := usecase.NewBulkDeleteUsecase(d.DB, jobRepo, metaRepo, d.Cache, d.Logger)
	transferUC := usecase.NewTransferUsecase(d.DB, jobRepo, d.Statuses, d.Cache, d.Logger)
	draftsUC := usecase.NewDraftsUsecase(d.Cache, d.Logger)

	jobsHandler := handler.NewJobsHandler(reviewUC, captureUC, detailUC, deleteUC)
	transferHandler := handler.NewTransferHandler(transferUC)
	draftsHandler := handler.NewDraftsHandler(draftsUC)
	peekHandler := handler.NewPeekHandler(d.Peeker)
	adminHandler := handler.NewAdminHandler(deleteUC)

	jobsGroup := r.Group("/jobs")
	if d.WS != nil {
		jobsGroup.Get("/ws", d.WS.HandleJobsWS)
	}
	transferHandler.RegisterRoutes(jobsGroup)
	jobsHandler.RegisterRoutes(jobsGroup)

	draftsHandler.RegisterRoutes(r.Group("/drafts"))
	peekHandler.RegisterRoutes(r.Group("/peek"))
	adminHandler.RegisterRoutes(r.Group("/admin"))
}
