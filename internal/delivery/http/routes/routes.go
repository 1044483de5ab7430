package routes

import (
	"jobtrack/internal/delivery/http/handler"
	v1 "jobtrack/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	deps   v1.Deps
}

func NewRegistry(deps v1.Deps, db, cache handler.Pinger) *Registry {
	return &Registry{
		health: handler.NewHealthHandler(db, cache),
		deps:   deps,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.deps)
}
