package app

import (
	"fmt"
	"strings"

	"jobtrack/internal/config"
	"jobtrack/internal/delivery/http/middleware"
	"jobtrack/internal/delivery/http/routes"
	v1 "jobtrack/internal/delivery/http/routes/v1"
	"jobtrack/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	container, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	app := New(container)
	return app, container.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewErrorMiddleware().Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	deps := v1.Deps{
		DB:       c.DB,
		Cache:    c.Cache,
		Statuses: c.Statuses,
		Peeker:   c.Peeker,
		WS:       ws.NewHandler(c.Hub, c.Logger),
		Logger:   c.Logger,
	}

	routes.NewRegistry(deps, c.DB, c.Cache).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
