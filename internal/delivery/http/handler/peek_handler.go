package handler

import (
	"context"

	"jobtrack/internal/capture"
	"jobtrack/internal/delivery/http/dto"
	"jobtrack/internal/delivery/http/middleware"
	"jobtrack/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Peeker interface {
	Peek(ctx context.Context, rawURL string) (capture.PagePeek, error)
}

type PeekHandler struct {
	peeker Peeker
}

func NewPeekHandler(peeker Peeker) *PeekHandler {
	return &PeekHandler{peeker: peeker}
}

func (h *PeekHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.HandlePeek)
}

// HandlePeek resolves ?url= into prefill hints for the capture form. A page
// that cannot be fetched is a client problem, not a server one.
func (h *PeekHandler) HandlePeek(c fiber.Ctx) error {
	rawURL := c.Query("url")
	if rawURL == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "url is required", nil, nil)
	}

	p, err := h.peeker.Peek(c.Context(), rawURL)
	if err != nil {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "could not resolve page", nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.PeekResponse{
		Title: p.Title,
		Site:  p.Site,
		URL:   p.URL,
	})
}
