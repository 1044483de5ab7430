package handler

import (
	"jobtrack/internal/delivery/http/middleware"
	"jobtrack/internal/pkg/response"
	"jobtrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DraftsHandler struct {
	uc usecase.DraftsUsecase
}

func NewDraftsHandler(uc usecase.DraftsUsecase) *DraftsHandler {
	return &DraftsHandler{uc: uc}
}

func (h *DraftsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.HandleGet)
	r.Put("/", h.HandleSave)
	r.Delete("/", h.HandleClear)
}

func (h *DraftsHandler) HandleGet(c fiber.Ctx) error {
	d, err := h.uc.Get(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, d)
}

func (h *DraftsHandler) HandleSave(c fiber.Ctx) error {
	var d usecase.Drafts
	if err := c.Bind().Body(&d); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.Save(c.Context(), d); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "draft saved", nil)
}

func (h *DraftsHandler) HandleClear(c fiber.Ctx) error {
	if err := h.uc.Clear(c.Context()); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "draft cleared", nil)
}
