package handler

import (
	"jobtrack/internal/delivery/http/middleware"
	"jobtrack/internal/pkg/response"
	"jobtrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AdminHandler struct {
	deleter usecase.BulkDeleteUsecase
}

func NewAdminHandler(deleter usecase.BulkDeleteUsecase) *AdminHandler {
	return &AdminHandler{deleter: deleter}
}

func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Delete("/data", h.HandleClearAll)
}

type clearAllRequest struct {
	Confirm bool `json:"confirm"`
}

// HandleClearAll wipes every job and its metadata. The explicit confirm flag
// keeps a stray DELETE from emptying the tracker.
func (h *AdminHandler) HandleClearAll(c fiber.Ctx) error {
	var req clearAllRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if !req.Confirm {
		return middleware.NewAppError(fiber.StatusBadRequest, "confirmation required", nil, nil)
	}

	if err := h.deleter.ClearAll(c.Context()); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "all data cleared", nil)
}
