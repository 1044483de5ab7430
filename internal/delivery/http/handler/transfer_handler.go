package handler

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"jobtrack/internal/delivery/http/dto"
	"jobtrack/internal/delivery/http/middleware"
	"jobtrack/internal/pkg/response"
	"jobtrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// maxImportBytes caps the uploaded CSV size.
const maxImportBytes = 16 << 20

type TransferHandler struct {
	uc usecase.TransferUsecase
}

func NewTransferHandler(uc usecase.TransferUsecase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

func (h *TransferHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/export", h.HandleExport)
	r.Post("/import", h.HandleImport)
}

func (h *TransferHandler) HandleExport(c fiber.Ctx) error {
	content, filename, err := h.uc.ExportCSV(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.SendString(content)
}

// HandleImport expects a multipart form with a "file" part and a
// "confirm=true" field, since an import may overwrite existing records.
func (h *TransferHandler) HandleImport(c fiber.Ctx) error {
	if !strings.EqualFold(c.FormValue("confirm"), "true") {
		return middleware.NewAppError(fiber.StatusBadRequest, "confirmation required", nil, nil)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "missing file", nil, err)
	}
	if fh.Size > maxImportBytes {
		return middleware.NewAppError(fiber.StatusBadRequest, "file too large", nil, nil)
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "unreadable file", nil, err)
	}
	defer func() {
		_ = f.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(f, maxImportBytes+1))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "unreadable file", nil, err)
	}

	result, err := h.uc.ImportCSV(c.Context(), string(raw))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBadHeader):
			return middleware.NewAppError(
				fiber.StatusUnprocessableEntity,
				"Invalid CSV format. Expected headers: ID, CreateDate, Company, JobPosition, Link, Status",
				nil, err,
			)
		case errors.Is(err, usecase.ErrNoRows):
			return middleware.NewAppError(fiber.StatusBadRequest, "No valid data found in CSV file", toImportResponse(result), err)
		default:
			return mapUsecaseError(err)
		}
	}

	msg := fmt.Sprintf("Successfully imported %d records", result.Imported)
	return response.Success(c, fiber.StatusOK, msg, toImportResponse(result))
}

func toImportResponse(r usecase.ImportResult) dto.ImportResponse {
	skipped := make([]dto.SkippedRowResponse, 0, len(r.Skipped))
	for _, s := range r.Skipped {
		skipped = append(skipped, dto.SkippedRowResponse{Line: s.Line, Reason: s.Reason})
	}
	return dto.ImportResponse{Imported: r.Imported, Skipped: skipped}
}
