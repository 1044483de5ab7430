package handler

import (
	"errors"
	"strconv"
	"time"

	"jobtrack/internal/delivery/http/dto"
	"jobtrack/internal/delivery/http/middleware"
	"jobtrack/internal/pkg/response"
	"jobtrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	review  usecase.ReviewUsecase
	capture usecase.CaptureUsecase
	detail  usecase.DetailUsecase
	deleter usecase.BulkDeleteUsecase
}

func NewJobsHandler(review usecase.ReviewUsecase, capture usecase.CaptureUsecase, detail usecase.DetailUsecase, deleter usecase.BulkDeleteUsecase) *JobsHandler {
	return &JobsHandler{review: review, capture: capture, detail: detail, deleter: deleter}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/search", h.HandleSearch)
	r.Delete("/", h.HandleBulkDelete)
	r.Get("/:id", h.HandleDetail)
	r.Patch("/:id/status", h.HandleUpdateStatus)
}

func (h *JobsHandler) HandleList(c fiber.Ctx) error {
	page, err := parseQueryIntStrict(c, "page", 1)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	result, err := h.review.ListJobs(c.Context(), usecase.ReviewParams{
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
		Page:     page,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	items := make([]dto.JobResponse, 0, len(result.Items))
	for _, it := range result.Items {
		items = append(items, toJobResponse(it))
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobPageResponse{
		Items:      items,
		Page:       result.Page,
		TotalPages: result.TotalPages,
		Total:      result.Total,
		HasPrev:    result.HasPrev,
		HasNext:    result.HasNext,
	})
}

type createJobRequest struct {
	Company     string `json:"company"`
	JobPosition string `json:"job_position"`
	Link        string `json:"link"`
}

func (h *JobsHandler) HandleCreate(c fiber.Ctx) error {
	var req createJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.capture.AddJob(c.Context(), usecase.AddJobInput{
		Company:     req.Company,
		JobPosition: req.JobPosition,
		Link:        req.Link,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Please fill all fields", nil, err)
		}
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "job added", toJobResponse(item))
}

func (h *JobsHandler) HandleSearch(c fiber.Ctx) error {
	items, err := h.capture.SearchJobs(c.Context(), c.Query("q"))
	if err != nil {
		return mapUsecaseError(err)
	}

	out := make([]dto.JobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toJobResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *JobsHandler) HandleDetail(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	d, err := h.detail.GetJob(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, toJobDetailResponse(d))
}

type updateStatusRequest struct {
	StatusID int `json:"status_id"`
}

func (h *JobsHandler) HandleUpdateStatus(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req updateStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.capture.UpdateStatus(c.Context(), id, req.StatusID); err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "status updated", nil)
}

type bulkDeleteRequest struct {
	IDs     []int64 `json:"ids"`
	Confirm bool    `json:"confirm"`
}

func (h *JobsHandler) HandleBulkDelete(c fiber.Ctx) error {
	var req bulkDeleteRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if !req.Confirm {
		return middleware.NewAppError(fiber.StatusBadRequest, "confirmation required", nil, nil)
	}

	deleted, err := h.deleter.DeleteJobs(c.Context(), req.IDs)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptySelection) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Please select jobs to delete", nil, err)
		}
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "selected jobs deleted", map[string]any{"deleted": deleted})
}

func toJobResponse(it usecase.JobItem) dto.JobResponse {
	return dto.JobResponse{
		ID:          it.ID,
		CreateDate:  it.CreateDate.UTC().Format(time.RFC3339),
		Company:     it.Company,
		JobPosition: it.JobPosition,
		Link:        it.Link,
		StatusID:    it.StatusID,
		Status:      it.StatusLabel,
	}
}

func toJobDetailResponse(d usecase.JobDetail) dto.JobDetailResponse {
	meta := make([]dto.JobMetaResponse, 0, len(d.Meta))
	for _, m := range d.Meta {
		meta = append(meta, dto.JobMetaResponse{ID: m.ID, JobID: m.JobID, Label: m.Label, Value: m.Value})
	}
	return dto.JobDetailResponse{
		Job:  toJobResponse(d.Job),
		Meta: meta,
	}
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
