package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-portal/internal/api/dto"
	"github.com/spec-kit/job-portal/internal/service"
	apperrors "github.com/spec-kit/job-portal/pkg/util"
)

// AdminJobsHandler exposes the moderation queue.
type AdminJobsHandler struct {
	jobs *service.JobService
}

// NewAdminJobsHandler constructs handler.
func NewAdminJobsHandler(jobService *service.JobService) *AdminJobsHandler {
	return &AdminJobsHandler{jobs: jobService}
}

// ListPending handles GET /api/admin/jobs/pending.
func (h *AdminJobsHandler) ListPending(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}
	limit, offset := pagination(c)
	jobs, err := h.jobs.ListPendingReview(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewJobResponses(jobs)})
}

// Approve handles POST /api/admin/jobs/:id/approve.
func (h *AdminJobsHandler) Approve(c *fiber.Ctx) error {
	claims, err := requireAdmin(c)
	if err != nil {
		return err
	}
	job, err := h.jobs.Approve(c.Context(), claims.UserID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewJobResponse(job)})
}

// Reject handles POST /api/admin/jobs/:id/reject.
func (h *AdminJobsHandler) Reject(c *fiber.Ctx) error {
	claims, err := requireAdmin(c)
	if err != nil {
		return err
	}

	var req dto.JobRejectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	job, err := h.jobs.Reject(c.Context(), claims.UserID, c.Params("id"), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewJobResponse(job)})
}
