package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-portal/internal/api/dto"
	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/service"
	apperrors "github.com/spec-kit/job-portal/pkg/util"
)

// JobsHandler exposes public browsing and employer posting endpoints.
type JobsHandler struct {
	jobs *service.JobService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobService *service.JobService) *JobsHandler {
	return &JobsHandler{jobs: jobService}
}

// Browse handles GET /api/jobs (public, approved postings only).
func (h *JobsHandler) Browse(c *fiber.Ctx) error {
	limit, offset := pagination(c)

	var search, location *string
	if q := c.Query("q"); q != "" {
		search = &q
	}
	if loc := c.Query("location"); loc != "" {
		location = &loc
	}

	jobs, err := h.jobs.BrowsePublic(c.Context(), search, location, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewJobResponses(jobs)})
}

// Get handles GET /api/jobs/:id (public).
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	job, err := h.jobs.GetPublic(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewJobResponse(job)})
}

// Create handles POST /api/employer/jobs.
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	claims, err := requireRole(c, domain.RoleEmployer)
	if err != nil {
		return err
	}

	var req dto.JobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	job, err := h.jobs.Create(c.Context(), claims.UserID, service.CreateJobInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewJobResponse(job)})
}

// Update handles PUT /api/employer/jobs/:id.
func (h *JobsHandler) Update(c *fiber.Ctx) error {
	claims, err := requireRole(c, domain.RoleEmployer)
	if err != nil {
		return err
	}

	var req dto.JobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	job, err := h.jobs.Update(c.Context(), claims.UserID, c.Params("id"), service.CreateJobInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewJobResponse(job)})
}

// Close handles POST /api/employer/jobs/:id/close.
func (h *JobsHandler) Close(c *fiber.Ctx) error {
	claims, err := requireRole(c, domain.RoleEmployer)
	if err != nil {
		return err
	}
	job, err := h.jobs.Close(c.Context(), claims.UserID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewJobResponse(job)})
}

// ListMine handles GET /api/employer/jobs.
func (h *JobsHandler) ListMine(c *fiber.Ctx) error {
	claims, err := requireRole(c, domain.RoleEmployer)
	if err != nil {
		return err
	}
	limit, offset := pagination(c)
	jobs, err := h.jobs.ListByEmployer(c.Context(), claims.UserID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewJobResponses(jobs)})
}
