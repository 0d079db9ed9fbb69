package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-portal/internal/api/dto"
	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/service"
	apperrors "github.com/spec-kit/job-portal/pkg/util"
)

// ApplicationsHandler exposes candidate application and employer review
// endpoints.
type ApplicationsHandler struct {
	applications *service.ApplicationService
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applicationService *service.ApplicationService) *ApplicationsHandler {
	return &ApplicationsHandler{applications: applicationService}
}

// Apply handles POST /api/candidate/applications.
func (h *ApplicationsHandler) Apply(c *fiber.Ctx) error {
	claims, err := requireRole(c, domain.RoleCandidate)
	if err != nil {
		return err
	}

	var req dto.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.JobID == "" {
		return apperrors.NewValidationError("jobId required", nil)
	}

	application, err := h.applications.Apply(c.Context(), claims.UserID, req.JobID, req.CoverLetter)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewApplicationResponse(application)})
}

// ListMine handles GET /api/candidate/applications.
func (h *ApplicationsHandler) ListMine(c *fiber.Ctx) error {
	claims, err := requireRole(c, domain.RoleCandidate)
	if err != nil {
		return err
	}
	limit, offset := pagination(c)
	applications, err := h.applications.ListForCandidate(c.Context(), claims.UserID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewApplicationResponses(applications)})
}

// ListForJob handles GET /api/employer/jobs/:id/applications.
func (h *ApplicationsHandler) ListForJob(c *fiber.Ctx) error {
	claims, err := requireRole(c, domain.RoleEmployer)
	if err != nil {
		return err
	}
	limit, offset := pagination(c)
	applications, err := h.applications.ListForJob(c.Context(), claims.UserID, c.Params("id"), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewApplicationResponses(applications)})
}

// UpdateStatus handles PATCH /api/employer/applications/:id/status.
func (h *ApplicationsHandler) UpdateStatus(c *fiber.Ctx) error {
	claims, err := requireRole(c, domain.RoleEmployer)
	if err != nil {
		return err
	}

	var req dto.ApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	status := domain.ApplicationStatus(strings.ToUpper(req.Status))
	application, err := h.applications.UpdateStatus(c.Context(), claims.UserID, c.Params("id"), status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewApplicationResponse(application)})
}
