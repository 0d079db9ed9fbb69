package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-portal/internal/api/dto"
	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/repository"
	"github.com/spec-kit/job-portal/internal/service"
	apperrors "github.com/spec-kit/job-portal/pkg/util"
)

// AdminAccountsHandler exposes the admin user-management workflows.
type AdminAccountsHandler struct {
	accounts *service.AccountService
}

// NewAdminAccountsHandler constructs handler.
func NewAdminAccountsHandler(accountService *service.AccountService) *AdminAccountsHandler {
	return &AdminAccountsHandler{accounts: accountService}
}

// List handles GET /api/admin/users.
func (h *AdminAccountsHandler) List(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	limit, offset := pagination(c)
	filter := repository.AccountFilter{Limit: limit, Offset: offset}
	if role := c.Query("role"); role != "" {
		r := domain.Role(strings.ToUpper(role))
		filter.Role = &r
	}
	if status := c.Query("status"); status != "" {
		s := domain.AccountStatus(strings.ToUpper(status))
		filter.Status = &s
	}
	if search := c.Query("q"); search != "" {
		filter.Search = &search
	}

	accounts, err := h.accounts.List(c.Context(), filter)
	if err != nil {
		return err
	}

	result := make([]dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		result = append(result, dto.NewAccountResponse(&accounts[i]))
	}
	return c.JSON(fiber.Map{"data": result})
}

// Get handles GET /api/admin/users/:id.
func (h *AdminAccountsHandler) Get(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}
	account, err := h.accounts.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}

// SetStatus handles PATCH /api/admin/users/:id/status.
func (h *AdminAccountsHandler) SetStatus(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	status := domain.AccountStatus(strings.ToUpper(req.Status))
	account, err := h.accounts.SetStatus(c.Context(), c.Params("id"), status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}

// ApproveEmployer handles POST /api/admin/users/:id/approve.
func (h *AdminAccountsHandler) ApproveEmployer(c *fiber.Ctx) error {
	claims, err := requireAdmin(c)
	if err != nil {
		return err
	}
	account, err := h.accounts.ApproveEmployer(c.Context(), claims.UserID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}

// Delete handles DELETE /api/admin/users/:id (soft delete).
func (h *AdminAccountsHandler) Delete(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}
	if err := h.accounts.SoftDelete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}
