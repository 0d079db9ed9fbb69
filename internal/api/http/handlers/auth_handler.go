package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-portal/internal/api/dto"
	"github.com/spec-kit/job-portal/internal/auth"
	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/service"
	apperrors "github.com/spec-kit/job-portal/pkg/util"
)

// AuthHandler exposes registration, login, refresh and password endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}

	role := domain.Role(strings.ToUpper(req.Role))
	account, pair, err := h.auth.Register(c.Context(), req.Name, req.Email, req.Phone, req.Password, role)
	if err != nil {
		return err
	}

	h.setCookies(c, pair)
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewAccountResponse(account),
			"auth": dto.AuthResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken},
		},
	})
}

// Login handles POST /api/auth/login for the portal (any role).
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	return h.login(c, h.auth.Login)
}

// AdminLogin handles POST /api/auth/admin/login; valid non-admin
// credentials get 403.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	return h.login(c, h.auth.AdminLogin)
}

func (h *AuthHandler) login(c *fiber.Ctx, authenticate func(ctx context.Context, identifier, password string) (*domain.Account, *auth.TokenPair, error)) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Identifier == "" || req.Password == "" {
		return apperrors.NewValidationError("identifier and password required", nil)
	}

	account, pair, err := authenticate(c.Context(), req.Identifier, req.Password)
	if err != nil {
		return err
	}

	h.setCookies(c, pair)
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewAccountResponse(account),
			"auth": dto.AuthResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken},
		},
	})
}

func (h *AuthHandler) setCookies(c *fiber.Ctx, pair *auth.TokenPair) {
	tokens := h.auth.TokenService()
	auth.SetAuthCookies(c, pair, tokens.AccessTTL(), tokens.RefreshTTL())
}

// Refresh handles POST /api/auth/refresh: reads the refresh cookie, mints a
// new access token and re-sets the access cookie. An invalid refresh token
// clears both cookies.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies(auth.RefreshTokenCookie)
	if refreshToken == "" {
		return apperrors.NewUnauthorized("missing refresh token")
	}

	accessToken, err := h.auth.Refresh(c.Context(), refreshToken)
	if err != nil {
		auth.ClearAuthCookies(c)
		return err
	}

	auth.SetAccessCookie(c, accessToken, h.auth.TokenService().AccessTTL())
	return c.JSON(fiber.Map{
		"data": fiber.Map{"accessToken": accessToken},
	})
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so logout is
// cookie cleanup on the client side only.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	auth.ClearAuthCookies(c)
	return c.JSON(fiber.Map{"data": fiber.Map{"loggedOut": true}})
}

// Me handles GET /api/auth/me: the token carries only three claims, so the
// full profile is re-fetched from the store.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, err := identity(c)
	if err != nil {
		return err
	}
	account, err := h.auth.CurrentAccount(c.Context(), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}

// RequestPasswordReset handles POST /api/auth/password/reset/request.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	// The response never reveals whether the email exists.
	if _, err := h.auth.RequestPasswordReset(c.Context(), req.Email); err != nil {
		de := apperrors.ToDomainError(err)
		if de.HTTPStatus >= 500 {
			return err
		}
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"requested": true}})
}

// ConfirmPasswordReset handles POST /api/auth/password/reset/confirm.
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirm
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("token and newPassword required", nil)
	}
	if err := h.auth.ConfirmPasswordReset(c.Context(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"reset": true}})
}

// ChangePassword handles POST /api/auth/password/change (authenticated).
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	claims, err := identity(c)
	if err != nil {
		return err
	}

	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("currentPassword and newPassword required", nil)
	}
	if err := h.auth.ChangePassword(c.Context(), claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"changed": true}})
}
