package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-portal/internal/auth"
	"github.com/spec-kit/job-portal/internal/domain"
	apperrors "github.com/spec-kit/job-portal/pkg/util"
)

// identity returns the verified claims attached by the auth middleware.
func identity(c *fiber.Ctx) (*auth.SessionClaims, error) {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return claims, nil
}

// requireRole re-checks the caller's role inside the handler. The edge gate
// and middleware already enforce this, but sensitive handlers verify again.
func requireRole(c *fiber.Ctx, roles ...domain.Role) (*auth.SessionClaims, error) {
	claims, err := identity(c)
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		if claims.Role == role {
			return claims, nil
		}
	}
	return nil, apperrors.NewForbidden("insufficient role")
}

// requireAdmin accepts any admin-tier role.
func requireAdmin(c *fiber.Ctx) (*auth.SessionClaims, error) {
	claims, err := identity(c)
	if err != nil {
		return nil, err
	}
	if !auth.IsAdminRole(claims.Role) {
		return nil, apperrors.NewForbidden("admin access required")
	}
	return claims, nil
}

// pagination reads limit/offset query parameters with sane bounds.
func pagination(c *fiber.Ctx) (limit, offset int) {
	limit, _ = strconv.Atoi(c.Query("limit", "20"))
	offset, _ = strconv.Atoi(c.Query("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
