package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/job-portal/pkg/util"
)

const claimsKey = "auth_claims"

// tokenExtractor pulls a candidate token out of a request, empty string when
// its source is absent.
type tokenExtractor func(*fiber.Ctx) string

// extractors are tried in order: the bearer header wins over the cookie so
// non-browser clients can override a stale cookie.
var extractors = []tokenExtractor{fromBearerHeader, fromAccessCookie}

func fromBearerHeader(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func fromAccessCookie(c *fiber.Ctx) string {
	return c.Cookies(AccessTokenCookie)
}

// ExtractToken returns the first token found by the extraction strategies.
func ExtractToken(c *fiber.Ctx) string {
	for _, extract := range extractors {
		if token := extract(c); token != "" {
			return token
		}
	}
	return ""
}

// Middleware verifies request tokens and exposes the resulting identity to
// handlers. It performs no database I/O: handlers needing more than the
// three token claims re-fetch the account themselves.
type Middleware struct {
	tokens *TokenService
}

// NewMiddleware constructs middleware around a token service.
func NewMiddleware(tokens *TokenService) *Middleware {
	return &Middleware{tokens: tokens}
}

// Required rejects requests without a valid token before business logic runs.
func (m *Middleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := ExtractToken(c)
		if token == "" {
			return apperrors.NewUnauthorized("missing credentials")
		}
		claims, err := m.tokens.Verify(token)
		if err != nil {
			return apperrors.NewInvalidToken("invalid or expired token")
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// Optional performs the same extraction and verification but lets the
// request through with a nil identity when no valid token is present. The
// wrapped handler decides whether anonymous access is acceptable.
func (m *Middleware) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := ExtractToken(c); token != "" {
			if claims, err := m.tokens.Verify(token); err == nil {
				c.Locals(claimsKey, claims)
			}
		}
		return c.Next()
	}
}

// ClaimsFromContext retrieves the verified identity attached by Required or
// Optional.
func ClaimsFromContext(c *fiber.Ctx) (*SessionClaims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*SessionClaims)
	return claims, ok
}
