package auth

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/job-portal/pkg/util"
)

// ignorePrefixes lists public path prefixes the gate never inspects: auth
// endpoints, health probes and static assets.
var ignorePrefixes = []string{
	"/api/auth",
	"/auth",
	"/health",
	"/static",
	"/favicon.ico",
}

const (
	adminPagePrefix = "/admin"
	adminAPIPrefix  = "/api/admin"
	loginPath       = "/auth/login"
)

// sectionPathNames maps the first path segment under /admin (or /api/admin)
// to its permission section.
var sectionPathNames = map[string]Section{
	"users":        SectionUsers,
	"jobs":         SectionJobs,
	"employers":    SectionEmployers,
	"applications": SectionApplications,
	"support":      SectionSupport,
	"reports":      SectionReports,
	"settings":     SectionSettings,
}

// Gate is the single admission-control checkpoint in front of the admin
// surface. Requests that reach a handler behind it carry a verified,
// role-appropriate identity; sensitive handlers still re-check roles
// themselves.
type Gate struct {
	tokens *TokenService
	logger *zap.Logger
}

// NewGate constructs the edge gate.
func NewGate(tokens *TokenService, logger *zap.Logger) *Gate {
	return &Gate{tokens: tokens, logger: logger}
}

// Handle enforces token presence and role/section access on protected
// prefixes; everything else passes through untouched.
func (g *Gate) Handle(c *fiber.Ctx) error {
	path := c.Path()
	for _, prefix := range ignorePrefixes {
		if strings.HasPrefix(path, prefix) {
			return c.Next()
		}
	}

	isAPI := strings.HasPrefix(path, adminAPIPrefix)
	isPage := !isAPI && strings.HasPrefix(path, adminPagePrefix)
	if !isAPI && !isPage {
		return c.Next()
	}

	token := ExtractToken(c)
	if token == "" {
		return g.deny(c, isAPI, apperrors.NewUnauthorized("authentication required"))
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		// A token that failed verification is useless; drop it so the
		// client does not retry it on every request.
		ClearAuthCookies(c)
		return g.deny(c, isAPI, apperrors.NewInvalidToken("invalid or expired token"))
	}

	if !IsAdminRole(claims.Role) {
		if isAPI {
			return apperrors.NewForbidden("admin access required")
		}
		return g.redirectToLogin(c)
	}

	if section, ok := sectionForPath(path); ok && !CanAccess(claims.Role, section) {
		g.logger.Debug("section access denied",
			zap.String("role", string(claims.Role)), zap.String("path", path))
		if isAPI {
			return apperrors.NewForbidden("section access denied")
		}
		return c.Redirect(DefaultRedirectPath(claims.Role), fiber.StatusFound)
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

func (g *Gate) deny(c *fiber.Ctx, isAPI bool, err error) error {
	if isAPI {
		return err
	}
	return g.redirectToLogin(c)
}

// redirectToLogin sends page requests to the login screen, preserving the
// original destination in callbackUrl.
func (g *Gate) redirectToLogin(c *fiber.Ctx) error {
	target := loginPath + "?callbackUrl=" + url.QueryEscape(c.OriginalURL())
	return c.Redirect(target, fiber.StatusFound)
}

// sectionForPath resolves the admin sub-section a path belongs to. The panel
// root and unrecognized sub-paths carry no section and are gated by role
// alone.
func sectionForPath(path string) (Section, bool) {
	rest := ""
	switch {
	case strings.HasPrefix(path, adminAPIPrefix):
		rest = strings.TrimPrefix(path, adminAPIPrefix)
	case strings.HasPrefix(path, adminPagePrefix):
		rest = strings.TrimPrefix(path, adminPagePrefix)
	}
	rest = strings.TrimPrefix(rest, "/")
	if rest == "" {
		return "", false
	}
	segment := rest
	if idx := strings.IndexByte(rest, '/'); idx >= 0 {
		segment = rest[:idx]
	}
	section, ok := sectionPathNames[segment]
	return section, ok
}
