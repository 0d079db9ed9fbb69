package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/job-portal/internal/auth"
	apperrors "github.com/spec-kit/job-portal/pkg/util"
)

// newProtectedApp mounts one required and one optional route behind the
// middleware, translating domain errors the way the HTTP layer does.
func newProtectedApp(tokens *auth.TokenService) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": de})
		}
		return nil
	})

	m := auth.NewMiddleware(tokens)
	echo := func(c *fiber.Ctx) error {
		claims, ok := auth.ClaimsFromContext(c)
		if !ok {
			return c.JSON(fiber.Map{"anonymous": true})
		}
		return c.JSON(fiber.Map{"userId": claims.UserID})
	}
	app.Get("/required", m.Required(), echo)
	app.Get("/optional", m.Optional(), echo)
	return app
}

func TestRequiredRejectsMissingToken(t *testing.T) {
	app := newProtectedApp(newTokenService())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/required", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequiredRejectsInvalidToken(t *testing.T) {
	app := newProtectedApp(newTokenService())

	req := httptest.NewRequest(http.MethodGet, "/required", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequiredAcceptsBearerHeader(t *testing.T) {
	ts := newTokenService()
	app := newProtectedApp(ts)

	token, err := ts.IssueAccessToken(testClaims())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/required", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequiredAcceptsAccessCookie(t *testing.T) {
	ts := newTokenService()
	app := newProtectedApp(ts)

	token, err := ts.IssueAccessToken(testClaims())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/required", nil)
	req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBearerHeaderWinsOverCookie(t *testing.T) {
	ts := newTokenService()
	app := newProtectedApp(ts)

	token, err := ts.IssueAccessToken(testClaims())
	require.NoError(t, err)

	// Valid header, garbage cookie: the header must be the one verified.
	req := httptest.NewRequest(http.MethodGet, "/required", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: "stale-garbage"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOptionalPassesThroughAnonymous(t *testing.T) {
	app := newProtectedApp(newTokenService())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/optional", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOptionalIgnoresInvalidToken(t *testing.T) {
	app := newProtectedApp(newTokenService())

	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer broken")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
