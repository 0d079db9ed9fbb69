package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Cookie names for the auth token pair.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// CookieOptions are the base attributes shared by both auth cookies. Only
// max-age differs between the access and refresh cookie.
type CookieOptions struct {
	Secure   bool
	SameSite string
	HTTPOnly bool
	Path     string
}

// DeriveCookieOptions computes environment-appropriate cookie attributes.
// Secure follows the effective request scheme: the first value of the
// forwarded-protocol header when present, the request's own scheme
// otherwise. SameSite stays Lax because UI and API share an origin;
// secure:false combined with SameSite=None is rejected by browsers.
func DeriveCookieOptions(c *fiber.Ctx) CookieOptions {
	scheme := c.Protocol()
	if forwarded := c.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	return CookieOptions{
		Secure:   strings.EqualFold(scheme, "https"),
		SameSite: fiber.CookieSameSiteLaxMode,
		HTTPOnly: true,
		Path:     "/",
	}
}

// SetAuthCookies sets both token cookies on the response.
func SetAuthCookies(c *fiber.Ctx, pair *TokenPair, accessTTL, refreshTTL time.Duration) {
	SetAccessCookie(c, pair.AccessToken, accessTTL)
	opts := DeriveCookieOptions(c)
	c.Cookie(&fiber.Cookie{
		Name:     RefreshTokenCookie,
		Value:    pair.RefreshToken,
		Path:     opts.Path,
		MaxAge:   int(refreshTTL.Seconds()),
		Expires:  time.Now().Add(refreshTTL),
		HTTPOnly: opts.HTTPOnly,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// SetAccessCookie sets only the access token cookie; the refresh flow
// re-issues access tokens without touching the refresh cookie.
func SetAccessCookie(c *fiber.Ctx, token string, ttl time.Duration) {
	opts := DeriveCookieOptions(c)
	c.Cookie(&fiber.Cookie{
		Name:     AccessTokenCookie,
		Value:    token,
		Path:     opts.Path,
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HTTPOnly: opts.HTTPOnly,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// ClearAuthCookies expires both token cookies so a stale credential is not
// replayed on the next request.
func ClearAuthCookies(c *fiber.Ctx) {
	opts := DeriveCookieOptions(c)
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     opts.Path,
			MaxAge:   -1,
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: opts.HTTPOnly,
			Secure:   opts.Secure,
			SameSite: opts.SameSite,
		})
	}
}
