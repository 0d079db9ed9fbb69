package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/job-portal/internal/domain"
)

// ErrInvalidToken is returned for any token that fails verification:
// malformed, expired, or signed with the wrong secret. Callers translate it
// to HTTP 401; it is never a business-logic distinction.
var ErrInvalidToken = errors.New("invalid token")

// SessionClaims is the minimal identity embedded in every token. The set is
// intentionally three fields: larger payloads have caused oversized-header
// failures when the token rides along as a cookie on every request.
type SessionClaims struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
}

// TokenPair bundles the access and refresh tokens issued on login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type tokenClaims struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256-signed session tokens. It is the
// only component that parses token internals.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService builds a service. TTLs are given in days; non-positive
// values fall back to the 7/30 day policy defaults.
func NewTokenService(secret string, accessDays, refreshDays int) *TokenService {
	if accessDays <= 0 {
		accessDays = 7
	}
	if refreshDays <= 0 {
		refreshDays = 30
	}
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  time.Duration(accessDays) * 24 * time.Hour,
		refreshTTL: time.Duration(refreshDays) * 24 * time.Hour,
	}
}

// AccessTTL returns the access token lifetime, used for cookie max-age.
func (ts *TokenService) AccessTTL() time.Duration { return ts.accessTTL }

// RefreshTTL returns the refresh token lifetime, used for cookie max-age.
func (ts *TokenService) RefreshTTL() time.Duration { return ts.refreshTTL }

// IssueAccessToken signs a short-lived token carrying only the minimal
// claims. Anything beyond userId/email/role is dropped by construction.
func (ts *TokenService) IssueAccessToken(claims SessionClaims) (string, error) {
	return ts.issue(claims, ts.accessTTL)
}

// IssueRefreshToken signs a long-lived token with the same claim shape.
func (ts *TokenService) IssueRefreshToken(claims SessionClaims) (string, error) {
	return ts.issue(claims, ts.refreshTTL)
}

// IssuePair issues an access/refresh token pair for the same identity.
func (ts *TokenService) IssuePair(claims SessionClaims) (*TokenPair, error) {
	access, err := ts.IssueAccessToken(claims)
	if err != nil {
		return nil, err
	}
	refresh, err := ts.IssueRefreshToken(claims)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (ts *TokenService) issue(claims SessionClaims, ttl time.Duration) (string, error) {
	now := time.Now()
	wire := &tokenClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, wire)
	return token.SignedString(ts.secret)
}

// Verify checks signature and expiry and returns the embedded claims. Every
// failure mode surfaces as ErrInvalidToken.
func (ts *TokenService) Verify(tokenStr string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return ts.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return &SessionClaims{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}

// DecodeUnsafe extracts claims without verifying signature or expiry.
// Diagnostic reads only; never an input to an authorization decision.
func (ts *TokenService) DecodeUnsafe(tokenStr string) *SessionClaims {
	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, &claims); err != nil {
		return nil
	}
	return &SessionClaims{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}
}
