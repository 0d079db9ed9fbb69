package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/job-portal/internal/auth"
	"github.com/spec-kit/job-portal/internal/config"
	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/repository"
	apperrors "github.com/spec-kit/job-portal/pkg/util"
)

// AuthService coordinates registration, login, refresh and password flows.
type AuthService struct {
	accounts      repository.AccountRepository
	resets        repository.PasswordResetRepository
	tokens        *auth.TokenService
	authenticator *auth.Authenticator
	bcryptCost    int
	resetTTL      time.Duration
	logger        *zap.Logger
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	AccountRepo       repository.AccountRepository
	PasswordResetRepo repository.PasswordResetRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies, logger *zap.Logger) *AuthService {
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLDays, cfg.Auth.RefreshTokenTTLDays)
	return &AuthService{
		accounts:      deps.AccountRepo,
		resets:        deps.PasswordResetRepo,
		tokens:        tokens,
		authenticator: auth.NewAuthenticator(deps.AccountRepo, tokens, logger),
		bcryptCost:    cfg.Auth.BcryptCost,
		resetTTL:      time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
		logger:        logger,
	}
}

// Register creates a candidate or employer account. Employers start PENDING
// and wait for admin approval; candidates are active immediately.
func (s *AuthService) Register(ctx context.Context, name, email, phone, password string, role domain.Role) (*domain.Account, *auth.TokenPair, error) {
	if role != domain.RoleCandidate && role != domain.RoleEmployer {
		return nil, nil, apperrors.NewValidationError("role must be CANDIDATE or EMPLOYER", nil)
	}

	if _, err := s.accounts.GetByIdentifier(ctx, email); err == nil {
		return nil, nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	status := domain.AccountStatusActive
	if role == domain.RoleEmployer {
		status = domain.AccountStatusPending
	}

	account := &domain.Account{
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		Role:         role,
		Status:       status,
	}
	if phone = strings.TrimSpace(phone); phone != "" {
		account.Phone = &phone
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, nil, err
	}

	pair, err := s.tokens.IssuePair(auth.SessionClaims{
		UserID: account.ID,
		Email:  account.Email,
		Role:   account.Role,
	})
	if err != nil {
		return nil, nil, err
	}
	return account, pair, nil
}

// Login authenticates against the account store and returns the account
// with a fresh token pair.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*domain.Account, *auth.TokenPair, error) {
	pair, account, err := s.authenticator.Authenticate(ctx, identifier, password)
	if err != nil {
		return nil, nil, err
	}
	return account, pair, nil
}

// AdminLogin is the admin-panel login path; valid credentials on a
// non-admin account are rejected outright.
func (s *AuthService) AdminLogin(ctx context.Context, identifier, password string) (*domain.Account, *auth.TokenPair, error) {
	account, pair, err := s.Login(ctx, identifier, password)
	if err != nil {
		return nil, nil, err
	}
	if !auth.IsAdminRole(account.Role) {
		return nil, nil, apperrors.NewForbidden("admin access required")
	}
	return account, pair, nil
}

// Refresh verifies a refresh token and mints a new access token for the
// same identity. The refresh token itself is left untouched.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return "", apperrors.NewInvalidToken("invalid or expired refresh token")
	}
	return s.tokens.IssueAccessToken(*claims)
}

// CurrentAccount re-fetches the account behind verified claims. Tokens carry
// only the minimal identity, so profile data always comes from the store.
func (s *AuthService) CurrentAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("account no longer exists")
		}
		return nil, err
	}
	if account.IsDeleted {
		return nil, apperrors.NewUnauthorized("account no longer exists")
	}
	return account, nil
}

// RequestPasswordReset persists a reset token for the account email. The
// token value is returned so the delivery edge (mail) can pick it up.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*repository.PasswordResetToken, error) {
	account, err := s.accounts.GetByIdentifier(ctx, email)
	if err != nil {
		return nil, err
	}

	token := &repository.PasswordResetToken{
		AccountID: account.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// ConfirmPasswordReset validates the reset token and updates the password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		return err
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return apperrors.NewValidationError("token expired or used", nil)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	account, err := s.accounts.GetByID(ctx, token.AccountID)
	if err != nil {
		return err
	}
	account.PasswordHash = hash
	if err := s.accounts.Update(ctx, account); err != nil {
		return err
	}
	return s.resets.MarkUsed(ctx, token.ID)
}

// ChangePassword verifies the current password before updating to new hash.
func (s *AuthService) ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(account.PasswordHash, currentPassword); err != nil {
		return apperrors.NewInvalidCredentials()
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	account.PasswordHash = hash
	return s.accounts.Update(ctx, account)
}

// TokenService exposes the underlying token service for middleware usage.
func (s *AuthService) TokenService() *auth.TokenService {
	return s.tokens
}
