package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/repository"
	apperrors "github.com/spec-kit/job-portal/pkg/util"
)

// Authenticator validates credentials against stored accounts and issues
// token pairs. The identifier may be an email address or a phone number.
type Authenticator struct {
	accounts repository.AccountRepository
	tokens   *TokenService
	logger   *zap.Logger
}

// NewAuthenticator constructs an authenticator.
func NewAuthenticator(accounts repository.AccountRepository, tokens *TokenService, logger *zap.Logger) *Authenticator {
	return &Authenticator{accounts: accounts, tokens: tokens, logger: logger}
}

// dummyPasswordHash is a valid bcrypt hash of an arbitrary string. The
// not-found path compares against it so lookups for unknown identifiers take
// the same bcrypt time as a wrong-password attempt.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Authenticate looks the account up by email or phone, applies the
// account-state gates, verifies the password and issues an access/refresh
// pair. Unknown identifier and wrong password produce the identical generic
// error so callers cannot probe which accounts exist.
func (a *Authenticator) Authenticate(ctx context.Context, identifier, password string) (*TokenPair, *domain.Account, error) {
	account, err := a.accounts.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_ = ComparePassword(dummyPasswordHash, password)
			return nil, nil, apperrors.NewInvalidCredentials()
		}
		return nil, nil, err
	}

	if account.IsDeleted {
		return nil, nil, apperrors.NewAccountNotActive("account has been deleted")
	}
	if account.Status == domain.AccountStatusDeactivated {
		return nil, nil, apperrors.NewAccountNotActive("account is deactivated")
	}
	if account.Status != domain.AccountStatusActive && !pendingEmployerAllowed(account) {
		return nil, nil, apperrors.NewAccountNotActive("account is not active")
	}

	if err := ComparePassword(account.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewInvalidCredentials()
	}

	pair, err := a.tokens.IssuePair(SessionClaims{
		UserID: account.ID,
		Email:  account.Email,
		Role:   account.Role,
	})
	if err != nil {
		return nil, nil, err
	}

	// Best effort; a failed timestamp write never fails the login.
	if err := a.accounts.UpdateLastLogin(ctx, account.ID, time.Now()); err != nil {
		a.logger.Warn("failed to update last login",
			zap.String("account_id", account.ID), zap.Error(err))
	}

	return pair, account, nil
}

// pendingEmployerAllowed lets a freshly registered employer log in before
// admin approval so they can see their pending state.
func pendingEmployerAllowed(account *domain.Account) bool {
	return account.Status == domain.AccountStatusPending && account.Role == domain.RoleEmployer
}
