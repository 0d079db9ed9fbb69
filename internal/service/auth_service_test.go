package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/job-portal/internal/auth"
	"github.com/spec-kit/job-portal/internal/config"
	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/service"
)

func newAuthFixture() (*service.AuthService, *memAccountRepo, *memResetRepo) {
	accounts := newMemAccountRepo()
	resets := newMemResetRepo()
	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:               "service-test-secret",
		AccessTokenTTLDays:      7,
		RefreshTokenTTLDays:     30,
		PasswordResetTTLMinutes: 30,
		BcryptCost:              4,
	}}
	svc := service.NewAuthService(cfg, service.AuthDependencies{
		AccountRepo:       accounts,
		PasswordResetRepo: resets,
	}, zap.NewNop())
	return svc, accounts, resets
}

func TestRegisterCandidateIsActiveImmediately(t *testing.T) {
	svc, _, _ := newAuthFixture()

	account, pair, err := svc.Register(context.Background(), "Casey", "Casey@Example.com", "", "secret123", domain.RoleCandidate)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountStatusActive, account.Status)
	assert.Equal(t, "casey@example.com", account.Email)
	require.NotNil(t, pair)

	claims, err := svc.TokenService().Verify(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.UserID)
	assert.Equal(t, domain.RoleCandidate, claims.Role)
}

func TestRegisterEmployerStartsPending(t *testing.T) {
	svc, _, _ := newAuthFixture()

	account, _, err := svc.Register(context.Background(), "Acme", "hr@acme.com", "+15550002222", "secret123", domain.RoleEmployer)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountStatusPending, account.Status)
	require.NotNil(t, account.Phone)
	assert.Equal(t, "+15550002222", *account.Phone)
}

func TestRegisterRejectsAdminRoles(t *testing.T) {
	svc, _, _ := newAuthFixture()

	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleSupportAdmin, domain.RoleContentAdmin} {
		_, _, err := svc.Register(context.Background(), "x", "x@example.com", "", "secret123", role)
		assert.Equal(t, "VALIDATION_FAILED", errCode(t, err), "role=%s", role)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, _, err := svc.Register(context.Background(), "First", "same@example.com", "", "secret123", domain.RoleCandidate)
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "Second", "same@example.com", "", "secret123", domain.RoleCandidate)
	assert.Equal(t, "CONFLICT", errCode(t, err))
}

func TestLoginAfterRegister(t *testing.T) {
	svc, _, _ := newAuthFixture()

	registered, _, err := svc.Register(context.Background(), "Casey", "casey@example.com", "", "secret123", domain.RoleCandidate)
	require.NoError(t, err)

	account, pair, err := svc.Login(context.Background(), "casey@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, account.ID)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestAdminLoginRejectsNonAdmin(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, _, err := svc.Register(context.Background(), "Casey", "casey@example.com", "", "secret123", domain.RoleCandidate)
	require.NoError(t, err)

	_, _, err = svc.AdminLogin(context.Background(), "casey@example.com", "secret123")
	assert.Equal(t, "FORBIDDEN", errCode(t, err))
}

func TestAdminLoginAcceptsAdmin(t *testing.T) {
	svc, accounts, _ := newAuthFixture()

	hash, err := auth.HashPassword("secret123", 4)
	require.NoError(t, err)
	require.NoError(t, accounts.Create(context.Background(), &domain.Account{
		Name:         "Ops",
		Email:        "ops@example.com",
		PasswordHash: hash,
		Role:         domain.RoleSupportAdmin,
		Status:       domain.AccountStatusActive,
	}))

	account, pair, err := svc.AdminLogin(context.Background(), "ops@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSupportAdmin, account.Role)
	assert.NotEmpty(t, pair.AccessToken)
}

func TestRefreshMintsNewAccessToken(t *testing.T) {
	svc, _, _ := newAuthFixture()

	account, pair, err := svc.Register(context.Background(), "Casey", "casey@example.com", "", "secret123", domain.RoleCandidate)
	require.NoError(t, err)

	access, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.TokenService().Verify(access)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.UserID)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Refresh(context.Background(), "not-a-token")
	assert.Equal(t, "INVALID_TOKEN", errCode(t, err))
}

func TestCurrentAccountExcludesDeleted(t *testing.T) {
	svc, accounts, _ := newAuthFixture()

	account, _, err := svc.Register(context.Background(), "Casey", "casey@example.com", "", "secret123", domain.RoleCandidate)
	require.NoError(t, err)

	got, err := svc.CurrentAccount(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)

	require.NoError(t, accounts.SoftDelete(context.Background(), account.ID))
	_, err = svc.CurrentAccount(context.Background(), account.ID)
	assert.Equal(t, "UNAUTHORIZED", errCode(t, err))
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, _, err := svc.Register(context.Background(), "Casey", "casey@example.com", "", "old-secret", domain.RoleCandidate)
	require.NoError(t, err)

	token, err := svc.RequestPasswordReset(context.Background(), "casey@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token.Token)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), token.ExpiresAt, time.Minute)

	require.NoError(t, svc.ConfirmPasswordReset(context.Background(), token.Token, "new-secret"))

	_, _, err = svc.Login(context.Background(), "casey@example.com", "old-secret")
	require.Error(t, err)
	_, _, err = svc.Login(context.Background(), "casey@example.com", "new-secret")
	assert.NoError(t, err)

	// The token is single use.
	err = svc.ConfirmPasswordReset(context.Background(), token.Token, "another")
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	svc, _, _ := newAuthFixture()

	account, _, err := svc.Register(context.Background(), "Casey", "casey@example.com", "", "old-secret", domain.RoleCandidate)
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), account.ID, "wrong", "new-secret")
	assert.Equal(t, "INVALID_CREDENTIALS", errCode(t, err))

	require.NoError(t, svc.ChangePassword(context.Background(), account.ID, "old-secret", "new-secret"))
	_, _, err = svc.Login(context.Background(), "casey@example.com", "new-secret")
	assert.NoError(t, err)
}
