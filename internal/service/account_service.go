package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/events"
	"github.com/spec-kit/job-portal/internal/repository"
	apperrors "github.com/spec-kit/job-portal/pkg/util"
)

// AccountService covers the admin user-management workflows: listing,
// status changes, soft deletion and employer approval.
type AccountService struct {
	accounts   repository.AccountRepository
	dispatcher events.Dispatcher
}

// NewAccountService builds the service.
func NewAccountService(accounts repository.AccountRepository, dispatcher events.Dispatcher) *AccountService {
	return &AccountService{accounts: accounts, dispatcher: dispatcher}
}

// List returns accounts matching the admin filter.
func (s *AccountService) List(ctx context.Context, filter repository.AccountFilter) ([]domain.Account, error) {
	return s.accounts.List(ctx, filter)
}

// Get fetches a single account.
func (s *AccountService) Get(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("account", map[string]any{"id": id})
		}
		return nil, err
	}
	return account, nil
}

// SetStatus applies an admin status change: suspend, deactivate, reactivate.
func (s *AccountService) SetStatus(ctx context.Context, id string, status domain.AccountStatus) (*domain.Account, error) {
	switch status {
	case domain.AccountStatusActive, domain.AccountStatusSuspended,
		domain.AccountStatusDeactivated, domain.AccountStatusInactive:
	default:
		return nil, apperrors.NewValidationError("invalid account status", map[string]any{"status": status})
	}

	account, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.accounts.SetStatus(ctx, account.ID, status); err != nil {
		return nil, err
	}
	account.Status = status
	return account, nil
}

// ApproveEmployer activates a pending employer account and notifies them.
func (s *AccountService) ApproveEmployer(ctx context.Context, actorID, employerID string) (*domain.Account, error) {
	account, err := s.Get(ctx, employerID)
	if err != nil {
		return nil, err
	}
	if account.Role != domain.RoleEmployer {
		return nil, apperrors.NewValidationError("account is not an employer", nil)
	}
	if account.Status != domain.AccountStatusPending {
		return nil, apperrors.NewConflict("employer is not awaiting approval", map[string]any{"status": account.Status})
	}

	if err := s.accounts.SetStatus(ctx, account.ID, domain.AccountStatusActive); err != nil {
		return nil, err
	}
	account.Status = domain.AccountStatusActive

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventEmployerApproved,
			ActorID:   actorID,
			Timestamp: time.Now(),
			Payload: events.EmployerApprovedPayload{
				EmployerID: account.ID,
				Name:       account.Name,
			},
		})
	}
	return account, nil
}

// SoftDelete marks an account deleted; the row stays for referential
// integrity and audit.
func (s *AccountService) SoftDelete(ctx context.Context, id string) error {
	if err := s.accounts.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("account", map[string]any{"id": id})
		}
		return err
	}
	return nil
}
