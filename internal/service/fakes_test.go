package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/events"
	"github.com/spec-kit/job-portal/internal/repository"
)

// captureDispatcher records published events for assertions.
type captureDispatcher struct {
	published []events.Event
}

func (d *captureDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *captureDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

func (d *captureDispatcher) lastOfType(eventType events.EventType) (events.Event, bool) {
	for i := len(d.published) - 1; i >= 0; i-- {
		if d.published[i].Type == eventType {
			return d.published[i], true
		}
	}
	return events.Event{}, false
}

// memJobRepo is an in-memory JobRepository.
type memJobRepo struct {
	jobs   map[string]*domain.Job
	nextID int
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{jobs: make(map[string]*domain.Job)}
}

func (r *memJobRepo) Create(ctx context.Context, job *domain.Job) error {
	r.nextID++
	job.ID = fmt.Sprintf("job-%d", r.nextID)
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt
	stored := *job
	r.jobs[job.ID] = &stored
	return nil
}

func (r *memJobRepo) Update(ctx context.Context, job *domain.Job) error {
	if _, ok := r.jobs[job.ID]; !ok {
		return pgx.ErrNoRows
	}
	job.UpdatedAt = time.Now()
	stored := *job
	r.jobs[job.ID] = &stored
	return nil
}

func (r *memJobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *job
	return &copied, nil
}

func (r *memJobRepo) SetStatus(ctx context.Context, id string, status domain.JobStatus, rejectReason *string) error {
	job, ok := r.jobs[id]
	if !ok {
		return pgx.ErrNoRows
	}
	job.Status = status
	job.RejectReason = rejectReason
	job.UpdatedAt = time.Now()
	return nil
}

func (r *memJobRepo) List(ctx context.Context, filter repository.JobFilter) ([]domain.Job, error) {
	var out []domain.Job
	for _, job := range r.jobs {
		if filter.EmployerID != nil && job.EmployerID != *filter.EmployerID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, job.Status) {
			continue
		}
		out = append(out, *job)
	}
	return out, nil
}

func containsStatus(statuses []domain.JobStatus, status domain.JobStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

// memApplicationRepo is an in-memory ApplicationRepository.
type memApplicationRepo struct {
	applications map[string]*domain.Application
	nextID       int
}

func newMemApplicationRepo() *memApplicationRepo {
	return &memApplicationRepo{applications: make(map[string]*domain.Application)}
}

func (r *memApplicationRepo) Create(ctx context.Context, application *domain.Application) error {
	r.nextID++
	application.ID = fmt.Sprintf("app-%d", r.nextID)
	application.CreatedAt = time.Now()
	application.UpdatedAt = application.CreatedAt
	stored := *application
	r.applications[application.ID] = &stored
	return nil
}

func (r *memApplicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	application, ok := r.applications[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *application
	return &copied, nil
}

func (r *memApplicationRepo) GetByJobAndCandidate(ctx context.Context, jobID, candidateID string) (*domain.Application, error) {
	for _, application := range r.applications {
		if application.JobID == jobID && application.CandidateID == candidateID {
			copied := *application
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memApplicationRepo) ListByJob(ctx context.Context, jobID string, limit, offset int) ([]domain.Application, error) {
	var out []domain.Application
	for _, application := range r.applications {
		if application.JobID == jobID {
			out = append(out, *application)
		}
	}
	return out, nil
}

func (r *memApplicationRepo) ListByCandidate(ctx context.Context, candidateID string, limit, offset int) ([]domain.Application, error) {
	var out []domain.Application
	for _, application := range r.applications {
		if application.CandidateID == candidateID {
			out = append(out, *application)
		}
	}
	return out, nil
}

func (r *memApplicationRepo) SetStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	application, ok := r.applications[id]
	if !ok {
		return pgx.ErrNoRows
	}
	application.Status = status
	application.UpdatedAt = time.Now()
	return nil
}

// memAccountRepo is an in-memory AccountRepository.
type memAccountRepo struct {
	accounts map[string]*domain.Account
	nextID   int
}

func newMemAccountRepo(accounts ...*domain.Account) *memAccountRepo {
	repo := &memAccountRepo{accounts: make(map[string]*domain.Account)}
	for _, account := range accounts {
		repo.accounts[account.ID] = account
	}
	return repo
}

func (r *memAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	r.nextID++
	account.ID = fmt.Sprintf("acc-%d", r.nextID)
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	stored := *account
	r.accounts[account.ID] = &stored
	return nil
}

func (r *memAccountRepo) Update(ctx context.Context, account *domain.Account) error {
	if _, ok := r.accounts[account.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *account
	r.accounts[account.ID] = &stored
	return nil
}

func (r *memAccountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *account
	return &copied, nil
}

func (r *memAccountRepo) GetByIdentifier(ctx context.Context, identifier string) (*domain.Account, error) {
	for _, account := range r.accounts {
		if account.Email == identifier {
			copied := *account
			return &copied, nil
		}
		if account.Phone != nil && *account.Phone == identifier {
			copied := *account
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memAccountRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	account, ok := r.accounts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	account.LastLogin = &at
	return nil
}

func (r *memAccountRepo) SetStatus(ctx context.Context, id string, status domain.AccountStatus) error {
	account, ok := r.accounts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	account.Status = status
	return nil
}

func (r *memAccountRepo) SoftDelete(ctx context.Context, id string) error {
	account, ok := r.accounts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	account.IsDeleted = true
	return nil
}

func (r *memAccountRepo) List(ctx context.Context, filter repository.AccountFilter) ([]domain.Account, error) {
	var out []domain.Account
	for _, account := range r.accounts {
		if filter.Role != nil && account.Role != *filter.Role {
			continue
		}
		if filter.Status != nil && account.Status != *filter.Status {
			continue
		}
		out = append(out, *account)
	}
	return out, nil
}

// memResetRepo is an in-memory PasswordResetRepository.
type memResetRepo struct {
	tokens map[string]*repository.PasswordResetToken
	nextID int
}

func newMemResetRepo() *memResetRepo {
	return &memResetRepo{tokens: make(map[string]*repository.PasswordResetToken)}
}

func (r *memResetRepo) Create(ctx context.Context, token *repository.PasswordResetToken) error {
	r.nextID++
	token.ID = fmt.Sprintf("reset-%d", r.nextID)
	token.CreatedAt = time.Now()
	stored := *token
	r.tokens[token.Token] = &stored
	return nil
}

func (r *memResetRepo) GetByToken(ctx context.Context, token string) (*repository.PasswordResetToken, error) {
	stored, ok := r.tokens[token]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *stored
	return &copied, nil
}

func (r *memResetRepo) MarkUsed(ctx context.Context, id string) error {
	now := time.Now()
	for _, token := range r.tokens {
		if token.ID == id {
			token.UsedAt = &now
			return nil
		}
	}
	return pgx.ErrNoRows
}

// memNotificationRepo is an in-memory NotificationRepository.
type memNotificationRepo struct {
	notifications []*domain.Notification
	nextID        int
}

func newMemNotificationRepo() *memNotificationRepo {
	return &memNotificationRepo{}
}

func (r *memNotificationRepo) Create(ctx context.Context, notification *domain.Notification) error {
	r.nextID++
	notification.ID = fmt.Sprintf("ntf-%d", r.nextID)
	notification.CreatedAt = time.Now()
	stored := *notification
	r.notifications = append(r.notifications, &stored)
	return nil
}

func (r *memNotificationRepo) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, notification := range r.notifications {
		if notification.AccountID == accountID {
			out = append(out, *notification)
		}
	}
	return out, nil
}

func (r *memNotificationRepo) CountUnread(ctx context.Context, accountID string) (int64, error) {
	var count int64
	for _, notification := range r.notifications {
		if notification.AccountID == accountID && notification.ReadAt == nil {
			count++
		}
	}
	return count, nil
}

func (r *memNotificationRepo) MarkRead(ctx context.Context, id, accountID string) error {
	now := time.Now()
	for _, notification := range r.notifications {
		if notification.ID == id && notification.AccountID == accountID {
			notification.ReadAt = &now
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *memNotificationRepo) MarkAllRead(ctx context.Context, accountID string) error {
	now := time.Now()
	for _, notification := range r.notifications {
		if notification.AccountID == accountID && notification.ReadAt == nil {
			notification.ReadAt = &now
		}
	}
	return nil
}
