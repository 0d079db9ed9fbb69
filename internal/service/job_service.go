package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/events"
	"github.com/spec-kit/job-portal/internal/repository"
	apperrors "github.com/spec-kit/job-portal/pkg/util"
)

// JobService owns the posting lifecycle: employer CRUD, public browsing and
// the admin moderation workflow.
type JobService struct {
	jobs       repository.JobRepository
	dispatcher events.Dispatcher
}

// NewJobService builds the service.
func NewJobService(jobs repository.JobRepository, dispatcher events.Dispatcher) *JobService {
	return &JobService{jobs: jobs, dispatcher: dispatcher}
}

// CreateJobInput captures employer-provided posting fields.
type CreateJobInput struct {
	Title       string
	Description string
	Location    string
	SalaryMin   *int64
	SalaryMax   *int64
}

// Create stores a new posting for the employer; it enters moderation
// immediately.
func (s *JobService) Create(ctx context.Context, employerID string, input CreateJobInput) (*domain.Job, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("title and description required", nil)
	}
	if input.SalaryMin != nil && input.SalaryMax != nil && *input.SalaryMin > *input.SalaryMax {
		return nil, apperrors.NewValidationError("salary_min exceeds salary_max", nil)
	}

	job := &domain.Job{
		EmployerID:  employerID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Location:    strings.TrimSpace(input.Location),
		SalaryMin:   input.SalaryMin,
		SalaryMax:   input.SalaryMax,
		Status:      domain.JobStatusPendingReview,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventJobSubmitted, employerID, events.JobSubmittedPayload{
		JobID:      job.ID,
		EmployerID: job.EmployerID,
		Title:      job.Title,
	})
	return job, nil
}

// Update lets the owning employer edit a posting. Edits to an approved
// posting send it back through moderation.
func (s *JobService) Update(ctx context.Context, employerID, jobID string, input CreateJobInput) (*domain.Job, error) {
	job, err := s.getOwned(ctx, employerID, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status == domain.JobStatusClosed {
		return nil, apperrors.NewConflict("job is closed", nil)
	}

	job.Title = strings.TrimSpace(input.Title)
	job.Description = input.Description
	job.Location = strings.TrimSpace(input.Location)
	job.SalaryMin = input.SalaryMin
	job.SalaryMax = input.SalaryMax
	if job.Status == domain.JobStatusApproved || job.Status == domain.JobStatusRejected {
		job.Status = domain.JobStatusPendingReview
		job.RejectReason = nil
	}
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Close takes a posting off the board.
func (s *JobService) Close(ctx context.Context, employerID, jobID string) (*domain.Job, error) {
	job, err := s.getOwned(ctx, employerID, jobID)
	if err != nil {
		return nil, err
	}
	if err := s.jobs.SetStatus(ctx, job.ID, domain.JobStatusClosed, nil); err != nil {
		return nil, err
	}
	job.Status = domain.JobStatusClosed
	return job, nil
}

// ListByEmployer returns the employer's own postings in any status.
func (s *JobService) ListByEmployer(ctx context.Context, employerID string, limit, offset int) ([]domain.Job, error) {
	return s.jobs.List(ctx, repository.JobFilter{
		EmployerID: &employerID,
		Limit:      limit,
		Offset:     offset,
	})
}

// BrowsePublic lists approved postings for anonymous visitors.
func (s *JobService) BrowsePublic(ctx context.Context, search, location *string, limit, offset int) ([]domain.Job, error) {
	return s.jobs.List(ctx, repository.JobFilter{
		Statuses:   []domain.JobStatus{domain.JobStatusApproved},
		SearchTerm: search,
		Location:   location,
		Limit:      limit,
		Offset:     offset,
	})
}

// GetPublic returns a single posting only when it is publicly visible.
func (s *JobService) GetPublic(ctx context.Context, jobID string) (*domain.Job, error) {
	job, err := s.get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusApproved {
		return nil, apperrors.NewNotFound("job", nil)
	}
	return job, nil
}

// ListPendingReview returns the moderation queue.
func (s *JobService) ListPendingReview(ctx context.Context, limit, offset int) ([]domain.Job, error) {
	return s.jobs.List(ctx, repository.JobFilter{
		Statuses: []domain.JobStatus{domain.JobStatusPendingReview},
		Limit:    limit,
		Offset:   offset,
	})
}

// Approve moves a pending posting onto the public board.
func (s *JobService) Approve(ctx context.Context, actorID, jobID string) (*domain.Job, error) {
	return s.moderate(ctx, actorID, jobID, domain.JobStatusApproved, nil)
}

// Reject declines a pending posting with a reason the employer will see.
func (s *JobService) Reject(ctx context.Context, actorID, jobID, reason string) (*domain.Job, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.NewValidationError("rejection reason required", nil)
	}
	return s.moderate(ctx, actorID, jobID, domain.JobStatusRejected, &reason)
}

func (s *JobService) moderate(ctx context.Context, actorID, jobID string, status domain.JobStatus, reason *string) (*domain.Job, error) {
	job, err := s.get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusPendingReview {
		return nil, apperrors.NewConflict("job is not awaiting review", map[string]any{"status": job.Status})
	}
	if err := s.jobs.SetStatus(ctx, job.ID, status, reason); err != nil {
		return nil, err
	}
	job.Status = status
	job.RejectReason = reason

	eventType := events.EventJobApproved
	if status == domain.JobStatusRejected {
		eventType = events.EventJobRejected
	}
	s.publish(ctx, eventType, actorID, events.JobModeratedPayload{
		JobID:      job.ID,
		EmployerID: job.EmployerID,
		Title:      job.Title,
		Reason:     reason,
	})
	return job, nil
}

func (s *JobService) get(ctx context.Context, jobID string) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("job", map[string]any{"id": jobID})
		}
		return nil, err
	}
	return job, nil
}

func (s *JobService) getOwned(ctx context.Context, employerID, jobID string) (*domain.Job, error) {
	job, err := s.get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != employerID {
		return nil, apperrors.NewForbidden("not the owner of this job")
	}
	return job, nil
}

func (s *JobService) publish(ctx context.Context, eventType events.EventType, actorID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
