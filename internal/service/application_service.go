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

// ApplicationService handles candidate applications and employer review.
type ApplicationService struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	dispatcher   events.Dispatcher
}

// NewApplicationService builds the service.
func NewApplicationService(applications repository.ApplicationRepository, jobs repository.JobRepository, dispatcher events.Dispatcher) *ApplicationService {
	return &ApplicationService{applications: applications, jobs: jobs, dispatcher: dispatcher}
}

// Apply submits a candidate application to an approved job. A candidate may
// apply to a job once.
func (s *ApplicationService) Apply(ctx context.Context, candidateID, jobID, coverLetter string) (*domain.Application, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("job", map[string]any{"id": jobID})
		}
		return nil, err
	}
	if job.Status != domain.JobStatusApproved {
		return nil, apperrors.NewConflict("job is not open for applications", nil)
	}

	if _, err := s.applications.GetByJobAndCandidate(ctx, jobID, candidateID); err == nil {
		return nil, apperrors.NewConflict("already applied to this job", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	application := &domain.Application{
		JobID:       jobID,
		CandidateID: candidateID,
		CoverLetter: coverLetter,
		Status:      domain.ApplicationStatusSubmitted,
	}
	if err := s.applications.Create(ctx, application); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventApplicationSubmitted, candidateID, events.ApplicationSubmittedPayload{
		ApplicationID: application.ID,
		JobID:         job.ID,
		JobTitle:      job.Title,
		EmployerID:    job.EmployerID,
		CandidateID:   candidateID,
	})
	return application, nil
}

// ListForCandidate returns the candidate's own applications.
func (s *ApplicationService) ListForCandidate(ctx context.Context, candidateID string, limit, offset int) ([]domain.Application, error) {
	return s.applications.ListByCandidate(ctx, candidateID, limit, offset)
}

// ListForJob returns applications on one of the employer's jobs.
func (s *ApplicationService) ListForJob(ctx context.Context, employerID, jobID string, limit, offset int) ([]domain.Application, error) {
	if _, err := s.ownedJob(ctx, employerID, jobID); err != nil {
		return nil, err
	}
	return s.applications.ListByJob(ctx, jobID, limit, offset)
}

// UpdateStatus lets the employer move an application through review.
func (s *ApplicationService) UpdateStatus(ctx context.Context, employerID, applicationID string, status domain.ApplicationStatus) (*domain.Application, error) {
	switch status {
	case domain.ApplicationStatusReviewed, domain.ApplicationStatusShortlisted,
		domain.ApplicationStatusRejected, domain.ApplicationStatusHired:
	default:
		return nil, apperrors.NewValidationError("invalid application status", map[string]any{"status": status})
	}

	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("application", map[string]any{"id": applicationID})
		}
		return nil, err
	}

	job, err := s.ownedJob(ctx, employerID, application.JobID)
	if err != nil {
		return nil, err
	}

	oldStatus := application.Status
	if err := s.applications.SetStatus(ctx, application.ID, status); err != nil {
		return nil, err
	}
	application.Status = status

	s.publish(ctx, events.EventApplicationStatusChanged, employerID, events.ApplicationStatusChangedPayload{
		ApplicationID: application.ID,
		JobID:         job.ID,
		JobTitle:      job.Title,
		CandidateID:   application.CandidateID,
		OldStatus:     oldStatus,
		NewStatus:     status,
	})
	return application, nil
}

func (s *ApplicationService) ownedJob(ctx context.Context, employerID, jobID string) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("job", map[string]any{"id": jobID})
		}
		return nil, err
	}
	if job.EmployerID != employerID {
		return nil, apperrors.NewForbidden("not the owner of this job")
	}
	return job, nil
}

func (s *ApplicationService) publish(ctx context.Context, eventType events.EventType, actorID string, payload interface{}) {
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
