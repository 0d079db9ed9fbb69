package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/events"
	"github.com/spec-kit/job-portal/internal/service"
)

func newApplicationFixture(t *testing.T) (*service.ApplicationService, *domain.Job, *captureDispatcher) {
	t.Helper()
	jobRepo := newMemJobRepo()
	dispatcher := &captureDispatcher{}

	jobSvc := service.NewJobService(jobRepo, dispatcher)
	job, err := jobSvc.Create(context.Background(), "emp-1", jobInput())
	require.NoError(t, err)
	_, err = jobSvc.Approve(context.Background(), "admin-1", job.ID)
	require.NoError(t, err)
	job.Status = domain.JobStatusApproved

	svc := service.NewApplicationService(newMemApplicationRepo(), jobRepo, dispatcher)
	return svc, job, dispatcher
}

func TestApplyToApprovedJob(t *testing.T) {
	svc, job, dispatcher := newApplicationFixture(t)

	application, err := svc.Apply(context.Background(), "cand-1", job.ID, "hello")
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusSubmitted, application.Status)

	event, ok := dispatcher.lastOfType(events.EventApplicationSubmitted)
	require.True(t, ok)
	payload := event.Payload.(events.ApplicationSubmittedPayload)
	assert.Equal(t, application.ID, payload.ApplicationID)
	assert.Equal(t, "emp-1", payload.EmployerID)
	assert.Equal(t, "cand-1", payload.CandidateID)
}

func TestApplyTwiceConflicts(t *testing.T) {
	svc, job, _ := newApplicationFixture(t)

	_, err := svc.Apply(context.Background(), "cand-1", job.ID, "")
	require.NoError(t, err)

	_, err = svc.Apply(context.Background(), "cand-1", job.ID, "again")
	assert.Equal(t, "CONFLICT", errCode(t, err))
}

func TestApplyToUnapprovedJobConflicts(t *testing.T) {
	jobRepo := newMemJobRepo()
	jobSvc := service.NewJobService(jobRepo, nil)
	job, err := jobSvc.Create(context.Background(), "emp-1", jobInput())
	require.NoError(t, err)

	svc := service.NewApplicationService(newMemApplicationRepo(), jobRepo, nil)
	_, err = svc.Apply(context.Background(), "cand-1", job.ID, "")
	assert.Equal(t, "CONFLICT", errCode(t, err))
}

func TestApplyToMissingJob(t *testing.T) {
	svc, _, _ := newApplicationFixture(t)

	_, err := svc.Apply(context.Background(), "cand-1", "missing", "")
	assert.Equal(t, "NOT_FOUND", errCode(t, err))
}

func TestUpdateStatusByOwner(t *testing.T) {
	svc, job, dispatcher := newApplicationFixture(t)

	application, err := svc.Apply(context.Background(), "cand-1", job.ID, "")
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), "emp-1", application.ID, domain.ApplicationStatusShortlisted)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusShortlisted, updated.Status)

	event, ok := dispatcher.lastOfType(events.EventApplicationStatusChanged)
	require.True(t, ok)
	payload := event.Payload.(events.ApplicationStatusChangedPayload)
	assert.Equal(t, domain.ApplicationStatusSubmitted, payload.OldStatus)
	assert.Equal(t, domain.ApplicationStatusShortlisted, payload.NewStatus)
	assert.Equal(t, "cand-1", payload.CandidateID)
}

func TestUpdateStatusRejectsNonOwner(t *testing.T) {
	svc, job, _ := newApplicationFixture(t)

	application, err := svc.Apply(context.Background(), "cand-1", job.ID, "")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), "emp-2", application.ID, domain.ApplicationStatusReviewed)
	assert.Equal(t, "FORBIDDEN", errCode(t, err))
}

func TestUpdateStatusRejectsInvalidTransitionTarget(t *testing.T) {
	svc, job, _ := newApplicationFixture(t)

	application, err := svc.Apply(context.Background(), "cand-1", job.ID, "")
	require.NoError(t, err)

	// SUBMITTED is not a reviewer-assignable status.
	_, err = svc.UpdateStatus(context.Background(), "emp-1", application.ID, domain.ApplicationStatusSubmitted)
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
}

func TestListForJobChecksOwnership(t *testing.T) {
	svc, job, _ := newApplicationFixture(t)

	_, err := svc.Apply(context.Background(), "cand-1", job.ID, "")
	require.NoError(t, err)

	applications, err := svc.ListForJob(context.Background(), "emp-1", job.ID, 20, 0)
	require.NoError(t, err)
	assert.Len(t, applications, 1)

	_, err = svc.ListForJob(context.Background(), "emp-2", job.ID, 20, 0)
	assert.Equal(t, "FORBIDDEN", errCode(t, err))
}

func TestListForCandidate(t *testing.T) {
	svc, job, _ := newApplicationFixture(t)

	_, err := svc.Apply(context.Background(), "cand-1", job.ID, "")
	require.NoError(t, err)

	mine, err := svc.ListForCandidate(context.Background(), "cand-1", 20, 0)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	other, err := svc.ListForCandidate(context.Background(), "cand-2", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, other)
}
