package domain

import "time"

// ApplicationStatus tracks a candidate's application through review.
type ApplicationStatus string

const (
	ApplicationStatusSubmitted   ApplicationStatus = "SUBMITTED"
	ApplicationStatusReviewed    ApplicationStatus = "REVIEWED"
	ApplicationStatusShortlisted ApplicationStatus = "SHORTLISTED"
	ApplicationStatusRejected    ApplicationStatus = "REJECTED"
	ApplicationStatusHired       ApplicationStatus = "HIRED"
)

// Application links a candidate to a job. A candidate may apply to a given
// job at most once (enforced by a unique constraint on job_id+candidate_id).
type Application struct {
	ID          string
	JobID       string
	CandidateID string
	CoverLetter string
	Status      ApplicationStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
