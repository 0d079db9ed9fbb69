package domain

import "time"

// JobStatus tracks a posting through the moderation workflow.
type JobStatus string

const (
	JobStatusDraft         JobStatus = "DRAFT"
	JobStatusPendingReview JobStatus = "PENDING_REVIEW"
	JobStatusApproved      JobStatus = "APPROVED"
	JobStatusRejected      JobStatus = "REJECTED"
	JobStatusClosed        JobStatus = "CLOSED"
)

// Job is a posting created by an employer. Only APPROVED jobs are publicly
// browsable; new postings enter PENDING_REVIEW and wait for admin moderation.
type Job struct {
	ID           string
	EmployerID   string
	Title        string
	Description  string
	Location     string
	SalaryMin    *int64
	SalaryMax    *int64
	Status       JobStatus
	RejectReason *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
