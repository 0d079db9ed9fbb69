package dto

import (
	"time"

	"github.com/spec-kit/job-portal/internal/domain"
)

// JobRequest payload for creating or updating a posting.
type JobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	SalaryMin   *int64 `json:"salaryMin,omitempty"`
	SalaryMax   *int64 `json:"salaryMax,omitempty"`
}

// JobRejectRequest payload for rejecting a posting in moderation.
type JobRejectRequest struct {
	Reason string `json:"reason"`
}

// JobResponse is the public shape of a posting.
type JobResponse struct {
	ID           string    `json:"id"`
	EmployerID   string    `json:"employerId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	SalaryMin    *int64    `json:"salaryMin,omitempty"`
	SalaryMax    *int64    `json:"salaryMax,omitempty"`
	Status       string    `json:"status"`
	RejectReason *string   `json:"rejectReason,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewJobResponse maps a domain job.
func NewJobResponse(job *domain.Job) JobResponse {
	return JobResponse{
		ID:           job.ID,
		EmployerID:   job.EmployerID,
		Title:        job.Title,
		Description:  job.Description,
		Location:     job.Location,
		SalaryMin:    job.SalaryMin,
		SalaryMax:    job.SalaryMax,
		Status:       string(job.Status),
		RejectReason: job.RejectReason,
		CreatedAt:    job.CreatedAt,
		UpdatedAt:    job.UpdatedAt,
	}
}

// NewJobResponses maps a slice of domain jobs.
func NewJobResponses(jobs []domain.Job) []JobResponse {
	result := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		result = append(result, NewJobResponse(&jobs[i]))
	}
	return result
}
