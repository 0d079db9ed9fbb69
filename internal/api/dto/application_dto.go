package dto

import (
	"time"

	"github.com/spec-kit/job-portal/internal/domain"
)

// ApplyRequest payload for submitting an application.
type ApplyRequest struct {
	JobID       string `json:"jobId"`
	CoverLetter string `json:"coverLetter"`
}

// ApplicationStatusRequest payload for employer review transitions.
type ApplicationStatusRequest struct {
	Status string `json:"status"`
}

// ApplicationResponse is the public shape of an application.
type ApplicationResponse struct {
	ID          string    `json:"id"`
	JobID       string    `json:"jobId"`
	CandidateID string    `json:"candidateId"`
	CoverLetter string    `json:"coverLetter"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewApplicationResponse maps a domain application.
func NewApplicationResponse(application *domain.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          application.ID,
		JobID:       application.JobID,
		CandidateID: application.CandidateID,
		CoverLetter: application.CoverLetter,
		Status:      string(application.Status),
		CreatedAt:   application.CreatedAt,
		UpdatedAt:   application.UpdatedAt,
	}
}

// NewApplicationResponses maps a slice of domain applications.
func NewApplicationResponses(applications []domain.Application) []ApplicationResponse {
	result := make([]ApplicationResponse, 0, len(applications))
	for i := range applications {
		result = append(result, NewApplicationResponse(&applications[i]))
	}
	return result
}
