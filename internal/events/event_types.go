package events

import (
	"time"

	"github.com/spec-kit/job-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventJobSubmitted             EventType = "job_submitted"
	EventJobApproved              EventType = "job_approved"
	EventJobRejected              EventType = "job_rejected"
	EventApplicationSubmitted     EventType = "application_submitted"
	EventApplicationStatusChanged EventType = "application_status_changed"
	EventMessageSent              EventType = "message_sent"
	EventEmployerApproved         EventType = "employer_approved"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// JobSubmittedPayload payload.
type JobSubmittedPayload struct {
	JobID      string `json:"job_id"`
	EmployerID string `json:"employer_id"`
	Title      string `json:"title"`
}

// JobModeratedPayload is shared by approval and rejection events.
type JobModeratedPayload struct {
	JobID      string  `json:"job_id"`
	EmployerID string  `json:"employer_id"`
	Title      string  `json:"title"`
	Reason     *string `json:"reason,omitempty"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	ApplicationID string `json:"application_id"`
	JobID         string `json:"job_id"`
	JobTitle      string `json:"job_title"`
	EmployerID    string `json:"employer_id"`
	CandidateID   string `json:"candidate_id"`
}

// ApplicationStatusChangedPayload payload.
type ApplicationStatusChangedPayload struct {
	ApplicationID string                   `json:"application_id"`
	JobID         string                   `json:"job_id"`
	JobTitle      string                   `json:"job_title"`
	CandidateID   string                   `json:"candidate_id"`
	OldStatus     domain.ApplicationStatus `json:"old_status"`
	NewStatus     domain.ApplicationStatus `json:"new_status"`
}

// MessageSentPayload payload.
type MessageSentPayload struct {
	ConversationID string `json:"conversation_id"`
	MessageID      string `json:"message_id"`
	SenderID       string `json:"sender_id"`
	RecipientID    string `json:"recipient_id"`
	BodyPreview    string `json:"body_preview"`
}

// EmployerApprovedPayload payload.
type EmployerApprovedPayload struct {
	EmployerID string `json:"employer_id"`
	Name       string `json:"name"`
}
