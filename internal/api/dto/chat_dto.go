package dto

import (
	"time"

	"github.com/spec-kit/job-portal/internal/domain"
)

// StartConversationRequest opens a thread with the employer behind a job.
type StartConversationRequest struct {
	JobID string `json:"jobId"`
}

// SendMessageRequest payload for a chat message.
type SendMessageRequest struct {
	Body string `json:"body"`
}

// ConversationResponse is the public shape of a conversation.
type ConversationResponse struct {
	ID          string    `json:"id"`
	JobID       string    `json:"jobId"`
	EmployerID  string    `json:"employerId"`
	CandidateID string    `json:"candidateId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MessageResponse is the public shape of a message.
type MessageResponse struct {
	ID             string     `json:"id"`
	ConversationID string     `json:"conversationId"`
	SenderID       string     `json:"senderId"`
	Body           string     `json:"body"`
	ReadAt         *time.Time `json:"readAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// NewConversationResponse maps a domain conversation.
func NewConversationResponse(conversation *domain.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:          conversation.ID,
		JobID:       conversation.JobID,
		EmployerID:  conversation.EmployerID,
		CandidateID: conversation.CandidateID,
		CreatedAt:   conversation.CreatedAt,
	}
}

// NewConversationResponses maps a slice of domain conversations.
func NewConversationResponses(conversations []domain.Conversation) []ConversationResponse {
	result := make([]ConversationResponse, 0, len(conversations))
	for i := range conversations {
		result = append(result, NewConversationResponse(&conversations[i]))
	}
	return result
}

// NewMessageResponse maps a domain message.
func NewMessageResponse(message *domain.Message) MessageResponse {
	return MessageResponse{
		ID:             message.ID,
		ConversationID: message.ConversationID,
		SenderID:       message.SenderID,
		Body:           message.Body,
		ReadAt:         message.ReadAt,
		CreatedAt:      message.CreatedAt,
	}
}

// NewMessageResponses maps a slice of domain messages.
func NewMessageResponses(messages []domain.Message) []MessageResponse {
	result := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		result = append(result, NewMessageResponse(&messages[i]))
	}
	return result
}
