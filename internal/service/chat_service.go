package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/events"
	"github.com/spec-kit/job-portal/internal/repository"
	apperrors "github.com/spec-kit/job-portal/pkg/util"
)

const messagePreviewLen = 80

// ChatService manages employer/candidate conversations. Message persistence
// goes through Postgres; realtime delivery is fanned out by the notification
// service reacting to the message_sent event.
type ChatService struct {
	conversations repository.ConversationRepository
	jobs          repository.JobRepository
	dispatcher    events.Dispatcher
}

// NewChatService builds the service.
func NewChatService(conversations repository.ConversationRepository, jobs repository.JobRepository, dispatcher events.Dispatcher) *ChatService {
	return &ChatService{conversations: conversations, jobs: jobs, dispatcher: dispatcher}
}

// StartConversation opens (or returns the existing) thread between the
// candidate and the employer behind a job.
func (s *ChatService) StartConversation(ctx context.Context, candidateID, jobID string) (*domain.Conversation, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("job", map[string]any{"id": jobID})
		}
		return nil, err
	}

	existing, err := s.conversations.GetByParticipants(ctx, job.ID, job.EmployerID, candidateID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	conversation := &domain.Conversation{
		JobID:       job.ID,
		EmployerID:  job.EmployerID,
		CandidateID: candidateID,
	}
	if err := s.conversations.CreateConversation(ctx, conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

// ListConversations returns threads the account participates in.
func (s *ChatService) ListConversations(ctx context.Context, accountID string, limit, offset int) ([]domain.Conversation, error) {
	return s.conversations.ListByAccount(ctx, accountID, limit, offset)
}

// SendMessage persists a message from a participant and emits the fan-out
// event carrying the recipient.
func (s *ChatService) SendMessage(ctx context.Context, senderID, conversationID, body string) (*domain.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, apperrors.NewValidationError("message body required", nil)
	}

	conversation, err := s.participantConversation(ctx, senderID, conversationID)
	if err != nil {
		return nil, err
	}

	message := &domain.Message{
		ConversationID: conversation.ID,
		SenderID:       senderID,
		Body:           body,
	}
	if err := s.conversations.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventMessageSent,
			ActorID:   senderID,
			Timestamp: time.Now(),
			Payload: events.MessageSentPayload{
				ConversationID: conversation.ID,
				MessageID:      message.ID,
				SenderID:       senderID,
				RecipientID:    conversation.OtherParticipant(senderID),
				BodyPreview:    preview(body),
			},
		})
	}
	return message, nil
}

// ListMessages returns a page of messages for a participant and marks the
// counterpart's messages read.
func (s *ChatService) ListMessages(ctx context.Context, accountID, conversationID string, limit, offset int) ([]domain.Message, error) {
	conversation, err := s.participantConversation(ctx, accountID, conversationID)
	if err != nil {
		return nil, err
	}
	messages, err := s.conversations.ListMessages(ctx, conversation.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := s.conversations.MarkMessagesRead(ctx, conversation.ID, accountID); err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *ChatService) participantConversation(ctx context.Context, accountID, conversationID string) (*domain.Conversation, error) {
	conversation, err := s.conversations.GetConversationByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("conversation", map[string]any{"id": conversationID})
		}
		return nil, err
	}
	if conversation.OtherParticipant(accountID) == "" {
		return nil, apperrors.NewForbidden("not a participant in this conversation")
	}
	return conversation, nil
}

func preview(body string) string {
	body = strings.TrimSpace(body)
	if len(body) <= messagePreviewLen {
		return body
	}
	// Cut on a rune boundary so a multibyte character is never split.
	cut := messagePreviewLen
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut]
}
