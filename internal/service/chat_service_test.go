package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/events"
	"github.com/spec-kit/job-portal/internal/service"
)

// memConversationRepo is an in-memory ConversationRepository.
type memConversationRepo struct {
	conversations map[string]*domain.Conversation
	messages      map[string][]*domain.Message
	nextID        int
}

func newMemConversationRepo() *memConversationRepo {
	return &memConversationRepo{
		conversations: make(map[string]*domain.Conversation),
		messages:      make(map[string][]*domain.Message),
	}
}

func (r *memConversationRepo) CreateConversation(ctx context.Context, conversation *domain.Conversation) error {
	r.nextID++
	conversation.ID = fmt.Sprintf("conv-%d", r.nextID)
	conversation.CreatedAt = time.Now()
	stored := *conversation
	r.conversations[conversation.ID] = &stored
	return nil
}

func (r *memConversationRepo) GetConversationByID(ctx context.Context, id string) (*domain.Conversation, error) {
	conversation, ok := r.conversations[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *conversation
	return &copied, nil
}

func (r *memConversationRepo) GetByParticipants(ctx context.Context, jobID, employerID, candidateID string) (*domain.Conversation, error) {
	for _, conversation := range r.conversations {
		if conversation.JobID == jobID && conversation.EmployerID == employerID && conversation.CandidateID == candidateID {
			copied := *conversation
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memConversationRepo) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.Conversation, error) {
	var out []domain.Conversation
	for _, conversation := range r.conversations {
		if conversation.EmployerID == accountID || conversation.CandidateID == accountID {
			out = append(out, *conversation)
		}
	}
	return out, nil
}

func (r *memConversationRepo) CreateMessage(ctx context.Context, message *domain.Message) error {
	r.nextID++
	message.ID = fmt.Sprintf("msg-%d", r.nextID)
	message.CreatedAt = time.Now()
	stored := *message
	r.messages[message.ConversationID] = append(r.messages[message.ConversationID], &stored)
	return nil
}

func (r *memConversationRepo) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]domain.Message, error) {
	var out []domain.Message
	for _, message := range r.messages[conversationID] {
		out = append(out, *message)
	}
	return out, nil
}

func (r *memConversationRepo) MarkMessagesRead(ctx context.Context, conversationID, readerID string) error {
	now := time.Now()
	for _, message := range r.messages[conversationID] {
		if message.SenderID != readerID && message.ReadAt == nil {
			message.ReadAt = &now
		}
	}
	return nil
}

func newChatFixture(t *testing.T) (*service.ChatService, *memConversationRepo, *domain.Job, *captureDispatcher) {
	t.Helper()
	jobRepo := newMemJobRepo()
	dispatcher := &captureDispatcher{}

	jobSvc := service.NewJobService(jobRepo, nil)
	job, err := jobSvc.Create(context.Background(), "emp-1", jobInput())
	require.NoError(t, err)

	conversations := newMemConversationRepo()
	svc := service.NewChatService(conversations, jobRepo, dispatcher)
	return svc, conversations, job, dispatcher
}

func TestStartConversationIsIdempotent(t *testing.T) {
	svc, _, job, _ := newChatFixture(t)

	first, err := svc.StartConversation(context.Background(), "cand-1", job.ID)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", first.EmployerID)
	assert.Equal(t, "cand-1", first.CandidateID)

	second, err := svc.StartConversation(context.Background(), "cand-1", job.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestSendMessageEmitsRecipientEvent(t *testing.T) {
	svc, _, job, dispatcher := newChatFixture(t)

	conversation, err := svc.StartConversation(context.Background(), "cand-1", job.ID)
	require.NoError(t, err)

	message, err := svc.SendMessage(context.Background(), "emp-1", conversation.ID, "Are you available Monday?")
	require.NoError(t, err)
	assert.NotEmpty(t, message.ID)

	event, ok := dispatcher.lastOfType(events.EventMessageSent)
	require.True(t, ok)
	payload := event.Payload.(events.MessageSentPayload)
	assert.Equal(t, conversation.ID, payload.ConversationID)
	assert.Equal(t, "emp-1", payload.SenderID)
	assert.Equal(t, "cand-1", payload.RecipientID)
	assert.Equal(t, "Are you available Monday?", payload.BodyPreview)
}

func TestSendMessageTruncatesPreview(t *testing.T) {
	svc, _, job, dispatcher := newChatFixture(t)

	conversation, err := svc.StartConversation(context.Background(), "cand-1", job.ID)
	require.NoError(t, err)

	long := strings.Repeat("a", 200)
	_, err = svc.SendMessage(context.Background(), "cand-1", conversation.ID, long)
	require.NoError(t, err)

	event, ok := dispatcher.lastOfType(events.EventMessageSent)
	require.True(t, ok)
	payload := event.Payload.(events.MessageSentPayload)
	assert.Len(t, payload.BodyPreview, 80)
}

func TestSendMessagePreviewKeepsRunesIntact(t *testing.T) {
	svc, _, job, dispatcher := newChatFixture(t)

	conversation, err := svc.StartConversation(context.Background(), "cand-1", job.ID)
	require.NoError(t, err)

	// Three-byte runes that do not divide 80 evenly, so a byte cut would
	// land mid-rune.
	long := strings.Repeat("日", 100)
	_, err = svc.SendMessage(context.Background(), "cand-1", conversation.ID, long)
	require.NoError(t, err)

	event, ok := dispatcher.lastOfType(events.EventMessageSent)
	require.True(t, ok)
	payload := event.Payload.(events.MessageSentPayload)
	assert.True(t, utf8.ValidString(payload.BodyPreview))
	assert.LessOrEqual(t, len(payload.BodyPreview), 80)
	assert.Equal(t, strings.Repeat("日", 26), payload.BodyPreview)
}

func TestSendMessageRejectsOutsiders(t *testing.T) {
	svc, _, job, _ := newChatFixture(t)

	conversation, err := svc.StartConversation(context.Background(), "cand-1", job.ID)
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), "intruder", conversation.ID, "hi")
	assert.Equal(t, "FORBIDDEN", errCode(t, err))
}

func TestSendMessageRequiresBody(t *testing.T) {
	svc, _, job, _ := newChatFixture(t)

	conversation, err := svc.StartConversation(context.Background(), "cand-1", job.ID)
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), "cand-1", conversation.ID, "   ")
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
}

func TestListMessagesMarksCounterpartRead(t *testing.T) {
	svc, conversations, job, _ := newChatFixture(t)

	conversation, err := svc.StartConversation(context.Background(), "cand-1", job.ID)
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), "emp-1", conversation.ID, "hello")
	require.NoError(t, err)
	_, err = svc.SendMessage(context.Background(), "cand-1", conversation.ID, "hi back")
	require.NoError(t, err)

	messages, err := svc.ListMessages(context.Background(), "cand-1", conversation.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	stored := conversations.messages[conversation.ID]
	for _, message := range stored {
		if message.SenderID == "emp-1" {
			assert.NotNil(t, message.ReadAt, "employer message should be read")
		} else {
			assert.Nil(t, message.ReadAt, "reader's own message stays untouched")
		}
	}
}
