package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/job-portal/internal/domain"
)

// ConversationRepository encapsulates chat persistence: conversations and
// their messages.
type ConversationRepository interface {
	CreateConversation(ctx context.Context, conversation *domain.Conversation) error
	GetConversationByID(ctx context.Context, id string) (*domain.Conversation, error)
	GetByParticipants(ctx context.Context, jobID, employerID, candidateID string) (*domain.Conversation, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.Conversation, error)
	CreateMessage(ctx context.Context, message *domain.Message) error
	ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]domain.Message, error)
	MarkMessagesRead(ctx context.Context, conversationID, readerID string) error
}

type conversationRepository struct {
	pool *pgxpool.Pool
}

// NewConversationRepository instantiates repository.
func NewConversationRepository(pool *pgxpool.Pool) ConversationRepository {
	return &conversationRepository{pool: pool}
}

func (r *conversationRepository) CreateConversation(ctx context.Context, conversation *domain.Conversation) error {
	const query = `
        INSERT INTO conversations (job_id, employer_id, candidate_id)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		conversation.JobID,
		conversation.EmployerID,
		conversation.CandidateID,
	).Scan(&conversation.ID, &conversation.CreatedAt)
}

func (r *conversationRepository) GetConversationByID(ctx context.Context, id string) (*domain.Conversation, error) {
	const query = `
        SELECT id, job_id, employer_id, candidate_id, created_at
        FROM conversations WHERE id=$1`
	var conversation domain.Conversation
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&conversation.ID,
		&conversation.JobID,
		&conversation.EmployerID,
		&conversation.CandidateID,
		&conversation.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepository) GetByParticipants(ctx context.Context, jobID, employerID, candidateID string) (*domain.Conversation, error) {
	const query = `
        SELECT id, job_id, employer_id, candidate_id, created_at
        FROM conversations WHERE job_id=$1 AND employer_id=$2 AND candidate_id=$3`
	var conversation domain.Conversation
	if err := r.pool.QueryRow(ctx, query, jobID, employerID, candidateID).Scan(
		&conversation.ID,
		&conversation.JobID,
		&conversation.EmployerID,
		&conversation.CandidateID,
		&conversation.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.Conversation, error) {
	const query = `
        SELECT id, job_id, employer_id, candidate_id, created_at
        FROM conversations WHERE employer_id=$1 OR candidate_id=$1
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, accountID, normalizeLimit(limit), normalizeOffset(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Conversation
	for rows.Next() {
		var conversation domain.Conversation
		if err := rows.Scan(
			&conversation.ID,
			&conversation.JobID,
			&conversation.EmployerID,
			&conversation.CandidateID,
			&conversation.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, conversation)
	}
	return result, rows.Err()
}

func (r *conversationRepository) CreateMessage(ctx context.Context, message *domain.Message) error {
	const query = `
        INSERT INTO messages (conversation_id, sender_id, body)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		message.ConversationID,
		message.SenderID,
		message.Body,
	).Scan(&message.ID, &message.CreatedAt)
}

func (r *conversationRepository) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]domain.Message, error) {
	const query = `
        SELECT id, conversation_id, sender_id, body, read_at, created_at
        FROM messages WHERE conversation_id=$1
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, conversationID, normalizeLimit(limit), normalizeOffset(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Message
	for rows.Next() {
		var message domain.Message
		if err := rows.Scan(
			&message.ID,
			&message.ConversationID,
			&message.SenderID,
			&message.Body,
			&message.ReadAt,
			&message.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, message)
	}
	return result, rows.Err()
}

// MarkMessagesRead marks every unread message the reader did not send.
func (r *conversationRepository) MarkMessagesRead(ctx context.Context, conversationID, readerID string) error {
	const query = `
        UPDATE messages SET read_at=NOW()
        WHERE conversation_id=$1 AND sender_id<>$2 AND read_at IS NULL`
	_, err := r.pool.Exec(ctx, query, conversationID, readerID)
	return err
}
