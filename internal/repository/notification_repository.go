package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/job-portal/internal/domain"
)

// NotificationRepository encapsulates notification persistence.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, accountID string) (int64, error)
	MarkRead(ctx context.Context, id, accountID string) error
	MarkAllRead(ctx context.Context, accountID string) error
}

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository instantiates repository.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	const query = `
        INSERT INTO notifications (account_id, kind, title, body)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		notification.AccountID,
		notification.Kind,
		notification.Title,
		notification.Body,
	).Scan(&notification.ID, &notification.CreatedAt)
}

func (r *notificationRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.Notification, error) {
	const query = `
        SELECT id, account_id, kind, title, body, read_at, created_at
        FROM notifications WHERE account_id=$1
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, accountID, normalizeLimit(limit), normalizeOffset(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Notification
	for rows.Next() {
		var notification domain.Notification
		if err := rows.Scan(
			&notification.ID,
			&notification.AccountID,
			&notification.Kind,
			&notification.Title,
			&notification.Body,
			&notification.ReadAt,
			&notification.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, notification)
	}
	return result, rows.Err()
}

func (r *notificationRepository) CountUnread(ctx context.Context, accountID string) (int64, error) {
	const query = `SELECT COUNT(*) FROM notifications WHERE account_id=$1 AND read_at IS NULL`
	var count int64
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// MarkRead scopes on account_id so an account cannot mark another account's
// notification.
func (r *notificationRepository) MarkRead(ctx context.Context, id, accountID string) error {
	const query = `UPDATE notifications SET read_at=NOW() WHERE id=$1 AND account_id=$2 AND read_at IS NULL`
	cmd, err := r.pool.Exec(ctx, query, id, accountID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, accountID string) error {
	const query = `UPDATE notifications SET read_at=NOW() WHERE account_id=$1 AND read_at IS NULL`
	_, err := r.pool.Exec(ctx, query, accountID)
	return err
}
