package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/job-portal/internal/domain"
)

// ApplicationRepository encapsulates application persistence.
type ApplicationRepository interface {
	Create(ctx context.Context, application *domain.Application) error
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	GetByJobAndCandidate(ctx context.Context, jobID, candidateID string) (*domain.Application, error)
	ListByJob(ctx context.Context, jobID string, limit, offset int) ([]domain.Application, error)
	ListByCandidate(ctx context.Context, candidateID string, limit, offset int) ([]domain.Application, error)
	SetStatus(ctx context.Context, id string, status domain.ApplicationStatus) error
}

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository instantiates repository.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

const applicationColumns = `id, job_id, candidate_id, cover_letter, status, created_at, updated_at`

func (r *applicationRepository) Create(ctx context.Context, application *domain.Application) error {
	const query = `
        INSERT INTO applications (job_id, candidate_id, cover_letter, status)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		application.JobID,
		application.CandidateID,
		application.CoverLetter,
		application.Status,
	).Scan(&application.ID, &application.CreatedAt, &application.UpdatedAt)
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *applicationRepository) GetByJobAndCandidate(ctx context.Context, jobID, candidateID string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE job_id=$1 AND candidate_id=$2`
	var application domain.Application
	if err := r.pool.QueryRow(ctx, query, jobID, candidateID).Scan(
		&application.ID,
		&application.JobID,
		&application.CandidateID,
		&application.CoverLetter,
		&application.Status,
		&application.CreatedAt,
		&application.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Application, error) {
	var application domain.Application
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&application.ID,
		&application.JobID,
		&application.CandidateID,
		&application.CoverLetter,
		&application.Status,
		&application.CreatedAt,
		&application.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobID string, limit, offset int) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE job_id=$1
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, jobID, normalizeLimit(limit), normalizeOffset(offset))
}

func (r *applicationRepository) ListByCandidate(ctx context.Context, candidateID string, limit, offset int) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE candidate_id=$1
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, candidateID, normalizeLimit(limit), normalizeOffset(offset))
}

func (r *applicationRepository) list(ctx context.Context, query string, args ...any) ([]domain.Application, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Application
	for rows.Next() {
		var application domain.Application
		if err := rows.Scan(
			&application.ID,
			&application.JobID,
			&application.CandidateID,
			&application.CoverLetter,
			&application.Status,
			&application.CreatedAt,
			&application.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, application)
	}
	return result, rows.Err()
}

func (r *applicationRepository) SetStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	const query = `UPDATE applications SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
