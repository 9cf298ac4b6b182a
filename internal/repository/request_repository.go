package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zentharo/request-service/internal/domain"
)

// RequestRepository encapsulates request persistence. Every operation is
// single-record atomic; there are no multi-record transactional guarantees.
type RequestRepository interface {
	Create(ctx context.Context, request *domain.Request) error
	GetByID(ctx context.Context, id string) (*domain.Request, error)
	ListAll(ctx context.Context) ([]domain.Request, error)
	UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.Request, error)
	Delete(ctx context.Context, id string) error
}

type requestRepository struct {
	pool *pgxpool.Pool
}

// NewRequestRepository returns a Postgres-backed implementation.
func NewRequestRepository(pool *pgxpool.Pool) RequestRepository {
	return &requestRepository{pool: pool}
}

func (r *requestRepository) Create(ctx context.Context, request *domain.Request) error {
	const query = `
        INSERT INTO requests (customer_name, customer_email, customer_phone, selected_services, status, submitted_timestamp)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		request.CustomerDetails.Name,
		request.CustomerDetails.Email,
		request.CustomerDetails.Phone,
		request.SelectedServices,
		request.Status,
		request.SubmittedTimestamp,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	const query = `
        SELECT id, customer_name, customer_email, customer_phone, selected_services, status, submitted_timestamp, created_at, updated_at
        FROM requests WHERE id=$1`

	var request domain.Request
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.CustomerDetails.Name,
		&request.CustomerDetails.Email,
		&request.CustomerDetails.Phone,
		&request.SelectedServices,
		&request.Status,
		&request.SubmittedTimestamp,
		&request.CreatedAt,
		&request.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &request, nil
}

// ListAll returns every request ordered newest-first by submitted_timestamp.
// The integer timestamp is the sole sort key.
func (r *requestRepository) ListAll(ctx context.Context) ([]domain.Request, error) {
	const query = `
        SELECT id, customer_name, customer_email, customer_phone, selected_services, status, submitted_timestamp, created_at, updated_at
        FROM requests ORDER BY submitted_timestamp DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.Request, error) {
	const query = `
        UPDATE requests SET status=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING id, customer_name, customer_email, customer_phone, selected_services, status, submitted_timestamp, created_at, updated_at`

	var request domain.Request
	if err := r.pool.QueryRow(ctx, query, status, id).Scan(
		&request.ID,
		&request.CustomerDetails.Name,
		&request.CustomerDetails.Email,
		&request.CustomerDetails.Phone,
		&request.SelectedServices,
		&request.Status,
		&request.SubmittedTimestamp,
		&request.CreatedAt,
		&request.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM requests WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanRequests(rows pgx.Rows) ([]domain.Request, error) {
	var result []domain.Request
	for rows.Next() {
		var request domain.Request
		if err := rows.Scan(
			&request.ID,
			&request.CustomerDetails.Name,
			&request.CustomerDetails.Email,
			&request.CustomerDetails.Phone,
			&request.SelectedServices,
			&request.Status,
			&request.SubmittedTimestamp,
			&request.CreatedAt,
			&request.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, request)
	}
	return result, rows.Err()
}
