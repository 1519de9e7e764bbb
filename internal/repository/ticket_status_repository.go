package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
)

// TicketStatusRepository encapsulates the tenant-scoped status lanes.
type TicketStatusRepository interface {
	Create(ctx context.Context, status *domain.TicketStatus) error
	Update(ctx context.Context, status *domain.TicketStatus) error
	Delete(ctx context.Context, organizationID, id string) error
	GetByID(ctx context.Context, organizationID, id string) (*domain.TicketStatus, error)
	GetDefault(ctx context.Context, organizationID string) (*domain.TicketStatus, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]domain.TicketStatus, error)
}

type ticketStatusRepository struct {
	pool *pgxpool.Pool
}

// NewTicketStatusRepository instantiates repository.
func NewTicketStatusRepository(pool *pgxpool.Pool) TicketStatusRepository {
	return &ticketStatusRepository{pool: pool}
}

const ticketStatusColumns = `id, organization_id, name, sort_order, is_default, is_closing, created_at`

func (r *ticketStatusRepository) Create(ctx context.Context, status *domain.TicketStatus) error {
	const query = `
        INSERT INTO ticket_statuses (organization_id, name, sort_order, is_default, is_closing)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		status.OrganizationID,
		status.Name,
		status.SortOrder,
		status.IsDefault,
		status.IsClosing,
	).Scan(&status.ID, &status.CreatedAt)
}

func (r *ticketStatusRepository) Update(ctx context.Context, status *domain.TicketStatus) error {
	const query = `
        UPDATE ticket_statuses SET name=$1, sort_order=$2, is_default=$3, is_closing=$4
        WHERE id=$5 AND organization_id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		status.Name,
		status.SortOrder,
		status.IsDefault,
		status.IsClosing,
		status.ID,
		status.OrganizationID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketStatusRepository) Delete(ctx context.Context, organizationID, id string) error {
	const query = `DELETE FROM ticket_statuses WHERE id=$1 AND organization_id=$2`
	cmd, err := r.pool.Exec(ctx, query, id, organizationID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketStatusRepository) GetByID(ctx context.Context, organizationID, id string) (*domain.TicketStatus, error) {
	const query = `
        SELECT ` + ticketStatusColumns + ` FROM ticket_statuses
        WHERE id=$1 AND organization_id=$2`
	return r.fetchSingle(ctx, query, id, organizationID)
}

func (r *ticketStatusRepository) GetDefault(ctx context.Context, organizationID string) (*domain.TicketStatus, error) {
	const query = `
        SELECT ` + ticketStatusColumns + ` FROM ticket_statuses
        WHERE organization_id=$1 AND is_default ORDER BY sort_order, id LIMIT 1`
	return r.fetchSingle(ctx, query, organizationID)
}

func (r *ticketStatusRepository) ListByOrganization(ctx context.Context, organizationID string) ([]domain.TicketStatus, error) {
	const query = `
        SELECT ` + ticketStatusColumns + ` FROM ticket_statuses
        WHERE organization_id=$1 ORDER BY sort_order, id`

	rows, err := r.pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketStatus
	for rows.Next() {
		var status domain.TicketStatus
		if err := rows.Scan(
			&status.ID,
			&status.OrganizationID,
			&status.Name,
			&status.SortOrder,
			&status.IsDefault,
			&status.IsClosing,
			&status.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, status)
	}
	return result, rows.Err()
}

func (r *ticketStatusRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.TicketStatus, error) {
	var status domain.TicketStatus
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&status.ID,
		&status.OrganizationID,
		&status.Name,
		&status.SortOrder,
		&status.IsDefault,
		&status.IsClosing,
		&status.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &status, nil
}
