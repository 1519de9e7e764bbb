package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
)

// TicketFilter captures list/search parameters. Every lookup is additionally
// scoped to one organization by the repository methods themselves.
type TicketFilter struct {
	StatusID    *string
	CategoryID  *string
	Priority    *domain.TicketPriority
	AssignedTo  *string
	SubmitterID *string
	SearchTerm  *string
	Limit       int
	Offset      int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	Delete(ctx context.Context, organizationID, id string) error
	GetByID(ctx context.Context, organizationID, id string) (*domain.Ticket, error)
	GetByPublicToken(ctx context.Context, organizationID, token string) (*domain.Ticket, error)
	TokenExists(ctx context.Context, token string) (bool, error)
	ListWithFilter(ctx context.Context, organizationID string, filter TicketFilter) ([]domain.Ticket, error)
	CountByStatus(ctx context.Context, organizationID, statusID string) (int64, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, organization_id, title, description, status_id, priority, category_id,
               user_id, submitter_name, submitter_email, assigned_to, public_token,
               created_at, updated_at, closed_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (organization_id, title, description, status_id, priority, category_id,
                             user_id, submitter_name, submitter_email, assigned_to, public_token)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.OrganizationID,
		ticket.Title,
		ticket.Description,
		ticket.StatusID,
		ticket.Priority,
		ticket.CategoryID,
		ticket.UserID,
		ticket.SubmitterName,
		ticket.SubmitterEmail,
		ticket.AssignedTo,
		ticket.PublicToken,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET title=$1, description=$2, status_id=$3, priority=$4, category_id=$5,
            assigned_to=$6, closed_at=$7, updated_at=NOW()
        WHERE id=$8 AND organization_id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.StatusID,
		ticket.Priority,
		ticket.CategoryID,
		ticket.AssignedTo,
		ticket.ClosedAt,
		ticket.ID,
		ticket.OrganizationID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) Delete(ctx context.Context, organizationID, id string) error {
	const query = `DELETE FROM tickets WHERE id=$1 AND organization_id=$2`
	cmd, err := r.pool.Exec(ctx, query, id, organizationID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, organizationID, id string) (*domain.Ticket, error) {
	const query = `
        SELECT ` + ticketColumns + `
        FROM tickets WHERE id=$1 AND organization_id=$2`
	return r.fetchSingle(ctx, query, id, organizationID)
}

func (r *ticketRepository) GetByPublicToken(ctx context.Context, organizationID, token string) (*domain.Ticket, error) {
	const query = `
        SELECT ` + ticketColumns + `
        FROM tickets WHERE public_token=$1 AND organization_id=$2`
	return r.fetchSingle(ctx, query, token, organizationID)
}

// TokenExists checks the whole table: tracking tokens are unique platform-wide.
func (r *ticketRepository) TokenExists(ctx context.Context, token string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM tickets WHERE public_token=$1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, token).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *ticketRepository) CountByStatus(ctx context.Context, organizationID, statusID string) (int64, error) {
	const query = `SELECT COUNT(*) FROM tickets WHERE organization_id=$1 AND status_id=$2`
	var count int64
	if err := r.pool.QueryRow(ctx, query, organizationID, statusID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&ticket.ID,
		&ticket.OrganizationID,
		&ticket.Title,
		&ticket.Description,
		&ticket.StatusID,
		&ticket.Priority,
		&ticket.CategoryID,
		&ticket.UserID,
		&ticket.SubmitterName,
		&ticket.SubmitterEmail,
		&ticket.AssignedTo,
		&ticket.PublicToken,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.ClosedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, organizationID string, filter TicketFilter) ([]domain.Ticket, error) {
	base := `SELECT ` + ticketColumns + ` FROM tickets`
	args := []any{organizationID}
	clauses := []string{"organization_id=$1"}

	if filter.StatusID != nil {
		args = append(args, *filter.StatusID)
		clauses = append(clauses, fmt.Sprintf("status_id=$%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf("category_id=$%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		clauses = append(clauses, fmt.Sprintf("priority=$%d", len(args)))
	}
	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		clauses = append(clauses, fmt.Sprintf("assigned_to=$%d", len(args)))
	}
	if filter.SubmitterID != nil {
		args = append(args, *filter.SubmitterID)
		clauses = append(clauses, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(description) LIKE %s)", placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.OrganizationID,
			&ticket.Title,
			&ticket.Description,
			&ticket.StatusID,
			&ticket.Priority,
			&ticket.CategoryID,
			&ticket.UserID,
			&ticket.SubmitterName,
			&ticket.SubmitterEmail,
			&ticket.AssignedTo,
			&ticket.PublicToken,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
			&ticket.ClosedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
