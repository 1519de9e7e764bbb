package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
)

// TimeEntryRepository persists per-ticket work logs.
type TimeEntryRepository interface {
	Create(ctx context.Context, entry *domain.TimeEntry) error
	ListByTicket(ctx context.Context, organizationID, ticketID string) ([]domain.TimeEntry, error)
	TotalMinutesByTicket(ctx context.Context, organizationID, ticketID string) (int64, error)
}

type timeEntryRepository struct {
	pool *pgxpool.Pool
}

// NewTimeEntryRepository instantiates repository.
func NewTimeEntryRepository(pool *pgxpool.Pool) TimeEntryRepository {
	return &timeEntryRepository{pool: pool}
}

func (r *timeEntryRepository) Create(ctx context.Context, entry *domain.TimeEntry) error {
	const query = `
        INSERT INTO time_entries (ticket_id, organization_id, user_id, minutes, note, spent_on)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		entry.TicketID,
		entry.OrganizationID,
		entry.UserID,
		entry.Minutes,
		entry.Note,
		entry.SpentOn,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *timeEntryRepository) ListByTicket(ctx context.Context, organizationID, ticketID string) ([]domain.TimeEntry, error) {
	const query = `
        SELECT id, ticket_id, organization_id, user_id, minutes, note, spent_on, created_at
        FROM time_entries
        WHERE ticket_id=$1 AND organization_id=$2 ORDER BY spent_on, created_at`

	rows, err := r.pool.Query(ctx, query, ticketID, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TimeEntry
	for rows.Next() {
		var entry domain.TimeEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.TicketID,
			&entry.OrganizationID,
			&entry.UserID,
			&entry.Minutes,
			&entry.Note,
			&entry.SpentOn,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *timeEntryRepository) TotalMinutesByTicket(ctx context.Context, organizationID, ticketID string) (int64, error) {
	const query = `
        SELECT COALESCE(SUM(minutes), 0) FROM time_entries
        WHERE ticket_id=$1 AND organization_id=$2`
	var total int64
	if err := r.pool.QueryRow(ctx, query, ticketID, organizationID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
