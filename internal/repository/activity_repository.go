package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
)

// ActivityRepository persists the per-ticket audit trail. One row per
// actually-changed field.
type ActivityRepository interface {
	Create(ctx context.Context, entry *domain.ActivityLog) error
	ListByTicket(ctx context.Context, organizationID, ticketID string) ([]domain.ActivityLog, error)
}

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository instantiates repository.
func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) Create(ctx context.Context, entry *domain.ActivityLog) error {
	const query = `
        INSERT INTO activity_logs (ticket_id, organization_id, actor_id, field, old_value, new_value)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		entry.TicketID,
		entry.OrganizationID,
		entry.ActorID,
		entry.Field,
		entry.OldValue,
		entry.NewValue,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *activityRepository) ListByTicket(ctx context.Context, organizationID, ticketID string) ([]domain.ActivityLog, error) {
	const query = `
        SELECT id, ticket_id, organization_id, actor_id, field, old_value, new_value, created_at
        FROM activity_logs
        WHERE ticket_id=$1 AND organization_id=$2 ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, ticketID, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ActivityLog
	for rows.Next() {
		var entry domain.ActivityLog
		if err := rows.Scan(
			&entry.ID,
			&entry.TicketID,
			&entry.OrganizationID,
			&entry.ActorID,
			&entry.Field,
			&entry.OldValue,
			&entry.NewValue,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
