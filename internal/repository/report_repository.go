package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CountBucket is one aggregation row in an organization report.
type CountBucket struct {
	Key   string
	Label string
	Count int64
}

// PlatformStats summarizes the whole installation for the admin surface.
type PlatformStats struct {
	Organizations int64
	Users         int64
	Tickets       int64
	OpenTickets   int64
}

// ReportRepository runs the aggregate queries behind reports. Read-only.
type ReportRepository interface {
	CountsByStatus(ctx context.Context, organizationID string) ([]CountBucket, error)
	CountsByPriority(ctx context.Context, organizationID string) ([]CountBucket, error)
	CountsByCategory(ctx context.Context, organizationID string) ([]CountBucket, error)
	TotalTickets(ctx context.Context, organizationID string) (total, open, closed int64, err error)
	AvgResolutionHours(ctx context.Context, organizationID string) (float64, error)
	SumTimeMinutes(ctx context.Context, organizationID string) (int64, error)
	Platform(ctx context.Context) (*PlatformStats, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository instantiates repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

func (r *reportRepository) CountsByStatus(ctx context.Context, organizationID string) ([]CountBucket, error) {
	const query = `
        SELECT s.id, s.name, COUNT(t.id)
        FROM ticket_statuses s
        LEFT JOIN tickets t ON t.status_id = s.id AND t.organization_id = s.organization_id
        WHERE s.organization_id=$1
        GROUP BY s.id, s.name, s.sort_order
        ORDER BY s.sort_order, s.id`
	return r.queryBuckets(ctx, query, organizationID)
}

func (r *reportRepository) CountsByPriority(ctx context.Context, organizationID string) ([]CountBucket, error) {
	const query = `
        SELECT priority, priority, COUNT(*)
        FROM tickets WHERE organization_id=$1
        GROUP BY priority ORDER BY priority`
	return r.queryBuckets(ctx, query, organizationID)
}

func (r *reportRepository) CountsByCategory(ctx context.Context, organizationID string) ([]CountBucket, error) {
	const query = `
        SELECT COALESCE(c.id::text, ''), COALESCE(c.name, 'uncategorized'), COUNT(t.id)
        FROM tickets t
        LEFT JOIN categories c ON c.id = t.category_id
        WHERE t.organization_id=$1
        GROUP BY c.id, c.name
        ORDER BY COUNT(t.id) DESC`
	return r.queryBuckets(ctx, query, organizationID)
}

func (r *reportRepository) TotalTickets(ctx context.Context, organizationID string) (total, open, closed int64, err error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE closed_at IS NULL),
               COUNT(*) FILTER (WHERE closed_at IS NOT NULL)
        FROM tickets WHERE organization_id=$1`
	err = r.pool.QueryRow(ctx, query, organizationID).Scan(&total, &open, &closed)
	return total, open, closed, err
}

func (r *reportRepository) AvgResolutionHours(ctx context.Context, organizationID string) (float64, error) {
	const query = `
        SELECT COALESCE(AVG(EXTRACT(EPOCH FROM (closed_at - created_at)) / 3600.0), 0)
        FROM tickets WHERE organization_id=$1 AND closed_at IS NOT NULL`
	var hours float64
	if err := r.pool.QueryRow(ctx, query, organizationID).Scan(&hours); err != nil {
		return 0, err
	}
	return hours, nil
}

func (r *reportRepository) SumTimeMinutes(ctx context.Context, organizationID string) (int64, error) {
	const query = `SELECT COALESCE(SUM(minutes), 0) FROM time_entries WHERE organization_id=$1`
	var minutes int64
	if err := r.pool.QueryRow(ctx, query, organizationID).Scan(&minutes); err != nil {
		return 0, err
	}
	return minutes, nil
}

func (r *reportRepository) Platform(ctx context.Context) (*PlatformStats, error) {
	const query = `
        SELECT (SELECT COUNT(*) FROM organizations),
               (SELECT COUNT(*) FROM users),
               (SELECT COUNT(*) FROM tickets),
               (SELECT COUNT(*) FROM tickets WHERE closed_at IS NULL)`
	var stats PlatformStats
	if err := r.pool.QueryRow(ctx, query).Scan(
		&stats.Organizations,
		&stats.Users,
		&stats.Tickets,
		&stats.OpenTickets,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *reportRepository) queryBuckets(ctx context.Context, query string, args ...any) ([]CountBucket, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBuckets(rows)
}

func scanBuckets(rows pgx.Rows) ([]CountBucket, error) {
	var result []CountBucket
	for rows.Next() {
		var bucket CountBucket
		if err := rows.Scan(&bucket.Key, &bucket.Label, &bucket.Count); err != nil {
			return nil, err
		}
		result = append(result, bucket)
	}
	return result, rows.Err()
}
