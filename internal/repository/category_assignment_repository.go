package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
)

// CategoryAssignmentRepository manages the per-category handler queues that
// drive ticket auto-assignment.
type CategoryAssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.CategoryAssignment) error
	Delete(ctx context.Context, organizationID, categoryID, userID string) error
	// ListByCategory returns queue rows in insertion order; the first row's
	// user is the one a new ticket gets assigned to.
	ListByCategory(ctx context.Context, organizationID, categoryID string) ([]domain.CategoryAssignment, error)
	ListByUser(ctx context.Context, organizationID, userID string) ([]domain.CategoryAssignment, error)
}

type categoryAssignmentRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryAssignmentRepository instantiates repository.
func NewCategoryAssignmentRepository(pool *pgxpool.Pool) CategoryAssignmentRepository {
	return &categoryAssignmentRepository{pool: pool}
}

const categoryAssignmentColumns = `id, user_id, category_id, organization_id, created_at`

func (r *categoryAssignmentRepository) Create(ctx context.Context, assignment *domain.CategoryAssignment) error {
	const query = `
        INSERT INTO category_assignments (user_id, category_id, organization_id)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		assignment.UserID,
		assignment.CategoryID,
		assignment.OrganizationID,
	).Scan(&assignment.ID, &assignment.CreatedAt)
}

func (r *categoryAssignmentRepository) Delete(ctx context.Context, organizationID, categoryID, userID string) error {
	const query = `
        DELETE FROM category_assignments
        WHERE organization_id=$1 AND category_id=$2 AND user_id=$3`
	cmd, err := r.pool.Exec(ctx, query, organizationID, categoryID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryAssignmentRepository) ListByCategory(ctx context.Context, organizationID, categoryID string) ([]domain.CategoryAssignment, error) {
	const query = `
        SELECT ` + categoryAssignmentColumns + ` FROM category_assignments
        WHERE organization_id=$1 AND category_id=$2 ORDER BY created_at, id`
	rows, err := r.pool.Query(ctx, query, organizationID, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCategoryAssignments(rows)
}

func (r *categoryAssignmentRepository) ListByUser(ctx context.Context, organizationID, userID string) ([]domain.CategoryAssignment, error) {
	const query = `
        SELECT ` + categoryAssignmentColumns + ` FROM category_assignments
        WHERE organization_id=$1 AND user_id=$2 ORDER BY created_at, id`
	rows, err := r.pool.Query(ctx, query, organizationID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCategoryAssignments(rows)
}

func scanCategoryAssignments(rows pgx.Rows) ([]domain.CategoryAssignment, error) {
	var result []domain.CategoryAssignment
	for rows.Next() {
		var assignment domain.CategoryAssignment
		if err := rows.Scan(
			&assignment.ID,
			&assignment.UserID,
			&assignment.CategoryID,
			&assignment.OrganizationID,
			&assignment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, assignment)
	}
	return result, rows.Err()
}
