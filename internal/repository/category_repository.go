package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
)

// CategoryRepository encapsulates tenant-scoped category persistence.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, organizationID, id string) error
	GetByID(ctx context.Context, organizationID, id string) (*domain.Category, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]domain.Category, error)
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository instantiates repository.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	const query = `
        INSERT INTO categories (organization_id, name, name_ar)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		category.OrganizationID,
		category.Name,
		category.NameAr,
	).Scan(&category.ID, &category.CreatedAt)
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	const query = `
        UPDATE categories SET name=$1, name_ar=$2
        WHERE id=$3 AND organization_id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		category.Name,
		category.NameAr,
		category.ID,
		category.OrganizationID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, organizationID, id string) error {
	const query = `DELETE FROM categories WHERE id=$1 AND organization_id=$2`
	cmd, err := r.pool.Exec(ctx, query, id, organizationID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, organizationID, id string) (*domain.Category, error) {
	const query = `
        SELECT id, organization_id, name, name_ar, created_at
        FROM categories WHERE id=$1 AND organization_id=$2`

	var category domain.Category
	if err := r.pool.QueryRow(ctx, query, id, organizationID).Scan(
		&category.ID,
		&category.OrganizationID,
		&category.Name,
		&category.NameAr,
		&category.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ListByOrganization(ctx context.Context, organizationID string) ([]domain.Category, error) {
	const query = `
        SELECT id, organization_id, name, name_ar, created_at
        FROM categories WHERE organization_id=$1 ORDER BY name`

	rows, err := r.pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(
			&category.ID,
			&category.OrganizationID,
			&category.Name,
			&category.NameAr,
			&category.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, rows.Err()
}
