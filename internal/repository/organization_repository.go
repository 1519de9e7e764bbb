package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
)

// OrganizationRepository encapsulates tenant persistence.
type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	Update(ctx context.Context, org *domain.Organization) error
	UpdateStatus(ctx context.Context, id string, status domain.OrganizationStatus) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Organization, error)
	GetBySlugOrSubdomain(ctx context.Context, slug string) (*domain.Organization, error)
	ListAll(ctx context.Context) ([]domain.Organization, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Organization, error)
}

type organizationRepository struct {
	pool *pgxpool.Pool
}

// NewOrganizationRepository instantiates repository.
func NewOrganizationRepository(pool *pgxpool.Pool) OrganizationRepository {
	return &organizationRepository{pool: pool}
}

const organizationColumns = `id, name, slug, subdomain, status, expires_at, created_at, updated_at`

func (r *organizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	const query = `
        INSERT INTO organizations (name, slug, subdomain, status, expires_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		org.Name,
		org.Slug,
		org.Subdomain,
		org.Status,
		org.ExpiresAt,
	).Scan(&org.ID, &org.CreatedAt, &org.UpdatedAt)
}

func (r *organizationRepository) Update(ctx context.Context, org *domain.Organization) error {
	const query = `
        UPDATE organizations SET name=$1, slug=$2, subdomain=$3, status=$4, expires_at=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		org.Name,
		org.Slug,
		org.Subdomain,
		org.Status,
		org.ExpiresAt,
		org.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *organizationRepository) UpdateStatus(ctx context.Context, id string, status domain.OrganizationStatus) error {
	const query = `UPDATE organizations SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *organizationRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM organizations WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *organizationRepository) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	const query = `SELECT ` + organizationColumns + ` FROM organizations WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

// GetBySlugOrSubdomain matches the already-normalized candidate against the
// stored slug or subdomain.
func (r *organizationRepository) GetBySlugOrSubdomain(ctx context.Context, slug string) (*domain.Organization, error) {
	const query = `SELECT ` + organizationColumns + ` FROM organizations WHERE slug=$1 OR subdomain=$1`
	return r.fetchSingle(ctx, query, slug)
}

func (r *organizationRepository) ListAll(ctx context.Context) ([]domain.Organization, error) {
	const query = `SELECT ` + organizationColumns + ` FROM organizations ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrganizations(rows)
}

func (r *organizationRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.Organization, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const query = `SELECT ` + organizationColumns + ` FROM organizations WHERE id = ANY($1) ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrganizations(rows)
}

func (r *organizationRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Organization, error) {
	var org domain.Organization
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&org.ID,
		&org.Name,
		&org.Slug,
		&org.Subdomain,
		&org.Status,
		&org.ExpiresAt,
		&org.CreatedAt,
		&org.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &org, nil
}

func scanOrganizations(rows pgx.Rows) ([]domain.Organization, error) {
	var result []domain.Organization
	for rows.Next() {
		var org domain.Organization
		if err := rows.Scan(
			&org.ID,
			&org.Name,
			&org.Slug,
			&org.Subdomain,
			&org.Status,
			&org.ExpiresAt,
			&org.CreatedAt,
			&org.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, org)
	}
	return result, rows.Err()
}
