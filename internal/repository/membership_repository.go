package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
)

// MembershipRepository encapsulates the user↔organization join rows.
type MembershipRepository interface {
	Create(ctx context.Context, m *domain.Membership) error
	Get(ctx context.Context, userID, organizationID string) (*domain.Membership, error)
	// FirstForUser returns the caller's earliest-created membership; it is
	// the fallback tenant when a request names none.
	FirstForUser(ctx context.Context, userID string) (*domain.Membership, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Membership, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]domain.Membership, error)
	HasAdminMembership(ctx context.Context, userID string) (bool, error)
	UpdateRole(ctx context.Context, userID, organizationID string, role domain.OrgRole) error
	Delete(ctx context.Context, userID, organizationID string) error
}

type membershipRepository struct {
	pool *pgxpool.Pool
}

// NewMembershipRepository instantiates repository.
func NewMembershipRepository(pool *pgxpool.Pool) MembershipRepository {
	return &membershipRepository{pool: pool}
}

const membershipColumns = `id, user_id, organization_id, role, created_at`

func (r *membershipRepository) Create(ctx context.Context, m *domain.Membership) error {
	const query = `
        INSERT INTO memberships (user_id, organization_id, role)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		m.UserID,
		m.OrganizationID,
		m.Role,
	).Scan(&m.ID, &m.CreatedAt)
}

func (r *membershipRepository) Get(ctx context.Context, userID, organizationID string) (*domain.Membership, error) {
	const query = `SELECT ` + membershipColumns + ` FROM memberships WHERE user_id=$1 AND organization_id=$2`
	return r.fetchSingle(ctx, query, userID, organizationID)
}

func (r *membershipRepository) FirstForUser(ctx context.Context, userID string) (*domain.Membership, error) {
	const query = `
        SELECT ` + membershipColumns + ` FROM memberships
        WHERE user_id=$1 ORDER BY created_at, id LIMIT 1`
	return r.fetchSingle(ctx, query, userID)
}

func (r *membershipRepository) ListByUser(ctx context.Context, userID string) ([]domain.Membership, error) {
	const query = `
        SELECT ` + membershipColumns + ` FROM memberships
        WHERE user_id=$1 ORDER BY created_at, id`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMemberships(rows)
}

func (r *membershipRepository) ListByOrganization(ctx context.Context, organizationID string) ([]domain.Membership, error) {
	const query = `
        SELECT ` + membershipColumns + ` FROM memberships
        WHERE organization_id=$1 ORDER BY created_at, id`
	rows, err := r.pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMemberships(rows)
}

func (r *membershipRepository) HasAdminMembership(ctx context.Context, userID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM memberships WHERE user_id=$1 AND role=$2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, domain.OrgRoleAdmin).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *membershipRepository) UpdateRole(ctx context.Context, userID, organizationID string, role domain.OrgRole) error {
	const query = `UPDATE memberships SET role=$1 WHERE user_id=$2 AND organization_id=$3`
	cmd, err := r.pool.Exec(ctx, query, role, userID, organizationID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *membershipRepository) Delete(ctx context.Context, userID, organizationID string) error {
	const query = `DELETE FROM memberships WHERE user_id=$1 AND organization_id=$2`
	cmd, err := r.pool.Exec(ctx, query, userID, organizationID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *membershipRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Membership, error) {
	var m domain.Membership
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&m.ID,
		&m.UserID,
		&m.OrganizationID,
		&m.Role,
		&m.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func scanMemberships(rows pgx.Rows) ([]domain.Membership, error) {
	var result []domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.OrganizationID,
			&m.Role,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}
