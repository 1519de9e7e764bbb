package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
)

// AttachmentRepository persists attachment metadata; file bytes live in the
// file store.
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.Attachment) error
	Delete(ctx context.Context, organizationID, id string) error
	GetByID(ctx context.Context, organizationID, id string) (*domain.Attachment, error)
	ListByTicket(ctx context.Context, organizationID, ticketID string) ([]domain.Attachment, error)
}

type attachmentRepository struct {
	pool *pgxpool.Pool
}

// NewAttachmentRepository instantiates repository.
func NewAttachmentRepository(pool *pgxpool.Pool) AttachmentRepository {
	return &attachmentRepository{pool: pool}
}

const attachmentColumns = `id, ticket_id, organization_id, uploader_id, file_name, stored_name, mime_type, size_bytes, created_at`

func (r *attachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	const query = `
        INSERT INTO attachments (ticket_id, organization_id, uploader_id, file_name, stored_name, mime_type, size_bytes)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		attachment.TicketID,
		attachment.OrganizationID,
		attachment.UploaderID,
		attachment.FileName,
		attachment.StoredName,
		attachment.MimeType,
		attachment.SizeBytes,
	).Scan(&attachment.ID, &attachment.CreatedAt)
}

func (r *attachmentRepository) Delete(ctx context.Context, organizationID, id string) error {
	const query = `DELETE FROM attachments WHERE id=$1 AND organization_id=$2`
	cmd, err := r.pool.Exec(ctx, query, id, organizationID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *attachmentRepository) GetByID(ctx context.Context, organizationID, id string) (*domain.Attachment, error) {
	const query = `
        SELECT ` + attachmentColumns + ` FROM attachments
        WHERE id=$1 AND organization_id=$2`

	var attachment domain.Attachment
	if err := r.pool.QueryRow(ctx, query, id, organizationID).Scan(
		&attachment.ID,
		&attachment.TicketID,
		&attachment.OrganizationID,
		&attachment.UploaderID,
		&attachment.FileName,
		&attachment.StoredName,
		&attachment.MimeType,
		&attachment.SizeBytes,
		&attachment.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *attachmentRepository) ListByTicket(ctx context.Context, organizationID, ticketID string) ([]domain.Attachment, error) {
	const query = `
        SELECT ` + attachmentColumns + ` FROM attachments
        WHERE ticket_id=$1 AND organization_id=$2 ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, ticketID, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Attachment
	for rows.Next() {
		var attachment domain.Attachment
		if err := rows.Scan(
			&attachment.ID,
			&attachment.TicketID,
			&attachment.OrganizationID,
			&attachment.UploaderID,
			&attachment.FileName,
			&attachment.StoredName,
			&attachment.MimeType,
			&attachment.SizeBytes,
			&attachment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, attachment)
	}
	return result, rows.Err()
}
