package service

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Beyond-Company/Ticketing-backend/internal/config"
	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
	"github.com/Beyond-Company/Ticketing-backend/internal/repository"
	"github.com/Beyond-Company/Ticketing-backend/internal/storage"
	apperrors "github.com/Beyond-Company/Ticketing-backend/pkg/util"
)

// AttachmentService handles ticket file uploads: bytes in the file store,
// metadata rows in Postgres.
type AttachmentService struct {
	attachments repository.AttachmentRepository
	tickets     repository.TicketRepository
	store       storage.FileStore
	maxBytes    int64
	allowedMime map[string]bool
}

// AttachmentDependencies bundles collaborators for the service.
type AttachmentDependencies struct {
	AttachmentRepo repository.AttachmentRepository
	TicketRepo     repository.TicketRepository
	Store          storage.FileStore
}

// NewAttachmentService constructs the service.
func NewAttachmentService(cfg config.StorageConfig, deps AttachmentDependencies) *AttachmentService {
	allowed := make(map[string]bool, len(cfg.AllowedMime))
	for _, mime := range cfg.AllowedMime {
		allowed[strings.ToLower(strings.TrimSpace(mime))] = true
	}
	return &AttachmentService{
		attachments: deps.AttachmentRepo,
		tickets:     deps.TicketRepo,
		store:       deps.Store,
		maxBytes:    cfg.MaxUploadBytes,
		allowedMime: allowed,
	}
}

// Upload validates and stores one file against a ticket.
func (s *AttachmentService) Upload(ctx context.Context, organizationID, ticketID string, uploaderID *string, fileName, contentType string, size int64, r io.Reader) (*domain.Attachment, error) {
	if _, err := s.tickets.GetByID(ctx, organizationID, ticketID); err != nil {
		return nil, err
	}

	if size <= 0 {
		return nil, apperrors.NewValidationError("file is empty", map[string]any{"file": fileName})
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return nil, apperrors.NewValidationError("file exceeds the upload size limit", map[string]any{
			"size_bytes": size,
			"max_bytes":  s.maxBytes,
		})
	}

	mime := contentType
	if idx := strings.Index(mime, ";"); idx >= 0 {
		mime = mime[:idx]
	}
	mime = strings.ToLower(strings.TrimSpace(mime))
	if len(s.allowedMime) > 0 && !s.allowedMime[mime] {
		return nil, apperrors.NewValidationError("file type is not allowed", map[string]any{"mime_type": mime})
	}

	storedName := uuid.NewString() + strings.ToLower(filepath.Ext(fileName))
	if err := s.store.Save(ctx, storedName, r, size, mime); err != nil {
		return nil, err
	}

	attachment := &domain.Attachment{
		TicketID:       ticketID,
		OrganizationID: organizationID,
		UploaderID:     uploaderID,
		FileName:       fileName,
		StoredName:     storedName,
		MimeType:       mime,
		SizeBytes:      size,
	}
	if err := s.attachments.Create(ctx, attachment); err != nil {
		_ = s.store.Delete(ctx, storedName)
		return nil, err
	}
	return attachment, nil
}

// List returns a ticket's attachment metadata.
func (s *AttachmentService) List(ctx context.Context, organizationID, ticketID string) ([]domain.Attachment, error) {
	if _, err := s.tickets.GetByID(ctx, organizationID, ticketID); err != nil {
		return nil, err
	}
	return s.attachments.ListByTicket(ctx, organizationID, ticketID)
}

// Open returns the attachment row plus a reader over its bytes. The caller
// closes the reader.
func (s *AttachmentService) Open(ctx context.Context, organizationID, attachmentID string) (*domain.Attachment, io.ReadCloser, error) {
	attachment, err := s.attachments.GetByID(ctx, organizationID, attachmentID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Open(ctx, attachment.StoredName)
	if err != nil {
		return nil, nil, err
	}
	return attachment, rc, nil
}

// Delete removes the metadata row first, then the stored bytes.
func (s *AttachmentService) Delete(ctx context.Context, organizationID, attachmentID string) error {
	attachment, err := s.attachments.GetByID(ctx, organizationID, attachmentID)
	if err != nil {
		return err
	}
	if err := s.attachments.Delete(ctx, organizationID, attachmentID); err != nil {
		return err
	}
	return s.store.Delete(ctx, attachment.StoredName)
}
