package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Beyond-Company/Ticketing-backend/internal/api/dto"
	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
	"github.com/Beyond-Company/Ticketing-backend/internal/service"
	apperrors "github.com/Beyond-Company/Ticketing-backend/pkg/util"
)

// AttachmentsHandler manages file uploads and downloads on tickets.
type AttachmentsHandler struct {
	service *service.AttachmentService
}

// NewAttachmentsHandler constructs handler.
func NewAttachmentsHandler(attachmentService *service.AttachmentService) *AttachmentsHandler {
	return &AttachmentsHandler{service: attachmentService}
}

// Upload POST /tickets/:id/attachments. Expects multipart form data with a
// single "file" part.
func (h *AttachmentsHandler) Upload(c *fiber.Ctx) error {
	org, principal, err := requireMember(c)
	if err != nil {
		return err
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("file part required", nil)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewValidationError("could not read uploaded file", nil)
	}
	defer file.Close()

	attachment, err := h.service.Upload(
		c.Context(),
		org.ID,
		c.Params("id"),
		&principal.User.ID,
		fileHeader.Filename,
		fileHeader.Header.Get(fiber.HeaderContentType),
		fileHeader.Size,
		file,
	)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": attachmentResponse(attachment)})
}

// List GET /tickets/:id/attachments.
func (h *AttachmentsHandler) List(c *fiber.Ctx) error {
	org, _, err := requireMember(c)
	if err != nil {
		return err
	}
	attachments, err := h.service.List(c.Context(), org.ID, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.AttachmentResponse, 0, len(attachments))
	for i := range attachments {
		items = append(items, attachmentResponse(&attachments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Download GET /attachments/:id. Streams the stored file; fasthttp closes
// the stream after the response is written.
func (h *AttachmentsHandler) Download(c *fiber.Ctx) error {
	org, _, err := requireMember(c)
	if err != nil {
		return err
	}
	attachment, reader, err := h.service.Open(c.Context(), org.ID, c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, attachment.MimeType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", attachment.FileName))
	return c.SendStream(reader, int(attachment.SizeBytes))
}

// Delete DELETE /attachments/:id.
func (h *AttachmentsHandler) Delete(c *fiber.Ctx) error {
	org, _, err := requireMember(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), org.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func attachmentResponse(attachment *domain.Attachment) dto.AttachmentResponse {
	return dto.AttachmentResponse{
		ID:        attachment.ID,
		FileName:  attachment.FileName,
		MimeType:  attachment.MimeType,
		SizeBytes: attachment.SizeBytes,
		CreatedAt: attachment.CreatedAt,
	}
}
