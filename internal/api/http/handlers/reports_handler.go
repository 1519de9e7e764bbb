package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Beyond-Company/Ticketing-backend/internal/api/dto"
	"github.com/Beyond-Company/Ticketing-backend/internal/repository"
	"github.com/Beyond-Company/Ticketing-backend/internal/service"
	"github.com/Beyond-Company/Ticketing-backend/internal/tenant"
	apperrors "github.com/Beyond-Company/Ticketing-backend/pkg/util"
)

// ReportsHandler serves org-admin aggregate views.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// Summary GET /reports/summary.
func (h *ReportsHandler) Summary(c *fiber.Ctx) error {
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return apperrors.NewValidationError("no organization specified", nil)
	}
	summary, err := h.service.Summary(c.Context(), org.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summaryResponse(summary)})
}

func summaryResponse(summary *service.OrganizationSummary) dto.OrganizationSummaryResponse {
	return dto.OrganizationSummaryResponse{
		TotalTickets:       summary.TotalTickets,
		OpenTickets:        summary.OpenTickets,
		ClosedTickets:      summary.ClosedTickets,
		ByStatus:           bucketResponses(summary.ByStatus),
		ByPriority:         bucketResponses(summary.ByPriority),
		ByCategory:         bucketResponses(summary.ByCategory),
		AvgResolutionHours: summary.AvgResolutionHours,
		TotalTimeMinutes:   summary.TotalTimeMinutes,
	}
}

func bucketResponses(buckets []repository.CountBucket) []dto.CountBucketResponse {
	items := make([]dto.CountBucketResponse, 0, len(buckets))
	for _, b := range buckets {
		items = append(items, dto.CountBucketResponse{Key: b.Key, Label: b.Label, Count: b.Count})
	}
	return items
}
