package service

import (
	"context"

	"github.com/Beyond-Company/Ticketing-backend/internal/repository"
)

// ReportService aggregates ticket statistics for admins.
type ReportService struct {
	reports repository.ReportRepository
}

// OrganizationSummary is the org-admin dashboard payload.
type OrganizationSummary struct {
	TotalTickets       int64
	OpenTickets        int64
	ClosedTickets      int64
	ByStatus           []repository.CountBucket
	ByPriority         []repository.CountBucket
	ByCategory         []repository.CountBucket
	AvgResolutionHours float64
	TotalTimeMinutes   int64
}

// NewReportService constructs the service.
func NewReportService(reports repository.ReportRepository) *ReportService {
	return &ReportService{reports: reports}
}

// Summary assembles the per-tenant ticket statistics.
func (s *ReportService) Summary(ctx context.Context, organizationID string) (*OrganizationSummary, error) {
	total, open, closed, err := s.reports.TotalTickets(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.reports.CountsByStatus(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.reports.CountsByPriority(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.reports.CountsByCategory(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	avgHours, err := s.reports.AvgResolutionHours(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	minutes, err := s.reports.SumTimeMinutes(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	return &OrganizationSummary{
		TotalTickets:       total,
		OpenTickets:        open,
		ClosedTickets:      closed,
		ByStatus:           byStatus,
		ByPriority:         byPriority,
		ByCategory:         byCategory,
		AvgResolutionHours: avgHours,
		TotalTimeMinutes:   minutes,
	}, nil
}

// Platform returns platform-wide counts; super-admin surface.
func (s *ReportService) Platform(ctx context.Context) (*repository.PlatformStats, error) {
	return s.reports.Platform(ctx)
}
