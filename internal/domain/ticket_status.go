package domain

import "time"

// TicketStatus is a tenant-scoped, ordered status row. Name is unique per
// organization; a status referenced by any ticket cannot be deleted.
type TicketStatus struct {
	ID             string
	OrganizationID string
	Name           string
	SortOrder      int
	IsDefault      bool
	IsClosing      bool
	CreatedAt      time.Time
}
