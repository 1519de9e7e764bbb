package domain

import "time"

// TimeEntry records minutes a member spent working a ticket.
type TimeEntry struct {
	ID             string
	TicketID       string
	OrganizationID string
	UserID         string
	Minutes        int
	Note           string
	SpentOn        time.Time
	CreatedAt      time.Time
}
