package domain

import "time"

// Category groups tickets within a tenant. Name is unique per organization.
type Category struct {
	ID             string
	OrganizationID string
	Name           string
	NameAr         *string
	CreatedAt      time.Time
}

// CategoryAssignment registers a member in a category's auto-assignment
// queue. Unique per (UserID, CategoryID).
type CategoryAssignment struct {
	ID             string
	UserID         string
	CategoryID     string
	OrganizationID string
	CreatedAt      time.Time
}
