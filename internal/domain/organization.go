package domain

import "time"

// OrganizationStatus enumerates tenant lifecycle states.
type OrganizationStatus string

const (
	OrgStatusActive    OrganizationStatus = "ACTIVE"
	OrgStatusInactive  OrganizationStatus = "INACTIVE"
	OrgStatusSuspended OrganizationStatus = "SUSPENDED"
	OrgStatusExpired   OrganizationStatus = "EXPIRED"
)

// Organization is the tenant aggregate; all help-desk data is scoped to one.
type Organization struct {
	ID        string
	Name      string
	Slug      string
	Subdomain *string
	Status    OrganizationStatus
	ExpiresAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
