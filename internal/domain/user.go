package domain

import "time"

// GlobalRole enumerates platform-wide roles carried by tokens.
type GlobalRole string

const (
	GlobalRoleUser       GlobalRole = "USER"
	GlobalRoleAdmin      GlobalRole = "ADMIN"
	GlobalRoleSuperAdmin GlobalRole = "SUPERADMIN"
)

// User is the domain model for authenticated accounts.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         GlobalRole
	Lang         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
