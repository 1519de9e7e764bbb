package dto

import (
	"time"

	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
)

// RegisterRequest payload for signup. Organization, when present, provisions
// a tenant owned by the new account.
type RegisterRequest struct {
	Name         string                     `json:"name"`
	Email        string                     `json:"email"`
	Password     string                     `json:"password"`
	Lang         string                     `json:"lang,omitempty"`
	Organization *CreateOrganizationRequest `json:"organization,omitempty"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OTPRequest payload for requesting a login code.
type OTPRequest struct {
	Email string `json:"email"`
}

// OTPVerifyRequest payload for exchanging a code for a token.
type OTPVerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token        string                `json:"token"`
	ExpiresAt    time.Time             `json:"expires_at"`
	User         UserResponse          `json:"user"`
	Organization *OrganizationResponse `json:"organization,omitempty"`
}

// UserResponse public account fields.
type UserResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Role      domain.GlobalRole `json:"role"`
	Lang      string            `json:"lang"`
	CreatedAt time.Time         `json:"created_at"`
}

// MembershipResponse one org-role pair for the me endpoint.
type MembershipResponse struct {
	OrganizationID string         `json:"organization_id"`
	Role           domain.OrgRole `json:"role"`
	JoinedAt       time.Time      `json:"joined_at"`
}

// MeResponse account plus memberships.
type MeResponse struct {
	User        UserResponse         `json:"user"`
	Memberships []MembershipResponse `json:"memberships"`
}
