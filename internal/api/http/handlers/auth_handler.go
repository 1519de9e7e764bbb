package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Beyond-Company/Ticketing-backend/internal/api/dto"
	"github.com/Beyond-Company/Ticketing-backend/internal/auth"
	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
	"github.com/Beyond-Company/Ticketing-backend/internal/service"
	apperrors "github.com/Beyond-Company/Ticketing-backend/pkg/util"
)

// AuthHandler manages signup, login, and login-code endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Register POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input := service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Lang:     req.Lang,
	}
	if req.Organization != nil {
		input.Organization = &service.OrganizationCreateInput{
			Name:      req.Organization.Name,
			Slug:      req.Organization.Slug,
			Subdomain: req.Organization.Subdomain,
		}
	}
	result, err := h.service.Register(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": authResponse(result)})
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email, password required", nil)
	}
	result, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": authResponse(result)})
}

// RequestOTP POST /auth/otp/request.
func (h *AuthHandler) RequestOTP(c *fiber.Ctx) error {
	var req dto.OTPRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}
	if err := h.service.RequestOTP(c.Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"sent": true}})
}

// VerifyOTP POST /auth/otp/verify.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.OTPVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Code == "" {
		return apperrors.NewValidationError("email, code required", nil)
	}
	result, err := h.service.VerifyOTP(c.Context(), req.Email, req.Code)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": authResponse(result)})
}

// Me GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	user, memberships, err := h.service.Me(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.MembershipResponse, 0, len(memberships))
	for i := range memberships {
		items = append(items, membershipResponse(&memberships[i]))
	}
	return c.JSON(fiber.Map{"data": dto.MeResponse{User: userResponse(user), Memberships: items}})
}

func authResponse(result *service.AuthResult) dto.AuthResponse {
	resp := dto.AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      userResponse(result.User),
	}
	if result.Organization != nil {
		org := organizationResponse(result.Organization)
		resp.Organization = &org
	}
	return resp
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Lang:      user.Lang,
		CreatedAt: user.CreatedAt,
	}
}

func membershipResponse(m *domain.Membership) dto.MembershipResponse {
	return dto.MembershipResponse{
		OrganizationID: m.OrganizationID,
		Role:           m.Role,
		JoinedAt:       m.CreatedAt,
	}
}
