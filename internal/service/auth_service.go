package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Beyond-Company/Ticketing-backend/internal/auth"
	"github.com/Beyond-Company/Ticketing-backend/internal/config"
	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
	"github.com/Beyond-Company/Ticketing-backend/internal/mailer"
	"github.com/Beyond-Company/Ticketing-backend/internal/repository"
	apperrors "github.com/Beyond-Company/Ticketing-backend/pkg/util"
)

// MailSender is the outbound mail surface services depend on. Enqueue is
// fire-and-forget; SendNow blocks and reports transport failures.
type MailSender interface {
	Enqueue(msg mailer.Message)
	SendNow(msg mailer.Message) error
}

// AuthService coordinates registration, login and one-time-code flows.
type AuthService struct {
	users       repository.UserRepository
	memberships repository.MembershipRepository
	otps        repository.OTPStore
	orgs        *OrganizationService
	mail        MailSender
	tokenMgr    *auth.TokenManager
	hasher      *auth.PasswordHasher
	otpTTL      time.Duration
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	UserRepo       repository.UserRepository
	MembershipRepo repository.MembershipRepository
	OTPStore       repository.OTPStore
	Organizations  *OrganizationService
	Mail           MailSender
}

// RegisterInput describes the signup payload. Organization, when present,
// provisions a tenant with the new user as its admin.
type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	Lang         string
	Organization *OrganizationCreateInput
}

// AuthResult bundles the authenticated user with their access token.
type AuthResult struct {
	User         *domain.User
	Token        string
	ExpiresAt    time.Time
	Organization *domain.Organization
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:       deps.UserRepo,
		memberships: deps.MembershipRepo,
		otps:        deps.OTPStore,
		orgs:        deps.Organizations,
		mail:        deps.Mail,
		tokenMgr:    auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		hasher:      auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		otpTTL:      cfg.Auth.OTPTTL(),
	}
}

// Register creates an account and, optionally, its first organization.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("name, email and password are required", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	lang := strings.ToLower(strings.TrimSpace(input.Lang))
	if lang == "" {
		lang = "en"
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.GlobalRoleUser,
		Lang:         lang,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
		}
		return nil, err
	}

	var org *domain.Organization
	var orgID *string
	if input.Organization != nil {
		org, err = s.orgs.Create(ctx, user.ID, *input.Organization)
		if err != nil {
			return nil, err
		}
		orgID = &org.ID
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role, orgID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: exp, Organization: org}, nil
}

// Login authenticates by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if err := s.hasher.Verify(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	return s.issueToken(ctx, user)
}

// RequestOTP mails a one-time login code. The send is synchronous: login
// cannot proceed without it, so transport failures surface to the caller.
func (s *AuthService) RequestOTP(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("user", map[string]any{"email": email})
		}
		return err
	}

	code, err := generateOTPCode()
	if err != nil {
		return err
	}
	if err := s.otps.Save(ctx, user.Email, code, s.otpTTL); err != nil {
		return err
	}

	msg := mailer.Message{
		To:   user.Email,
		Kind: mailer.KindLoginCode,
		Lang: user.Lang,
		Vars: map[string]any{
			"Name":    user.Name,
			"Code":    code,
			"Minutes": int(s.otpTTL.Minutes()),
		},
	}
	if err := s.mail.SendNow(msg); err != nil {
		return apperrors.NewUpstreamError("failed to send login code", err)
	}
	return nil
}

// VerifyOTP exchanges a valid one-time code for an access token. Codes are
// single-use; a second verify with the same code fails.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewUnauthorized("invalid or expired code")
		}
		return nil, err
	}

	ok, err := s.otps.Verify(ctx, user.Email, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NewUnauthorized("invalid or expired code")
	}
	return s.issueToken(ctx, user)
}

// Me returns the account plus its memberships.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, []domain.Membership, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	memberships, err := s.memberships.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, memberships, nil
}

// issueToken embeds the user's earliest membership as the token's org hint.
func (s *AuthService) issueToken(ctx context.Context, user *domain.User) (*AuthResult, error) {
	var orgID *string
	membership, err := s.memberships.FirstForUser(ctx, user.ID)
	if err == nil {
		orgID = &membership.OrganizationID
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role, orgID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: exp}, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
