package auth

import (
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/Beyond-Company/Ticketing-backend/pkg/util"
)

// bcrypt reads at most 72 bytes of input; reject longer passwords instead
// of hashing a silent truncation.
const maxPasswordBytes = 72

// PasswordHasher derives and checks bcrypt hashes with the cost picked at
// startup.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher clamps out-of-range costs to the bcrypt default.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the stored form of a plaintext password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", apperrors.NewValidationError("password is too long", map[string]any{"max_bytes": maxPasswordBytes})
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plain matches the stored hash.
func (h *PasswordHasher) Verify(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
