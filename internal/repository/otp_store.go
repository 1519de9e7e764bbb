package repository

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "otp:"

// OTPStore keeps short-lived login codes in Redis. Codes are single-use:
// a successful verify consumes the key.
type OTPStore interface {
	Save(ctx context.Context, email, code string, ttl time.Duration) error
	Verify(ctx context.Context, email, code string) (bool, error)
}

type otpStore struct {
	client *redis.Client
}

// NewOTPStore instantiates the Redis-backed store.
func NewOTPStore(client *redis.Client) OTPStore {
	return &otpStore{client: client}
}

func (s *otpStore) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.client.Set(ctx, otpKey(email), code, ttl).Err()
}

func (s *otpStore) Verify(ctx context.Context, email, code string) (bool, error) {
	key := otpKey(email)
	stored, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if stored != code {
		return false, nil
	}
	_ = s.client.Del(ctx, key).Err()
	return true, nil
}

func otpKey(email string) string {
	return otpKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}
