package repotest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Beyond-Company/Ticketing-backend/internal/repository"
)

// OTPCodes is an in-memory repository.OTPStore. TTLs are ignored; tests
// control lifetime by saving and consuming codes explicitly.
type OTPCodes struct {
	mu    sync.Mutex
	codes map[string]string
}

// NewOTPCodes constructs an empty store.
func NewOTPCodes() *OTPCodes {
	return &OTPCodes{codes: make(map[string]string)}
}

var _ repository.OTPStore = (*OTPCodes)(nil)

func (f *OTPCodes) Save(_ context.Context, email, code string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.codes[strings.ToLower(email)] = code
	return nil
}

func (f *OTPCodes) Verify(_ context.Context, email, code string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := strings.ToLower(email)
	stored, ok := f.codes[key]
	if !ok || stored != code {
		return false, nil
	}
	delete(f.codes, key)
	return true, nil
}

// Saved returns the last code stored for an address.
func (f *OTPCodes) Saved(email string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	code, ok := f.codes[strings.ToLower(email)]
	return code, ok
}

// MemoryLimiter is an in-memory repository.RateLimiter honoring the limit
// argument; windows never expire.
type MemoryLimiter struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewMemoryLimiter constructs an empty limiter.
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{counts: make(map[string]int)}
}

var _ repository.RateLimiter = (*MemoryLimiter)(nil)

func (l *MemoryLimiter) Allow(_ context.Context, key string, limit int, _ time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[key]++
	return l.counts[key] <= limit, nil
}
