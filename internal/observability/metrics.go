package observability

import (
	"fmt"
	"sync"
	"time"
)

// Requests slower than this land in the slow bucket.
const slowThreshold = time.Second

// Metrics keeps process-local HTTP counters for the admin overview.
// Counters reset on restart; anything longer-lived belongs in Postgres.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]int64
	errors   map[string]int64
	slow     map[string]int64
}

// NewMetrics initializes empty counters.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]int64),
		errors:   make(map[string]int64),
		slow:     make(map[string]int64),
	}
}

// RecordRequest counts one served request per route and status.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := fmt.Sprintf("%s %s %d", method, path, status)
	m.mu.Lock()
	m.requests[key]++
	if duration >= slowThreshold {
		m.slow[method+" "+path]++
	}
	m.mu.Unlock()
}

// RecordError counts one error envelope per route and domain code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.errors[method+" "+path+" "+code]++
	m.mu.Unlock()
}

// Snapshot copies the counters for the admin stats endpoint.
func (m *Metrics) Snapshot() (requests, errors, slow map[string]int64) {
	if m == nil {
		return map[string]int64{}, map[string]int64{}, map[string]int64{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyCounts(m.requests), copyCounts(m.errors), copyCounts(m.slow)
}

func copyCounts(src map[string]int64) map[string]int64 {
	dst := make(map[string]int64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
