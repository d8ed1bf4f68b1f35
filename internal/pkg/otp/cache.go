package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// DefaultTTL is how long a generated code stays valid.
const DefaultTTL = 2 * time.Minute

type entry struct {
	code      string
	expiresAt time.Time
}

// Cache is an in-memory store of one-time codes keyed by email. Codes are
// single use: a successful Validate removes the entry. The check-then-remove
// sequence is guarded by the mutex per key map access, but two concurrent
// validations of the same code still race on the outcome, matching the
// as-built behavior.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewCache creates a cache with the given TTL (DefaultTTL when zero).
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Generate creates a 4-digit code for the email, replacing any previous one.
func (c *Cache) Generate(email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	code := fmt.Sprintf("%04d", n.Int64())

	c.mu.Lock()
	c.entries[email] = entry{code: code, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()

	return code, nil
}

// Validate checks the code for the email. A valid code is consumed; expired
// entries are dropped.
func (c *Cache) Validate(email, code string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[email]
	if !ok {
		return false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, email)
		return false
	}
	if e.code != code {
		return false
	}

	delete(c.entries, email)
	return true
}
