// Package otp issues and verifies the 6-digit email verification codes. The
// repo has no mail transport; issued codes are returned to the caller for
// logging, the way the demo client alerted them.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"cabinet/pkg/platform/sentinel"
)

// TTL is how long an issued code stays valid.
const TTL = 10 * time.Minute

type pendingCode struct {
	code      string
	expiresAt time.Time
}

// Store keeps at most one pending code per email. Reissuing replaces the
// previous code. Codes are one-shot: deleted on successful verification and
// on expiry detection.
type Store struct {
	mu    sync.Mutex
	codes map[string]pendingCode
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{
		codes: make(map[string]pendingCode),
		now:   time.Now,
	}
}

// WithClock overrides the clock. Test hook for the expiry path.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Issue generates a 6-digit numeric code for the email and stores it with a
// 10-minute expiry.
func (s *Store) Issue(email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = pendingCode{code: code, expiresAt: s.now().Add(TTL)}
	return code, nil
}

// Verify validates the supplied code. Failure modes:
//   - no code pending for the email: ErrNotFound
//   - code expired: ErrExpired, and the pending code is removed
//   - code mismatch: ErrInvalidState, pending code kept for retry
func (s *Store) Verify(email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, ok := s.codes[email]
	if !ok {
		return sentinel.ErrNotFound
	}
	if s.now().After(pending.expiresAt) {
		delete(s.codes, email)
		return sentinel.ErrExpired
	}
	if pending.code != code {
		return sentinel.ErrInvalidState
	}
	delete(s.codes, email)
	return nil
}
