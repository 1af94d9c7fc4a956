package memory

import (
	"crypto/rand"
	"math/big"
	"sync"
	"time"
)

// codeMin and codeMax bound the 6-digit verification codes (inclusive).
const (
	codeMin = 100000
	codeMax = 999999
)

type entry struct {
	code      int
	createdAt time.Time
	attempts  int
}

// CodeStore holds the outstanding verification code per contact identifier.
// Phone numbers and email addresses share one keyspace; the store treats both
// as opaque strings. At most one code exists per identifier: issuing again
// overwrites the previous entry, and the first successful verification removes it.
type CodeStore struct {
	mu          sync.Mutex
	entries     map[string]entry
	ttl         time.Duration // zero disables expiry
	maxAttempts int           // zero disables the attempt limit
	now         func() time.Time
}

// NewCodeStore creates a store whose codes expire after ttl and are consumed
// after maxAttempts failed verifications. Pass zero to disable either limit.
func NewCodeStore(ttl time.Duration, maxAttempts int) *CodeStore {
	return &CodeStore{
		entries:     make(map[string]entry),
		ttl:         ttl,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// Issue generates a uniformly random 6-digit code for the identifier,
// replacing any code already outstanding for it.
func (s *CodeStore) Issue(identifier string) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return 0, err
	}
	code := int(n.Int64()) + codeMin

	s.mu.Lock()
	s.entries[identifier] = entry{code: code, createdAt: s.now()}
	s.mu.Unlock()
	return code, nil
}

// VerifyAndConsume reports whether submitted matches the outstanding code for
// the identifier. On a match the entry is removed, so a second call with the
// same code fails. A mismatch leaves the entry in place until the attempt
// limit is reached, at which point the entry is consumed regardless. Expired
// entries never match.
func (s *CodeStore) VerifyAndConsume(identifier string, submitted int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[identifier]
	if !ok {
		return false
	}
	if s.ttl > 0 && s.now().Sub(e.createdAt) > s.ttl {
		delete(s.entries, identifier)
		return false
	}
	if e.code != submitted {
		e.attempts++
		if s.maxAttempts > 0 && e.attempts >= s.maxAttempts {
			delete(s.entries, identifier)
		} else {
			s.entries[identifier] = e
		}
		return false
	}
	delete(s.entries, identifier)
	return true
}
