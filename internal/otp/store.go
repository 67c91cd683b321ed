package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// Store is an ephemeral keyed map from request id to verification code.
// Per-key operations are atomic; there is no cross-key ordering guarantee.
// Entries expire after the configured TTL and are consumed on successful
// verification, so a code is usable at most once.
type Store interface {
	Put(requestID uuid.UUID, code string)
	Get(requestID uuid.UUID) (string, bool)
	Delete(requestID uuid.UUID)
	// FailedAttempt records a wrong submission and returns the running count
	// for the entry. The counter resets when a new code is issued.
	FailedAttempt(requestID uuid.UUID) int
}

// CacheStore implements Store on top of an expiring in-process cache. One
// instance per process owns all verification codes.
type CacheStore struct {
	cache *gocache.Cache
	ttl   time.Duration
}

func NewCacheStore(ttl time.Duration) *CacheStore {
	return &CacheStore{
		cache: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func (s *CacheStore) Put(requestID uuid.UUID, code string) {
	// Reissuing overwrites the previous code and clears its attempt count.
	s.cache.Set(codeKey(requestID), code, s.ttl)
	s.cache.Delete(attemptsKey(requestID))
}

func (s *CacheStore) Get(requestID uuid.UUID) (string, bool) {
	value, found := s.cache.Get(codeKey(requestID))
	if !found {
		return "", false
	}
	return value.(string), true
}

func (s *CacheStore) Delete(requestID uuid.UUID) {
	s.cache.Delete(codeKey(requestID))
	s.cache.Delete(attemptsKey(requestID))
}

func (s *CacheStore) FailedAttempt(requestID uuid.UUID) int {
	key := attemptsKey(requestID)
	if err := s.cache.Add(key, 1, s.ttl); err == nil {
		return 1
	}
	count, err := s.cache.IncrementInt(key, 1)
	if err != nil {
		return 1
	}
	return count
}

func codeKey(requestID uuid.UUID) string {
	return requestID.String()
}

func attemptsKey(requestID uuid.UUID) string {
	return requestID.String() + ":attempts"
}

// GenerateCode returns a 6-digit verification code, zero-padded, drawn
// uniformly from [0, 999999].
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
