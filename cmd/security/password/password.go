package password

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	// Cost is the fixed bcrypt work factor. 10 rounds keeps hashing
	// deliberately slow against brute force while staying responsive enough
	// for interactive login.
	Cost = 10

	// DefaultWorkers bounds how many bcrypt computations may run concurrently.
	DefaultWorkers = 4

	// bcrypt silently truncates beyond 72 bytes; reject instead.
	maxPasswordBytes = 72
)

// Hasher hashes and verifies passwords with a bounded concurrency gate.
// The zero value is not usable; construct with NewHasher.
type Hasher struct {
	slots chan struct{}
}

// NewHasher builds a Hasher allowing at most workers concurrent hash/verify
// computations. Non-positive workers falls back to DefaultWorkers.
func NewHasher(workers int) *Hasher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Hasher{slots: make(chan struct{}, workers)}
}

// acquire takes a computation slot, honoring context cancellation while
// waiting. The caller must release() after the bcrypt call returns.
func (h *Hasher) acquire(ctx context.Context) error {
	select {
	case h.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hasher) release() { <-h.slots }

// Hash returns the bcrypt digest of plaintext. The salt is generated per call
// and embedded in the digest.
func (h *Hasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrPasswordEmpty
	}
	if len(plaintext) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	if err := h.acquire(ctx); err != nil {
		return "", err
	}
	defer h.release()

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), Cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify recomputes plaintext against the salt embedded in digest.
// A mismatch is (false, nil); only malformed digests produce an error.
func (h *Hasher) Verify(ctx context.Context, plaintext, digest string) (bool, error) {
	if plaintext == "" || digest == "" {
		return false, nil
	}
	if len(plaintext) > maxPasswordBytes {
		return false, nil
	}

	if err := h.acquire(ctx); err != nil {
		return false, err
	}
	defer h.release()

	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrInvalidHash
	}
}
