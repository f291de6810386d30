package password

import (
	"context"
	"strings"
	"testing"
)

func TestHashAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	h := NewHasher(2)
	ctx := context.Background()

	digest, err := h.Hash(ctx, "secret1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if digest == "secret1" || digest == "" {
		t.Fatalf("digest must not be empty or plaintext")
	}

	ok, err := h.Verify(ctx, "secret1", digest)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected match for correct password")
	}
}

func TestVerify_MismatchIsNotAnError(t *testing.T) {
	t.Parallel()

	h := NewHasher(2)
	ctx := context.Background()

	digest, err := h.Hash(ctx, "secret1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	ok, err := h.Verify(ctx, "wrong-password", digest)
	if err != nil {
		t.Fatalf("mismatch must not produce an error, got %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch")
	}
}

func TestHash_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h := NewHasher(2)
	ctx := context.Background()

	d1, err := h.Hash(ctx, "secret1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	d2, err := h.Hash(ctx, "secret1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if d1 == d2 {
		t.Fatalf("two hashes of the same password must differ (random salt)")
	}
}

func TestHash_InputBounds(t *testing.T) {
	t.Parallel()

	h := NewHasher(1)
	ctx := context.Background()

	if _, err := h.Hash(ctx, ""); err != ErrPasswordEmpty {
		t.Fatalf("empty password: got %v want ErrPasswordEmpty", err)
	}
	if _, err := h.Hash(ctx, strings.Repeat("x", 73)); err != ErrPasswordTooLong {
		t.Fatalf("long password: got %v want ErrPasswordTooLong", err)
	}
}

func TestVerify_MalformedDigest(t *testing.T) {
	t.Parallel()

	h := NewHasher(1)
	ctx := context.Background()

	ok, err := h.Verify(ctx, "secret1", "not-a-bcrypt-digest")
	if ok {
		t.Fatalf("malformed digest must not verify")
	}
	if err != ErrInvalidHash {
		t.Fatalf("got %v want ErrInvalidHash", err)
	}
}

func TestAcquire_RespectsContext(t *testing.T) {
	t.Parallel()

	h := NewHasher(1)
	// Occupy the only slot.
	h.slots <- struct{}{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := h.Hash(ctx, "secret1"); err != context.Canceled {
		t.Fatalf("got %v want context.Canceled", err)
	}
}
