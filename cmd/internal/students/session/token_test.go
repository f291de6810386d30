package session

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"studentfees/cmd/student"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.AccessSecret = []byte("access-secret-for-tests")
	cfg.RefreshSecret = []byte("refresh-secret-for-tests")
	return cfg
}

func testView() student.View {
	return student.View{
		ID:       "64f0c2a5b1d2c3e4f5a6b7c8",
		FullName: "Alice",
		Email:    "a@x.com",
		FeesPaid: false,
	}
}

func TestAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	m, err := NewTokenManager(testConfig())
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	now := time.Now().UTC()
	v := testView()

	tok, exp, err := m.IssueAccess(v, now)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if !exp.After(now) {
		t.Fatalf("expiry %v must be after issue time %v", exp, now)
	}

	claims, err := m.VerifyAccess(tok, now)
	if err != nil {
		t.Fatalf("VerifyAccess: %v", err)
	}
	if claims.Subject != v.ID {
		t.Fatalf("subject=%q want %q", claims.Subject, v.ID)
	}
	if claims.Email != v.Email || claims.FullName != v.FullName || claims.FeesPaid != v.FeesPaid {
		t.Fatalf("claim set mismatch: %+v", claims)
	}
}

func TestAccessToken_WrongSecretRejected(t *testing.T) {
	t.Parallel()

	m1, _ := NewTokenManager(testConfig())

	other := testConfig()
	other.AccessSecret = []byte("a-different-access-secret")
	m2, _ := NewTokenManager(other)

	now := time.Now().UTC()
	tok, _, err := m1.IssueAccess(testView(), now)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	if _, err := m2.VerifyAccess(tok, now); err != ErrInvalidToken {
		t.Fatalf("got %v want ErrInvalidToken", err)
	}
}

func TestAccessToken_ExpiredRejected(t *testing.T) {
	t.Parallel()

	m, _ := NewTokenManager(testConfig())

	now := time.Now().UTC()
	tok, exp, err := m.IssueAccess(testView(), now)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	if _, err := m.VerifyAccess(tok, exp.Add(time.Second)); err != ErrInvalidToken {
		t.Fatalf("got %v want ErrInvalidToken past expiry", err)
	}
}

func TestRefreshToken_NotAcceptedAsAccess(t *testing.T) {
	t.Parallel()

	m, _ := NewTokenManager(testConfig())
	now := time.Now().UTC()

	refresh, _, err := m.IssueRefresh(testView().ID, now)
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}

	// Signed with the refresh secret, so the access verifier must reject it.
	if _, err := m.VerifyAccess(refresh, now); err != ErrInvalidToken {
		t.Fatalf("got %v want ErrInvalidToken", err)
	}

	if _, err := m.VerifyRefresh(refresh, now); err != nil {
		t.Fatalf("VerifyRefresh: %v", err)
	}
}

func TestRefreshToken_CarriesNoProfileData(t *testing.T) {
	t.Parallel()

	m, _ := NewTokenManager(testConfig())
	now := time.Now().UTC()

	refresh, _, err := m.IssueRefresh(testView().ID, now)
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}

	parts := strings.Split(refresh, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", refresh)
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if strings.Contains(string(payload), "email") || strings.Contains(string(payload), "fullname") {
		t.Fatalf("refresh token payload leaks profile data: %s", payload)
	}
}

func TestMalformedTokenRejected(t *testing.T) {
	t.Parallel()

	m, _ := NewTokenManager(testConfig())
	now := time.Now().UTC()

	for _, tok := range []string{"", "not.a.jwt", "a.b"} {
		if _, err := m.VerifyAccess(tok, now); err != ErrInvalidToken {
			t.Fatalf("VerifyAccess(%q): got %v want ErrInvalidToken", tok, err)
		}
	}
}

func TestNewTokenManager_RejectsSharedSecret(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.RefreshSecret = cfg.AccessSecret
	if _, err := NewTokenManager(cfg); err != ErrConfig {
		t.Fatalf("got %v want ErrConfig for shared secret", err)
	}
}
