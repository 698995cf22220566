package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/Deepanshu8560/AgentList/internal/domain"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	tok, err := m.Issue("u1", "admin@example.com", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "admin@example.com" || claims.Role != domain.RoleAdmin {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if claims.ExpiresAt == nil {
		t.Fatalf("expiry claim missing")
	}
}

func TestVerify_ExpiredToken(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewTokenManager("test-secret", time.Hour).WithClock(func() time.Time { return issued })

	tok, err := m.Issue("u1", "a@example.com", domain.RoleAgent)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Advance the clock past the TTL: the signature is still valid but the
	// token must be rejected as expired, not as invalid.
	m.WithClock(func() time.Time { return issued.Add(2 * time.Hour) })
	_, err = m.Verify(tok)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	tok, err := issuer.Issue("u1", "a@example.com", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	_, err = verifier.Verify(tok)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong key, got %v", err)
	}
}

func TestVerify_GarbageToken(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.Verify(tok); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("Verify(%q): expected ErrTokenInvalid, got %v", tok, err)
		}
	}
}

func TestVerify_RejectsUnknownRole(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	tok, err := m.Issue("u1", "a@example.com", domain.Role("superuser"))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := m.Verify(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for unknown role, got %v", err)
	}
}

func TestNewTokenManager_TTLFallback(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewTokenManager("s", 0).WithClock(func() time.Time { return issued })

	tok, err := m.Issue("u1", "a@example.com", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got := claims.ExpiresAt.Time; !got.Equal(issued.Add(24 * time.Hour)) {
		t.Fatalf("default TTL expiry = %v; want issued+24h", got)
	}
}

func TestHashPassword_VerifyAndReject(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter2" || hash == "" {
		t.Fatalf("hash looks like plaintext: %q", hash)
	}
	if !CheckPassword(hash, "hunter2") {
		t.Fatalf("correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatalf("wrong password accepted")
	}
	if CheckPassword("not-a-bcrypt-hash", "hunter2") {
		t.Fatalf("malformed hash accepted")
	}
}

func TestHashPassword_SaltedHashesDiffer(t *testing.T) {
	h1, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same password should differ (salt)")
	}
}
