package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Deepanshu8560/AgentList/internal/auth"
	"github.com/Deepanshu8560/AgentList/internal/domain"
)

// ----- Fake repo -----

type fakeAuthRepo struct {
	admins map[string]*domain.Admin
	agents map[string]*domain.Agent

	createdName  string
	createdEmail string
	createdHash  string
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{
		admins: map[string]*domain.Admin{},
		agents: map[string]*domain.Agent{},
	}
}

func (r *fakeAuthRepo) GetAdminByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Admin, error) {
	return r.admins[email], nil
}

func (r *fakeAuthRepo) GetAgentByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Agent, error) {
	return r.agents[email], nil
}

func (r *fakeAuthRepo) CreateAdmin(ctx context.Context, db *gorm.DB, name, email, passwordHash string) (*domain.Admin, error) {
	r.createdName, r.createdEmail, r.createdHash = name, email, passwordHash
	a := &domain.Admin{ID: "adm-1", Name: name, Email: email, Role: domain.RoleAdmin, PasswordHash: passwordHash}
	r.admins[email] = a
	return a, nil
}

func testTokens() *auth.TokenManager {
	return auth.NewTokenManager("unit-test-secret", time.Hour)
}

// ----- Tests -----

func TestRegisterAdmin_Success(t *testing.T) {
	r := newFakeAuthRepo()
	s := NewAuthService(nil, r, testTokens())

	admin, token, err := s.RegisterAdmin(context.Background(), "  Root  ", "Root@Example.COM", "pw123")
	if err != nil {
		t.Fatalf("RegisterAdmin: %v", err)
	}
	if admin.Email != "root@example.com" {
		t.Fatalf("email not normalized: %q", admin.Email)
	}
	if r.createdName != "Root" {
		t.Fatalf("name not trimmed: %q", r.createdName)
	}
	if r.createdHash == "pw123" || r.createdHash == "" {
		t.Fatalf("password stored in plaintext or empty: %q", r.createdHash)
	}

	claims, err := testTokens().Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != "adm-1" || claims.Role != domain.RoleAdmin {
		t.Fatalf("token claims mismatch: %+v", claims)
	}
}

func TestRegisterAdmin_ConflictWithExistingAdmin(t *testing.T) {
	r := newFakeAuthRepo()
	r.admins["taken@example.com"] = &domain.Admin{ID: "a1", Email: "taken@example.com"}
	s := NewAuthService(nil, r, testTokens())

	_, _, err := s.RegisterAdmin(context.Background(), "X", "taken@example.com", "pw")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterAdmin_ConflictAcrossKinds(t *testing.T) {
	// An agent holding the email blocks admin registration too: one login
	// namespace across both principal kinds.
	r := newFakeAuthRepo()
	r.agents["agent@example.com"] = &domain.Agent{ID: "g1", Email: "agent@example.com"}
	s := NewAuthService(nil, r, testTokens())

	_, _, err := s.RegisterAdmin(context.Background(), "X", "Agent@Example.com", "pw")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken across kinds, got %v", err)
	}
}

func TestLogin_AdminHappyPath(t *testing.T) {
	hash, err := auth.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	r := newFakeAuthRepo()
	r.admins["root@example.com"] = &domain.Admin{
		ID: "adm-1", Name: "Root", Email: "root@example.com",
		Role: domain.RoleAdmin, PasswordHash: hash,
	}
	s := NewAuthService(nil, r, testTokens())

	p, token, err := s.Login(context.Background(), "ROOT@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if p.ID != "adm-1" || p.Role != domain.RoleAdmin || p.Name != "Root" {
		t.Fatalf("principal mismatch: %+v", p)
	}
	if token == "" {
		t.Fatalf("no token issued")
	}
}

func TestLogin_FallsThroughToAgents(t *testing.T) {
	hash, err := auth.HashPassword("agent-pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	r := newFakeAuthRepo()
	r.agents["ana@example.com"] = &domain.Agent{
		ID: "ag-1", Name: "Ana", Email: "ana@example.com",
		Role: domain.RoleAgent, PasswordHash: hash,
	}
	s := NewAuthService(nil, r, testTokens())

	p, _, err := s.Login(context.Background(), "ana@example.com", "agent-pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if p.Role != domain.RoleAgent || p.ID != "ag-1" {
		t.Fatalf("principal mismatch: %+v", p)
	}
}

func TestLogin_Failures(t *testing.T) {
	hash, err := auth.HashPassword("right")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	r := newFakeAuthRepo()
	r.admins["root@example.com"] = &domain.Admin{ID: "a1", Email: "root@example.com", PasswordHash: hash, Role: domain.RoleAdmin}
	s := NewAuthService(nil, r, testTokens())

	// Unknown email and wrong password are the same error to the caller.
	if _, _, err := s.Login(context.Background(), "ghost@example.com", "right"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := s.Login(context.Background(), "root@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestNormalizeEmail(t *testing.T) {
	cases := map[string]string{
		"Root@Example.COM ": "root@example.com",
		"  a@b.co":          "a@b.co",
		"PLAIN@X.IO":        "plain@x.io",
	}
	for in, want := range cases {
		if got := NormalizeEmail(in); got != want {
			t.Errorf("NormalizeEmail(%q) = %q; want %q", in, got, want)
		}
	}
}
