// Package services – AuthService
//
// This file implements the credential-store glue: admin self-registration and
// login for both principal kinds. Emails are normalized to lowercase before
// any lookup or write so the login namespace is case-insensitive, and the
// admin table is always searched before the agent table, matching the
// account precedence of the product.
//
// Service-level errors (ErrEmailTaken, ErrInvalidCredentials) are returned
// for predictable cases so handlers can map them to HTTP results
// consistently.
package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Deepanshu8560/AgentList/internal/auth"
	"github.com/Deepanshu8560/AgentList/internal/domain"
)

// AuthRepo defines the repository contract required by AuthService.
type AuthRepo interface {
	// GetAdminByEmail returns the admin carrying email, or (nil, nil).
	GetAdminByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Admin, error)

	// GetAgentByEmail returns the agent carrying email, or (nil, nil).
	GetAgentByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Agent, error)

	// CreateAdmin inserts a new admin row.
	CreateAdmin(ctx context.Context, db *gorm.DB, name, email, passwordHash string) (*domain.Admin, error)
}

// Principal is the hash-free identity view returned by login and embedded in
// auth responses.
type Principal struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// AuthService verifies credentials against the stored hashes and issues
// session tokens. It holds no session state: every token is self-contained.
type AuthService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the principal repository used by this service.
	Repo AuthRepo
	// Tokens mints and verifies session tokens.
	Tokens *auth.TokenManager
}

// NewAuthService constructs an AuthService.
func NewAuthService(db *gorm.DB, r AuthRepo, tokens *auth.TokenManager) *AuthService {
	return &AuthService{DB: db, Repo: r, Tokens: tokens}
}

// NormalizeEmail lowercases and trims an email so lookups and uniqueness
// checks are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterAdmin creates a new admin account and returns it along with a
// fresh session token. Repeated calls with an existing email fail with
// ErrEmailTaken; registration never overwrites.
func (s *AuthService) RegisterAdmin(ctx context.Context, name, email, password string) (*domain.Admin, string, error) {
	email = NormalizeEmail(email)

	taken, err := s.emailTaken(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	admin, err := s.Repo.CreateAdmin(ctx, s.DB, strings.TrimSpace(name), email, hash)
	if err != nil {
		return nil, "", err
	}

	token, err := s.Tokens.Issue(admin.ID, admin.Email, admin.Role)
	if err != nil {
		return nil, "", err
	}
	return admin, token, nil
}

// Login authenticates a principal by email and password. The admin set is
// searched first, then the agent set. Absent principals and wrong passwords
// both surface as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Principal, string, error) {
	email = NormalizeEmail(email)

	var p *Principal
	var hash string

	admin, err := s.Repo.GetAdminByEmail(ctx, s.DB, email)
	if err != nil {
		return nil, "", err
	}
	if admin != nil {
		p = &Principal{ID: admin.ID, Name: admin.Name, Email: admin.Email, Role: admin.Role}
		hash = admin.PasswordHash
	} else {
		agent, err := s.Repo.GetAgentByEmail(ctx, s.DB, email)
		if err != nil {
			return nil, "", err
		}
		if agent == nil {
			return nil, "", ErrInvalidCredentials
		}
		p = &Principal{ID: agent.ID, Name: agent.Name, Email: agent.Email, Role: agent.Role}
		hash = agent.PasswordHash
	}

	if !auth.CheckPassword(hash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(p.ID, p.Email, p.Role)
	if err != nil {
		return nil, "", err
	}
	return p, token, nil
}

// emailTaken reports whether any principal, admin or agent, already uses
// the (normalized) email.
func (s *AuthService) emailTaken(ctx context.Context, email string) (bool, error) {
	admin, err := s.Repo.GetAdminByEmail(ctx, s.DB, email)
	if err != nil {
		return false, err
	}
	if admin != nil {
		return true, nil
	}
	agent, err := s.Repo.GetAgentByEmail(ctx, s.DB, email)
	if err != nil {
		return false, err
	}
	return agent != nil, nil
}
