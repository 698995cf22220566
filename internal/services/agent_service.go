// Package services – AgentService
//
// This file implements roster management: creating, listing, updating, and
// deleting agents. Email uniqueness is enforced across both principal tables
// (one login namespace), passwords are re-hashed whenever they change, and
// deleting an agent cascades to its assignments without redistributing them.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Deepanshu8560/AgentList/internal/auth"
	"github.com/Deepanshu8560/AgentList/internal/domain"
)

// AgentRepo defines the repository contract required by AgentService.
type AgentRepo interface {
	CreateAgent(ctx context.Context, db *gorm.DB, name, email, mobile, passwordHash string) (*domain.Agent, error)
	GetAgent(ctx context.Context, db *gorm.DB, id string) (*domain.Agent, error)
	GetAgentByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Agent, error)
	GetAdminByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Admin, error)
	ListAgents(ctx context.Context, db *gorm.DB) ([]domain.Agent, error)
	UpdateAgentFields(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error
	DeleteAgent(ctx context.Context, db *gorm.DB, id string) error
	DeleteAssignmentsByAgent(ctx context.Context, db *gorm.DB, agentID string) (int64, error)
}

// AgentUpdate carries a partial field set for an agent update. Nil fields
// are left untouched; a non-nil Password is re-hashed before storage.
type AgentUpdate struct {
	Name     *string
	Email    *string
	Mobile   *string
	Password *string
}

// AgentService manages the agent roster.
type AgentService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the agent repository used by this service.
	Repo AgentRepo
}

// NewAgentService constructs an AgentService.
func NewAgentService(db *gorm.DB, r AgentRepo) *AgentService {
	return &AgentService{DB: db, Repo: r}
}

// Create adds a new agent to the roster. The email must be unused by any
// principal; otherwise ErrEmailTaken is returned and nothing is written.
func (s *AgentService) Create(ctx context.Context, name, email, mobile, password string) (*domain.Agent, error) {
	email = NormalizeEmail(email)

	taken, err := s.emailTaken(ctx, email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return s.Repo.CreateAgent(ctx, s.DB, strings.TrimSpace(name), email, strings.TrimSpace(mobile), hash)
}

// List returns the current roster in its stable distribution order.
func (s *AgentService) List(ctx context.Context) ([]domain.Agent, error) {
	return s.Repo.ListAgents(ctx, s.DB)
}

// Update applies a partial field set to an agent. Only provided fields
// change; a provided password is hashed and stored as password_hash, never
// in plaintext. Returns ErrAgentNotFound when the agent is absent and
// ErrEmailTaken when a new email collides with any other principal.
func (s *AgentService) Update(ctx context.Context, id string, upd AgentUpdate) error {
	fields := make(map[string]any, 4)
	if upd.Name != nil {
		fields["name"] = strings.TrimSpace(*upd.Name)
	}
	if upd.Mobile != nil {
		fields["mobile"] = strings.TrimSpace(*upd.Mobile)
	}
	if upd.Email != nil {
		email := NormalizeEmail(*upd.Email)
		taken, err := s.emailTaken(ctx, email, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}
		fields["email"] = email
	}
	if upd.Password != nil {
		hash, err := auth.HashPassword(*upd.Password)
		if err != nil {
			return err
		}
		fields["password_hash"] = hash
	}

	if err := s.Repo.UpdateAgentFields(ctx, s.DB, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAgentNotFound
		}
		return err
	}
	return nil
}

// Delete removes an agent and cascades to delete all of that agent's
// assignments. The orphaned leads are NOT redistributed to remaining agents.
// Returns ErrAgentNotFound when the agent is absent.
func (s *AgentService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.DeleteAgent(ctx, s.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAgentNotFound
		}
		return err
	}
	_, err := s.Repo.DeleteAssignmentsByAgent(ctx, s.DB, id)
	return err
}

// emailTaken reports whether email is used by any principal other than the
// agent identified by excludeAgentID (pass "" to exclude nobody).
func (s *AgentService) emailTaken(ctx context.Context, email, excludeAgentID string) (bool, error) {
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
	return agent != nil && agent.ID != excludeAgentID, nil
}
