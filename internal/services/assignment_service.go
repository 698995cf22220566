// Package services – AssignmentService
//
// This file implements the assignment queries: the role-scoped listing (one
// endpoint, two views) and the admin-only per-agent statistics. Counts are
// recomputed live on every call so they stay correct across agent deletions.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/Deepanshu8560/AgentList/internal/domain"
)

// AssignmentRepo defines the repository contract required by
// AssignmentService.
type AssignmentRepo interface {
	ListAssignments(ctx context.Context, db *gorm.DB, limit int) ([]domain.Assignment, error)
	ListAssignmentsByAgent(ctx context.Context, db *gorm.DB, agentID string, limit int) ([]domain.Assignment, error)
	ListAgents(ctx context.Context, db *gorm.DB) ([]domain.Agent, error)
	CountAssignmentsByAgent(ctx context.Context, db *gorm.DB, agentID string) (int64, error)
}

// AgentStats is one row of the assignment statistics: a current agent and
// the live count of assignments referencing it.
type AgentStats struct {
	AgentID          string `json:"agent_id"`
	AgentName        string `json:"agent_name"`
	AgentEmail       string `json:"agent_email"`
	AssignmentsCount int64  `json:"assignments_count"`
}

// AssignmentService answers assignment queries with role-dependent scoping.
type AssignmentService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the assignment repository used by this service.
	Repo AssignmentRepo
}

// NewAssignmentService constructs an AssignmentService.
func NewAssignmentService(db *gorm.DB, r AssignmentRepo) *AssignmentService {
	return &AssignmentService{DB: db, Repo: r}
}

// ListFor returns the assignment view for the given principal: agents get
// only the assignments whose agent id equals their own id, admins get the
// unfiltered set. This is data scoping, not a reject guard; both roles may
// call it.
func (s *AssignmentService) ListFor(ctx context.Context, principalID string, role domain.Role, limit int) ([]domain.Assignment, error) {
	if role == domain.RoleAgent {
		return s.Repo.ListAssignmentsByAgent(ctx, s.DB, principalID, limit)
	}
	return s.Repo.ListAssignments(ctx, s.DB, limit)
}

// Stats returns, for each agent currently on the roster, the live count of
// assignments referencing it. Agents deleted since their last distribution
// no longer appear, and their cascaded assignments no longer count anywhere.
func (s *AssignmentService) Stats(ctx context.Context) ([]AgentStats, error) {
	roster, err := s.Repo.ListAgents(ctx, s.DB)
	if err != nil {
		return nil, err
	}

	stats := make([]AgentStats, 0, len(roster))
	for _, agent := range roster {
		count, err := s.Repo.CountAssignmentsByAgent(ctx, s.DB, agent.ID)
		if err != nil {
			return nil, err
		}
		stats = append(stats, AgentStats{
			AgentID:          agent.ID,
			AgentName:        agent.Name,
			AgentEmail:       agent.Email,
			AssignmentsCount: count,
		})
	}
	return stats, nil
}
