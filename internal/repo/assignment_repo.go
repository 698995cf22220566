// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Assignment
// model: the batch insert produced by the distribution engine, the
// role-scoped list queries, and the cascade delete used when an agent is
// removed.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Deepanshu8560/AgentList/internal/domain"
)

// assignmentBatchSize bounds a single INSERT statement; SQLite has a bind
// variable limit and large uploads can carry tens of thousands of rows.
const assignmentBatchSize = 500

// CreateAssignments batch-inserts the full assignment set produced for one
// upload. An empty batch is a no-op (a valid upload can carry zero rows).
func CreateAssignments(ctx context.Context, db *gorm.DB, batch []domain.Assignment) error {
	if len(batch) == 0 {
		return nil
	}
	return db.WithContext(ctx).CreateInBatches(batch, assignmentBatchSize).Error
}

// ListAssignments returns up to limit assignments across all agents, newest
// first. A limit <= 0 falls back to the legacy result cap of 10000.
func ListAssignments(ctx context.Context, db *gorm.DB, limit int) ([]domain.Assignment, error) {
	if limit <= 0 {
		limit = 10000
	}
	var out []domain.Assignment
	err := db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// ListAssignmentsByAgent returns up to limit assignments owned by agentID,
// newest first.
func ListAssignmentsByAgent(ctx context.Context, db *gorm.DB, agentID string, limit int) ([]domain.Assignment, error) {
	if limit <= 0 {
		limit = 10000
	}
	var out []domain.Assignment
	err := db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Order("created_at desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountAssignmentsByAgent returns the live number of assignments currently
// referencing agentID. It is recomputed on every call (never cached) so it
// correctly reflects cascade deletes.
func CountAssignmentsByAgent(ctx context.Context, db *gorm.DB, agentID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Assignment{}).
		Where("agent_id = ?", agentID).
		Count(&total).Error
	return total, err
}

// DeleteAssignmentsByAgent removes every assignment owned by agentID and
// returns how many rows were deleted. Zero is not an error: an agent may
// never have received a lead.
func DeleteAssignmentsByAgent(ctx context.Context, db *gorm.DB, agentID string) (int64, error) {
	res := db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Delete(&domain.Assignment{})
	return res.RowsAffected, res.Error
}
