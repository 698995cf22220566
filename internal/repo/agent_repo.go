// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Agent
// model, including the ordered roster fetch the distribution engine depends
// on.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Deepanshu8560/AgentList/internal/domain"
)

// CreateAgent inserts a new Agent row. The ID is a randomly generated UUID
// and CreatedAt is set to UTC.
func CreateAgent(ctx context.Context, db *gorm.DB, name, email, mobile, passwordHash string) (*domain.Agent, error) {
	a := &domain.Agent{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Mobile:       mobile,
		Role:         domain.RoleAgent,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// GetAgent fetches a single agent by ID, or ErrNotFound if missing.
func GetAgent(ctx context.Context, db *gorm.DB, id string) (*domain.Agent, error) {
	var a domain.Agent
	if err := db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAgentByEmail fetches an agent by its (lowercase) email. Returns
// (nil, nil) when absent, mirroring GetAdminByEmail.
func GetAgentByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Agent, error) {
	var a domain.Agent
	err := db.WithContext(ctx).Where("email = ?", email).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAgents returns the full agent roster in stable order: creation time
// ascending with ID as tiebreaker. The distribution engine partitions rows
// against exactly this order, so it must not be re-sorted by callers.
func ListAgents(ctx context.Context, db *gorm.DB) ([]domain.Agent, error) {
	var out []domain.Agent
	err := db.WithContext(ctx).
		Order("created_at asc, id asc").
		Find(&out).Error
	return out, err
}

// UpdateAgentFields applies a partial column update to the agent identified
// by id. Fields maps column names to new values; only the provided columns
// change. If no rows are affected, it returns ErrNotFound. An empty fields
// map is a no-op that still verifies the agent exists.
func UpdateAgentFields(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error {
	if len(fields) == 0 {
		var a domain.Agent
		return db.WithContext(ctx).Select("id").Where("id = ?", id).First(&a).Error
	}
	res := db.WithContext(ctx).
		Model(&domain.Agent{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteAgent removes the agent row identified by id. If no rows are
// affected, it returns ErrNotFound. Cascading the agent's assignments is the
// caller's job (see services.AgentService.Delete).
func DeleteAgent(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Agent{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
