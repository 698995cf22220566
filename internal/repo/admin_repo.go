// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Admin
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a record is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Deepanshu8560/AgentList/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateAdmin inserts a new Admin row with the given display name, lowercase
// email, and password hash. The ID is a randomly generated UUID and
// CreatedAt is set to UTC.
func CreateAdmin(ctx context.Context, db *gorm.DB, name, email, passwordHash string) (*domain.Admin, error) {
	a := &domain.Admin{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Role:         domain.RoleAdmin,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// GetAdminByEmail fetches an admin by its (lowercase) email. Returns
// (nil, nil) when no admin carries that email so callers can fall through to
// the agent table without error juggling; DB errors are propagated.
func GetAdminByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Admin, error) {
	var a domain.Admin
	err := db.WithContext(ctx).Where("email = ?", email).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
