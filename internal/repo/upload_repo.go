// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Upload
// model. Upload rows are write-once: nothing here mutates or deletes them.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Deepanshu8560/AgentList/internal/domain"
)

// CreateUpload inserts the immutable record of one ingestion event.
func CreateUpload(ctx context.Context, db *gorm.DB, filename string, totalRecords int, uploadedBy string) (*domain.Upload, error) {
	u := &domain.Upload{
		ID:           uuid.NewString(),
		Filename:     filename,
		TotalRecords: totalRecords,
		UploadedBy:   uploadedBy,
		UploadedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// ListUploads returns up to limit uploads, newest first. A limit <= 0 falls
// back to the legacy result cap of 1000.
func ListUploads(ctx context.Context, db *gorm.DB, limit int) ([]domain.Upload, error) {
	if limit <= 0 {
		limit = 1000
	}
	var out []domain.Upload
	err := db.WithContext(ctx).
		Order("uploaded_at desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}
