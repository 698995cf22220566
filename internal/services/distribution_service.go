// Package services – DistributionService
//
// This file implements the core partition-and-write algorithm: given the
// validated rows of one uploaded lead file, it fetches the current agent
// roster, records the ingestion as an Upload, assigns row i to agent
// i mod N, and batch-writes the resulting assignment set.
//
// The Upload row is written before the assignment batch and is not rolled
// back if the batch write fails: it is the durable evidence an ingestion was
// attempted. The discrepancy between Upload.TotalRecords and the actual
// assignment count for that upload id is how an operator detects the
// (accepted, documented) partial-failure window.
package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Deepanshu8560/AgentList/internal/domain"
	"github.com/Deepanshu8560/AgentList/internal/leadfile"
)

// DistributionRepo defines the repository contract required by
// DistributionService.
type DistributionRepo interface {
	// ListAgents returns the roster in its stable order.
	ListAgents(ctx context.Context, db *gorm.DB) ([]domain.Agent, error)

	// CreateUpload persists the immutable ingestion record.
	CreateUpload(ctx context.Context, db *gorm.DB, filename string, totalRecords int, uploadedBy string) (*domain.Upload, error)

	// CreateAssignments batch-inserts one upload's assignment set.
	CreateAssignments(ctx context.Context, db *gorm.DB, batch []domain.Assignment) error

	// ListUploads returns past ingestion events, newest first.
	ListUploads(ctx context.Context, db *gorm.DB, limit int) ([]domain.Upload, error)
}

// DistributionSummary reports the outcome of one ingestion.
//
// AgentsCount is the roster size used for the distribution, not the number
// of agents that actually received a row; the two differ when the file has
// fewer rows than there are agents.
type DistributionSummary struct {
	UploadID     string `json:"upload_id"`
	TotalRecords int    `json:"total_records"`
	AgentsCount  int    `json:"agents_count"`
}

// DistributionService partitions uploaded lead rows across the agent roster.
type DistributionService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the repository used by this service.
	Repo DistributionRepo
}

// NewDistributionService constructs a DistributionService.
func NewDistributionService(db *gorm.DB, r DistributionRepo) *DistributionService {
	return &DistributionService{DB: db, Repo: r}
}

// Distribute runs one ingestion: roster fetch, Upload record, round-robin
// partition, assignment batch write.
//
// Properties of the partition:
//   - row at zero-based position i goes to roster[i mod N], so the mapping
//     is fully determined by roster order and row order: no randomness, no
//     load awareness, no re-balancing of prior uploads;
//   - every agent receives either floor(R/N) or ceil(R/N) rows.
//
// An empty roster fails with ErrNoAgentsAvailable before anything is
// written. Zero rows is a success: the Upload records total_records=0 and no
// assignments are created.
func (s *DistributionService) Distribute(ctx context.Context, uploadedBy, filename string, rows []leadfile.Record) (*DistributionSummary, error) {
	roster, err := s.Repo.ListAgents(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	if len(roster) == 0 {
		return nil, ErrNoAgentsAvailable
	}

	upload, err := s.Repo.CreateUpload(ctx, s.DB, filename, len(rows), uploadedBy)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	batch := make([]domain.Assignment, 0, len(rows))
	for i, row := range rows {
		agent := roster[i%len(roster)]
		batch = append(batch, domain.Assignment{
			ID:        uuid.NewString(),
			AgentID:   agent.ID,
			AgentName: agent.Name, // snapshot at distribution time
			FirstName: row.FirstName,
			Phone:     row.Phone,
			Notes:     row.Notes,
			UploadID:  upload.ID,
			CreatedAt: now,
		})
	}
	if err := s.Repo.CreateAssignments(ctx, s.DB, batch); err != nil {
		// The Upload row stays: see the package comment on the
		// partial-failure window.
		return nil, err
	}

	return &DistributionSummary{
		UploadID:     upload.ID,
		TotalRecords: len(rows),
		AgentsCount:  len(roster),
	}, nil
}

// ListUploads returns past ingestion events, newest first, capped at limit
// (repo default when <= 0).
func (s *DistributionService) ListUploads(ctx context.Context, limit int) ([]domain.Upload, error) {
	return s.Repo.ListUploads(ctx, s.DB, limit)
}
