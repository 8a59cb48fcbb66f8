// Package scans stores ScanRecords. PostgresRepository, MongoRepository and
// MemoryRepository all satisfy Repository.
package scans

import (
	"context"
	"time"

	"github.com/dmitrijs2005/scanmed/internal/server/models"
)

// Repository persists body scans.
//
// Get, TrashState and SetDeletedAt return common.ErrorNotFound for an
// unknown id. List returns the user's scans newest first.
type Repository interface {
	Create(ctx context.Context, scan *models.ScanRecord) error
	Get(ctx context.Context, id string) (*models.ScanRecord, error)
	List(ctx context.Context, userID string, filter models.TrashFilter) ([]*models.ScanRecord, error)
	TrashState(ctx context.Context, id string) (models.TrashState, error)
	SetDeletedAt(ctx context.Context, id string, deletedAt *time.Time, updatedAt time.Time) error
	// Stats summarizes active scans across all users.
	Stats(ctx context.Context) (*models.ScanStats, error)
}
