// Package medications stores MedicationRecords.
package medications

import (
	"context"
	"time"

	"github.com/dmitrijs2005/scanmed/internal/server/models"
)

// Repository persists tracked medications. Unknown ids yield
// common.ErrorNotFound; List is newest first.
type Repository interface {
	Create(ctx context.Context, m *models.MedicationRecord) error
	Get(ctx context.Context, id string) (*models.MedicationRecord, error)
	List(ctx context.Context, userID string, filter models.TrashFilter) ([]*models.MedicationRecord, error)
	// Update writes the patchable fields of m (status, adherence, end date,
	// notes, updated at).
	Update(ctx context.Context, m *models.MedicationRecord) error
	TrashState(ctx context.Context, id string) (models.TrashState, error)
	SetDeletedAt(ctx context.Context, id string, deletedAt *time.Time, updatedAt time.Time) error
}
