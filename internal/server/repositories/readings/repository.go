// Package readings stores the reading history log. Entries have no trash
// state, so the repository offers no soft delete.
package readings

import (
	"context"

	"github.com/dmitrijs2005/scanmed/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, e *models.ReadingEntry) error
	Get(ctx context.Context, id string) (*models.ReadingEntry, error)
	// List returns the user's entries newest first.
	List(ctx context.Context, userID string) ([]*models.ReadingEntry, error)
}
