// Package chats stores assistant ChatSessions.
package chats

import (
	"context"
	"time"

	"github.com/dmitrijs2005/scanmed/internal/server/models"
)

// Repository persists chat sessions. Unknown ids yield common.ErrorNotFound;
// List is newest first.
type Repository interface {
	Create(ctx context.Context, c *models.ChatSession) error
	Get(ctx context.Context, id string) (*models.ChatSession, error)
	List(ctx context.Context, userID string, filter models.TrashFilter) ([]*models.ChatSession, error)
	TrashState(ctx context.Context, id string) (models.TrashState, error)
	SetDeletedAt(ctx context.Context, id string, deletedAt *time.Time, updatedAt time.Time) error
}
