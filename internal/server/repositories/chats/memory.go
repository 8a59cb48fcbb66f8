package chats

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/scanmed/internal/server/models"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/memtable"
)

type MemoryRepository struct {
	table *memtable.Table[models.ChatSession]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{table: memtable.New[models.ChatSession]()}
}

func (r *MemoryRepository) Create(ctx context.Context, c *models.ChatSession) error {
	return r.table.Insert(c.ID, *c)
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.ChatSession, error) {
	c, err := r.table.Get(id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MemoryRepository) List(ctx context.Context, userID string, filter models.TrashFilter) ([]*models.ChatSession, error) {
	rows := r.table.Select(func(c models.ChatSession) bool {
		return c.UserID == userID && filter.Match(c.DeletedAt)
	}, func(a, b models.ChatSession) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})

	result := make([]*models.ChatSession, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

func (r *MemoryRepository) TrashState(ctx context.Context, id string) (models.TrashState, error) {
	c, err := r.table.Get(id)
	if err != nil {
		return models.TrashState{}, err
	}
	return c.TrashState(), nil
}

func (r *MemoryRepository) SetDeletedAt(ctx context.Context, id string, deletedAt *time.Time, updatedAt time.Time) error {
	return r.table.Update(id, func(c *models.ChatSession) error {
		c.DeletedAt = deletedAt
		c.UpdatedAt = updatedAt
		return nil
	})
}
