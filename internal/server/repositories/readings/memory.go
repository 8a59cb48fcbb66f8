package readings

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/scanmed/internal/server/models"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/memtable"
)

type MemoryRepository struct {
	table *memtable.Table[models.ReadingEntry]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{table: memtable.New[models.ReadingEntry]()}
}

func (r *MemoryRepository) Create(ctx context.Context, e *models.ReadingEntry) error {
	return r.table.Insert(e.ID, *e)
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.ReadingEntry, error) {
	e, err := r.table.Get(id)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *MemoryRepository) List(ctx context.Context, userID string) ([]*models.ReadingEntry, error) {
	rows := r.table.Select(func(e models.ReadingEntry) bool {
		return e.UserID == userID
	}, func(a, b models.ReadingEntry) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})

	result := make([]*models.ReadingEntry, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
