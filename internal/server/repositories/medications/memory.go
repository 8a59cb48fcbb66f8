package medications

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/scanmed/internal/server/models"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/memtable"
)

// MemoryRepository keeps medications in process memory.
type MemoryRepository struct {
	table *memtable.Table[models.MedicationRecord]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{table: memtable.New[models.MedicationRecord]()}
}

func (r *MemoryRepository) Create(ctx context.Context, m *models.MedicationRecord) error {
	return r.table.Insert(m.ID, *m)
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.MedicationRecord, error) {
	m, err := r.table.Get(id)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemoryRepository) List(ctx context.Context, userID string, filter models.TrashFilter) ([]*models.MedicationRecord, error) {
	rows := r.table.Select(func(m models.MedicationRecord) bool {
		return m.UserID == userID && filter.Match(m.DeletedAt)
	}, func(a, b models.MedicationRecord) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})

	result := make([]*models.MedicationRecord, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

func (r *MemoryRepository) Update(ctx context.Context, m *models.MedicationRecord) error {
	return r.table.Update(m.ID, func(cur *models.MedicationRecord) error {
		cur.Status = m.Status
		cur.Adherence = m.Adherence
		cur.EndDate = m.EndDate
		cur.Notes = m.Notes
		cur.UpdatedAt = m.UpdatedAt
		return nil
	})
}

func (r *MemoryRepository) TrashState(ctx context.Context, id string) (models.TrashState, error) {
	m, err := r.table.Get(id)
	if err != nil {
		return models.TrashState{}, err
	}
	return m.TrashState(), nil
}

func (r *MemoryRepository) SetDeletedAt(ctx context.Context, id string, deletedAt *time.Time, updatedAt time.Time) error {
	return r.table.Update(id, func(m *models.MedicationRecord) error {
		m.DeletedAt = deletedAt
		m.UpdatedAt = updatedAt
		return nil
	})
}
