package scans

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/scanmed/internal/server/models"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/memtable"
)

// MemoryRepository keeps scans in process memory.
type MemoryRepository struct {
	table *memtable.Table[models.ScanRecord]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{table: memtable.New[models.ScanRecord]()}
}

func (r *MemoryRepository) Create(ctx context.Context, s *models.ScanRecord) error {
	return r.table.Insert(s.ID, *s)
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.ScanRecord, error) {
	s, err := r.table.Get(id)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func newestFirst(a, b models.ScanRecord) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(b.ID, a.ID)
}

func (r *MemoryRepository) List(ctx context.Context, userID string, filter models.TrashFilter) ([]*models.ScanRecord, error) {
	rows := r.table.Select(func(s models.ScanRecord) bool {
		return s.UserID == userID && filter.Match(s.DeletedAt)
	}, newestFirst)

	result := make([]*models.ScanRecord, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

func (r *MemoryRepository) TrashState(ctx context.Context, id string) (models.TrashState, error) {
	s, err := r.table.Get(id)
	if err != nil {
		return models.TrashState{}, err
	}
	return s.TrashState(), nil
}

func (r *MemoryRepository) SetDeletedAt(ctx context.Context, id string, deletedAt *time.Time, updatedAt time.Time) error {
	return r.table.Update(id, func(s *models.ScanRecord) error {
		s.DeletedAt = deletedAt
		s.UpdatedAt = updatedAt
		return nil
	})
}

func (r *MemoryRepository) Stats(ctx context.Context) (*models.ScanStats, error) {
	type acc struct {
		n   int64
		sum float64
	}
	perType := map[models.ScanType]*acc{}
	users := map[string]struct{}{}

	active := r.table.Select(func(s models.ScanRecord) bool { return s.DeletedAt == nil }, newestFirst)
	for _, s := range active {
		a := perType[s.ScanType]
		if a == nil {
			a = &acc{}
			perType[s.ScanType] = a
		}
		a.n++
		a.sum += s.Confidence
		users[s.UserID] = struct{}{}
	}

	byType := make([]models.ScanTypeStats, 0, len(perType))
	for t, a := range perType {
		byType = append(byType, models.ScanTypeStats{ScanType: t, Count: a.n, AverageConfidence: a.sum / float64(a.n)})
	}
	return models.NewScanStats(int64(len(users)), byType), nil
}
