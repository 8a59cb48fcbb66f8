// Package memtable is a small mutex-guarded, id-keyed table used by the
// in-memory record repositories.
package memtable

import (
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/scanmed/internal/common"
)

// Table stores values of T by id. Values are copied in and out, so callers
// never share a row with the table.
type Table[T any] struct {
	mu   sync.RWMutex
	rows map[string]T
}

func New[T any]() *Table[T] {
	return &Table[T]{rows: make(map[string]T)}
}

// Insert adds v under id. An existing id is an error.
func (t *Table[T]) Insert(id string, v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; ok {
		return fmt.Errorf("duplicate id %q", id)
	}
	t.rows[id] = v
	return nil
}

// Get returns a copy of the row, or common.ErrorNotFound.
func (t *Table[T]) Get(id string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, common.ErrorNotFound
	}
	return v, nil
}

// Update applies fn to a copy of the row and stores the result when fn
// returns nil. A missing id yields common.ErrorNotFound.
func (t *Table[T]) Update(id string, fn func(*T) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.rows[id]
	if !ok {
		return common.ErrorNotFound
	}
	if err := fn(&v); err != nil {
		return err
	}
	t.rows[id] = v
	return nil
}

// Select returns copies of the rows matching keep, sorted by cmp.
func (t *Table[T]) Select(keep func(T) bool, cmp func(a, b T) int) []T {
	t.mu.RLock()
	out := make([]T, 0, len(t.rows))
	for _, v := range t.rows {
		if keep(v) {
			out = append(out, v)
		}
	}
	t.mu.RUnlock()

	slices.SortStableFunc(out, cmp)
	return out
}

func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}
