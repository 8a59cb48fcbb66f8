package memtable

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/scanmed/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID    string
	Owner string
	N     int
}

func TestTable_InsertGetUpdate(t *testing.T) {
	tbl := New[row]()

	require.NoError(t, tbl.Insert("a", row{ID: "a", Owner: "u1", N: 1}))
	require.Error(t, tbl.Insert("a", row{ID: "a"}))

	got, err := tbl.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 1, got.N)

	got.N = 99
	again, _ := tbl.Get("a")
	assert.Equal(t, 1, again.N, "returned rows are copies")

	require.NoError(t, tbl.Update("a", func(r *row) error { r.N = 2; return nil }))
	got, _ = tbl.Get("a")
	assert.Equal(t, 2, got.N)

	boom := errors.New("boom")
	require.ErrorIs(t, tbl.Update("a", func(r *row) error { r.N = 3; return boom }), boom)
	got, _ = tbl.Get("a")
	assert.Equal(t, 2, got.N, "failed update is not stored")

	_, err = tbl.Get("missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, tbl.Update("missing", func(*row) error { return nil }), common.ErrorNotFound)
}

func TestTable_Select(t *testing.T) {
	tbl := New[row]()
	for i, id := range []string{"c", "a", "b", "d"} {
		owner := "u1"
		if id == "d" {
			owner = "u2"
		}
		require.NoError(t, tbl.Insert(id, row{ID: id, Owner: owner, N: i}))
	}

	got := tbl.Select(
		func(r row) bool { return r.Owner == "u1" },
		func(a, b row) int { return strings.Compare(a.ID, b.ID) },
	)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, 4, tbl.Len())
}

func TestTable_ConcurrentAccess(t *testing.T) {
	tbl := New[row]()
	require.NoError(t, tbl.Insert("a", row{ID: "a"}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = tbl.Update("a", func(r *row) error { r.N++; return nil })
		}()
		go func() {
			defer wg.Done()
			_, _ = tbl.Get("a")
		}()
	}
	wg.Wait()

	got, _ := tbl.Get("a")
	assert.Equal(t, 50, got.N)
}
