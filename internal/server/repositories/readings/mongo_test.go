package readings

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/scanmed/internal/common"
	"github.com/dmitrijs2005/scanmed/internal/server/models"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/mongotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMongoRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMongoRepository(mongotest.Database(t))
	mem := NewMemoryRepository()

	for _, e := range []*models.ReadingEntry{
		{ID: "r1", UserID: "u1", Title: "a", Category: "x", ReadTime: "3 min", DateRead: created, CreatedAt: created},
		{ID: "r2", UserID: "u1", Title: "b", Category: "x", ReadTime: "5 min", DateRead: created, CreatedAt: created.Add(time.Minute)},
		{ID: "r3", UserID: "u1", Title: "c", Category: "y", ReadTime: "1 min", DateRead: created, CreatedAt: created},
		{ID: "r4", UserID: "u2", Title: "d", Category: "y", ReadTime: "1 min", DateRead: created, CreatedAt: created},
	} {
		require.NoError(t, repo.Create(ctx, e))
		require.NoError(t, mem.Create(ctx, e))
	}

	want, err := mem.List(ctx, "u1")
	require.NoError(t, err)
	got, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	id := func(e *models.ReadingEntry) string { return e.ID }
	assert.Equal(t, []string{"r2", "r3", "r1"}, mongotest.IDs(got, id))
	assert.Equal(t, mongotest.IDs(want, id), mongotest.IDs(got, id))

	e, err := repo.Get(ctx, "r2")
	require.NoError(t, err)
	assert.Equal(t, "5 min", e.ReadTime)
	assert.True(t, created.Equal(e.DateRead))

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	empty, err := repo.List(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
