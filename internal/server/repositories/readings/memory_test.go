package readings

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/scanmed/internal/common"
	"github.com/dmitrijs2005/scanmed/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()
	at := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, r.Create(ctx, &models.ReadingEntry{ID: "r1", UserID: "u1", Title: "a", Category: "x", DateRead: at, CreatedAt: at}))
	require.NoError(t, r.Create(ctx, &models.ReadingEntry{ID: "r2", UserID: "u1", Title: "b", Category: "x", DateRead: at, CreatedAt: at}))
	require.NoError(t, r.Create(ctx, &models.ReadingEntry{ID: "r3", UserID: "u2", Title: "c", Category: "x", DateRead: at, CreatedAt: at}))
	assert.Error(t, r.Create(ctx, &models.ReadingEntry{ID: "r1"}))

	got, err := r.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "r2", got[0].ID, "same timestamp orders by id descending")

	e, err := r.Get(ctx, "r3")
	require.NoError(t, err)
	assert.Equal(t, "u2", e.UserID)

	_, err = r.Get(ctx, "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
