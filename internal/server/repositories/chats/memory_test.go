package chats

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

	require.NoError(t, r.Create(ctx, &models.ChatSession{ID: "c1", UserID: "u1", Title: "a", CreatedAt: created, UpdatedAt: created}))
	require.NoError(t, r.Create(ctx, &models.ChatSession{ID: "c2", UserID: "u1", Title: "b", CreatedAt: created.Add(time.Minute), UpdatedAt: created}))
	require.NoError(t, r.Create(ctx, &models.ChatSession{ID: "c3", UserID: "u2", Title: "c", CreatedAt: created, UpdatedAt: created}))

	got, err := r.List(ctx, "u1", models.TrashActive)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c2", got[0].ID)

	got[0].Title = "changed"
	stored, err := r.Get(ctx, "c2")
	require.NoError(t, err)
	assert.Equal(t, "b", stored.Title, "rows are copied out")

	deleted := created.Add(time.Hour)
	require.NoError(t, r.SetDeletedAt(ctx, "c1", &deleted, deleted))

	st, err := r.TrashState(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "u1", st.UserID)
	assert.False(t, st.Active())

	got, _ = r.List(ctx, "u1", models.TrashOnly)
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ID)

	got, _ = r.List(ctx, "u1", models.TrashAll)
	assert.Len(t, got, 2)

	_, err = r.Get(ctx, "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, r.SetDeletedAt(ctx, "nope", nil, deleted), common.ErrorNotFound)
}
