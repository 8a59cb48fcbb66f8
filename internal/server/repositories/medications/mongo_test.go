package medications

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/scanmed/internal/common"
	"github.com/dmitrijs2005/scanmed/internal/server/models"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/mongotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func medID(m *models.MedicationRecord) string { return m.ID }

func med(id, user string, at time.Time) *models.MedicationRecord {
	return &models.MedicationRecord{
		ID: id, UserID: user, Name: "Med " + id, Dosage: "1", Frequency: "daily",
		StartDate: at, Status: models.DefaultMedicationStatus, CreatedAt: at, UpdatedAt: at,
	}
}

func TestMongoRepository_ListMatchesMemory(t *testing.T) {
	ctx := context.Background()
	repo := NewMongoRepository(mongotest.Database(t))
	mem := NewMemoryRepository()

	for _, m := range []*models.MedicationRecord{
		med("m1", "u1", created),
		med("m2", "u1", created.Add(time.Minute)),
		med("m3", "u1", created),
		med("m4", "u2", created),
	} {
		require.NoError(t, repo.Create(ctx, m))
		require.NoError(t, mem.Create(ctx, m))
	}

	got, err := repo.List(ctx, "u1", models.TrashAll)
	require.NoError(t, err)
	assert.Equal(t, []string{"m2", "m3", "m1"}, mongotest.IDs(got, medID))

	deleted := created.Add(time.Hour)
	require.NoError(t, repo.SetDeletedAt(ctx, "m3", &deleted, deleted))
	require.NoError(t, mem.SetDeletedAt(ctx, "m3", &deleted, deleted))

	for _, f := range []models.TrashFilter{models.TrashActive, models.TrashAll, models.TrashOnly} {
		t.Run(string(f), func(t *testing.T) {
			want, err := mem.List(ctx, "u1", f)
			require.NoError(t, err)
			got, err := repo.List(ctx, "u1", f)
			require.NoError(t, err)
			assert.Equal(t, mongotest.IDs(want, medID), mongotest.IDs(got, medID))
		})
	}
}

func TestMongoRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewMongoRepository(mongotest.Database(t))
	require.NoError(t, repo.Create(ctx, med("m1", "u1", created)))

	end := created.Add(48 * time.Hour)
	patched := med("m1", "u1", created)
	patched.Name = "ignored"
	patched.Status = "Paused"
	patched.Adherence = 55
	patched.EndDate = &end
	patched.UpdatedAt = created.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, patched))

	stored, err := repo.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "Paused", stored.Status)
	assert.Equal(t, 55, stored.Adherence)
	require.NotNil(t, stored.EndDate)
	assert.True(t, end.Equal(*stored.EndDate))
	assert.Equal(t, "Med m1", stored.Name, "only patchable fields are written")

	assert.ErrorIs(t, repo.Update(ctx, med("nope", "u1", created)), common.ErrorNotFound)
}

func TestMongoRepository_TrashState(t *testing.T) {
	ctx := context.Background()
	repo := NewMongoRepository(mongotest.Database(t))

	_, err := repo.coll.InsertOne(ctx, bson.M{"_id": "raw", "user_id": "u9", "name": "Zinc", "created_at": created})
	require.NoError(t, err)

	st, err := repo.TrashState(ctx, "raw")
	require.NoError(t, err)
	assert.Equal(t, "u9", st.UserID)
	assert.True(t, st.Active())

	_, err = repo.TrashState(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, repo.SetDeletedAt(ctx, "missing", &created, created), common.ErrorNotFound)
}
