package chats

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/scanmed/internal/common"
	"github.com/dmitrijs2005/scanmed/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	created = time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	cols    = []string{"id", "user_id", "title", "preview", "deleted_at", "created_at", "updated_at"}
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreateAndGet(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO chats \(id, user_id, title, preview, deleted_at, created_at, updated_at\)`).
		WithArgs("c1", "u1", "Headache", "I have", nil, created, created).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Create(context.Background(), &models.ChatSession{
		ID: "c1", UserID: "u1", Title: "Headache", Preview: "I have", CreatedAt: created, UpdatedAt: created,
	}))

	mock.ExpectQuery(`SELECT .* FROM chats WHERE id = \$1`).WithArgs("c1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("c1", "u1", "Headache", "I have", nil, created, created))
	c, err := repo.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Headache", c.Title)
	assert.Nil(t, c.DeletedAt)

	mock.ExpectQuery(`SELECT .* FROM chats WHERE id = \$1`).WillReturnError(sql.ErrNoRows)
	_, err = repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM chats WHERE user_id = \$1 ORDER BY created_at DESC, id DESC`).WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("c2", "u1", "b", "", created, created.Add(time.Minute), created).
			AddRow("c1", "u1", "a", "", nil, created, created))

	got, err := repo.List(context.Background(), "u1", models.TrashAll)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.NotNil(t, got[0].DeletedAt)
	assert.Nil(t, got[1].DeletedAt)

	mock.ExpectQuery(`SELECT .* FROM chats`).WillReturnError(errors.New("boom"))
	_, err = repo.List(context.Background(), "u1", models.TrashActive)
	assert.ErrorContains(t, err, "failed to select chats")
}

func TestTrashStateAndSetDeletedAt(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT user_id, deleted_at FROM chats WHERE id = \$1`).WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "deleted_at"}).AddRow("u1", nil))
	st, err := repo.TrashState(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, st.Active())

	mock.ExpectExec(`UPDATE chats SET deleted_at = \$2, updated_at = \$3 WHERE id = \$1`).
		WithArgs("c1", created, created).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SetDeletedAt(context.Background(), "c1", &created, created))

	mock.ExpectExec(`UPDATE chats SET deleted_at`).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.SetDeletedAt(context.Background(), "nope", nil, created), common.ErrorNotFound)

	mock.ExpectExec(`UPDATE chats SET deleted_at`).WillReturnError(errors.New("boom"))
	assert.ErrorContains(t, repo.SetDeletedAt(context.Background(), "c1", nil, created), "db error: boom")
	require.NoError(t, mock.ExpectationsWereMet())
}
