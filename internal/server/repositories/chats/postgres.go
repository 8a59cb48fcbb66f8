package chats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/scanmed/internal/common"
	"github.com/dmitrijs2005/scanmed/internal/dbx"
	"github.com/dmitrijs2005/scanmed/internal/server/models"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/trashfilter"
)

const columns = `id, user_id, title, preview, deleted_at, created_at, updated_at`

// PostgresRepository implements chat session storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.ChatSession) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chats (`+columns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.UserID, c.Title, c.Preview, c.DeletedAt, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func scanSession(row interface{ Scan(...any) error }) (*models.ChatSession, error) {
	var (
		c       models.ChatSession
		deleted sql.NullTime
	)
	if err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.Preview, &deleted, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if deleted.Valid {
		c.DeletedAt = &deleted.Time
	}
	return &c, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.ChatSession, error) {
	c, err := scanSession(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM chats WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string, filter models.TrashFilter) ([]*models.ChatSession, error) {
	query := `SELECT ` + columns + ` FROM chats WHERE user_id = $1` + trashfilter.SQL(filter) +
		` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select chats: %w", err)
	}
	defer rows.Close()

	result := []*models.ChatSession{}
	for rows.Next() {
		c, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) TrashState(ctx context.Context, id string) (models.TrashState, error) {
	var (
		st      models.TrashState
		deleted sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, `SELECT user_id, deleted_at FROM chats WHERE id = $1`, id).
		Scan(&st.UserID, &deleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TrashState{}, common.ErrorNotFound
		}
		return models.TrashState{}, fmt.Errorf("db error: %w", err)
	}
	if deleted.Valid {
		st.DeletedAt = &deleted.Time
	}
	return st, nil
}

func (r *PostgresRepository) SetDeletedAt(ctx context.Context, id string, deletedAt *time.Time, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE chats SET deleted_at = $2, updated_at = $3 WHERE id = $1`, id, deletedAt, updatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
