package readings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/scanmed/internal/common"
	"github.com/dmitrijs2005/scanmed/internal/dbx"
	"github.com/dmitrijs2005/scanmed/internal/server/models"
)

const columns = `id, user_id, title, category, read_time, article_id, date_read, created_at`

// PostgresRepository implements reading history storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.ReadingEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reading_history (`+columns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.UserID, e.Title, e.Category, e.ReadTime, e.ArticleID, e.DateRead, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func scanEntry(row interface{ Scan(...any) error }) (*models.ReadingEntry, error) {
	var e models.ReadingEntry
	if err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Category, &e.ReadTime, &e.ArticleID,
		&e.DateRead, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.ReadingEntry, error) {
	e, err := scanEntry(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM reading_history WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.ReadingEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+columns+` FROM reading_history WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select reading history: %w", err)
	}
	defer rows.Close()

	result := []*models.ReadingEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
