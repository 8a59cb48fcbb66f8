package medications

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

const columns = `id, user_id, name, dosage, frequency, start_date, end_date, status, adherence, notes, deleted_at, created_at, updated_at`

// PostgresRepository implements medication storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, m *models.MedicationRecord) error {
	query := `INSERT INTO medications (` + columns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.UserID, m.Name, m.Dosage, m.Frequency, m.StartDate, m.EndDate,
		m.Status, m.Adherence, m.Notes, m.DeletedAt, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func scanRecord(row interface{ Scan(...any) error }) (*models.MedicationRecord, error) {
	var (
		m       models.MedicationRecord
		end     sql.NullTime
		deleted sql.NullTime
	)
	if err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.Dosage, &m.Frequency, &m.StartDate, &end,
		&m.Status, &m.Adherence, &m.Notes, &deleted, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	if end.Valid {
		m.EndDate = &end.Time
	}
	if deleted.Valid {
		m.DeletedAt = &deleted.Time
	}
	return &m, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.MedicationRecord, error) {
	m, err := scanRecord(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM medications WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string, filter models.TrashFilter) ([]*models.MedicationRecord, error) {
	query := `SELECT ` + columns + ` FROM medications WHERE user_id = $1` + trashfilter.SQL(filter) +
		` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select medications: %w", err)
	}
	defer rows.Close()

	result := []*models.MedicationRecord{}
	for rows.Next() {
		m, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, m *models.MedicationRecord) error {
	res, err := r.db.ExecContext(ctx, `UPDATE medications
		SET status = $2, adherence = $3, end_date = $4, notes = $5, updated_at = $6
		WHERE id = $1`,
		m.ID, m.Status, m.Adherence, m.EndDate, m.Notes, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func (r *PostgresRepository) TrashState(ctx context.Context, id string) (models.TrashState, error) {
	var (
		st      models.TrashState
		deleted sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, `SELECT user_id, deleted_at FROM medications WHERE id = $1`, id).
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
		`UPDATE medications SET deleted_at = $2, updated_at = $3 WHERE id = $1`, id, deletedAt, updatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
