package scans

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

const columns = `id, user_id, scan_type, result, confidence, status, notes, image_url, deleted_at, created_at, updated_at`

// PostgresRepository implements scan storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.ScanRecord) error {
	query := `INSERT INTO scans (` + columns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.UserID, string(s.ScanType), string(s.Result), s.Confidence, string(s.Status),
		s.Notes, s.ImageURL, s.DeletedAt, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.ScanRecord, error) {
	var (
		s       models.ScanRecord
		image   sql.NullString
		deleted sql.NullTime
	)
	if err := row.Scan(&s.ID, &s.UserID, &s.ScanType, &s.Result, &s.Confidence, &s.Status,
		&s.Notes, &image, &deleted, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if image.Valid {
		s.ImageURL = &image.String
	}
	if deleted.Valid {
		s.DeletedAt = &deleted.Time
	}
	return &s, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.ScanRecord, error) {
	query := `SELECT ` + columns + ` FROM scans WHERE id = $1`

	s, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string, filter models.TrashFilter) ([]*models.ScanRecord, error) {
	query := `SELECT ` + columns + ` FROM scans WHERE user_id = $1` + trashfilter.SQL(filter) +
		` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select scans: %w", err)
	}
	defer rows.Close()

	result := []*models.ScanRecord{}
	for rows.Next() {
		s, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
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
	err := r.db.QueryRowContext(ctx, `SELECT user_id, deleted_at FROM scans WHERE id = $1`, id).
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
		`UPDATE scans SET deleted_at = $2, updated_at = $3 WHERE id = $1`, id, deletedAt, updatedAt)
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

// Stats reads the per-type summary and the user count in one read-only
// transaction so both observe the same snapshot. When the repository is
// already bound to a transaction it runs inside that one.
func (r *PostgresRepository) Stats(ctx context.Context) (*models.ScanStats, error) {
	var st *models.ScanStats

	run := func(ctx context.Context, tx dbx.DBTX) error {
		rows, err := tx.QueryContext(ctx, `SELECT scan_type, count(*), COALESCE(avg(confidence), 0)
			FROM scans WHERE deleted_at IS NULL GROUP BY scan_type`)
		if err != nil {
			return err
		}
		defer rows.Close()

		var byType []models.ScanTypeStats
		for rows.Next() {
			var s models.ScanTypeStats
			if err := rows.Scan(&s.ScanType, &s.Count, &s.AverageConfidence); err != nil {
				return err
			}
			byType = append(byType, s)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		var users int64
		if err := tx.QueryRowContext(ctx,
			`SELECT count(DISTINCT user_id) FROM scans WHERE deleted_at IS NULL`).Scan(&users); err != nil {
			return err
		}

		st = models.NewScanStats(users, byType)
		return nil
	}

	var err error
	if db, ok := r.db.(*sql.DB); ok {
		err = dbx.WithTx(ctx, db, dbx.ReadOnly, run)
	} else {
		err = run(ctx, r.db)
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return st, nil
}
