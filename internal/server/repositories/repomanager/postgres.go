package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/scanmed/internal/server/migrations"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/chats"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/medications"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/readings"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/scans"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories sharing one
// connection pool and runs the embedded goose migrations.
type PostgresRepositoryManager struct {
	db *sql.DB
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// sqlOpen is a seam for testing sql.Open.
var sqlOpen = sql.Open

// NewPostgresRepositoryManager opens a pgx connection pool for dsn. The
// connection itself is established lazily.
func NewPostgresRepositoryManager(dsn string) (*PostgresRepositoryManager, error) {
	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, err
	}
	return NewPostgresRepositoryManagerWithDB(db), nil
}

// NewPostgresRepositoryManagerWithDB wraps an already opened pool.
func NewPostgresRepositoryManagerWithDB(db *sql.DB) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{db: db}
}

// DB exposes the pool, e.g. for running several repository calls in
// one dbx.WithTx.
func (m *PostgresRepositoryManager) DB() *sql.DB {
	return m.db
}

// RunMigrations sets up goose with the embedded migrations and runs them.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.db, "."); err != nil {
		return err
	}
	return nil
}

func (m *PostgresRepositoryManager) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *PostgresRepositoryManager) Close(ctx context.Context) error {
	return m.db.Close()
}

func (m *PostgresRepositoryManager) Scans() scans.Repository {
	return scans.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) Medications() medications.Repository {
	return medications.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) Readings() readings.Repository {
	return readings.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) Chats() chats.Repository {
	return chats.NewPostgresRepository(m.db)
}
