// Package repomanager vends the record repositories for the configured
// storage backend and prepares that backend's schema.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/scanmed/internal/server/config"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/chats"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/medications"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/readings"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/scans"
)

type RepositoryManager interface {
	// RunMigrations brings the backend schema (tables or indexes) up to date.
	RunMigrations(ctx context.Context) error
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
	Close(ctx context.Context) error

	Scans() scans.Repository
	Medications() medications.Repository
	Readings() readings.Repository
	Chats() chats.Repository
}

// New opens the backend named by cfg.Storage.
func New(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		m, err := NewPostgresRepositoryManager(cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return m, nil
	case config.StorageMongo:
		m, err := NewMongoRepositoryManager(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return m, nil
	case config.StorageMemory:
		return NewMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}
