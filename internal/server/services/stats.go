package services

import (
	"context"

	"github.com/dmitrijs2005/scanmed/internal/logging"
	"github.com/dmitrijs2005/scanmed/internal/server/models"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/repomanager"
)

// AdminService serves platform-wide figures. Callers must check the admin
// role before using it.
type AdminService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewAdminService(m repomanager.RepositoryManager, logger logging.Logger) *AdminService {
	return &AdminService{repomanager: m, logger: logger.With("module", "admin")}
}

// ScanStats counts active scans and their users, with per-type averages.
func (s *AdminService) ScanStats(ctx context.Context) (*models.ScanStats, error) {
	st, err := s.repomanager.Scans().Stats(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	return st, nil
}

// Ping checks that the storage backend is reachable.
func (s *AdminService) Ping(ctx context.Context) error {
	if err := s.repomanager.Ping(ctx); err != nil {
		return storageError(err)
	}
	return nil
}
