package repomanager

import (
	"context"

	"github.com/dmitrijs2005/scanmed/internal/server/repositories/chats"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/medications"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/readings"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/scans"
)

// InMemoryRepositoryManager keeps all records in process memory. Data is
// lost on exit; it serves local runs and tests.
type InMemoryRepositoryManager struct {
	scans       *scans.MemoryRepository
	medications *medications.MemoryRepository
	readings    *readings.MemoryRepository
	chats       *chats.MemoryRepository
}

func NewMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		scans:       scans.NewMemoryRepository(),
		medications: medications.NewMemoryRepository(),
		readings:    readings.NewMemoryRepository(),
		chats:       chats.NewMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error { return nil }
func (m *InMemoryRepositoryManager) Ping(ctx context.Context) error          { return nil }
func (m *InMemoryRepositoryManager) Close(ctx context.Context) error         { return nil }

func (m *InMemoryRepositoryManager) Scans() scans.Repository             { return m.scans }
func (m *InMemoryRepositoryManager) Medications() medications.Repository { return m.medications }
func (m *InMemoryRepositoryManager) Readings() readings.Repository       { return m.readings }
func (m *InMemoryRepositoryManager) Chats() chats.Repository             { return m.chats }
