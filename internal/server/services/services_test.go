package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/scanmed/internal/logging"
	"github.com/dmitrijs2005/scanmed/internal/server/models"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/chats"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/medications"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/readings"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/scans"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var (
	t0       = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	errStore = errors.New("connection reset")
)

func nopLogger() logging.Logger { return logging.NewZapLogger(zap.NewNop()) }

func observedLogger() (logging.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return logging.NewZapLogger(zap.New(core)), logs
}

// testManager is the in-memory manager with optional failing stores.
type testManager struct {
	*repomanager.InMemoryRepositoryManager
	scans       scans.Repository
	medications medications.Repository
	readings    readings.Repository
	chats       chats.Repository
	pingErr     error
}

func newTestManager() *testManager {
	return &testManager{InMemoryRepositoryManager: repomanager.NewMemoryRepositoryManager()}
}

func (m *testManager) Scans() scans.Repository {
	if m.scans != nil {
		return m.scans
	}
	return m.InMemoryRepositoryManager.Scans()
}

func (m *testManager) Medications() medications.Repository {
	if m.medications != nil {
		return m.medications
	}
	return m.InMemoryRepositoryManager.Medications()
}

func (m *testManager) Readings() readings.Repository {
	if m.readings != nil {
		return m.readings
	}
	return m.InMemoryRepositoryManager.Readings()
}

func (m *testManager) Chats() chats.Repository {
	if m.chats != nil {
		return m.chats
	}
	return m.InMemoryRepositoryManager.Chats()
}

func (m *testManager) Ping(ctx context.Context) error { return m.pingErr }

type failingScans struct{ scans.Repository }

func (failingScans) Get(context.Context, string) (*models.ScanRecord, error) { return nil, errStore }
func (failingScans) List(context.Context, string, models.TrashFilter) ([]*models.ScanRecord, error) {
	return nil, errStore
}
func (failingScans) TrashState(context.Context, string) (models.TrashState, error) {
	return models.TrashState{}, errStore
}
func (failingScans) Stats(context.Context) (*models.ScanStats, error) { return nil, errStore }

type failingMedications struct{ medications.Repository }

func (failingMedications) List(context.Context, string, models.TrashFilter) ([]*models.MedicationRecord, error) {
	return nil, errStore
}

type failingReadings struct{ readings.Repository }

func (failingReadings) List(context.Context, string) ([]*models.ReadingEntry, error) {
	return nil, errStore
}

type failingChats struct{ chats.Repository }

func (failingChats) List(context.Context, string, models.TrashFilter) ([]*models.ChatSession, error) {
	return nil, errStore
}

// writeFailingChats reads from the wrapped store but cannot write.
type writeFailingChats struct{ chats.Repository }

func (writeFailingChats) SetDeletedAt(context.Context, string, *time.Time, time.Time) error {
	return errStore
}

func newRecordService(m repomanager.RepositoryManager) *RecordService {
	s := NewRecordService(m, nopLogger())
	n := 0
	s.now = func() time.Time { return t0 }
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s
}

func ptr[T any](v T) *T { return &v }
