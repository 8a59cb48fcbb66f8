package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/scanmed/internal/common"
	"github.com/dmitrijs2005/scanmed/internal/logging"
	"github.com/dmitrijs2005/scanmed/internal/server/models"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/scanmed/internal/server/views"
	"golang.org/x/sync/errgroup"
)

type (
	ScanSection       = views.Section[*models.ScanRecord, views.Scan]
	MedicationSection = views.Section[*models.MedicationRecord, views.Medication]
	ReadingSection    = views.Section[*models.ReadingEntry, views.Reading]
	ChatSection       = views.Section[*models.ChatSession, views.Chat]
)

// History is a user's records of every kind, each kind loaded independently.
type History struct {
	Scans       ScanSection       `json:"scans"`
	Medications MedicationSection `json:"medications"`
	Readings    ReadingSection    `json:"readingHistory"`
	Chats       ChatSection       `json:"chats"`
}

// Failed reports how many sections could not be loaded.
func (h *History) Failed() int {
	n := 0
	for _, failed := range []bool{h.Scans.Failed(), h.Medications.Failed(), h.Readings.Failed(), h.Chats.Failed()} {
		if failed {
			n++
		}
	}
	return n
}

type HistoryService struct {
	records   *RecordService
	formatter *views.Formatter
	logger    logging.Logger
}

func NewHistoryService(m repomanager.RepositoryManager, formatter *views.Formatter, logger logging.Logger) *HistoryService {
	return NewHistoryServiceWithRecords(NewRecordService(m, logger), formatter, logger)
}

func NewHistoryServiceWithRecords(records *RecordService, formatter *views.Formatter, logger logging.Logger) *HistoryService {
	return &HistoryService{records: records, formatter: formatter, logger: logger.With("module", "history")}
}

func (s *HistoryService) Formatter() *views.Formatter { return s.formatter }

func (s *HistoryService) sectionError(ctx context.Context, kind models.Kind, err error) error {
	s.logger.Warn(ctx, "history section unavailable", "kind", string(kind), "error", err)
	return fmt.Errorf("failed to load %s: %w", views.KindLabel(kind), common.ErrorInternal)
}

// FetchHistory loads all four record kinds concurrently. A kind that fails to
// load is reported in its own section while the others are still returned;
// the call itself fails only when nothing could be loaded.
func (s *HistoryService) FetchHistory(ctx context.Context, userID string, filter models.TrashFilter) (*History, error) {
	if !filter.Valid() {
		return nil, common.NewValidationError("view", "has unsupported value")
	}

	h := &History{}
	// no shared context: a failed section does not cancel the others
	var g errgroup.Group

	g.Go(func() error {
		recs, err := s.records.ListScans(ctx, userID, filter)
		if err != nil {
			err = s.sectionError(ctx, models.KindScan, err)
			h.Scans = views.FailedSection[*models.ScanRecord, views.Scan](err)
			return err
		}
		h.Scans = views.NewSection(recs, s.formatter.Scan)
		return nil
	})
	g.Go(func() error {
		recs, err := s.records.ListMedications(ctx, userID, filter)
		if err != nil {
			err = s.sectionError(ctx, models.KindMedication, err)
			h.Medications = views.FailedSection[*models.MedicationRecord, views.Medication](err)
			return err
		}
		h.Medications = views.NewSection(recs, s.formatter.Medication)
		return nil
	})
	g.Go(func() error {
		recs, err := s.records.ListReadings(ctx, userID, filter)
		if err != nil {
			err = s.sectionError(ctx, models.KindReading, err)
			h.Readings = views.FailedSection[*models.ReadingEntry, views.Reading](err)
			return err
		}
		h.Readings = views.NewSection(recs, s.formatter.Reading)
		return nil
	})
	g.Go(func() error {
		recs, err := s.records.ListChats(ctx, userID, filter)
		if err != nil {
			err = s.sectionError(ctx, models.KindChat, err)
			h.Chats = views.FailedSection[*models.ChatSession, views.Chat](err)
			return err
		}
		h.Chats = views.NewSection(recs, s.formatter.Chat)
		return nil
	})
	if err := g.Wait(); err != nil && h.Failed() == len(models.AllKinds) {
		return nil, fmt.Errorf("%w: history unavailable", common.ErrorInternal)
	}
	return h, nil
}
