package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/scanmed/internal/common"
	"github.com/dmitrijs2005/scanmed/internal/server/models"
	"github.com/dmitrijs2005/scanmed/internal/server/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHistory(t *testing.T, s *RecordService, userID string) {
	t.Helper()
	ctx := context.Background()
	_, err := s.CreateScan(ctx, userID, models.ScanInput{ScanType: models.ScanTeeth, Result: models.ResultNeedsAttention, Confidence: ptr(64.0)})
	require.NoError(t, err)
	_, err = s.CreateMedication(ctx, userID, models.MedicationInput{Name: "Ibuprofen", Dosage: "200mg", Frequency: "as needed"})
	require.NoError(t, err)
	_, err = s.CreateReading(ctx, userID, models.ReadingInput{Title: "Dental care", Category: "Oral health", ReadTime: "4 min read"})
	require.NoError(t, err)
	_, err = s.CreateChat(ctx, userID, models.ChatInput{Title: "Toothache", Preview: "Upper left molar"})
	require.NoError(t, err)
}

func TestHistoryService_FetchHistory(t *testing.T) {
	m := newTestManager()
	records := newRecordService(m)
	seedHistory(t, records, "u1")
	seedHistory(t, records, "u2")

	h := NewHistoryServiceWithRecords(records, views.NewFormatter(time.UTC), nopLogger())
	got, err := h.FetchHistory(context.Background(), "u1", models.TrashActive)
	require.NoError(t, err)
	assert.Zero(t, got.Failed())

	scans := got.Scans.Collect()
	require.Len(t, scans, 1)
	assert.Equal(t, "Dental Scan", scans[0].Type)
	assert.Equal(t, "Mar 14, 2025", scans[0].Date)
	assert.Equal(t, "09:30", scans[0].Time)
	assert.Equal(t, models.StatusDanger, scans[0].Status)

	meds := got.Medications.Collect()
	require.Len(t, meds, 1)
	assert.Equal(t, "Active", meds[0].Status)
	assert.Nil(t, meds[0].EndDate)

	assert.Equal(t, 1, got.Readings.Len())
	assert.Equal(t, 1, got.Chats.Len())
}

func TestHistoryService_TrashViews(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()
	records := newRecordService(m)
	seedHistory(t, records, "u1")

	chats, err := records.ListChats(ctx, "u1", models.TrashActive)
	require.NoError(t, err)
	require.NoError(t, records.SoftDelete(ctx, models.KindChat, chats[0].ID, "u1"))

	h := NewHistoryServiceWithRecords(records, views.NewFormatter(nil), nopLogger())

	active, err := h.FetchHistory(ctx, "u1", models.TrashActive)
	require.NoError(t, err)
	assert.Equal(t, 0, active.Chats.Len())

	trashed, err := h.FetchHistory(ctx, "u1", models.TrashOnly)
	require.NoError(t, err)
	assert.Equal(t, 0, trashed.Scans.Len())
	assert.Equal(t, 0, trashed.Readings.Len())
	require.Equal(t, 1, trashed.Chats.Len())
	assert.True(t, trashed.Chats.Collect()[0].Trashed)

	all, err := h.FetchHistory(ctx, "u1", models.TrashAll)
	require.NoError(t, err)
	assert.Equal(t, 1, all.Chats.Len())
	assert.Equal(t, 1, all.Readings.Len())

	_, err = h.FetchHistory(ctx, "u1", models.TrashFilter("deleted"))
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestHistoryService_PartialFailure(t *testing.T) {
	m := newTestManager()
	records := newRecordService(m)
	seedHistory(t, records, "u1")
	m.medications = failingMedications{}

	logger, logs := observedLogger()
	h := NewHistoryServiceWithRecords(records, views.NewFormatter(nil), logger)

	got, err := h.FetchHistory(context.Background(), "u1", models.TrashActive)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Failed())
	require.True(t, got.Medications.Failed())
	assert.ErrorIs(t, got.Medications.Err, common.ErrorInternal)
	assert.NotContains(t, got.Medications.Err.Error(), errStore.Error(), "storage detail stays in the log")
	assert.Equal(t, 1, got.Scans.Len())
	assert.Equal(t, 1, got.Readings.Len())
	assert.Equal(t, 1, got.Chats.Len())

	warns := logs.FilterMessage("history section unavailable").All()
	require.Len(t, warns, 1)
	assert.Equal(t, "medication", warns[0].ContextMap()["kind"])

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	var body map[string]struct {
		Items []json.RawMessage `json:"items"`
		Error string            `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.NotEmpty(t, body["medications"].Error)
	assert.NotNil(t, body["medications"].Items)
	assert.Empty(t, body["scans"].Error)
	assert.Len(t, body["readingHistory"].Items, 1)
}

func TestHistoryService_OneSectionLeft(t *testing.T) {
	m := newTestManager()
	records := newRecordService(m)
	seedHistory(t, records, "u1")
	m.scans = failingScans{}
	m.medications = failingMedications{}
	m.readings = failingReadings{}

	logger, logs := observedLogger()
	h := NewHistoryServiceWithRecords(records, views.NewFormatter(nil), logger)

	got, err := h.FetchHistory(context.Background(), "u1", models.TrashActive)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Failed())
	assert.False(t, got.Chats.Failed())
	assert.Equal(t, 1, got.Chats.Len())
	assert.Len(t, logs.FilterMessage("history section unavailable").All(), 3)
}

func TestHistoryService_AllSectionsFail(t *testing.T) {
	m := newTestManager()
	m.scans = failingScans{}
	m.medications = failingMedications{}
	m.readings = failingReadings{}
	m.chats = failingChats{}

	h := NewHistoryService(m, views.NewFormatter(nil), nopLogger())
	_, err := h.FetchHistory(context.Background(), "u1", models.TrashActive)
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestHistoryService_TrashOnlyWithBrokenReadings(t *testing.T) {
	m := newTestManager()
	m.readings = failingReadings{}

	h := NewHistoryService(m, views.NewFormatter(nil), nopLogger())
	got, err := h.FetchHistory(context.Background(), "u1", models.TrashOnly)
	require.NoError(t, err)
	assert.False(t, got.Readings.Failed(), "trash view never reads the reading log")
}
