// Package services contains the ScanMed business logic: record ownership,
// soft delete and restore, history aggregation and export, scan images and
// platform statistics.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/scanmed/internal/common"
	"github.com/dmitrijs2005/scanmed/internal/logging"
	"github.com/dmitrijs2005/scanmed/internal/server/models"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// storageError passes the service-level sentinels through and marks anything
// else as common.ErrorInternal, keeping the cause in the chain.
func storageError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrorForbidden),
		errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrorUnsupportedOperation),
		errors.Is(err, common.ErrorInternal):
		return err
	}
	return fmt.Errorf("%w: %w", common.ErrorInternal, err)
}

// trashStore is the part of a repository that soft delete and restore use.
type trashStore interface {
	TrashState(ctx context.Context, id string) (models.TrashState, error)
	SetDeletedAt(ctx context.Context, id string, deletedAt *time.Time, updatedAt time.Time) error
}

// RecordService creates, lists, trashes and restores a user's records.
// Every operation on an existing record checks that the requester owns it.
type RecordService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
	newID       func() string
}

func NewRecordService(m repomanager.RepositoryManager, logger logging.Logger) *RecordService {
	return &RecordService{
		repomanager: m,
		logger:      logger.With("module", "records"),
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
}

func (s *RecordService) trashStore(kind models.Kind) (trashStore, error) {
	switch kind {
	case models.KindScan:
		return s.repomanager.Scans(), nil
	case models.KindMedication:
		return s.repomanager.Medications(), nil
	case models.KindChat:
		return s.repomanager.Chats(), nil
	case models.KindReading:
		return nil, fmt.Errorf("%w: %s entries cannot be trashed", common.ErrorUnsupportedOperation, kind)
	default:
		return nil, fmt.Errorf("%w: unknown record kind %q", common.ErrorUnsupportedOperation, kind)
	}
}

// SoftDelete moves the record to the trash by stamping deletedAt. Deleting a
// record that is already trashed succeeds without changing it.
func (s *RecordService) SoftDelete(ctx context.Context, kind models.Kind, id, requesterID string) error {
	return s.setTrashed(ctx, kind, id, requesterID, true)
}

// Restore takes the record out of the trash. Restoring an active record
// succeeds without changing it.
func (s *RecordService) Restore(ctx context.Context, kind models.Kind, id, requesterID string) error {
	return s.setTrashed(ctx, kind, id, requesterID, false)
}

func (s *RecordService) setTrashed(ctx context.Context, kind models.Kind, id, requesterID string, trashed bool) error {
	store, err := s.trashStore(kind)
	if err != nil {
		return err
	}

	st, err := store.TrashState(ctx, id)
	if err != nil {
		return storageError(err)
	}
	if st.UserID != requesterID {
		return common.ErrorForbidden
	}
	if st.Active() != trashed {
		// already in the requested state
		return nil
	}

	now := s.now()
	var deletedAt *time.Time
	if trashed {
		deletedAt = &now
	}
	if err := store.SetDeletedAt(ctx, id, deletedAt, now); err != nil {
		return storageError(err)
	}

	s.logger.Info(ctx, "record trash state changed", "kind", string(kind), "id", id, "trashed", trashed)
	return nil
}

func checkOwner(ownerID, requesterID string) error {
	if ownerID != requesterID {
		return common.ErrorForbidden
	}
	return nil
}

// scanImagePrefix is the storage key prefix for userID's scan images.
func scanImagePrefix(userID string) string {
	return "scans/" + userID + "/"
}

// checkImageRef accepts an absolute http(s) URL or a storage key under the
// requester's own prefix.
func checkImageRef(userID string, ref *string) error {
	if ref == nil || *ref == "" {
		return nil
	}
	v := *ref
	if strings.HasPrefix(v, "https://") || strings.HasPrefix(v, "http://") {
		return nil
	}
	if !strings.HasPrefix(v, scanImagePrefix(userID)) || strings.Contains(v, "..") {
		return common.NewValidationError("imageUrl", "must be an uploaded image key or an http(s) URL")
	}
	return nil
}

func (s *RecordService) CreateScan(ctx context.Context, userID string, in models.ScanInput) (*models.ScanRecord, error) {
	scan, err := models.NewScan(s.newID(), userID, in, s.now())
	if err != nil {
		return nil, err
	}
	if err := checkImageRef(userID, scan.ImageURL); err != nil {
		return nil, err
	}
	if err := s.repomanager.Scans().Create(ctx, scan); err != nil {
		return nil, storageError(err)
	}
	return scan, nil
}

func (s *RecordService) GetScan(ctx context.Context, userID, id string) (*models.ScanRecord, error) {
	scan, err := s.repomanager.Scans().Get(ctx, id)
	if err != nil {
		return nil, storageError(err)
	}
	if err := checkOwner(scan.UserID, userID); err != nil {
		return nil, err
	}
	return scan, nil
}

func (s *RecordService) ListScans(ctx context.Context, userID string, filter models.TrashFilter) ([]*models.ScanRecord, error) {
	scans, err := s.repomanager.Scans().List(ctx, userID, filter)
	return scans, storageError(err)
}

func (s *RecordService) CreateMedication(ctx context.Context, userID string, in models.MedicationInput) (*models.MedicationRecord, error) {
	m, err := models.NewMedication(s.newID(), userID, in, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repomanager.Medications().Create(ctx, m); err != nil {
		return nil, storageError(err)
	}
	return m, nil
}

func (s *RecordService) GetMedication(ctx context.Context, userID, id string) (*models.MedicationRecord, error) {
	m, err := s.repomanager.Medications().Get(ctx, id)
	if err != nil {
		return nil, storageError(err)
	}
	if err := checkOwner(m.UserID, userID); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *RecordService) ListMedications(ctx context.Context, userID string, filter models.TrashFilter) ([]*models.MedicationRecord, error) {
	ms, err := s.repomanager.Medications().List(ctx, userID, filter)
	return ms, storageError(err)
}

// UpdateMedication applies patch to an owned medication. Trashed medications
// must be restored before they can be edited.
func (s *RecordService) UpdateMedication(ctx context.Context, userID, id string, patch models.MedicationPatch) (*models.MedicationRecord, error) {
	m, err := s.GetMedication(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if m.DeletedAt != nil {
		return nil, fmt.Errorf("%w: medication is in the trash", common.ErrorNotFound)
	}
	if err := patch.Apply(m, s.now()); err != nil {
		return nil, err
	}
	if err := s.repomanager.Medications().Update(ctx, m); err != nil {
		return nil, storageError(err)
	}
	return m, nil
}

func (s *RecordService) CreateReading(ctx context.Context, userID string, in models.ReadingInput) (*models.ReadingEntry, error) {
	e, err := models.NewReading(s.newID(), userID, in, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repomanager.Readings().Create(ctx, e); err != nil {
		return nil, storageError(err)
	}
	return e, nil
}

// ListReadings returns the reading log. Entries are never trashed, so the
// trash-only view is always empty.
func (s *RecordService) ListReadings(ctx context.Context, userID string, filter models.TrashFilter) ([]*models.ReadingEntry, error) {
	if filter == models.TrashOnly {
		return []*models.ReadingEntry{}, nil
	}
	es, err := s.repomanager.Readings().List(ctx, userID)
	return es, storageError(err)
}

func (s *RecordService) CreateChat(ctx context.Context, userID string, in models.ChatInput) (*models.ChatSession, error) {
	c, err := models.NewChat(s.newID(), userID, in, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repomanager.Chats().Create(ctx, c); err != nil {
		return nil, storageError(err)
	}
	return c, nil
}

func (s *RecordService) ListChats(ctx context.Context, userID string, filter models.TrashFilter) ([]*models.ChatSession, error) {
	cs, err := s.repomanager.Chats().List(ctx, userID, filter)
	return cs, storageError(err)
}
