package models

import (
	"time"

	"github.com/dmitrijs2005/scanmed/internal/common"
)

// DefaultMedicationStatus is stored when a medication is created without one.
const DefaultMedicationStatus = "Active"

// MedicationRecord is one tracked medication.
type MedicationRecord struct {
	ID        string     `json:"id" bson:"_id"`
	UserID    string     `json:"userId" bson:"user_id"`
	Name      string     `json:"name" bson:"name"`
	Dosage    string     `json:"dosage" bson:"dosage"`
	Frequency string     `json:"frequency" bson:"frequency"`
	StartDate time.Time  `json:"startDate" bson:"start_date"`
	EndDate   *time.Time `json:"endDate" bson:"end_date"`
	Status    string     `json:"status" bson:"status"`
	Adherence int        `json:"adherence" bson:"adherence"`
	Notes     string     `json:"notes,omitempty" bson:"notes,omitempty"`
	DeletedAt *time.Time `json:"deletedAt" bson:"deleted_at"`
	CreatedAt time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updated_at"`
}

// MedicationInput is the client payload for adding a medication.
type MedicationInput struct {
	Name      string     `json:"name" validate:"required,max=200"`
	Dosage    string     `json:"dosage" validate:"required,max=100"`
	Frequency string     `json:"frequency" validate:"required,max=100"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Status    string     `json:"status" validate:"max=50"`
	Adherence *int       `json:"adherence" validate:"omitempty,gte=0,lte=100"`
	Notes     string     `json:"notes" validate:"max=2000"`
}

// NewMedication validates in and builds an active MedicationRecord owned by
// userID. StartDate defaults to now, Status to "Active", Adherence to 0.
func NewMedication(id, userID string, in MedicationInput, now time.Time) (*MedicationRecord, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	m := &MedicationRecord{
		ID:        id,
		UserID:    userID,
		Name:      in.Name,
		Dosage:    in.Dosage,
		Frequency: in.Frequency,
		StartDate: now,
		EndDate:   in.EndDate,
		Status:    in.Status,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.StartDate != nil {
		m.StartDate = *in.StartDate
	}
	if m.Status == "" {
		m.Status = DefaultMedicationStatus
	}
	if in.Adherence != nil {
		m.Adherence = *in.Adherence
	}

	if err := checkEndDate(m.StartDate, m.EndDate); err != nil {
		return nil, err
	}
	return m, nil
}

func checkEndDate(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return common.NewValidationError("endDate", "must not precede startDate")
	}
	return nil
}

// TrashState returns the ownership and soft-delete projection of m.
func (m *MedicationRecord) TrashState() TrashState {
	return TrashState{UserID: m.UserID, DeletedAt: m.DeletedAt}
}

// MedicationPatch is a partial update of a medication. Nil fields are left
// unchanged.
type MedicationPatch struct {
	Status    *string    `json:"status" validate:"omitempty,min=1,max=50"`
	Adherence *int       `json:"adherence" validate:"omitempty,gte=0,lte=100"`
	EndDate   *time.Time `json:"endDate"`
	Notes     *string    `json:"notes" validate:"omitempty,max=2000"`
}

// Empty reports whether p changes nothing.
func (p MedicationPatch) Empty() bool {
	return p.Status == nil && p.Adherence == nil && p.EndDate == nil && p.Notes == nil
}

// Apply validates p and applies it to m, stamping UpdatedAt.
// m is left untouched when p is rejected.
func (p MedicationPatch) Apply(m *MedicationRecord, now time.Time) error {
	if p.Empty() {
		return common.NewValidationError("", "nothing to update")
	}
	if err := Validate(p); err != nil {
		return err
	}
	end := m.EndDate
	if p.EndDate != nil {
		end = p.EndDate
	}
	if err := checkEndDate(m.StartDate, end); err != nil {
		return err
	}

	if p.Status != nil {
		m.Status = *p.Status
	}
	if p.Adherence != nil {
		m.Adherence = *p.Adherence
	}
	if p.Notes != nil {
		m.Notes = *p.Notes
	}
	m.EndDate = end
	m.UpdatedAt = now
	return nil
}
