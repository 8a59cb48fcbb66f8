// Package views turns stored records into the display shapes used by the
// history screen: localized date and time strings and human labels.
package views

import (
	"time"

	"github.com/dmitrijs2005/scanmed/internal/server/models"
)

const (
	DateLayout = "Jan 2, 2006"
	TimeLayout = "15:04"
)

// ScanLabel returns the display name of a scan type.
func ScanLabel(t models.ScanType) string {
	switch t {
	case models.ScanEyes:
		return "Eye Scan"
	case models.ScanTeeth:
		return "Dental Scan"
	case models.ScanSkin:
		return "Skin Scan"
	}
	return "Scan"
}

// KindLabel returns the display name of a record kind.
func KindLabel(k models.Kind) string {
	switch k {
	case models.KindScan:
		return "Scans"
	case models.KindMedication:
		return "Medications"
	case models.KindReading:
		return "Reading"
	case models.KindChat:
		return "Chats"
	}
	return string(k)
}

type Scan struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	ScanType   models.ScanType   `json:"scanType"`
	Date       string            `json:"date"`
	Time       string            `json:"time"`
	Result     models.ScanResult `json:"result"`
	Status     models.ScanStatus `json:"status"`
	Notes      string            `json:"notes,omitempty"`
	Confidence float64           `json:"confidence"`
	ImageURL   *string           `json:"imageUrl"`
	Trashed    bool              `json:"trashed"`
}

type Medication struct {
	ID         string  `json:"id"`
	Medication string  `json:"medication"`
	Dosage     string  `json:"dosage"`
	Frequency  string  `json:"frequency"`
	StartDate  string  `json:"startDate"`
	EndDate    *string `json:"endDate"`
	Status     string  `json:"status"`
	Adherence  int     `json:"adherence"`
	Notes      string  `json:"notes,omitempty"`
	Trashed    bool    `json:"trashed"`
}

type Reading struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	DateRead string `json:"dateRead"`
	ReadTime string `json:"readTime"`
}

type Chat struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Preview string `json:"preview"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Trashed bool   `json:"trashed"`
}

// Formatter renders records in one display time zone.
type Formatter struct {
	loc *time.Location
}

// NewFormatter returns a Formatter for loc; nil means UTC.
func NewFormatter(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{loc: loc}
}

// LoadFormatter resolves an IANA zone name such as "Europe/Riga".
func LoadFormatter(zone string) (*Formatter, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, err
	}
	return NewFormatter(loc), nil
}

func (f *Formatter) Location() *time.Location { return f.loc }

func (f *Formatter) Date(t time.Time) string { return t.In(f.loc).Format(DateLayout) }
func (f *Formatter) Time(t time.Time) string { return t.In(f.loc).Format(TimeLayout) }

func (f *Formatter) Scan(s *models.ScanRecord) Scan {
	return Scan{
		ID:         s.ID,
		Type:       ScanLabel(s.ScanType),
		ScanType:   s.ScanType,
		Date:       f.Date(s.CreatedAt),
		Time:       f.Time(s.CreatedAt),
		Result:     s.Result,
		Status:     s.Status,
		Notes:      s.Notes,
		Confidence: s.Confidence,
		ImageURL:   s.ImageURL,
		Trashed:    s.DeletedAt != nil,
	}
}

func (f *Formatter) Medication(m *models.MedicationRecord) Medication {
	v := Medication{
		ID:         m.ID,
		Medication: m.Name,
		Dosage:     m.Dosage,
		Frequency:  m.Frequency,
		StartDate:  f.Date(m.StartDate),
		Status:     m.Status,
		Adherence:  m.Adherence,
		Notes:      m.Notes,
		Trashed:    m.DeletedAt != nil,
	}
	if v.Status == "" {
		v.Status = models.DefaultMedicationStatus
	}
	if m.EndDate != nil {
		end := f.Date(*m.EndDate)
		v.EndDate = &end
	}
	return v
}

func (f *Formatter) Reading(r *models.ReadingEntry) Reading {
	return Reading{
		ID:       r.ID,
		Title:    r.Title,
		Category: r.Category,
		DateRead: f.Date(r.DateRead),
		ReadTime: r.ReadTime,
	}
}

func (f *Formatter) Chat(c *models.ChatSession) Chat {
	return Chat{
		ID:      c.ID,
		Title:   c.Title,
		Preview: c.Preview,
		Date:    f.Date(c.CreatedAt),
		Time:    f.Time(c.CreatedAt),
		Trashed: c.DeletedAt != nil,
	}
}
