package models

import "time"

type ScanType string

const (
	ScanEyes  ScanType = "eyes"
	ScanTeeth ScanType = "teeth"
	ScanSkin  ScanType = "skin"
)

// AllScanTypes lists every ScanType.
var AllScanTypes = []ScanType{ScanEyes, ScanTeeth, ScanSkin}

func (t ScanType) Valid() bool {
	switch t {
	case ScanEyes, ScanTeeth, ScanSkin:
		return true
	}
	return false
}

type ScanResult string

const (
	ResultHealthy        ScanResult = "Healthy"
	ResultMinorIssues    ScanResult = "Minor Issues"
	ResultNeedsAttention ScanResult = "Needs Attention"
)

var AllScanResults = []ScanResult{ResultHealthy, ResultMinorIssues, ResultNeedsAttention}

func (r ScanResult) Valid() bool {
	switch r {
	case ResultHealthy, ResultMinorIssues, ResultNeedsAttention:
		return true
	}
	return false
}

// Status returns the card status shown for r when the client sends none.
func (r ScanResult) Status() ScanStatus {
	switch r {
	case ResultMinorIssues:
		return StatusWarning
	case ResultNeedsAttention:
		return StatusDanger
	default:
		return StatusSuccess
	}
}

type ScanStatus string

const (
	StatusSuccess ScanStatus = "success"
	StatusWarning ScanStatus = "warning"
	StatusDanger  ScanStatus = "danger"
)

var AllScanStatuses = []ScanStatus{StatusSuccess, StatusWarning, StatusDanger}

func (s ScanStatus) Valid() bool {
	switch s {
	case StatusSuccess, StatusWarning, StatusDanger:
		return true
	}
	return false
}

// ScanRecord is one stored body scan.
type ScanRecord struct {
	ID         string     `json:"id" bson:"_id"`
	UserID     string     `json:"userId" bson:"user_id"`
	ScanType   ScanType   `json:"scanType" bson:"scan_type"`
	Result     ScanResult `json:"result" bson:"result"`
	Confidence float64    `json:"confidence" bson:"confidence"`
	Status     ScanStatus `json:"status" bson:"status"`
	Notes      string     `json:"notes,omitempty" bson:"notes,omitempty"`
	// ImageURL is an object storage key or an external URL; nil when no image.
	ImageURL  *string    `json:"imageUrl" bson:"image_url"`
	DeletedAt *time.Time `json:"deletedAt" bson:"deleted_at"`
	CreatedAt time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updated_at"`
}

// ScanInput is the client payload for creating a scan.
type ScanInput struct {
	ScanType   ScanType   `json:"scanType" validate:"required,enum"`
	Result     ScanResult `json:"result" validate:"required,enum"`
	Confidence *float64   `json:"confidence" validate:"required,gte=0,lte=100"`
	Status     ScanStatus `json:"status" validate:"omitempty,enum"`
	Notes      string     `json:"notes" validate:"max=2000"`
	ImageURL   *string    `json:"imageUrl" validate:"omitempty,max=1024"`
}

// NewScan validates in and builds an active ScanRecord owned by userID.
func NewScan(id, userID string, in ScanInput, now time.Time) (*ScanRecord, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = in.Result.Status()
	}

	var image *string
	if in.ImageURL != nil && *in.ImageURL != "" {
		image = in.ImageURL
	}

	return &ScanRecord{
		ID:         id,
		UserID:     userID,
		ScanType:   in.ScanType,
		Result:     in.Result,
		Confidence: *in.Confidence,
		Status:     status,
		Notes:      in.Notes,
		ImageURL:   image,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// TrashState returns the ownership and soft-delete projection of s.
func (s *ScanRecord) TrashState() TrashState {
	return TrashState{UserID: s.UserID, DeletedAt: s.DeletedAt}
}

// ScanTypeStats aggregates active scans of one type across all users.
type ScanTypeStats struct {
	ScanType          ScanType `json:"scanType" bson:"_id"`
	Count             int64    `json:"count" bson:"count"`
	AverageConfidence float64  `json:"averageConfidence" bson:"avg_confidence"`
}

// ScanStats is the platform-wide scan summary shown to administrators.
type ScanStats struct {
	Users  int64           `json:"users"`
	Total  int64           `json:"total"`
	ByType []ScanTypeStats `json:"byType"`
}

// NewScanStats orders byType by AllScanTypes, adds zero rows for types with
// no scans, drops unknown types and fills in Total.
func NewScanStats(users int64, byType []ScanTypeStats) *ScanStats {
	found := make(map[ScanType]ScanTypeStats, len(byType))
	for _, s := range byType {
		found[s.ScanType] = s
	}

	st := &ScanStats{Users: users, ByType: make([]ScanTypeStats, 0, len(AllScanTypes))}
	for _, t := range AllScanTypes {
		s, ok := found[t]
		if !ok {
			s = ScanTypeStats{ScanType: t}
		}
		st.Total += s.Count
		st.ByType = append(st.ByType, s)
	}
	return st
}
