// Package models defines the ScanMed health records, their write-time
// validation and the trash (soft-delete) projection shared by every store.
package models

import (
	"fmt"

	"github.com/dmitrijs2005/scanmed/internal/common"
)

// Kind names one of the four record collections.
type Kind string

const (
	KindScan       Kind = "scan"
	KindMedication Kind = "medication"
	KindReading    Kind = "reading"
	KindChat       Kind = "chat"
)

// AllKinds lists every Kind in history order.
var AllKinds = []Kind{KindScan, KindMedication, KindReading, KindChat}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindScan, KindMedication, KindReading, KindChat:
		return true
	}
	return false
}

// Trashable reports whether records of kind k support soft delete and restore.
// Reading history entries do not.
func (k Kind) Trashable() bool {
	switch k {
	case KindScan, KindMedication, KindChat:
		return true
	}
	return false
}

// Collection returns the REST collection segment for k.
func (k Kind) Collection() string {
	switch k {
	case KindScan:
		return "health-scans"
	case KindMedication:
		return "medications"
	case KindReading:
		return "reading-history"
	case KindChat:
		return "chats"
	}
	return ""
}

// ParseKind accepts a singular kind name or a REST collection name.
// Anything else wraps common.ErrorUnsupportedOperation.
func ParseKind(s string) (Kind, error) {
	for _, k := range AllKinds {
		if s == string(k) || s == k.Collection() {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown record kind %q", common.ErrorUnsupportedOperation, s)
}
