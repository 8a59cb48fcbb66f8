package models

import (
	"time"

	"github.com/dmitrijs2005/scanmed/internal/common"
)

// TrashFilter selects records by their soft-delete state when listing.
type TrashFilter string

const (
	// TrashActive lists records whose DeletedAt is nil. It is the default.
	TrashActive TrashFilter = "active"
	// TrashAll lists active and trashed records alike.
	TrashAll TrashFilter = "all"
	// TrashOnly lists trashed records only.
	TrashOnly TrashFilter = "trashed"
)

// Valid reports whether f is a known filter.
func (f TrashFilter) Valid() bool {
	switch f {
	case TrashActive, TrashAll, TrashOnly:
		return true
	}
	return false
}

// Match reports whether a record with the given deletedAt passes the filter.
func (f TrashFilter) Match(deletedAt *time.Time) bool {
	switch f {
	case TrashAll:
		return true
	case TrashOnly:
		return deletedAt != nil
	default:
		return deletedAt == nil
	}
}

// ParseTrashFilter resolves the list query parameters. An empty view falls
// back to includeTrashed, which maps to TrashAll when set.
func ParseTrashFilter(view string, includeTrashed bool) (TrashFilter, error) {
	if view == "" {
		if includeTrashed {
			return TrashAll, nil
		}
		return TrashActive, nil
	}
	f := TrashFilter(view)
	if !f.Valid() {
		return "", common.NewValidationError("view", "must be one of active, all, trashed")
	}
	return f, nil
}

// TrashState is the ownership and soft-delete projection of a record,
// all that delete and restore need to read.
type TrashState struct {
	UserID    string
	DeletedAt *time.Time
}

// Active reports whether the record is not in the trash.
func (s TrashState) Active() bool {
	return s.DeletedAt == nil
}
