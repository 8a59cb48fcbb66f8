package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_IsSentinel(t *testing.T) {
	err := NewValidationError("dosage", "is required")

	assert.True(t, errors.Is(err, ErrorValidation))
	assert.False(t, errors.Is(err, ErrorNotFound))
	assert.Equal(t, "validation error: dosage is required", err.Error())
}

func TestValidationError_WrappedStillMatches(t *testing.T) {
	err := fmt.Errorf("create scan: %w", NewValidationError("scanType", "must be one of [eyes teeth skin]"))

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "scanType", ve.Field)
	assert.True(t, errors.Is(err, ErrorValidation))
}

func TestValidationError_NoField(t *testing.T) {
	err := &ValidationError{Reason: "empty payload"}
	assert.Equal(t, "validation error: empty payload", err.Error())
}
