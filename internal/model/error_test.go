package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError(t *testing.T) {
	wrapped := fmt.Errorf("lookup 12ab: %w", ErrInvalidFormat)

	var de *DomainError
	assert.True(t, errors.As(wrapped, &de))
	assert.Equal(t, ErrCodeInvalidBarcode, de.Code)
	assert.Equal(t, "Invalid barcode format. Must be 8-13 digits.", wrapped.Error()[len("lookup 12ab: "):])
	assert.ErrorIs(t, wrapped, ErrInvalidFormat)
	assert.NotErrorIs(t, wrapped, ErrProductNotFound)
}

func TestRiskLevel_Label(t *testing.T) {
	assert.Equal(t, "Safe", RiskLow.Label())
	assert.Equal(t, "Limit", RiskModerate.Label())
	assert.Equal(t, "Avoid", RiskHigh.Label())
	assert.Equal(t, "Unknown", RiskUnknown.Label())
}
