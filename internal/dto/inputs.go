package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// NumericInput accepts either a JSON number or a string holding a number.
// Parsing is deferred so that a malformed value surfaces as a validation error
// naming the field instead of a generic decode failure.
type NumericInput string

// UnmarshalJSON keeps the raw text of the value; null becomes empty.
func (n *NumericInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericInput(strings.TrimSpace(s))
		return nil
	}
	*n = NumericInput(data)
	return nil
}

// Decimal parses the value as a decimal number.
func (n NumericInput) Decimal(field string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(string(n))
	if raw == "" {
		return decimal.Zero, apperrors.NewValidationFailedError(field + " is required")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, apperrors.NewValidationFailedError(field + " must be a valid number")
	}
	return d, nil
}

var (
	minInt32 = decimal.NewFromInt(math.MinInt32)
	maxInt32 = decimal.NewFromInt(math.MaxInt32)
)

// Int parses the value as a whole number within the 32-bit range of an INTEGER column.
// "90" and "90.0" are accepted, "90.5" is not.
func (n NumericInput) Int(field string) (int, error) {
	d, err := n.Decimal(field)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, apperrors.NewValidationFailedError(field + " must be a whole number")
	}
	if d.LessThan(minInt32) || d.GreaterThan(maxInt32) {
		return 0, apperrors.NewValidationFailedError(field + " is out of range")
	}
	return int(d.IntPart()), nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// DateInput accepts an RFC 3339 timestamp or a plain YYYY-MM-DD date.
type DateInput string

// Time parses the value. Inputs without an offset are taken as UTC.
func (d DateInput) Time(field string) (time.Time, error) {
	raw := strings.TrimSpace(string(d))
	if raw == "" {
		return time.Time{}, apperrors.NewValidationFailedError(field + " is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperrors.NewValidationFailedError(field + " must be an RFC 3339 timestamp or YYYY-MM-DD date")
}
