package entity

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// Value wraps a record field and provides type conversion helpers.
type Value struct {
	Raw any
}

// String returns the value as a string, empty for nil.
func (v Value) String() string {
	if v.Raw == nil {
		return ""
	}
	return fmt.Sprintf("%v", v.Raw)
}

// Time returns the value as a time.Time.
func (v Value) Time() (time.Time, error) {
	t, ok := v.Raw.(time.Time)
	if !ok {
		return time.Time{}, errors.Errorf("value is not a time.Time: %T", v.Raw)
	}
	return t, nil
}

// IsNil is true for absent fields.
func (v Value) IsNil() bool {
	return v.Raw == nil
}
