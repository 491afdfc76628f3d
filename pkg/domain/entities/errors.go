package entities

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotANumber is wrapped by FieldError when a numeric field holds text
var ErrNotANumber = errors.New("value is not a number")

// FieldError reports a type-level problem with a single input field
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ParseOptionalNumber parses a nullable numeric cell. Blank input is nil.
func ParseOptionalNumber(field, value string) (*float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	n, err := parseNumber(field, value)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ParseNumber parses a numeric cell, treating blank input as zero
func ParseNumber(field, value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	return parseNumber(field, value)
}

func parseNumber(field, value string) (float64, error) {
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &FieldError{Field: field, Value: value, Err: ErrNotANumber}
	}
	return n, nil
}

// Float returns a pointer to v; handy for nullable fields
func Float(v float64) *float64 {
	return &v
}

// ValueOr dereferences p, falling back to def when p is nil
func ValueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
