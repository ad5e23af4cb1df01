package service

import (
	"errors"
	"fmt"
)

var (
	ErrCompanyNotFound    = errors.New("company not found")
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrInvalidInput       = errors.New("invalid input")
)

// invalidf builds a validation error that matches ErrInvalidInput.
func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
