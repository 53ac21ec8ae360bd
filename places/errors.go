package places

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyResult means a provider answered successfully but with nothing to show
	ErrEmptyResult = errors.New("no results found")

	// ErrEmptyPlace is returned when the place is blank
	ErrEmptyPlace = errors.New("place is required")
)

// ProviderError describes a failed provider call
type ProviderError struct {
	Provider   string
	Category   Category
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ResolutionError is returned when both the primary and the fallback provider failed
type ResolutionError struct {
	Category Category
	Place    string
	Primary  error
	Fallback error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("no provider could find %s of %s: primary: %v; fallback: %v", e.Category, e.Place, e.Primary, e.Fallback)
}

func (e *ResolutionError) Unwrap() []error {
	return []error{e.Primary, e.Fallback}
}
