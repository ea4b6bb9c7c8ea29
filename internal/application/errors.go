package application

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidURL     = errors.New("invalid URL")
	ErrAliasTaken     = errors.New("alias already in use")
	ErrSyncInProgress = errors.New("another sync is in progress")
	ErrItemsFailed    = errors.New("some items failed")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// RootNotFoundError is returned before any change when a run's root cannot be resolved
type RootNotFoundError struct {
	URL string
}

func (e *RootNotFoundError) Error() string {
	return fmt.Sprintf("root page %q not found", e.URL)
}

func (e *RootNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// FailedItemsError lists the items a run could not process
type FailedItemsError struct {
	Items []string
}

func (e *FailedItemsError) Error() string {
	return fmt.Sprintf("%d item(s) failed: %s", len(e.Items), strings.Join(e.Items, ", "))
}

func (e *FailedItemsError) Is(target error) bool {
	return target == ErrItemsFailed
}

// StageError reports a failed version control staging step
type StageError struct {
	Dir    string
	Output string
	Err    error
}

func (e *StageError) Error() string {
	msg := fmt.Sprintf("staging changes in %s failed: %v", e.Dir, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *StageError) Unwrap() error {
	return e.Err
}
