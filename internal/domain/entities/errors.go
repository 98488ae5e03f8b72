package entities

import (
	"errors"
	"fmt"
)

// Sentinel errors for matching with errors.Is. The typed errors below carry
// detail and report Is against these.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrConflict    = errors.New("conflict")
	ErrPersistence = errors.New("persistence failure")
)

// NotFoundError reports a missing character, edge, view, or story.
type NotFoundError struct {
	Kind string // "character", "edge", "view", "story"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError reports a domain-rule rejection such as a self-edge, a
// cross-story reference, or a layout key outside the view's story.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConflictError reports a duplicate (source, target, type) edge triple.
type ConflictError struct {
	SourceID string
	TargetID string
	Type     string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("relationship %q already exists between %s and %s", e.Type, e.SourceID, e.TargetID)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// PersistenceError wraps a gateway failure. The cause is preserved for
// unwrapping; the core never retries these.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
