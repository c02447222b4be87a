package fit

import (
	"errors"
	"fmt"

	"github.com/arloliu/lpfit/lp"
)

// Sentinels matched by the typed errors below, for use with errors.Is.
var (
	ErrInvalidInput      = errors.New("fit: invalid input")
	ErrSolver            = errors.New("fit: solver error")
	ErrSolverUnavailable = errors.New("fit: solver unavailable")
)

// InvalidInputError reports malformed caller input. It is always returned
// before any solver is opened.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("fit: invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

func invalid(field, format string, args ...any) *InvalidInputError {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// SolverError reports a linear program the backend could not solve to
// optimality: infeasible, unbounded, aborted by the time limit, or a backend
// failure. Err holds the backend's error, if any.
type SolverError struct {
	Backend string
	Status  lp.Status
	Err     error
}

func (e *SolverError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fit: solver %q: %s: %v", e.Backend, e.Status, e.Err)
	}

	return fmt.Sprintf("fit: solver %q: %s", e.Backend, e.Status)
}

func (e *SolverError) Unwrap() error { return e.Err }

func (e *SolverError) Is(target error) bool { return target == ErrSolver }

// SolverUnavailableError reports that the configured backend is not registered
// or failed to initialize.
type SolverUnavailableError struct {
	Backend string
	Err     error
}

func (e *SolverUnavailableError) Error() string {
	return fmt.Sprintf("fit: solver %q unavailable: %v", e.Backend, e.Err)
}

func (e *SolverUnavailableError) Unwrap() error { return e.Err }

func (e *SolverUnavailableError) Is(target error) bool { return target == ErrSolverUnavailable }
