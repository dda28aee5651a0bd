package qdistance

import (
	"errors"
	"fmt"
)

var (
	ErrDomain             = errors.New("amplitude outside [-1, 1]")
	ErrNotNormalized      = errors.New("feature vector is not unit-normalized")
	ErrInvalidLabel       = errors.New("label must be 0 or 1")
	ErrTrainingSet        = errors.New("invalid training set")
	ErrNoSamples          = errors.New("no samples")
	ErrNoPostselected     = errors.New("no outcome survived postselection")
	ErrMalformedOutcome   = errors.New("malformed outcome")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrBreakerOpen        = errors.New("backend breaker is open")
)

/*
CompilationError is returned by Backend.Compile when a circuit references a
gate the backend does not know, or a qubit outside the register set.
*/
type CompilationError struct {
	Step   int
	Gate   Gate
	Reason string
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("compile: step %d (%s): %s", e.Step, e.Gate, e.Reason)
}

// ExecutionError wraps any failure of Backend.Run or of the session around it.
type ExecutionError struct {
	Op  string
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execute %s: %v", e.Op, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
