package tools

import (
	"errors"
	"fmt"
)

// ErrUnknownTool is returned by Registry.Call for unregistered names
var ErrUnknownTool = errors.New("unknown tool")

// ValidationError rejects tool input before anything is fetched
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// OperationError wraps a failure from the client or directory with the
// name of the operation that was running.
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

// wrap returns err as an *OperationError unless it already is one
// or is a validation failure.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return err
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return err
	}
	return &OperationError{Op: op, Err: err}
}
