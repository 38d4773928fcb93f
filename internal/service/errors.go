package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for task reference resolution. NotFoundError and
// AmbiguousError match ErrNotFound and ErrAmbiguousReference under errors.Is.
var (
	ErrEmptyReference     = errors.New("task reference required")
	ErrNotFound           = errors.New("task not found")
	ErrAmbiguousReference = errors.New("ambiguous task reference")
)

// NotFoundError reports that no task matches a reference.
type NotFoundError struct {
	Ref string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no task found matching %q", e.Ref)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// AmbiguousError reports that a prefix matches more than one task.
// Matches holds the full identifiers in collection order.
type AmbiguousError struct {
	Ref     string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous task reference %q matches %d tasks: %s",
		e.Ref, len(e.Matches), strings.Join(e.Matches, ", "))
}

func (e *AmbiguousError) Is(target error) bool { return target == ErrAmbiguousReference }

// TransportError reports that a request never produced an HTTP response:
// connection refused, DNS failure, timeout.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return fmt.Sprintf("%s: request timed out", e.Op)
	}
	return fmt.Sprintf("%s: connection error: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError reports a non-success HTTP status.
// Message is the service-provided error text, if any.
type ServiceError struct {
	Op      string
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.Status, e.Message)
}

// ProtocolError reports a success response whose body could not be
// decoded or does not have the expected shape.
type ProtocolError struct {
	Op  string
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: invalid response: %v", e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }
