// Package apperror tags errors crossing a transport boundary with an explicit kind,
// so retry decisions switch on the kind instead of the error text.
package apperror

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies an error by how the caller should react to it.
type Kind int

const (
	KindUnknown    Kind = iota
	KindTransient       // connectivity, timeouts, temporary unavailability
	KindPermission      // authentication or authorization failure
	KindMalformed       // the remote side returned or rejected a malformed payload
	KindInvalid         // the input violates a constraint
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindPermission:
		return "permission"
	case KindMalformed:
		return "malformed"
	case KindInvalid:
		return "invalid"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is an error tagged with a Kind and the operation that produced it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// New tags err with kind. It returns nil if err is nil.
func New(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the outermost tagged error in the chain.
// Context deadline errors count as transient even when untagged.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Kind
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTransient
	}

	return KindUnknown
}

// Retryable reports whether another attempt could succeed without an out-of-band fix.
func Retryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	switch KindOf(err) {
	case KindTransient, KindUnknown:
		return true
	default:
		return false
	}
}
