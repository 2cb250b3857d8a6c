// Package core defines the result envelopes, pagination primitives and the
// error taxonomy shared by every layer. Errors are constructed at the point
// of failure and consumed exactly once by the HTTP translator.
package core

import (
	"errors"
	"fmt"
	"sort"
)

// Kind classifies a failure for HTTP mapping and logging.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidationFailed
	KindBadRequest
	KindNotFound
	KindConflict
	KindForbidden
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindValidationFailed:
		return "validation_failed"
	case KindBadRequest:
		return "bad_request"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindForbidden:
		return "forbidden"
	case KindCanceled:
		return "canceled"
	default:
		return "unexpected"
	}
}

// HTTPStatus returns the wire status for a kind. 499 follows the nginx
// client-closed-request convention so cancellations never count as 5xx.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidationFailed, KindBadRequest:
		return 400
	case KindNotFound:
		return 404
	case KindConflict:
		return 409
	case KindForbidden:
		return 403
	case KindCanceled:
		return 499
	default:
		return 500
	}
}

// FieldError points at a single invalid request field. Field names reference
// request properties (json names), never storage columns.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the tagged failure carried from the point of failure to the
// translator. Fields is non-empty exactly when Kind is KindValidationFailed.
type Error struct {
	kind   Kind
	msg    string
	fields []FieldError
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.msg, e.cause)
	}
	if e.msg == "" {
		return e.kind.String()
	}
	return e.msg
}

func (e *Error) Unwrap() error        { return e.cause }
func (e *Error) Kind() Kind           { return e.kind }
func (e *Error) Message() string      { return e.msg }
func (e *Error) Fields() []FieldError { return e.fields }

// NewValidationFailed aggregates field errors into a single failure. The list
// is sorted by field then message so callers see a stable order regardless of
// rule evaluation order. Returns nil when the list is empty.
func NewValidationFailed(fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	sorted := make([]FieldError, len(fields))
	copy(sorted, fields)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Field != sorted[j].Field {
			return sorted[i].Field < sorted[j].Field
		}
		return sorted[i].Message < sorted[j].Message
	})
	return &Error{kind: KindValidationFailed, msg: "one or more fields are invalid", fields: sorted}
}

func NewBadRequest(msg string) error { return &Error{kind: KindBadRequest, msg: msg} }
func NewNotFound(msg string) error   { return &Error{kind: KindNotFound, msg: msg} }
func NewConflict(msg string) error   { return &Error{kind: KindConflict, msg: msg} }
func NewForbidden(msg string) error  { return &Error{kind: KindForbidden, msg: msg} }

// NewCanceled marks a deliberately canceled operation.
func NewCanceled() error { return &Error{kind: KindCanceled, msg: "Operation canceled"} }

// NewUnexpected wraps an unclassified failure. The message shown to clients
// stays generic; cause goes to the log only.
func NewUnexpected(cause error) error {
	return &Error{kind: KindUnexpected, msg: "internal server error", cause: cause}
}

// KindOf extracts the kind from any error chain; unclassified failures are
// KindUnexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindUnexpected
}

// FieldsOf returns the field errors attached to a validation failure, nil
// otherwise.
func FieldsOf(err error) []FieldError {
	var e *Error
	if errors.As(err, &e) && e.kind == KindValidationFailed {
		return e.fields
	}
	return nil
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.kind == k
}
