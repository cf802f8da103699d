package relay

import (
	"errors"
	"fmt"

	"github.com/morlend/ghrelay/internal/github"
)

// Kind categorizes a relay failure. The set is closed so the HTTP layer
// can map every error exhaustively.
type Kind string

const (
	KindConfiguration    Kind = "configuration_error"
	KindMethodNotAllowed Kind = "method_not_allowed"
	KindMissingParameter Kind = "missing_parameter"
	KindInvalidAction    Kind = "invalid_action"
	KindUpstream         Kind = "upstream_error"
)

// Error is the shape every relay failure maps to. UpstreamStatus is set
// for KindUpstream when GitHub answered with a status code.
type Error struct {
	Kind           Kind
	Message        string
	UpstreamStatus int
	err            error
}

func (e *Error) Error() string {
	if e.UpstreamStatus != 0 {
		return fmt.Sprintf("%s: %s (upstream status %d)", e.Kind, e.Message, e.UpstreamStatus)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.err
}

func missingParameter(format string, args ...any) *Error {
	return &Error{Kind: KindMissingParameter, Message: fmt.Sprintf(format, args...)}
}

// upstream wraps a Store failure, lifting GitHub's status and message
// into named fields. op names the operation that failed.
func upstream(op string, err error) *Error {
	var apiErr *github.APIError
	if errors.As(err, &apiErr) {
		return &Error{
			Kind:           KindUpstream,
			Message:        fmt.Sprintf("%s: %s", op, apiErr.Message),
			UpstreamStatus: apiErr.StatusCode,
			err:            err,
		}
	}
	return &Error{
		Kind:    KindUpstream,
		Message: fmt.Sprintf("%s: %v", op, err),
		err:     err,
	}
}
