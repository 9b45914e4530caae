package domain

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidMove is returned when a move, placement or selection breaks the rules.
	ErrInvalidMove = errors.New("invalid move")
	// ErrNotFound is returned for unknown session ids.
	ErrNotFound = errors.New("game not found")
	// ErrIllegalState signals a broken internal invariant, never a user mistake.
	ErrIllegalState = errors.New("illegal game state")
	// ErrBadRequest is returned for malformed requests (unknown kind, difficulty, etc.).
	ErrBadRequest = errors.New("bad request")
)

// Error codes carried next to the reason in error responses.
const (
	CodeInvalidMove = "invalid-move"
	CodeNotFound    = "not-found"
	CodeBadRequest  = "bad-request"
	CodeInternal    = "internal"
)

func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrBadRequest):
		return CodeBadRequest
	case errors.Is(err, ErrInvalidMove):
		return CodeInvalidMove
	default:
		return CodeInternal
	}
}

// ErrorOfCode is the reverse of ErrorCode; unknown codes give nil.
func ErrorOfCode(code string) error {
	switch code {
	case CodeNotFound:
		return ErrNotFound
	case CodeBadRequest:
		return ErrBadRequest
	case CodeInvalidMove:
		return ErrInvalidMove
	case CodeInternal:
		return ErrIllegalState
	default:
		return nil
	}
}

// IsUserError reports whether err is an expected, recoverable rejection.
func IsUserError(err error) bool {
	return errors.Is(err, ErrInvalidMove) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrBadRequest)
}
