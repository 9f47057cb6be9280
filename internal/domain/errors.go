package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can branch without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidEntity
	KindIllegalArgument
	KindNotFound
	KindEmptyCollection
	KindPersistenceFailure
)

func (k Kind) String() string {
	switch k {
	case KindInvalidEntity:
		return "invalid_entity"
	case KindIllegalArgument:
		return "illegal_argument"
	case KindNotFound:
		return "not_found"
	case KindEmptyCollection:
		return "empty_collection"
	case KindPersistenceFailure:
		return "persistence_failure"
	}
	return "unknown"
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so the sentinels below work with
// errors.Is regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Msg == ""
}

var (
	ErrInvalidEntity      = &Error{Kind: KindInvalidEntity}
	ErrIllegalArgument    = &Error{Kind: KindIllegalArgument}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrEmptyCollection    = &Error{Kind: KindEmptyCollection}
	ErrPersistenceFailure = &Error{Kind: KindPersistenceFailure}
)

func Invalid(format string, args ...any) error {
	return &Error{Kind: KindInvalidEntity, Msg: fmt.Sprintf(format, args...)}
}

func IllegalArgument(format string, args ...any) error {
	return &Error{Kind: KindIllegalArgument, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func EmptyCollection(format string, args ...any) error {
	return &Error{Kind: KindEmptyCollection, Msg: fmt.Sprintf(format, args...)}
}

// Persistence tags err as a persistence failure. A domain error that already
// carries a kind is returned unchanged.
func Persistence(msg string, err error) error {
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return &Error{Kind: KindPersistenceFailure, Msg: msg, Err: err}
}

// KindOf reports the kind of the first domain error in err's chain.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}
