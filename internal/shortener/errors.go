package shortener

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidURL = errors.New("invalid url format")
	ErrNotFound   = errors.New("url not found")
)

// DatabaseError wraps any failure reported by the Repository.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// Kind classifies service errors so transports can map them to status codes.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindInvalid
	KindNotFound
	KindDatabase
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "Invalid"
	case KindNotFound:
		return "NotFound"
	case KindDatabase:
		return "Database"
	default:
		return "Unknown"
	}
}

// KindOf reports the Kind of err. A DatabaseError wrapping ErrNotFound is
// still a database failure; the service never produces that combination.
func KindOf(err error) Kind {
	var dbErr *DatabaseError

	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &dbErr):
		return KindDatabase
	case errors.Is(err, ErrInvalidURL):
		return KindInvalid
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindUnknown
	}
}
