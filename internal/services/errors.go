package services

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Error kinds. Match them with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict error")
	ErrNotFound   = errors.New("not found error")
)

// Error is a business-rule failure raised by a service. Kind is one of
// ErrValidation, ErrConflict or ErrNotFound; Message is safe to show to
// clients.
type Error struct {
	Kind    error
	Entity  string
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// AsError extracts a service error from err.
func AsError(err error) (*Error, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func validationError(entity, field, msg string) *Error {
	return &Error{Kind: ErrValidation, Entity: entity, Field: field, Message: msg}
}

func conflictError(entity, field, msg string) *Error {
	return &Error{Kind: ErrConflict, Entity: entity, Field: field, Message: msg}
}

func notFoundError(entity, msg string) *Error {
	return &Error{Kind: ErrNotFound, Entity: entity, Field: "id", Message: msg}
}

const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err comes from a unique index rejecting
// a write.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
