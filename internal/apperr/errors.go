// Package apperr, servis katmanı hatalarını sınıflandırır ve HTTP durum
// kodlarına eşler.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuth
	KindStateConflict
	KindNotFound
	KindForbidden
	KindInternal
)

const (
	CodeInvalidBody        = "INVALID_BODY"
	CodeMissingFields      = "MISSING_FIELDS"
	CodeMissingPassword    = "MISSING_PASSWORD"
	CodeMissingParams      = "MISSING_PARAMS"
	CodeInvalidParams      = "INVALID_PARAMS"
	CodeEmailInUse         = "EMAIL_IN_USE"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeAlreadyCheckedIn   = "ALREADY_CHECKED_IN"
	CodeAlreadyCheckedOut  = "ALREADY_CHECKED_OUT"
	CodeNotCheckedIn       = "NOT_CHECKED_IN"
	CodeNotFound           = "NOT_FOUND"
	CodeInternal           = "INTERNAL"
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status: hatanın HTTP karşılığı
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindStateConflict:
		return fiber.StatusBadRequest
	case KindAuth:
		return fiber.StatusUnauthorized
	case KindForbidden:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func Validation(code, msg string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: msg}
}

func Auth(code, msg string) *Error {
	return &Error{Kind: KindAuth, Code: code, Message: msg}
}

func Conflict(code, msg string) *Error {
	return &Error{Kind: KindStateConflict, Code: code, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Code: CodeNotFound, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Code: CodeForbidden, Message: msg}
}

// Internal: istemciye gösterilmeyecek bir sebebi sarar
func Internal(op string, err error) *Error {
	return &Error{Kind: KindInternal, Code: CodeInternal, Message: op, Err: err}
}

// CodeOf: err zincirinde *Error varsa kodunu döner
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
