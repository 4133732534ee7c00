package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mserebryaakov/aggregator-pim/internal/entity"
)

type ErrorKind string

const (
	JsonAppError   ErrorKind = "json"
	ServerAppError ErrorKind = "transport"
	HttpError      ErrorKind = "http"
)

var (
	errMissingIdentifier = errors.New("entity has no identifier")
	errMissingToken      = errors.New("authenticate response carries no id_token")
)

// Error is returned by every call that did not end with a 2xx answer.
type Error struct {
	Kind        ErrorKind
	Message     string
	Code        int
	Detail      string
	FieldErrors []entity.FieldError
	Err         error
}

func NewError(kind ErrorKind, message string, code int, err error) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Code:    code,
		Err:     err,
	}
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Code != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Code)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func statusOf(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Kind == HttpError {
		return e.Code
	}
	return 0
}

func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

func IsUnauthorized(err error) bool {
	return statusOf(err) == http.StatusUnauthorized
}

func IsForbidden(err error) bool {
	return statusOf(err) == http.StatusForbidden
}

// apiError is the error body written by the API server.
type apiError struct {
	Error       string              `json:"error"`
	Code        string              `json:"code"`
	FieldErrors []entity.FieldError `json:"fieldErrors"`
}
