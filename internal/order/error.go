package order

import (
	"errors"
	"fmt"
)

var (
	errOrderHasID        = errors.New("a new order cannot already have an ID")
	errBasketRequired    = errors.New("order basket id is required")
	errAddressRequired   = errors.New("order address id is required")
	errOrderNotFound     = errors.New("order not found")
	errBasketNotFound    = errors.New("basket not found")
	errAddressNotFound   = errors.New("address not found")
	errNoAccessToOrder   = errors.New("no access to order")
	errNoAccessToBasket  = errors.New("no access to basket")
	errNoAccessToAddress = errors.New("no access to address")
)

type ErrorKind string

const (
	JsonAppError   ErrorKind = "json"
	ServerAppError ErrorKind = "server"
	HttpError      ErrorKind = "http"
)

// Error is returned by the order-management adapter.
type Error struct {
	Kind    ErrorKind
	Message string
	Code    int
	Err     error
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
	if e.Err != nil {
		return fmt.Sprintf("%s (%d): %v", e.Message, e.Code, e.Err)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}
