package payment

import (
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation Kind = "validation_error"
	KindGateway    Kind = "gateway_error"
	KindTransport  Kind = "transport_error"
)

const (
	// GenericMessage is returned whenever the cause is not safe or not
	// meaningful to show to the caller.
	GenericMessage         = "internal error initializing payment."
	defaultRejectedMessage = "payment gateway rejected the transaction"
)

// Error is the normalized failure of InitializeTransaction. Status is the
// HTTP status to respond with and Message the caller-facing text.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%d): %s: %v", e.Kind, e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func validationError(message string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: message}
}
