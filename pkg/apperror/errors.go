package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

const (
	CodeNotFound         = "NOT_FOUND"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeShowInactive     = "SHOW_INACTIVE"
	CodeSeatWrongScreen  = "SEAT_WRONG_SCREEN"
	CodeSeatsUnavailable = "SEATS_UNAVAILABLE"
	CodeAlreadyCancelled = "ALREADY_CANCELLED"
	CodeForbidden        = "FORBIDDEN"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeConflict         = "CONFLICT"
	CodeTransientStore   = "TRANSIENT_STORE"
	CodeInternal         = "INTERNAL_ERROR"
)

// Error is the error type every service returns to the HTTP layer.
// Handlers map it to a status via errors.As, never by string matching.
type Error struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// As unwraps err into *Error, or nil when err is of another type.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func NotFound(resource string, id string) *Error {
	return &Error{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s %s not found", resource, id),
		HTTPStatus: http.StatusNotFound,
	}
}

func InvalidInput(message string) *Error {
	return &Error{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func ShowInactive(showID uuid.UUID) *Error {
	return &Error{
		Code:       CodeShowInactive,
		Message:    fmt.Sprintf("show %s is not active", showID),
		HTTPStatus: http.StatusConflict,
	}
}

func SeatWrongScreen(seatID uuid.UUID) *Error {
	return &Error{
		Code:       CodeSeatWrongScreen,
		Message:    fmt.Sprintf("seat %s does not belong to the show's screen", seatID),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"seat_id": seatID.String()},
	}
}

// SeatsUnavailable carries the conflicting seat ids so the caller can
// tell the user exactly which seats were taken.
func SeatsUnavailable(seatIDs []uuid.UUID) *Error {
	ids := make([]string, len(seatIDs))
	for i, id := range seatIDs {
		ids[i] = id.String()
	}
	return &Error{
		Code:       CodeSeatsUnavailable,
		Message:    "one or more seats are already booked for this show",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"seat_ids": ids},
	}
}

func AlreadyCancelled(bookingID uuid.UUID) *Error {
	return &Error{
		Code:       CodeAlreadyCancelled,
		Message:    fmt.Sprintf("booking %s is already cancelled", bookingID),
		HTTPStatus: http.StatusConflict,
	}
}

func Forbidden(message string) *Error {
	return &Error{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

func Unauthorized(message string) *Error {
	return &Error{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

func Conflict(message string) *Error {
	return &Error{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// TransientStore marks a retryable storage failure.
func TransientStore(message string, err error) *Error {
	return &Error{
		Code:       CodeTransientStore,
		Message:    message,
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func Internal(message string, err error) *Error {
	return &Error{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
