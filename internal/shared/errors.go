package shared

import (
	"errors"
	"fmt"
)

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Session errors
	ErrNotAuthenticated = fmt.Errorf("not authenticated")

	// Transport errors
	ErrTimeout = fmt.Errorf("operation timed out")
	ErrNetwork = fmt.Errorf("network unreachable")

	// API errors
	ErrApplication = fmt.Errorf("request rejected")
	ErrServer      = fmt.Errorf("unexpected server response")

	// Input validation errors
	ErrValidation      = fmt.Errorf("validation failed")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")

	// Booking errors
	ErrSeatBooked      = fmt.Errorf("This seat is already booked")
	ErrUnknownSeat     = fmt.Errorf("seat does not exist")
	ErrEmptySelection  = fmt.Errorf("Please select at least one seat")
	ErrBookingInFlight = fmt.Errorf("booking already submitted")
	ErrBookingComplete = fmt.Errorf("booking already confirmed")
)

// Messages shown to the user for normalized transport failures.
const (
	TimeoutMessage = "Request timeout - please try again"
	NetworkMessage = "Network error - please check your connection"
)

// UserFacing is implemented by errors that carry a message meant for display.
type UserFacing interface {
	UserMessage() string
}

// ValidationError is a client-side input check failure.
//
// It unwraps to [ErrValidation] and is never sent over the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string       { return e.Message }
func (e *ValidationError) UserMessage() string { return e.Message }
func (e *ValidationError) Unwrap() error       { return ErrValidation }

// UserMessage picks the text to display for err.
//
// Errors implementing [UserFacing] win, then the booking sentinels whose text is already
// user-facing, then fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var uf UserFacing
	if errors.As(err, &uf) {
		if msg := uf.UserMessage(); msg != "" {
			return msg
		}
		return fallback
	}

	switch {
	case errors.Is(err, ErrSeatBooked):
		return ErrSeatBooked.Error()
	case errors.Is(err, ErrEmptySelection):
		return ErrEmptySelection.Error()
	case errors.Is(err, ErrTimeout):
		return TimeoutMessage
	case errors.Is(err, ErrNetwork):
		return NetworkMessage
	}

	if fallback != "" {
		return fallback
	}
	return err.Error()
}
