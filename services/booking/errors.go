package booking

import "errors"

var (
	// ErrSlotUnavailable is returned when the requested interval is not
	// one of the provider's currently offered free slots, or when a
	// concurrent booking claimed it first.
	ErrSlotUnavailable = errors.New("requested slot is not available")

	// ErrBookingNotFound is returned when no booking exists for the ID.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidStatus is returned for an unknown lifecycle status.
	ErrInvalidStatus = errors.New("invalid booking status")
)
