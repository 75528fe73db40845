// File: services/booking/interface.go
package booking

import (
	"context"

	"therabook/models"
)

// Service creates and manages bookings. Creation is the double-booking
// boundary: the requested interval must match a currently offered free
// slot, and the store's uniqueness constraint rejects a concurrent
// duplicate that slips past the check.
type Service interface {
	CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID, status string) (*models.Booking, error)
	ListProviderBookings(ctx context.Context, providerID, date string) ([]models.Booking, error)
}
