package models

import "time"

// Booking lifecycle statuses. The payment_* states track the manual
// bank-transfer flow: a booking keeps occupying its slot until the
// transfer proof is rejected or the booking is cancelled.
const (
	BookingStatusPending         = "pending"
	BookingStatusConfirmed       = "confirmed"
	BookingStatusPaymentPending  = "payment_pending"
	BookingStatusPaymentUploaded = "payment_uploaded"
	BookingStatusPaymentVerified = "payment_verified"
	BookingStatusCancelled       = "cancelled"
	BookingStatusCompleted       = "completed"
	BookingStatusNoShow          = "no_show"
)

// OccupyingStatuses are the statuses that block a time range from being
// offered again. Cancelled and terminal non-booking states are excluded.
var OccupyingStatuses = []string{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusPaymentPending,
	BookingStatusPaymentUploaded,
	BookingStatusPaymentVerified,
}

// IsOccupyingStatus reports whether status blocks its time range.
func IsOccupyingStatus(status string) bool {
	for _, s := range OccupyingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsKnownStatus reports whether status is one of the defined lifecycle states.
func IsKnownStatus(status string) bool {
	switch status {
	case BookingStatusPending, BookingStatusConfirmed,
		BookingStatusPaymentPending, BookingStatusPaymentUploaded, BookingStatusPaymentVerified,
		BookingStatusCancelled, BookingStatusCompleted, BookingStatusNoShow:
		return true
	}
	return false
}

// Booking represents an appointment between a client and a provider.
type Booking struct {
	ID         string    `bson:"id" json:"id"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	ClientID   string    `bson:"clientId" json:"clientId"`
	Date       string    `bson:"date" json:"date"`   // "YYYY-MM-DD"
	Start      int       `bson:"start" json:"start"` // minutes from midnight
	End        int       `bson:"end" json:"end"`
	Status     string    `bson:"status" json:"status"`
	Notes      string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Interval returns the booked wall-clock interval.
func (b Booking) Interval() BookedInterval {
	return BookedInterval{Start: b.Start, End: b.End}
}

// CreateBookingRequest defines the payload for booking a slot. StartTime
// names the start of an offered slot; the end is derived from the
// configured slot duration.
type CreateBookingRequest struct {
	ProviderID string `json:"providerId" binding:"required"`
	ClientID   string `json:"clientId" binding:"required"`
	Date       string `json:"date" binding:"required"`      // "YYYY-MM-DD"
	StartTime  string `json:"startTime" binding:"required"` // "HH:MM"
	Notes      string `json:"notes"`
}
