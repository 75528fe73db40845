// File: services/availability/interface.go
package availability

import (
	"context"
	"time"

	"therabook/models"
)

// Service answers free-slot queries for providers. Dates are passed as
// parsed calendar days; validating raw query strings is the HTTP layer's
// job.
type Service interface {
	// DayAvailability returns the free slots for one provider on one date.
	DayAvailability(ctx context.Context, providerID string, date time.Time) ([]models.Slot, error)

	// RangeAvailability returns per-day availability for every date in
	// [from, to], excluding dates before today.
	RangeAvailability(ctx context.Context, providerID string, from, to time.Time) ([]models.AvailabilityDay, error)

	// RefreshProvider recomputes and caches the provider's availability
	// for the configured warm window.
	RefreshProvider(ctx context.Context, providerID string) error

	// InvalidateDay drops the cached availability for one provider/date.
	InvalidateDay(ctx context.Context, providerID string, date time.Time)
}
