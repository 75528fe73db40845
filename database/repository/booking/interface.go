// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"therabook/config"
	"therabook/database"
	"therabook/models"
)

// ErrSlotTaken is returned when an insert collides with an existing
// occupying booking for the same provider, date and start time. The
// collision is detected by the partial unique index, so two concurrent
// requests for the same slot cannot both be persisted.
var ErrSlotTaken = errors.New("slot already booked")

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID, status string) error
	GetOccupyingByDate(ctx context.Context, providerID, date string) ([]models.Booking, error)
	GetOccupyingByDateRange(ctx context.Context, providerID, from, to string) (map[string][]models.Booking, error)
	EnsureIndexes() error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
}
