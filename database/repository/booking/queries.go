// File: database/repository/booking/queries.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"therabook/models"
)

// GetOccupyingByDate returns the bookings that block time on the given
// date for the provider, ordered by start time.
func (r *mongoBookingRepo) GetOccupyingByDate(ctx context.Context, providerID, date string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"providerId": providerID,
		"date":       date,
		"status":     bson.M{"$in": models.OccupyingStatuses},
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for provider %s on %s: %w", providerID, date, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// GetOccupyingByDateRange returns occupying bookings between from and to
// (inclusive, "YYYY-MM-DD"), keyed by date.
func (r *mongoBookingRepo) GetOccupyingByDateRange(ctx context.Context, providerID, from, to string) (map[string][]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"providerId": providerID,
		"date":       bson.M{"$gte": from, "$lte": to},
		"status":     bson.M{"$in": models.OccupyingStatuses},
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for provider %s in range %s..%s: %w", providerID, from, to, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}

	byDate := make(map[string][]models.Booking, len(bookings))
	for _, b := range bookings {
		byDate[b.Date] = append(byDate[b.Date], b)
	}
	return byDate, nil
}
