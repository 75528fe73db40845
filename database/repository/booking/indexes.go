// File: database/repository/booking/indexes.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"therabook/models"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
// The partial unique index is the double-booking guard: at most one
// occupying booking may exist per provider, date and start time.
func (r *mongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "date", Value: 1}, {Key: "start", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_provider_date_start_occupying").
				SetPartialFilterExpression(occupyingStatusFilter()),
		},
		// Primary query pattern: occupying bookings per provider and date.
		{
			Keys:    bson.D{{Key: "providerId", Value: 1}, {Key: "date", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("provider_date_status_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}

// occupyingStatusFilter builds the partial index filter as an $or of
// equality clauses. $in inside partialFilterExpression needs MongoDB 6.0,
// while $or of equalities works on older servers too.
func occupyingStatusFilter() bson.M {
	clauses := make([]bson.M, 0, len(models.OccupyingStatuses))
	for _, status := range models.OccupyingStatuses {
		clauses = append(clauses, bson.M{"status": status})
	}
	return bson.M{"$or": clauses}
}
