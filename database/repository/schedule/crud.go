// File: database/repository/schedule/crud.go
package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"therabook/models"
)

func (r *mongoScheduleRepo) Upsert(ctx context.Context, sched *models.ProviderSchedule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sched.UpdatedAt = time.Now().UTC()

	filter := bson.M{"providerId": sched.ProviderID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, filter, sched, opts); err != nil {
		return fmt.Errorf("failed to upsert schedule for provider %s: %w", sched.ProviderID, err)
	}
	return nil
}

// GetByProviderID returns the provider's schedule, or nil when none is
// configured. Absence is not an error.
func (r *mongoScheduleRepo) GetByProviderID(ctx context.Context, providerID string) (*models.ProviderSchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sched models.ProviderSchedule
	err := r.coll.FindOne(ctx, bson.M{"providerId": providerID}).Decode(&sched)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule for provider %s: %w", providerID, err)
	}
	return &sched, nil
}

// ListProviderIDs returns the IDs of every provider with a configured schedule.
func (r *mongoScheduleRepo) ListProviderIDs(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"providerId": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ProviderID string `bson:"providerId"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding schedule listing: %w", err)
	}

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ProviderID)
	}
	return ids, nil
}
