// File: database/repository/schedule/interface.go
package scheduleRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"therabook/config"
	"therabook/database"
	"therabook/models"
)

type ScheduleRepository interface {
	Upsert(ctx context.Context, sched *models.ProviderSchedule) error
	GetByProviderID(ctx context.Context, providerID string) (*models.ProviderSchedule, error)
	ListProviderIDs(ctx context.Context) ([]string, error)
	EnsureIndexes() error
}

type mongoScheduleRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRepo constructs a new MongoDB ScheduleRepository.
func NewMongoScheduleRepo() ScheduleRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoScheduleRepo{
		coll: db.Collection("schedules"),
	}
}
