package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"therabook/config"
	scheduleRepo "therabook/database/repository/schedule"
	"therabook/services/availability"
	"therabook/services/tasks"
)

// InitRefreshWorker runs the availability cache-refresh worker in the
// background and pre-warms the cache for every configured provider.
func InitRefreshWorker(availSvc availability.Service, schedRepo scheduleRepo.ScheduleRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeAvailabilityRefresh, handleRefreshTask(availSvc))

	go warmAllProviders(availSvc, schedRepo)

	// Start async worker with retry logic
	go func() {
		log.Println("[AvailabilityWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[AvailabilityWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[AvailabilityWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleRefreshTask(availSvc availability.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.RefreshPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[RefreshHandler] invalid payload: %v", err)
			return err
		}

		if err := availSvc.RefreshProvider(ctx, p.ProviderID); err != nil {
			log.Printf("[RefreshHandler] failed to refresh provider %s: %v", p.ProviderID, err)
			return err
		}
		return nil
	}
}

// warmAllProviders fills the cache once at startup so the first queries
// after a restart do not all miss.
func warmAllProviders(availSvc availability.Service, schedRepo scheduleRepo.ScheduleRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ids, err := schedRepo.ListProviderIDs(ctx)
	if err != nil {
		log.Printf("[AvailabilityWorker] failed to list providers for warm-up: %v", err)
		return
	}
	for _, id := range ids {
		if err := availSvc.RefreshProvider(ctx, id); err != nil {
			log.Printf("[AvailabilityWorker] warm-up failed for provider %s: %v", id, err)
		}
	}
}
