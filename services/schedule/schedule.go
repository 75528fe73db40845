// File: services/schedule/schedule.go
package schedule

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	scheduleRepo "therabook/database/repository/schedule"
	"therabook/models"
	"therabook/services/tasks"
	"therabook/utils"
)

// DefaultScheduleService persists weekly schedules and keeps the
// availability cache in step with edits. A nil Queue skips the background
// refresh; the short cache TTL then covers staleness.
type DefaultScheduleService struct {
	Repo  scheduleRepo.ScheduleRepository
	Queue *asynq.Client
}

func (s *DefaultScheduleService) GetSchedule(ctx context.Context, providerID string) (*models.ProviderSchedule, error) {
	return s.Repo.GetByProviderID(ctx, providerID)
}

func (s *DefaultScheduleService) SetSchedule(ctx context.Context, providerID string, weekly models.WeeklySchedule) (*models.ProviderSchedule, error) {
	if err := ValidateWeeklySchedule(weekly); err != nil {
		return nil, err
	}

	sched := &models.ProviderSchedule{
		ProviderID: providerID,
		Schedule:   weekly,
	}
	if err := s.Repo.Upsert(ctx, sched); err != nil {
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}

	s.enqueueRefresh(providerID)
	return sched, nil
}

func (s *DefaultScheduleService) enqueueRefresh(providerID string) {
	if s.Queue == nil {
		return
	}
	task, err := tasks.NewAvailabilityRefreshTask(providerID)
	if err != nil {
		utils.GetLogger().Warn("failed to build refresh task",
			zap.String("providerID", providerID), zap.Error(err))
		return
	}
	if _, err := s.Queue.Enqueue(task); err != nil {
		utils.GetLogger().Warn("failed to enqueue availability refresh",
			zap.String("providerID", providerID), zap.Error(err))
	}
}
