// File: services/schedule/interface.go
package schedule

import (
	"context"

	"therabook/models"
)

// Service manages providers' recurring weekly schedules.
type Service interface {
	GetSchedule(ctx context.Context, providerID string) (*models.ProviderSchedule, error)
	SetSchedule(ctx context.Context, providerID string, weekly models.WeeklySchedule) (*models.ProviderSchedule, error)
}
