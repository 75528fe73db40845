package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeAvailabilityRefresh = "availability:refresh"

// RefreshPayload identifies the provider whose cached availability should
// be recomputed.
type RefreshPayload struct {
	ProviderID string `json:"providerId"`
}

func NewAvailabilityRefreshTask(providerID string) (*asynq.Task, error) {
	b, err := json.Marshal(RefreshPayload{ProviderID: providerID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAvailabilityRefresh, b), nil
}
