package fanchangetier

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"fanclub/internal/common/camunda"
	"fanclub/internal/common/logger"
	"fanclub/internal/models"
	"fanclub/internal/store"
)

const TaskType = "fan-change-tier"

type Handler struct {
	config *Config
	store  *store.Store
	runner *camunda.Runner
	logger logger.Logger
}

func NewHandler(config *Config, st *store.Store, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		store:  st,
		runner: camunda.NewRunner(TaskType, config.Timeout, log),
		logger: log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.runner.Run(client, job, func(ctx context.Context) (interface{}, error) {
		var input Input
		if err := camunda.DecodeVariables(job, GetInputSchema(), &input); err != nil {
			return nil, err
		}
		return h.Execute(ctx, &input)
	})
}

// Execute moves the active subscription to NewTierID. Moving to the current
// tier completes with Changed=false and no event type, so the process can
// skip the notification.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	userID := input.UserID
	if userID == "" {
		userID = h.store.CurrentUser().ID
	}

	sub, previousTierID, err := h.store.ChangeTier(ctx, userID, input.ArtistID, input.NewTierID)
	if err != nil {
		return nil, err
	}

	out := &Output{
		Subscription:   sub,
		PreviousTierID: previousTierID,
		Changed:        previousTierID != sub.TierID,
	}
	if out.Changed {
		out.EventType = models.EventTierChanged
		h.logger.Info("tier changed", map[string]interface{}{
			"userId":   userID,
			"artistId": input.ArtistID,
			"from":     previousTierID,
			"to":       sub.TierID,
		})
	}
	return out, nil
}
