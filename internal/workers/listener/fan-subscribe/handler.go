package fansubscribe

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"fanclub/internal/common/camunda"
	"fanclub/internal/common/logger"
	"fanclub/internal/models"
	"fanclub/internal/store"
)

const TaskType = "fan-subscribe"

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
		input, err := h.parseInput(job)
		if err != nil {
			return nil, err
		}
		return h.Execute(ctx, input)
	})
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	var input Input
	if err := camunda.DecodeVariables(job, GetInputSchema(), &input); err != nil {
		return nil, err
	}
	return &input, nil
}

// Execute subscribes the user to the tier, reactivating an earlier
// subscription to the same artist when there is one.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	userID := input.UserID
	if userID == "" {
		userID = h.store.CurrentUser().ID
	}

	sub, err := h.store.Subscribe(ctx, userID, input.ArtistID, input.TierID)
	if err != nil {
		return nil, err
	}

	h.logger.Info("fan subscribed", map[string]interface{}{
		"userId":   sub.UserID,
		"artistId": sub.ArtistID,
		"tierId":   sub.TierID,
	})
	return &Output{Subscription: sub, EventType: models.EventSubscribed}, nil
}
