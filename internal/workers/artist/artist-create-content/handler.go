package artistcreatecontent

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"fanclub/internal/common/camunda"
	"fanclub/internal/common/logger"
	"fanclub/internal/models"
	"fanclub/internal/store"
)

const TaskType = "artist-create-content"

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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	created, err := h.store.CreateContent(ctx, models.ExclusiveContent{
		ArtistID:     input.ArtistID,
		Type:         input.Type,
		Title:        input.Title,
		Description:  input.Description,
		TierAccess:   input.TierAccess,
		ThumbnailURL: input.ThumbnailURL,
		Content:      input.Content,
	})
	if err != nil {
		return nil, err
	}

	eligible := 0
	for _, sub := range h.store.ListSubscribers(created.ArtistID) {
		if sub.IsActive() && created.GrantsTier(sub.TierID) {
			eligible++
		}
	}

	h.logger.Info("content created", map[string]interface{}{
		"contentId": created.ID,
		"artistId":  created.ArtistID,
		"type":      string(created.Type),
		"eligible":  eligible,
	})
	return &Output{Content: created, EligibleSubscribers: eligible}, nil
}
