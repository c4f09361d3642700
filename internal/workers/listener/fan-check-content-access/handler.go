package fancheckcontentaccess

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"fanclub/internal/common/camunda"
	"fanclub/internal/common/errors"
	"fanclub/internal/common/logger"
	"fanclub/internal/models"
	"fanclub/internal/store"
)

const TaskType = "fan-check-content-access"

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
	if input.ContentID == "" && input.ArtistID == "" {
		return nil, errors.NewValidationError("contentId or artistId is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.NewInternalError(err)
	}

	userID := input.UserID
	if userID == "" {
		userID = h.store.CurrentUser().ID
	}
	if _, err := h.store.GetUser(userID); err != nil {
		return nil, err
	}

	out := &Output{UserID: userID}

	if input.ContentID != "" {
		ok, err := h.store.CanAccessContent(userID, input.ContentID)
		if err != nil {
			return nil, err
		}
		out.ContentID = input.ContentID
		out.HasAccess = &ok
	}

	if input.ArtistID != "" {
		if _, err := h.store.GetArtistByID(input.ArtistID); err != nil {
			return nil, err
		}
		out.ArtistID = input.ArtistID
		out.Accessible = contentIDs(h.store.GetAccessibleContent(userID, input.ArtistID))
		out.Locked = contentIDs(h.store.GetLockedContent(userID, input.ArtistID))
	}

	return out, nil
}

func contentIDs(items []models.ExclusiveContent) []string {
	ids := make([]string, 0, len(items))
	for _, c := range items {
		ids = append(ids, c.ID)
	}
	return ids
}
