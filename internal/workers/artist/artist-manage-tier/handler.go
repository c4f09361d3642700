package artistmanagetier

import (
	"context"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"fanclub/internal/common/camunda"
	"fanclub/internal/common/errors"
	"fanclub/internal/common/logger"
	"fanclub/internal/models"
	"fanclub/internal/store"
)

const TaskType = "artist-manage-tier"

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
	switch input.Action {
	case ActionCreate:
		return h.create(ctx, input)
	case ActionUpdate:
		return h.update(ctx, input)
	case ActionDelete:
		return h.delete(ctx, input)
	default:
		return nil, errors.NewValidationError(fmt.Sprintf("unknown action %q", input.Action))
	}
}

func (h *Handler) create(ctx context.Context, input *Input) (*Output, error) {
	if input.ArtistID == "" {
		return nil, errors.NewValidationError("artistId is required to create a tier")
	}
	if input.Name == nil || input.PriceMonthly == nil {
		return nil, errors.NewValidationError("name and priceMonthly are required to create a tier")
	}

	tier := models.Tier{
		ArtistID:       input.ArtistID,
		Name:           *input.Name,
		PriceMonthly:   *input.PriceMonthly,
		Features:       input.Features,
		ContentPreview: input.ContentPreview,
	}
	if input.Tagline != nil {
		tier.Tagline = *input.Tagline
	}
	if input.Description != nil {
		tier.Description = *input.Description
	}
	if input.Highlight != nil {
		tier.Highlight = *input.Highlight
	}

	created, err := h.store.CreateTier(ctx, tier)
	if err != nil {
		return nil, err
	}
	h.logger.Info("tier created", map[string]interface{}{"tierId": created.ID, "artistId": created.ArtistID})
	return h.output(ActionCreate, created.ArtistID, created.ID, &created), nil
}

func (h *Handler) update(ctx context.Context, input *Input) (*Output, error) {
	if input.TierID == "" {
		return nil, errors.NewValidationError("tierId is required to update a tier")
	}
	if err := h.checkOwner(input); err != nil {
		return nil, err
	}

	updated, err := h.store.UpdateTier(ctx, input.TierID, models.TierUpdate{
		Name:           input.Name,
		PriceMonthly:   input.PriceMonthly,
		Tagline:        input.Tagline,
		Description:    input.Description,
		Features:       input.Features,
		ContentPreview: input.ContentPreview,
		Highlight:      input.Highlight,
	})
	if err != nil {
		return nil, err
	}
	h.logger.Info("tier updated", map[string]interface{}{"tierId": updated.ID})
	return h.output(ActionUpdate, updated.ArtistID, updated.ID, &updated), nil
}

func (h *Handler) delete(ctx context.Context, input *Input) (*Output, error) {
	if input.TierID == "" {
		return nil, errors.NewValidationError("tierId is required to delete a tier")
	}
	tier, err := h.store.GetTierByID(input.TierID)
	if err != nil {
		return nil, err
	}
	if input.ArtistID != "" && tier.ArtistID != input.ArtistID {
		return nil, errors.NewTierArtistMismatchError(input.TierID, input.ArtistID)
	}

	if err := h.store.DeleteTier(ctx, input.TierID); err != nil {
		return nil, err
	}
	h.logger.Info("tier deleted", map[string]interface{}{"tierId": input.TierID})
	return h.output(ActionDelete, tier.ArtistID, input.TierID, nil), nil
}

// checkOwner rejects edits where the job names an artist that does not own
// the tier.
func (h *Handler) checkOwner(input *Input) error {
	if input.ArtistID == "" {
		return nil
	}
	tier, err := h.store.GetTierByID(input.TierID)
	if err != nil {
		return err
	}
	if tier.ArtistID != input.ArtistID {
		return errors.NewTierArtistMismatchError(input.TierID, input.ArtistID)
	}
	return nil
}

func (h *Handler) output(action Action, artistID, tierID string, tier *models.Tier) *Output {
	return &Output{
		Action:    action,
		TierID:    tierID,
		Tier:      tier,
		TierCount: len(h.store.GetTiersForArtist(artistID)),
	}
}
