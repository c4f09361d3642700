package fannotifysubscription

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"fanclub/internal/common/camunda"
	"fanclub/internal/common/errors"
	"fanclub/internal/common/logger"
	"fanclub/internal/models"
	"fanclub/internal/notify"
	"fanclub/internal/store"
)

const TaskType = "fan-notify-subscription"

type Handler struct {
	config   *Config
	store    *store.Store
	notifier *notify.Notifier
	runner   *camunda.Runner
	logger   logger.Logger
}

func NewHandler(config *Config, st *store.Store, notifier *notify.Notifier, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		store:    st,
		notifier: notifier,
		runner:   camunda.NewRunner(TaskType, config.Timeout, log),
		logger:   log,
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

// Execute resolves the names behind the ids and hands the event to the
// notifier. Explicit userId/artistId/tierId win over the subscription
// variable.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	event, err := h.buildEvent(input)
	if err != nil {
		return nil, err
	}

	res, err := h.notifier.Notify(ctx, event)
	if err != nil {
		return nil, err
	}
	return &Output{Notification: *res}, nil
}

func (h *Handler) buildEvent(input *Input) (models.SubscriptionEvent, error) {
	userID, artistID, tierID := input.UserID, input.ArtistID, input.TierID
	if sub := input.Subscription; sub != nil {
		if userID == "" {
			userID = sub.UserID
		}
		if artistID == "" {
			artistID = sub.ArtistID
		}
		if tierID == "" {
			tierID = sub.TierID
		}
	}
	if userID == "" || artistID == "" {
		return models.SubscriptionEvent{}, errors.NewValidationError("userId and artistId are required")
	}

	user, err := h.store.GetUser(userID)
	if err != nil {
		return models.SubscriptionEvent{}, err
	}
	artist, err := h.store.GetArtistByID(artistID)
	if err != nil {
		return models.SubscriptionEvent{}, err
	}

	event := models.SubscriptionEvent{
		Type:       input.EventType,
		UserID:     user.ID,
		UserName:   user.Name,
		UserEmail:  user.Email,
		ArtistID:   artist.ID,
		ArtistName: artist.Name,
	}
	if tierID != "" {
		// A tier deleted after cancellation still yields a notification.
		if tier, err := h.store.GetTierByID(tierID); err == nil {
			event.TierID = tier.ID
			event.TierName = tier.Name
			event.Price = tier.PriceMonthly
		} else if input.EventType != models.EventCanceled {
			return models.SubscriptionEvent{}, err
		}
	}
	return event, nil
}
