package artistcomputeanalytics

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"fanclub/internal/common/cache"
	"fanclub/internal/common/camunda"
	"fanclub/internal/common/logger"
	"fanclub/internal/store"
)

const TaskType = "artist-compute-analytics"

type Handler struct {
	config *Config
	store  *store.Store
	cache  *cache.AnalyticsCache
	runner *camunda.Runner
	logger logger.Logger
}

// NewHandler accepts a nil cache when Redis is disabled.
func NewHandler(config *Config, st *store.Store, ac *cache.AnalyticsCache, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		store:  st,
		cache:  ac,
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
	refresh := input.Refresh || h.config.ForceRefresh
	a, cached, err := h.cache.GetOrCompute(ctx, h.store, input.ArtistID, refresh, h.logger)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("analytics computed", map[string]interface{}{
		"artistId": a.ArtistID,
		"cached":   cached,
		"mrr":      a.MRR,
	})
	return &Output{Analytics: *a, Cached: cached}, nil
}
