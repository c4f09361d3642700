package fansearchartists

import (
	"context"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"fanclub/internal/common/camunda"
	"fanclub/internal/common/logger"
	"fanclub/internal/search"
)

const TaskType = "fan-search-artists"

type Handler struct {
	config   *Config
	searcher search.Searcher
	runner   *camunda.Runner
	logger   logger.Logger
}

func NewHandler(config *Config, searcher search.Searcher, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		searcher: searcher,
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	limit := input.Limit
	if limit <= 0 || limit > h.config.MaxResults {
		limit = h.config.MaxResults
	}

	artists, err := h.searcher.Search(ctx, strings.TrimSpace(input.Query), limit)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("artist search", map[string]interface{}{
		"query":   input.Query,
		"results": len(artists),
	})
	return &Output{Artists: artists, Total: len(artists)}, nil
}
