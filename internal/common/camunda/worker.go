package camunda

import (
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"

	"fanclub/internal/common/config"
)

// HandlerFunc is the callback signature every fanclub worker exposes as Handle.
type HandlerFunc func(worker.JobClient, entities.Job)

// Registration pairs a task type with its handler.
type Registration struct {
	TaskType string
	Handle   HandlerFunc
}

// StartWorker opens a job worker for taskType unless it is disabled. The
// returned worker is nil when nothing was started.
func StartWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handle HandlerFunc, log *zap.Logger) worker.JobWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return nil
	}

	jw := client.NewJobWorker().
		JobType(taskType).
		Handler(worker.JobHandler(handle)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
	return jw
}

// StartAll opens every registration using the per-task settings from cfg.
func StartAll(client zbc.Client, cfg *config.Config, regs []Registration, log *zap.Logger) []worker.JobWorker {
	var started []worker.JobWorker
	for _, r := range regs {
		wcfg := config.GetWorkerConfig(cfg, r.TaskType)
		if jw := StartWorker(client, r.TaskType, wcfg, r.Handle, log); jw != nil {
			started = append(started, jw)
		}
	}
	return started
}
