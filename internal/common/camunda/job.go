package camunda

import (
	"context"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"fanclub/internal/common/errors"
	"fanclub/internal/common/logger"
	"fanclub/internal/common/metrics"
	"fanclub/internal/common/validation"
)

// reportTimeout bounds the broker commands that report a job's outcome. They
// run on their own context so a job that hit its execution timeout can still
// be failed or thrown.
const reportTimeout = 10 * time.Second

// Runner wraps a worker's Execute with the job bookkeeping every fanclub
// worker shares: active/completed/failed metrics, a per-job timeout,
// completion with output variables, and BPMN error handling.
type Runner struct {
	taskType string
	timeout  time.Duration
	logger   logger.Logger
	errors   *errors.ErrorHandler
}

func NewRunner(taskType string, timeout time.Duration, log logger.Logger) *Runner {
	return &Runner{
		taskType: taskType,
		timeout:  timeout,
		logger:   log,
		errors:   errors.NewErrorHandler(log),
	}
}

// Run executes exec for job and reports the outcome to the broker.
func (r *Runner) Run(client worker.JobClient, job entities.Job, exec func(ctx context.Context) (interface{}, error)) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(r.taskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(r.taskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	r.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	output, err := exec(ctx)

	sendCtx, cancelSend := context.WithTimeout(context.Background(), reportTimeout)
	defer cancelSend()

	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(r.taskType, string(errors.CodeOf(err))).Inc()
		r.errors.HandleJobError(sendCtx, client, job, err)
		return
	}

	if err := CompleteJob(sendCtx, client, job, output); err != nil {
		r.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(r.taskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(r.taskType).Observe(time.Since(startTime).Seconds())
	r.logger.Info("job completed", map[string]interface{}{
		"jobKey":   job.GetKey(),
		"duration": time.Since(startTime).String(),
	})
}

// CompleteJob completes job with output as its variables.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.GetKey()).
		VariablesFromObject(output)
	if err != nil {
		return err
	}
	_, err = cmd.Send(ctx)
	return err
}

// DecodeVariables validates the job variables against schema and decodes
// them into out.
func DecodeVariables(job entities.Job, schema validation.JSONSchema, out interface{}) error {
	variables, err := job.GetVariablesAsMap()
	if err != nil {
		return errors.NewInputParsingError(err)
	}

	result := validation.ValidateInput(variables, schema)
	if !result.Valid {
		return errors.NewValidationError(strings.Join(result.GetErrorMessages(), "; "))
	}

	if err := job.GetVariablesAs(out); err != nil {
		return errors.NewInputParsingError(err)
	}
	return nil
}
