// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"

	"college-match-workers/internal/common/observability"
)

// HandlerFunc is the job callback signature shared by all worker packages.
type HandlerFunc func(client worker.JobClient, job entities.Job)

// CamundaWorker owns one open job subscription for a task type.
type CamundaWorker struct {
	worker   worker.JobWorker
	logger   *zap.Logger
	taskType string
}

func NewWorker(
	client zbc.Client,
	taskType string,
	maxJobsActive int,
	timeout time.Duration,
	handler HandlerFunc,
	obs *observability.Observability,
	logger *zap.Logger,
) *CamundaWorker {
	wrapped := handler
	if obs != nil {
		wrapped = func(jobClient worker.JobClient, job entities.Job) {
			ctx := context.Background()
			obs.RecordJobReceived(ctx, taskType)
			start := time.Now()
			handler(jobClient, job)
			obs.RecordHandlerDuration(ctx, taskType, time.Since(start))
		}
	}

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(worker.JobHandler(wrapped)).
		MaxJobsActive(maxJobsActive).
		Timeout(timeout).
		Open()

	logger.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", maxJobsActive),
		zap.Duration("timeout", timeout),
	)

	return &CamundaWorker{
		worker:   jobWorker,
		logger:   logger,
		taskType: taskType,
	}
}

// Close drains and closes the job subscription.
func (w *CamundaWorker) Close() {
	w.logger.Info("stopping worker", zap.String("taskType", w.taskType))
	w.worker.Close()
}
