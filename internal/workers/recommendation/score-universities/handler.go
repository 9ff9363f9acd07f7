// internal/workers/recommendation/score-universities/handler.go
package scoreuniversities

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"college-match-workers/internal/common/logger"
	"college-match-workers/internal/common/metrics"
	"college-match-workers/internal/scoring"
)

const (
	TaskType = "score-universities"
)

var (
	ErrProfileValidationFailed = errors.New("PROFILE_VALIDATION_FAILED")
	ErrUniversityDataInvalid   = errors.New("UNIVERSITY_DATA_INVALID")
)

type Handler struct {
	config *Config
	scorer *scoring.MatchScorer
	logger logger.Logger
}

func NewHandler(config *Config, scorer *scoring.MatchScorer, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		scorer: scorer,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, h.mapErrorToCode(err), err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if err := input.StudentProfile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileValidationFailed, err)
	}
	for i := range input.Universities {
		if err := input.Universities[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUniversityDataInvalid, err)
		}
	}

	scored := h.scorer.ScoreUniversities(&input.StudentProfile, input.Universities)

	results := make([]map[string]interface{}, 0, len(scored))
	for i := range scored {
		results = append(results, scored[i].ToMap())
		metrics.MatchScoreDistribution.Observe(scored[i].MatchScore)
	}
	metrics.UniversitiesScored.Add(float64(len(scored)))

	h.logger.Info("scored universities", map[string]interface{}{
		"count": len(scored),
	})

	return &Output{
		ScoredUniversities: results,
		ScoredCount:        len(results),
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, retries int32) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
		"retries":      retries,
	})
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) mapErrorToCode(err error) string {
	if errors.Is(err, ErrProfileValidationFailed) {
		return "PROFILE_VALIDATION_FAILED"
	} else if errors.Is(err, ErrUniversityDataInvalid) {
		return "UNIVERSITY_DATA_INVALID"
	}
	return "SCORING_FAILED"
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
