// internal/workers/recommendation/select-recommendations/handler.go
package selectrecommendations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"college-match-workers/internal/common/logger"
	"college-match-workers/internal/common/metrics"
	"college-match-workers/internal/scoring"
)

const (
	TaskType = "select-recommendations"
)

var (
	ErrProfileValidationFailed  = errors.New("PROFILE_VALIDATION_FAILED")
	ErrInvalidLabelDistribution = errors.New("INVALID_LABEL_DISTRIBUTION")
	ErrNoCandidatesAvailable    = errors.New("NO_CANDIDATES_AVAILABLE")
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
	if input.LabelCounts != nil {
		if err := validateCounts(input.LabelCounts); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLabelDistribution, err)
		}
	}
	if len(input.Universities) == 0 {
		return nil, ErrNoCandidatesAvailable
	}

	selected := h.scorer.SelectRecommendations(&input.StudentProfile, input.Universities, input.LabelCounts)

	recommendations := make([]map[string]interface{}, 0, len(selected))
	distribution := map[string]int{"Reach": 0, "Target": 0, "Safety": 0}
	for i := range selected {
		recommendations = append(recommendations, selected[i].ToMap())
		label := string(selected[i].Label)
		distribution[label]++
		metrics.RecommendationsSelected.WithLabelValues(label).Inc()
	}

	runID := uuid.New().String()
	h.logger.Info("selected recommendations", map[string]interface{}{
		"runId":      runID,
		"candidates": len(input.Universities),
		"selected":   len(recommendations),
	})

	return &Output{
		RecommendationRunID: runID,
		Recommendations:     recommendations,
		LabelDistribution:   distribution,
		GeneratedAt:         time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func validateCounts(counts *scoring.LabelCounts) error {
	if counts.Reach < 0 || counts.Target < 0 || counts.Safety < 0 {
		return fmt.Errorf("counts must be non-negative: %+v", *counts)
	}
	if counts.Total() == 0 {
		return errors.New("at least one recommendation must be requested")
	}
	return nil
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
	} else if errors.Is(err, ErrInvalidLabelDistribution) {
		return "INVALID_LABEL_DISTRIBUTION"
	} else if errors.Is(err, ErrNoCandidatesAvailable) {
		return "NO_CANDIDATES_AVAILABLE"
	}
	return "SCORING_FAILED"
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
