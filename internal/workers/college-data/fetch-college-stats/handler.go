// internal/workers/college-data/fetch-college-stats/handler.go
package fetchcollegestats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"college-match-workers/internal/colleges"
	"college-match-workers/internal/common/logger"
	"college-match-workers/internal/common/metrics"
	"college-match-workers/internal/scoring"
)

const (
	TaskType = "fetch-college-stats"
)

var (
	ErrCollegeNotFound      = errors.New("COLLEGE_NOT_FOUND")
	ErrQueryExecutionFailed = errors.New("QUERY_EXECUTION_FAILED")
	ErrQueryTimeout         = errors.New("QUERY_TIMEOUT")
)

// Define interfaces for mocking
type StatsService interface {
	Stats(ctx context.Context, name string) (*scoring.UniversityData, error)
}

type RankingService interface {
	MajorRanking(ctx context.Context, collegeName, major string) (*int, error)
}

type Handler struct {
	config   *Config
	provider StatsService
	rankings RankingService
	logger   logger.Logger
}

func NewHandler(config *Config, provider StatsService, rankings RankingService, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		provider: provider,
		rankings: rankings,
		logger:   log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		h.failJob(client, job, h.mapErrorToCode(err), err.Error(), h.getRetryCount(err))
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if len(input.CollegeNames) == 0 {
		return nil, fmt.Errorf("%w: no college names provided", ErrCollegeNotFound)
	}

	universities := make([]scoring.UniversityData, 0, len(input.CollegeNames))
	var missing []string

	for _, name := range input.CollegeNames {
		u, err := h.provider.Stats(ctx, name)
		switch {
		case err == nil:
			h.enrichMajorData(ctx, u, input.IntendedMajor)
			universities = append(universities, *u)
		case errors.Is(err, colleges.ErrNotFound):
			missing = append(missing, name)
		default:
			if ctx.Err() == context.DeadlineExceeded {
				return nil, fmt.Errorf("%w: %v", ErrQueryTimeout, err)
			}
			return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
		}
	}

	if len(universities) == 0 {
		return nil, fmt.Errorf("%w: none of %d requested colleges found", ErrCollegeNotFound, len(input.CollegeNames))
	}

	h.logger.Info("fetched college stats", map[string]interface{}{
		"requested": len(input.CollegeNames),
		"fetched":   len(universities),
		"missing":   len(missing),
	})

	return &Output{
		Universities:    universities,
		MissingColleges: missing,
		FetchedCount:    len(universities),
	}, nil
}

// enrichMajorData annotates the record with the student's intended major and
// its program ranking when we track one. A missing ranking is not an error.
func (h *Handler) enrichMajorData(ctx context.Context, u *scoring.UniversityData, major string) {
	if major == "" || h.rankings == nil {
		return
	}

	u.StudentMajor = major
	rank, err := h.rankings.MajorRanking(ctx, u.Name, major)
	if err != nil {
		h.logger.Warn("major ranking lookup failed", map[string]interface{}{
			"college": u.Name,
			"major":   major,
			"error":   err.Error(),
		})
		return
	}
	if rank != nil {
		u.MajorRanking = rank
	}
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
	if errors.Is(err, ErrCollegeNotFound) {
		return "COLLEGE_NOT_FOUND"
	} else if errors.Is(err, ErrQueryTimeout) {
		return "QUERY_TIMEOUT"
	} else if errors.Is(err, ErrQueryExecutionFailed) {
		return "QUERY_EXECUTION_FAILED"
	}
	return "UNKNOWN_ERROR"
}

func (h *Handler) getRetryCount(err error) int32 {
	if errors.Is(err, ErrQueryExecutionFailed) {
		return 3
	} else if errors.Is(err, ErrQueryTimeout) {
		return 2
	}
	return 0
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
