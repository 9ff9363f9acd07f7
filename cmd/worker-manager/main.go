// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"college-match-workers/internal/colleges"
	"college-match-workers/internal/common/camunda"
	"college-match-workers/internal/common/config"
	"college-match-workers/internal/common/database"
	"college-match-workers/internal/common/logger"
	"college-match-workers/internal/common/observability"
	"college-match-workers/internal/scoring"

	// Recommendation Workers (2)
	su "college-match-workers/internal/workers/recommendation/score-universities"
	sr "college-match-workers/internal/workers/recommendation/select-recommendations"

	// College Data Workers (2)
	fcs "college-match-workers/internal/workers/college-data/fetch-college-stats"
	srch "college-match-workers/internal/workers/college-data/search-colleges"

	// Communication Workers (1)
	sln "college-match-workers/internal/workers/communication/send-list-notification"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// buildScoringConfig overlays operator-tunable values from the config file
// onto the engine defaults. Zero values mean "keep the default".
func buildScoringConfig(cfg config.ScoringConfig) scoring.Config {
	sc := scoring.DefaultConfig()
	if cfg.MinMatchThreshold > 0 {
		sc.MinMatchThreshold = cfg.MinMatchThreshold
	}
	if cfg.SafetyThreshold > 0 {
		sc.SafetyMatchThreshold = cfg.SafetyThreshold
	}
	if cfg.DefaultReachCount > 0 || cfg.DefaultTargetCount > 0 || cfg.DefaultSafetyCount > 0 {
		sc.DefaultCounts = scoring.LabelCounts{
			Reach:  cfg.DefaultReachCount,
			Target: cfg.DefaultTargetCount,
			Safety: cfg.DefaultSafetyCount,
		}
	}
	return sc
}

func workerTimeout(wcfg config.WorkerConfig) time.Duration {
	if wcfg.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(wcfg.Timeout) * time.Millisecond
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         30 * time.Second,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- Build Domain Services ---
	scoringCfg := buildScoringConfig(cfg.Scoring)
	scorer := scoring.NewMatchScorer(scoringCfg)

	collegeRepo := colleges.NewRepository(pg.DB)
	statsCache := colleges.NewStatsCache(redisClient.Client, time.Duration(cfg.Database.Redis.TTL)*time.Second)
	scorecard := colleges.NewScorecardClient(
		cfg.APIs.Scorecard.BaseURL,
		cfg.APIs.Scorecard.APIKey,
		time.Duration(cfg.APIs.Scorecard.Timeout)*time.Millisecond,
	)
	statsProvider := colleges.NewStatsProvider(collegeRepo, statsCache, scorecard, log)

	zapLog.Info("Domain services initialized")

	var activeWorkers []*camunda.CamundaWorker

	// --- Recommendation Workers (2) ---
	if cfg.Workers[su.TaskType].Enabled {
		handler := su.NewHandler(
			&su.Config{
				Timeout: workerTimeout(cfg.Workers[su.TaskType]),
			},
			scorer, log,
		)
		activeWorkers = append(activeWorkers, startWorker(camundaClient, su.TaskType, cfg.Workers[su.TaskType], handler.Handle, obs, zapLog))
	}

	if cfg.Workers[sr.TaskType].Enabled {
		handler := sr.NewHandler(
			&sr.Config{
				Timeout: workerTimeout(cfg.Workers[sr.TaskType]),
			},
			scorer, log,
		)
		activeWorkers = append(activeWorkers, startWorker(camundaClient, sr.TaskType, cfg.Workers[sr.TaskType], handler.Handle, obs, zapLog))
	}

	// --- College Data Workers (2) ---
	if cfg.Workers[fcs.TaskType].Enabled {
		handler := fcs.NewHandler(
			&fcs.Config{
				Timeout: workerTimeout(cfg.Workers[fcs.TaskType]),
			},
			statsProvider, collegeRepo, log,
		)
		activeWorkers = append(activeWorkers, startWorker(camundaClient, fcs.TaskType, cfg.Workers[fcs.TaskType], handler.Handle, obs, zapLog))
	}

	if cfg.Workers[srch.TaskType].Enabled {
		handler := srch.NewHandler(
			&srch.Config{
				Index:   "colleges",
				Timeout: workerTimeout(cfg.Workers[srch.TaskType]),
			},
			esClient.Client, log,
		)
		activeWorkers = append(activeWorkers, startWorker(camundaClient, srch.TaskType, cfg.Workers[srch.TaskType], handler.Handle, obs, zapLog))
	}

	// --- Communication Workers (1) ---
	if cfg.Workers[sln.TaskType].Enabled {
		handler, err := sln.NewHandler(
			&sln.Config{
				Timeout:      workerTimeout(cfg.Workers[sln.TaskType]),
				AWSRegion:    cfg.Notifications.AWS.Region,
				FromEmail:    cfg.Notifications.Email.FromEmail,
				EmailEnabled: cfg.Notifications.Email.Enabled,
				SMSEnabled:   cfg.Notifications.SMS.Enabled,
			},
			log,
		)
		if err != nil {
			zapLog.Fatal("failed to create send-list-notification handler", zap.Error(err))
		}
		activeWorkers = append(activeWorkers, startWorker(camundaClient, sln.TaskType, cfg.Workers[sln.TaskType], handler.Handle, obs, zapLog))
	}

	zapLog.Info("All workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := camundaClient.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "not ready",
					"error":  err.Error(),
				})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	for _, w := range activeWorkers {
		w.Close()
	}

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client *camunda.Client, taskType string, wcfg config.WorkerConfig, handler camunda.HandlerFunc, obs *observability.Observability, log *zap.Logger) *camunda.CamundaWorker {
	maxJobs := wcfg.MaxJobsActive
	if maxJobs <= 0 {
		maxJobs = 32
	}

	return camunda.NewWorker(client.GetClient(), taskType, maxJobs, workerTimeout(wcfg), handler, obs, log)
}
