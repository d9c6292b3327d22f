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

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"revintel-workers/internal/collaborators/aicontent"
	"revintel-workers/internal/collaborators/competitive"
	"revintel-workers/internal/collaborators/crm"
	"revintel-workers/internal/collaborators/docpublish"
	"revintel-workers/internal/collaborators/marketanalysis"
	"revintel-workers/internal/collaborators/stakeholder"
	"revintel-workers/internal/collaborators/webresearch"
	"revintel-workers/internal/common/aws"
	"revintel-workers/internal/common/config"
	"revintel-workers/internal/common/database"
	"revintel-workers/internal/common/logger"
	"revintel-workers/internal/common/observability"
	"revintel-workers/internal/events"
	"revintel-workers/internal/generation"
	"revintel-workers/internal/notify"
	"revintel-workers/internal/store"
	"revintel-workers/pkg/registry"

	ac "revintel-workers/internal/workers/generation/analyze-complexity"
	gr "revintel-workers/internal/workers/generation/generate-resource"
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
	var zeebeClient zbc.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
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
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Collaborator Clients ---
	researcher := webresearch.NewClient(&webresearch.Config{
		BaseURL:    cfg.Collaborators.WebResearch.BaseURL,
		APIKey:     cfg.Collaborators.WebResearch.APIKey,
		EngineID:   cfg.Collaborators.WebResearch.EngineID,
		MaxResults: cfg.Collaborators.WebResearch.MaxResults,
		Timeout:    time.Duration(cfg.Collaborators.WebResearch.Timeout) * time.Millisecond,
	}, log)

	analyzer := marketanalysis.NewClient(&marketanalysis.Config{
		BaseURL:  cfg.Collaborators.MarketAnalysis.BaseURL,
		APIKey:   cfg.Collaborators.MarketAnalysis.APIKey,
		CacheTTL: time.Duration(cfg.Collaborators.MarketAnalysis.CacheTTL) * time.Second,
		Timeout:  time.Duration(cfg.Collaborators.MarketAnalysis.Timeout) * time.Millisecond,
	}, redis.Client, log)

	scanner := competitive.NewClient(&competitive.Config{
		BaseURL: cfg.Collaborators.Competitive.BaseURL,
		APIKey:  cfg.Collaborators.Competitive.APIKey,
		Timeout: time.Duration(cfg.Collaborators.Competitive.Timeout) * time.Millisecond,
	}, log)

	profiler := stakeholder.NewClient(&stakeholder.Config{
		BaseURL: cfg.Collaborators.Stakeholder.BaseURL,
		APIKey:  cfg.Collaborators.Stakeholder.APIKey,
		Timeout: time.Duration(cfg.Collaborators.Stakeholder.Timeout) * time.Millisecond,
	}, log)

	publisher := docpublish.NewClient(&docpublish.Config{
		BaseURL: cfg.Collaborators.DocPublish.BaseURL,
		APIKey:  cfg.Collaborators.DocPublish.APIKey,
		Timeout: time.Duration(cfg.Collaborators.DocPublish.Timeout) * time.Millisecond,
	}, log)

	composer := aicontent.NewComposer(&aicontent.Config{
		APIKey:      cfg.Collaborators.Anthropic.APIKey,
		Model:       cfg.Collaborators.Anthropic.Model,
		MaxTokens:   cfg.Collaborators.Anthropic.MaxTokens,
		Temperature: cfg.Collaborators.Anthropic.Temperature,
	}, log)

	crmClient := crm.NewClient(&crm.Config{
		BaseURL: cfg.Collaborators.CRM.BaseURL,
		APIKey:  cfg.Collaborators.CRM.APIKey,
		BaseID:  cfg.Collaborators.CRM.BaseID,
		Timeout: time.Duration(cfg.Collaborators.CRM.Timeout) * time.Millisecond,
	}, log)

	// Optional services are probed once at startup. A service that is down
	// now is treated as absent for the life of this process; restart to
	// pick it back up.
	caps := generation.Capabilities{
		Competitive: scanner.Probe(ctx),
		Stakeholder: profiler.Probe(ctx),
		Publishing:  publisher.IsServiceAvailable(ctx),
	}
	zapLog.Info("Collaborator capabilities probed",
		zap.Bool("competitive", caps.Competitive),
		zap.Bool("stakeholder", caps.Stakeholder),
		zap.Bool("publishing", caps.Publishing),
	)

	// --- Init Event Publisher & Mailer ---
	var emitter generation.Emitter
	if cfg.Events.SNS.Enabled {
		snsClient, err := aws.NewSNSClient(ctx, cfg.Events.SNS.Region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}
		emitter = events.NewSNSEmitter(snsClient, cfg.Events.SNS.TopicARN, log)
		zapLog.Info("SNS event publisher initialized", zap.String("topic", cfg.Events.SNS.TopicARN))
	}

	var mailer gr.CompletionMailer
	if cfg.Notifications.Email.Enabled {
		sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
		mailer = notify.NewMailer(sesClient, cfg.Notifications.Email.FromEmail, log)
		zapLog.Info("SES completion mailer initialized")
	}

	// --- Init Request Registry ---
	reg, err := registry.Load(cfg.Generation.RegistryPath)
	if err != nil {
		zapLog.Fatal("request registry load failed", zap.Error(err))
	}

	// --- Assemble Generation Service ---
	enhanced := generation.NewEnhancedGenerator(researcher, analyzer, scanner, profiler, composer, caps, log)
	premium := generation.NewPremiumGenerator(enhanced, publisher, caps, log)
	svc := generation.NewService(generation.NewTemplateGenerator(), enhanced, premium, emitter, log)

	history := store.NewHistoryStore(pg.DB, cfg.Generation.HistoryTable, log)
	indexer := store.NewResourceIndexer(esClient.Client, cfg.Generation.ResourceIndex, log)

	zapLog.Info("Generation service assembled")

	// --- Register Workers ---
	if cfg.Workers[ac.TaskType].Enabled {
		handler := ac.NewHandler(
			&ac.Config{
				Timeout: time.Duration(cfg.Workers[ac.TaskType].Timeout) * time.Millisecond,
				Enabled: true,
			},
			log,
		)
		startWorker(zeebeClient, ac.TaskType, cfg.Workers[ac.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[gr.TaskType].Enabled {
		handler := gr.NewHandler(gr.HandlerOptions{
			Config: &gr.Config{
				Timeout:        time.Duration(cfg.Workers[gr.TaskType].Timeout) * time.Millisecond,
				Enabled:        true,
				HistoryEnabled: true,
				IndexEnabled:   true,
				EmailEnabled:   cfg.Notifications.Email.Enabled,
				CRMEnabled:     cfg.Collaborators.CRM.BaseURL != "",
			},
			Service:   svc,
			Validator: reg,
			CRM:       crmClient,
			History:   history,
			Index:     indexer,
			Mailer:    mailer,
			Logger:    log,
		})
		startWorker(zeebeClient, gr.TaskType, cfg.Workers[gr.TaskType], handler.Handle, zapLog)
	}

	zapLog.Info("All workers registered successfully")

	// --- Health & Metrics Server ---
	healthMux := http.NewServeMux()
	healthMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	healthMux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "ready",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	healthMux.Handle("/metrics", promhttp.Handler())
	healthServer := &http.Server{Addr: ":8080", Handler: healthMux}
	go func() {
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down health server", zap.Error(err))
	}

	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
