// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revintel-workers/internal/collaborators/aicontent"
	"revintel-workers/internal/collaborators/competitive"
	"revintel-workers/internal/collaborators/crm"
	"revintel-workers/internal/collaborators/docpublish"
	"revintel-workers/internal/collaborators/marketanalysis"
	"revintel-workers/internal/collaborators/stakeholder"
	"revintel-workers/internal/collaborators/webresearch"
	"revintel-workers/internal/common/config"
	"revintel-workers/internal/common/database"
	"revintel-workers/internal/common/logger"
	"revintel-workers/internal/generation"
	"revintel-workers/internal/store"

	analyzecomplexity "revintel-workers/internal/workers/generation/analyze-complexity"
	generateresource "revintel-workers/internal/workers/generation/generate-resource"
)

// Runs against live PostgreSQL, Redis and Elasticsearch from configs/.
// Set E2E=1 to enable; collaborator services may be absent, in which case
// generation degrades exactly as it would in production.
func requireE2E(t *testing.T) {
	if os.Getenv("E2E") == "" {
		t.Skip("E2E not set; skipping live-infrastructure test")
	}
}

func loadE2EConfig(t *testing.T) *config.Config {
	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.Database.Postgres.Host = "localhost"
	cfg.Database.Redis.Address = "localhost:6379"
	cfg.Database.Elasticsearch.URL = "http://localhost:9200"
	return cfg
}

func TestE2E_ComplexityWorker(t *testing.T) {
	requireE2E(t)

	handler := analyzecomplexity.NewHandler(analyzecomplexity.LoadConfig(), logger.NewTestLogger(t))

	out, err := handler.Execute(context.Background(), &analyzecomplexity.Input{
		ResourceID: "board-presentation",
		CustomerID: "e2e-customer",
		Customer:   generation.CustomerData{CompanyName: "E2E Test Co"},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, out.ComplexityScore)
	assert.Equal(t, "premium", out.RecommendedMethod)
}

func TestE2E_GenerateResourceAgainstLiveStores(t *testing.T) {
	requireE2E(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg := loadE2EConfig(t)
	log := logger.NewTestLogger(t)

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err, "PostgreSQL connection failed")
	require.NoError(t, pg.Ping(ctx))
	defer pg.Close()

	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err, "Redis connection failed")
	require.NoError(t, rdb.Ping(ctx))
	defer rdb.Close()

	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	require.NoError(t, err, "Elasticsearch connection failed")
	require.NoError(t, es.Ping())

	researcher := webresearch.NewClient(&webresearch.Config{
		BaseURL:    cfg.Collaborators.WebResearch.BaseURL,
		APIKey:     cfg.Collaborators.WebResearch.APIKey,
		EngineID:   cfg.Collaborators.WebResearch.EngineID,
		MaxResults: cfg.Collaborators.WebResearch.MaxResults,
		Timeout:    config.GetDuration(cfg.Collaborators.WebResearch.Timeout),
	}, log)
	analyzer := marketanalysis.NewClient(&marketanalysis.Config{
		BaseURL:  cfg.Collaborators.MarketAnalysis.BaseURL,
		APIKey:   cfg.Collaborators.MarketAnalysis.APIKey,
		CacheTTL: time.Duration(cfg.Collaborators.MarketAnalysis.CacheTTL) * time.Second,
		Timeout:  config.GetDuration(cfg.Collaborators.MarketAnalysis.Timeout),
	}, rdb.Client, log)
	scanner := competitive.NewClient(&competitive.Config{
		BaseURL: cfg.Collaborators.Competitive.BaseURL,
		Timeout: config.GetDuration(cfg.Collaborators.Competitive.Timeout),
	}, log)
	profiler := stakeholder.NewClient(&stakeholder.Config{
		BaseURL: cfg.Collaborators.Stakeholder.BaseURL,
		Timeout: config.GetDuration(cfg.Collaborators.Stakeholder.Timeout),
	}, log)
	publisher := docpublish.NewClient(&docpublish.Config{
		BaseURL: cfg.Collaborators.DocPublish.BaseURL,
		APIKey:  cfg.Collaborators.DocPublish.APIKey,
		Timeout: config.GetDuration(cfg.Collaborators.DocPublish.Timeout),
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
		Timeout: config.GetDuration(cfg.Collaborators.CRM.Timeout),
	}, log)

	caps := generation.Capabilities{
		Competitive: scanner.Probe(ctx),
		Stakeholder: profiler.Probe(ctx),
		Publishing:  publisher.IsServiceAvailable(ctx),
	}
	t.Logf("capabilities: competitive=%v stakeholder=%v publishing=%v",
		caps.Competitive, caps.Stakeholder, caps.Publishing)

	enhanced := generation.NewEnhancedGenerator(researcher, analyzer, scanner, profiler, composer, caps, log)
	premium := generation.NewPremiumGenerator(enhanced, publisher, caps, log)
	svc := generation.NewService(generation.NewTemplateGenerator(), enhanced, premium, nil, log)

	history := store.NewHistoryStore(pg.DB, cfg.Generation.HistoryTable, log)
	indexer := store.NewResourceIndexer(es.Client, cfg.Generation.ResourceIndex, log)

	handler := generateresource.NewHandler(generateresource.HandlerOptions{
		Config:  generateresource.LoadConfig(),
		Service: svc,
		CRM:     crmClient,
		History: history,
		Index:   indexer,
		Logger:  log,
	})

	// Template tier requires no collaborators, so this succeeds even with
	// every external service down.
	out, err := handler.Execute(ctx, &generateresource.Input{
		ResourceID: "empathy-map",
		CustomerID: "e2e-customer",
		Customer:   generation.CustomerData{CompanyName: "E2E Test Co"},
	})
	require.NoError(t, err)
	assert.Equal(t, "template", out.GenerationMethod)
	assert.NotEmpty(t, out.Content)
	assert.NotEmpty(t, out.RequestID)

	records, err := history.RecentForCustomer(ctx, "e2e-customer", 5)
	require.NoError(t, err)
	require.NotEmpty(t, records, "history row should land for the generation")
	assert.Equal(t, out.RequestID, records[0].RequestID)
}
