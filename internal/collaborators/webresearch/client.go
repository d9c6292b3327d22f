// internal/collaborators/webresearch/client.go
package webresearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"revintel-workers/internal/common/errors"
	"revintel-workers/internal/common/logger"
	"revintel-workers/internal/generation"
)

// Config holds the search API settings.
type Config struct {
	BaseURL    string
	APIKey     string
	EngineID   string
	MaxResults int
	Timeout    time.Duration
}

// Client queries a web search API for product research. One call per query
// topic; the bundle reports per-query success and failure counts. The call
// as a whole errors only when every query failed, which the enhanced tier
// treats as an escalation.
type Client struct {
	config *Config
	client *http.Client
	logger logger.Logger
}

func NewClient(config *Config, log logger.Logger) *Client {
	if config.MaxResults <= 0 {
		config.MaxResults = 5
	}
	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: log.With(map[string]interface{}{"collaborator": "web_research"}),
	}
}

func (c *Client) ConductProductResearch(ctx context.Context, in generation.ResearchInput, depth generation.ResearchDepth) (*generation.ResearchBundle, error) {
	queries := buildQueries(in, depth)

	bundle := &generation.ResearchBundle{Real: true, Data: []generation.ResearchFinding{}}
	var lastErr error
	for _, q := range queries {
		findings, err := c.search(ctx, q)
		if err != nil {
			bundle.Failed++
			lastErr = err
			c.logger.WithError(err).Warn("Research query failed", map[string]interface{}{
				"topic": q.topic,
			})
			continue
		}
		bundle.Successful++
		bundle.Data = append(bundle.Data, findings...)
	}

	if bundle.Successful == 0 {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewWebResearchTimeoutError(in.ProductName)
		}
		return nil, fmt.Errorf("all %d research queries failed: %w", len(queries), lastErr)
	}
	return bundle, nil
}

type researchQuery struct {
	topic string
	terms string
}

// buildQueries expands the product description into topic queries. Depth
// controls how many angles are researched, not how many results per angle.
func buildQueries(in generation.ResearchInput, depth generation.ResearchDepth) []researchQuery {
	subject := in.ProductName
	if subject == "" {
		subject = in.BusinessType
	}
	if subject == "" {
		subject = "b2b saas product"
	}

	queries := []researchQuery{
		{topic: "market", terms: subject + " market size growth"},
	}
	if depth == generation.DepthMedium || depth == generation.DepthDeep {
		queries = append(queries,
			researchQuery{topic: "competitors", terms: subject + " competitors alternatives comparison"},
			researchQuery{topic: "pricing", terms: subject + " pricing models benchmarks"},
		)
	}
	if depth == generation.DepthDeep {
		queries = append(queries,
			researchQuery{topic: "trends", terms: subject + " industry trends outlook"},
			researchQuery{topic: "buyers", terms: subject + " buyer decision criteria"},
		)
	}
	return queries
}

func (c *Client) search(ctx context.Context, q researchQuery) ([]generation.ResearchFinding, error) {
	searchURL := fmt.Sprintf("%s?key=%s&cx=%s&q=%s&num=%d",
		c.config.BaseURL,
		url.QueryEscape(c.config.APIKey),
		url.QueryEscape(c.config.EngineID),
		url.QueryEscape(q.terms),
		c.config.MaxResults,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned %d", resp.StatusCode)
	}

	var apiResponse struct {
		Items []struct {
			Link    string `json:"link"`
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, err
	}

	findings := make([]generation.ResearchFinding, 0, len(apiResponse.Items))
	for _, item := range apiResponse.Items {
		summary := strings.TrimSpace(item.Snippet)
		if summary == "" {
			summary = item.Title
		}
		findings = append(findings, generation.ResearchFinding{
			Topic:   q.topic,
			Summary: summary,
			URL:     item.Link,
		})
	}
	return findings, nil
}
