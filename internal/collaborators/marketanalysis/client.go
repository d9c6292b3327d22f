// internal/collaborators/marketanalysis/client.go
package marketanalysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"revintel-workers/internal/common/logger"
	"revintel-workers/internal/generation"
)

// Config holds the market analysis API settings.
type Config struct {
	BaseURL  string
	APIKey   string
	CacheTTL time.Duration
	Timeout  time.Duration
}

// Client calls the market analysis API with a Redis read-through cache in
// front. Market conditions for an industry/segment pair change slowly, so
// cache hits are shared across customers. Cache trouble is never an error:
// a broken Redis degrades to a direct API call.
type Client struct {
	config *Config
	client *http.Client
	redis  *redis.Client
	logger logger.Logger
}

func NewClient(config *Config, redisClient *redis.Client, log logger.Logger) *Client {
	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		redis:  redisClient,
		logger: log.With(map[string]interface{}{"collaborator": "market_analysis"}),
	}
}

func (c *Client) AnalyzeMarket(ctx context.Context, productName, industry, targetMarket string, customer generation.CustomerData) (*generation.MarketIntelligence, error) {
	key := cacheKey(industry, targetMarket)

	if cached := c.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	intel, err := c.fetch(ctx, productName, industry, targetMarket, customer)
	if err != nil {
		return nil, err
	}

	c.toCache(ctx, key, intel)
	return intel, nil
}

func cacheKey(industry, targetMarket string) string {
	segment := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(targetMarket)), " ", "-")
	return fmt.Sprintf("market:%s:%s", generation.NormalizeIndustry(industry), segment)
}

func (c *Client) fromCache(ctx context.Context, key string) *generation.MarketIntelligence {
	if c.redis == nil {
		return nil
	}
	raw, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.WithError(err).Warn("Market cache read failed", map[string]interface{}{"key": key})
		}
		return nil
	}
	var intel generation.MarketIntelligence
	if err := json.Unmarshal([]byte(raw), &intel); err != nil {
		c.logger.WithError(err).Warn("Market cache entry corrupt, refetching", map[string]interface{}{"key": key})
		return nil
	}
	return &intel
}

func (c *Client) toCache(ctx context.Context, key string, intel *generation.MarketIntelligence) {
	if c.redis == nil {
		return
	}
	raw, err := json.Marshal(intel)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, raw, c.config.CacheTTL).Err(); err != nil {
		c.logger.WithError(err).Warn("Market cache write failed", map[string]interface{}{"key": key})
	}
}

func (c *Client) fetch(ctx context.Context, productName, industry, targetMarket string, customer generation.CustomerData) (*generation.MarketIntelligence, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"productName":  productName,
		"industry":     industry,
		"targetMarket": targetMarket,
		"currentARR":   customer.CurrentARR,
		"companySize":  customer.CompanySize,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/v1/analyze", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("market analysis API returned %d", resp.StatusCode)
	}

	var intel generation.MarketIntelligence
	if err := json.NewDecoder(resp.Body).Decode(&intel); err != nil {
		return nil, err
	}

	// Out-of-range confidence from the upstream model is clamped rather
	// than rejected.
	if intel.Confidence < 0 {
		intel.Confidence = 0
	}
	if intel.Confidence > 1 {
		intel.Confidence = 1
	}
	return &intel, nil
}
