// internal/collaborators/competitive/client.go
package competitive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"revintel-workers/internal/common/logger"
	"revintel-workers/internal/generation"
)

// Config holds the competitive intelligence service settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client calls the headless-scraping competitive intelligence service.
// The service is optional fleet-wide: Probe at startup decides whether the
// capability is offered at all, and a failed scan during generation
// escalates the enhanced tier.
type Client struct {
	config *Config
	client *http.Client
	logger logger.Logger
}

func NewClient(config *Config, log logger.Logger) *Client {
	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: log.With(map[string]interface{}{"collaborator": "competitive"}),
	}
}

// Probe reports whether the service answers its health endpoint. Called
// once at startup to populate the capability set.
func (c *Client) Probe(ctx context.Context) bool {
	if c.config.BaseURL == "" {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.WithError(err).Warn("Competitive service unreachable", nil)
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *Client) ScanCompetitors(ctx context.Context, genReq *generation.Request) (*generation.CompetitiveIntel, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"companyName": genReq.Customer.CompanyName,
		"productName": genReq.Customer.ProductName,
		"industry":    genReq.Customer.Industry,
		"resourceId":  genReq.ResourceID,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/v1/scan", bytes.NewReader(payload))
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
		return nil, fmt.Errorf("competitive service returned %d", resp.StatusCode)
	}

	var intel generation.CompetitiveIntel
	if err := json.NewDecoder(resp.Body).Decode(&intel); err != nil {
		return nil, err
	}
	return &intel, nil
}
