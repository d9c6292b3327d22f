// internal/collaborators/stakeholder/client.go
package stakeholder

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

// Config holds the stakeholder intelligence service settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client calls the professional-network intelligence service that profiles
// named stakeholders. Probed at startup like the competitive scanner; only
// invoked when a request actually carries stakeholder context.
type Client struct {
	config *Config
	client *http.Client
	logger logger.Logger
}

func NewClient(config *Config, log logger.Logger) *Client {
	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: log.With(map[string]interface{}{"collaborator": "stakeholder"}),
	}
}

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
		c.logger.WithError(err).Warn("Stakeholder service unreachable", nil)
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *Client) ProfileStakeholders(ctx context.Context, genReq *generation.Request) (*generation.StakeholderIntel, error) {
	if genReq.Stakeholders == nil {
		return nil, fmt.Errorf("request carries no stakeholder context")
	}

	payload, err := json.Marshal(map[string]interface{}{
		"companyName":  genReq.Customer.CompanyName,
		"stakeholders": genReq.Stakeholders.Stakeholders,
		"dealStage":    genReq.Stakeholders.DealStage,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/v1/profiles", bytes.NewReader(payload))
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
		return nil, fmt.Errorf("stakeholder service returned %d", resp.StatusCode)
	}

	var intel generation.StakeholderIntel
	if err := json.NewDecoder(resp.Body).Decode(&intel); err != nil {
		return nil, err
	}
	return &intel, nil
}
