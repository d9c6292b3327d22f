// internal/collaborators/docpublish/client.go
package docpublish

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

// Config holds the document publishing service settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client publishes generated content as formatted workspace documents.
// Availability is checked per call as well as at startup: the publishing
// backend holds OAuth tokens that expire independently of this process.
type Client struct {
	config *Config
	client *http.Client
	logger logger.Logger
}

func NewClient(config *Config, log logger.Logger) *Client {
	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: log.With(map[string]interface{}{"collaborator": "doc_publish"}),
	}
}

func (c *Client) IsServiceAvailable(ctx context.Context) bool {
	if c.config.BaseURL == "" {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.WithError(err).Warn("Publishing service unreachable", nil)
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *Client) GenerateBusinessDocument(ctx context.Context, id generation.ResourceID, content string, customer generation.CustomerData) (*generation.PublishedDocument, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"resourceId":  id,
		"content":     content,
		"companyName": customer.CompanyName,
		"title":       documentTitle(id, customer),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/v1/documents", bytes.NewReader(payload))
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

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("publishing service returned %d", resp.StatusCode)
	}

	var doc generation.PublishedDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func documentTitle(id generation.ResourceID, customer generation.CustomerData) string {
	company := customer.CompanyName
	if company == "" {
		company = "Customer"
	}
	return fmt.Sprintf("%s - %s", company, id)
}
