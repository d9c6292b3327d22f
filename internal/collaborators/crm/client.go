// internal/collaborators/crm/client.go
package crm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"revintel-workers/internal/common/errors"
	"revintel-workers/internal/common/logger"
	"revintel-workers/internal/generation"
)

// Config holds the CRM API settings.
type Config struct {
	BaseURL string
	APIKey  string
	BaseID  string
	Timeout time.Duration
}

// Client reads customer asset records from the CRM. Generation requests
// often arrive with only a customer id; the worker enriches them with the
// CRM record before scoring so data richness reflects what is actually
// known about the customer.
type Client struct {
	config *Config
	client *http.Client
	logger logger.Logger
}

func NewClient(config *Config, log logger.Logger) *Client {
	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: log.With(map[string]interface{}{"collaborator": "crm"}),
	}
}

type assetRecord struct {
	ID     string `json:"id"`
	Fields struct {
		CompanyName        string   `json:"Company Name"`
		Industry           string   `json:"Industry"`
		ProductName        string   `json:"Product Name"`
		ProductDescription string   `json:"Product Description"`
		BusinessType       string   `json:"Business Type"`
		CurrentARR         string   `json:"Current ARR"`
		TargetARR          string   `json:"Target ARR"`
		TargetMarket       string   `json:"Target Market"`
		MarketSize         string   `json:"Market Size"`
		CompanySize        string   `json:"Company Size"`
		ContactEmail       string   `json:"Contact Email"`
		Competencies       []string `json:"Core Competencies"`
	} `json:"fields"`
}

// GetCustomerAssets fetches the asset record for one customer.
func (c *Client) GetCustomerAssets(ctx context.Context, customerID string) (*generation.CustomerData, error) {
	endpoint := fmt.Sprintf("%s/v0/%s/customer-assets/%s",
		c.config.BaseURL, url.PathEscape(c.config.BaseID), url.PathEscape(customerID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.NewCRMLookupFailedError(customerID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.NewCRMLookupFailedError(customerID, fmt.Errorf("record not found"))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewCRMLookupFailedError(customerID, fmt.Errorf("CRM returned %d", resp.StatusCode))
	}

	var record assetRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, errors.NewCRMLookupFailedError(customerID, err)
	}

	f := record.Fields
	return &generation.CustomerData{
		CompanyName:        f.CompanyName,
		Industry:           f.Industry,
		ProductName:        f.ProductName,
		ProductDescription: f.ProductDescription,
		BusinessType:       f.BusinessType,
		CurrentARR:         f.CurrentARR,
		TargetARR:          f.TargetARR,
		TargetMarket:       f.TargetMarket,
		MarketSize:         f.MarketSize,
		CompanySize:        f.CompanySize,
		ContactEmail:       f.ContactEmail,
		Competencies:       f.Competencies,
	}, nil
}

// MergeCustomerData fills blanks in the request's customer data from the
// CRM record. Fields the request already carries win: callers may override
// stale CRM values per request.
func MergeCustomerData(provided generation.CustomerData, record *generation.CustomerData) generation.CustomerData {
	if record == nil {
		return provided
	}
	merged := provided
	if merged.CompanyName == "" {
		merged.CompanyName = record.CompanyName
	}
	if merged.Industry == "" {
		merged.Industry = record.Industry
	}
	if merged.ProductName == "" {
		merged.ProductName = record.ProductName
	}
	if merged.ProductDescription == "" {
		merged.ProductDescription = record.ProductDescription
	}
	if merged.BusinessType == "" {
		merged.BusinessType = record.BusinessType
	}
	if merged.CurrentARR == "" {
		merged.CurrentARR = record.CurrentARR
	}
	if merged.TargetARR == "" {
		merged.TargetARR = record.TargetARR
	}
	if merged.TargetMarket == "" {
		merged.TargetMarket = record.TargetMarket
	}
	if merged.MarketSize == "" {
		merged.MarketSize = record.MarketSize
	}
	if merged.CompanySize == "" {
		merged.CompanySize = record.CompanySize
	}
	if merged.ContactEmail == "" {
		merged.ContactEmail = record.ContactEmail
	}
	if len(merged.Competencies) == 0 {
		merged.Competencies = record.Competencies
	}
	return merged
}
