// internal/workers/generation/generate-resource/models.go
package generateresource

import (
	"context"

	"revintel-workers/internal/generation"
)

type Input struct {
	ResourceID   string                         `json:"resourceId"`
	ResourceType string                         `json:"resourceType,omitempty"`
	CustomerID   string                         `json:"customerId"`
	Customer     generation.CustomerData        `json:"customerData"`
	Product      *generation.ProductContext     `json:"productContext,omitempty"`
	Stakeholders *generation.StakeholderContext `json:"stakeholderContext,omitempty"`
}

type Output struct {
	RequestID         string   `json:"requestId"`
	Content           string   `json:"content"`
	Quality           int      `json:"quality"`
	GenerationMethod  string   `json:"generationMethod"`
	Cost              float64  `json:"cost"`
	Duration          int64    `json:"duration"`
	Sources           []string `json:"sources"`
	Confidence        float64  `json:"confidence"`
	ComplexityScore   int      `json:"complexityScore"`
	RecommendedMethod string   `json:"recommendedMethod"`
}

// Validator gates raw request payloads before processing.
type Validator interface {
	Validate(resourceID string, payload []byte) error
}

// CustomerLookup reads the customer's asset record for request enrichment.
type CustomerLookup interface {
	GetCustomerAssets(ctx context.Context, customerID string) (*generation.CustomerData, error)
}

// HistoryRecorder persists completed generations.
type HistoryRecorder interface {
	Record(ctx context.Context, out *generation.Outcome, customerID string, resourceID generation.ResourceID) error
}

// ResourceIndex indexes completed resources for the library search.
type ResourceIndex interface {
	Index(ctx context.Context, out *generation.Outcome, customerID string, resourceID generation.ResourceID) error
}

// CompletionMailer emails customers when a premium document is ready.
type CompletionMailer interface {
	SendCompletionEmail(ctx context.Context, customer generation.CustomerData, resourceID generation.ResourceID, documentURL string) error
}
