// internal/workers/generation/analyze-complexity/models.go
package analyzecomplexity

import "revintel-workers/internal/generation"

type Input struct {
	ResourceID   string                         `json:"resourceId"`
	ResourceType string                         `json:"resourceType,omitempty"`
	CustomerID   string                         `json:"customerId"`
	Customer     generation.CustomerData        `json:"customerData"`
	Product      *generation.ProductContext     `json:"productContext,omitempty"`
	Stakeholders *generation.StakeholderContext `json:"stakeholderContext,omitempty"`
}

type Output struct {
	ComplexityScore   int      `json:"complexityScore"`
	ComplexityFactors []string `json:"complexityFactors"`
	RecommendedMethod string   `json:"recommendedMethod"`
}
