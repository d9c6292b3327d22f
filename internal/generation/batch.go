// internal/generation/batch.go
package generation

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// CoreSetResources are generated together when a customer is onboarded.
var CoreSetResources = []ResourceID{
	ResourceICPAnalysis,
	ResourceBuyerPersonas,
	ResourceEmpathyMap,
	ResourceMarketAssessment,
}

const coreSetConcurrency = 2

// GenerateCoreSet produces the onboarding document set for one customer.
// Requests run concurrently with a small cap so collaborator rate limits
// are respected. Because each Generate call falls back to template on
// tier failure, the only error surfaced here is an invalid
// recommendation, which cancels the remaining requests.
func (s *Service) GenerateCoreSet(ctx context.Context, customerID string, customer CustomerData) (map[ResourceID]*Outcome, error) {
	outcomes := make([]*Outcome, len(CoreSetResources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(coreSetConcurrency)
	for i, id := range CoreSetResources {
		g.Go(func() error {
			out, err := s.Generate(ctx, &Request{
				ResourceID: id,
				CustomerID: customerID,
				Customer:   customer,
			})
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byResource := make(map[ResourceID]*Outcome, len(outcomes))
	for i, id := range CoreSetResources {
		byResource[id] = outcomes[i]
	}
	return byResource, nil
}
