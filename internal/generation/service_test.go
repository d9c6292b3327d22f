// internal/generation/service_test.go
package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revintel-workers/internal/common/logger"
)

type serviceFixture struct {
	enhanced *enhancedFixture
	pub      *fakePublisher
	emitter  *recordingEmitter
	svc      *Service
}

func newServiceFixture(t *testing.T, caps Capabilities) *serviceFixture {
	f := &serviceFixture{
		enhanced: newEnhancedFixture(t, caps),
		pub:      &fakePublisher{available: caps.Publishing, doc: publishedDoc()},
		emitter:  &recordingEmitter{},
	}
	premium := NewPremiumGenerator(f.enhanced.gen, f.pub, caps, logger.NewTestLogger(t))
	f.svc = NewService(NewTemplateGenerator(), f.enhanced.gen, premium, f.emitter, logger.NewTestLogger(t))
	return f
}

// buyer-personas with an empty customer scores 4: the cheapest request
// that still routes through the enhanced pipeline.
func enhancedRoutedRequest() *Request {
	return &Request{
		ResourceID: ResourceBuyerPersonas,
		CustomerID: "cust-42",
		Customer:   CustomerData{CompanyName: "Acme Robotics"},
	}
}

// ==========================
// Routing Tests
// ==========================

func TestService_RoutesTemplate(t *testing.T) {
	f := newServiceFixture(t, Capabilities{})

	out, err := f.svc.Generate(context.Background(), &Request{
		ResourceID: ResourceEmpathyMap,
		CustomerID: "cust-42",
	})
	require.NoError(t, err)

	assert.Equal(t, TierTemplate, out.Analysis.Recommendation)
	assert.Equal(t, TierTemplate, out.Result.GenerationMethod)
	assert.Equal(t, 0, f.enhanced.research.calls)
	assert.NotEmpty(t, out.RequestID)
}

func TestService_RoutesEnhanced(t *testing.T) {
	f := newServiceFixture(t, Capabilities{})

	out, err := f.svc.Generate(context.Background(), enhancedRoutedRequest())
	require.NoError(t, err)

	assert.Equal(t, TierEnhanced, out.Analysis.Recommendation)
	assert.Equal(t, TierEnhanced, out.Result.GenerationMethod)
	assert.Equal(t, 1, f.enhanced.research.calls)
}

func TestService_RoutesPremium(t *testing.T) {
	f := newServiceFixture(t, Capabilities{Publishing: true})

	// market-opportunity with rich customer data scores past the premium
	// threshold
	out, err := f.svc.Generate(context.Background(), enhancedRequest())
	require.NoError(t, err)

	assert.Equal(t, TierPremium, out.Analysis.Recommendation)
	assert.Equal(t, TierPremium, out.Result.GenerationMethod)
	assert.Equal(t, 1, f.pub.calls)
}

// ==========================
// Fallback Tests
// ==========================

func TestService_EnhancedFailureFallsBackToTemplate(t *testing.T) {
	f := newServiceFixture(t, Capabilities{})
	f.enhanced.research.err = errors.New("upstream 503")

	out, err := f.svc.Generate(context.Background(), enhancedRoutedRequest())
	require.NoError(t, err)

	// the template result ships verbatim: template pricing and labeling,
	// nothing billed for the failed tier
	assert.Equal(t, TierTemplate, out.Result.GenerationMethod)
	assert.Equal(t, 0.0, out.Result.Cost)
	assert.Equal(t, 65, out.Result.Quality)
	assert.Equal(t, []string{"template"}, out.Result.Sources)
	assert.Equal(t, 0.7, out.Result.Confidence)
	// the routing verdict is preserved even when the tier fell through
	assert.Equal(t, TierEnhanced, out.Analysis.Recommendation)
}

func TestService_PremiumPipelineFailureFallsBackToTemplate(t *testing.T) {
	f := newServiceFixture(t, Capabilities{Publishing: true})
	f.enhanced.composer.err = errors.New("model overloaded")

	out, err := f.svc.Generate(context.Background(), enhancedRequest())
	require.NoError(t, err)

	assert.Equal(t, TierTemplate, out.Result.GenerationMethod)
	assert.Equal(t, 0.0, out.Result.Cost)
	assert.Equal(t, TierPremium, out.Analysis.Recommendation)
}

// ==========================
// Event Lifecycle Tests
// ==========================

func TestService_EventLifecycle(t *testing.T) {
	f := newServiceFixture(t, Capabilities{})

	out, err := f.svc.Generate(context.Background(), enhancedRoutedRequest())
	require.NoError(t, err)

	started := f.emitter.byType(EventGenerationStarted)
	require.Len(t, started, 1)
	payload, ok := started[0].Payload.(StartedPayload)
	require.True(t, ok)
	assert.Equal(t, TierEnhanced, payload.Recommendation)
	assert.Equal(t, out.RequestID, started[0].RequestID)

	completed := f.emitter.byType(EventGenerationCompleted)
	require.Len(t, completed, 1)
	done, ok := completed[0].Payload.(CompletedPayload)
	require.True(t, ok)
	assert.Equal(t, TierEnhanced, done.Method)
	assert.Equal(t, out.Result.Quality, done.Quality)

	assert.Empty(t, f.emitter.byType(EventGenerationFailed))

	// started precedes everything, completed follows everything
	assert.Equal(t, EventGenerationStarted, f.emitter.events[0].Type)
	assert.Equal(t, EventGenerationCompleted, f.emitter.events[len(f.emitter.events)-1].Type)
}

func TestService_ProgressIsMonotone(t *testing.T) {
	f := newServiceFixture(t, Capabilities{Competitive: true, Stakeholder: true, Publishing: true})

	req := enhancedRequest()
	req.Stakeholders = &StakeholderContext{Stakeholders: []Stakeholder{{Name: "Dana", Role: "CFO"}}}
	_, err := f.svc.Generate(context.Background(), req)
	require.NoError(t, err)

	progress := f.emitter.byType(EventGenerationProgress)
	require.NotEmpty(t, progress)

	last := -1
	for _, e := range progress {
		p, ok := e.Payload.(ProgressPayload)
		require.True(t, ok)
		assert.GreaterOrEqual(t, p.Percent, last)
		last = p.Percent
	}
	assert.Equal(t, 100, last)
}

func TestService_FallbackStillCompletes(t *testing.T) {
	f := newServiceFixture(t, Capabilities{})
	f.enhanced.research.err = errors.New("upstream 503")

	_, err := f.svc.Generate(context.Background(), enhancedRoutedRequest())
	require.NoError(t, err)

	// fallback is not a failure: the lifecycle still terminates in completed
	assert.Len(t, f.emitter.byType(EventGenerationCompleted), 1)
	assert.Empty(t, f.emitter.byType(EventGenerationFailed))
}

func TestService_DurationIsPopulated(t *testing.T) {
	f := newServiceFixture(t, Capabilities{Publishing: true})

	out, err := f.svc.Generate(context.Background(), enhancedRequest())
	require.NoError(t, err)

	// wall clock plus the publishing overhead
	assert.GreaterOrEqual(t, out.Result.DurationMS, int64(2000))
}
