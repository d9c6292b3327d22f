// internal/generation/service.go
package generation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"revintel-workers/internal/common/errors"
	"revintel-workers/internal/common/logger"
	"revintel-workers/internal/common/metrics"
)

// Service routes a generation request to exactly one tier and guarantees
// the caller a document whenever routing succeeds: any escalated failure
// in the enhanced or premium path falls back to the template tier, whose
// result is returned verbatim. The only error Generate returns is an
// out-of-range recommendation.
type Service struct {
	template *TemplateGenerator
	enhanced *EnhancedGenerator
	premium  *PremiumGenerator
	emitter  Emitter
	log      logger.Logger
}

func NewService(template *TemplateGenerator, enhanced *EnhancedGenerator, premium *PremiumGenerator, emitter Emitter, log logger.Logger) *Service {
	if emitter == nil {
		emitter = NoOpEmitter{}
	}
	return &Service{
		template: template,
		enhanced: enhanced,
		premium:  premium,
		emitter:  emitter,
		log:      log,
	}
}

// Outcome is one finished generation: the routing verdict plus the
// document that shipped.
type Outcome struct {
	RequestID string             `json:"requestId"`
	Analysis  ComplexityAnalysis `json:"complexityAnalysis"`
	Result    *Result            `json:"result"`
}

func (s *Service) Generate(ctx context.Context, req *Request) (*Outcome, error) {
	requestID := uuid.New().String()
	start := time.Now()

	analysis := AnalyzeComplexity(req)

	s.log.WithFields(map[string]interface{}{
		"requestId":      requestID,
		"resourceId":     req.ResourceID,
		"customerId":     req.CustomerID,
		"score":          analysis.Score,
		"recommendation": analysis.Recommendation,
	}).Info("Starting resource generation", nil)

	s.emit(ctx, EventGenerationStarted, requestID, req, StartedPayload{
		Recommendation: analysis.Recommendation,
		Score:          analysis.Score,
	})

	guard := &progressGuard{}
	progress := func(stage string, percent int) {
		s.emit(ctx, EventGenerationProgress, requestID, req, ProgressPayload{
			Stage:   stage,
			Percent: guard.clamp(percent),
		})
	}

	var result *Result
	switch analysis.Recommendation {
	case TierTemplate:
		result = s.template.Generate(req)
	case TierEnhanced:
		result = s.generateWithFallback(ctx, req, progress, TierEnhanced)
	case TierPremium:
		result = s.generateWithFallback(ctx, req, progress, TierPremium)
	default:
		err := errors.NewInvalidRecommendationError(string(analysis.Recommendation))
		s.emit(ctx, EventGenerationFailed, requestID, req, FailedPayload{
			ErrorCode: string(errors.ErrCodeInvalidRecommendation),
			Message:   err.Message,
		})
		return nil, err
	}

	progress("finalizing", 100)

	// Publishing overhead is already on the clock inside the premium path,
	// so elapsed time is added rather than assigned.
	elapsed := time.Since(start)
	result.DurationMS += elapsed.Milliseconds()

	metrics.ResourcesGenerated.WithLabelValues(string(req.ResourceID), string(result.GenerationMethod)).Inc()
	metrics.GenerationDuration.WithLabelValues(string(req.ResourceID), string(result.GenerationMethod)).Observe(elapsed.Seconds())
	metrics.GenerationCost.WithLabelValues(string(result.GenerationMethod)).Add(result.Cost)

	s.emit(ctx, EventGenerationCompleted, requestID, req, CompletedPayload{
		Method:     result.GenerationMethod,
		Quality:    result.Quality,
		Cost:       result.Cost,
		DurationMS: result.DurationMS,
	})

	s.log.WithFields(map[string]interface{}{
		"requestId":  requestID,
		"resourceId": req.ResourceID,
		"method":     result.GenerationMethod,
		"quality":    result.Quality,
		"durationMs": result.DurationMS,
	}).Info("Resource generation completed", nil)

	return &Outcome{RequestID: requestID, Analysis: analysis, Result: result}, nil
}

// generateWithFallback runs the recommended tier and substitutes the
// template document on any escalated error. The fallback is total: the
// returned result is the template generator's output unmodified, so
// callers are never billed for work that did not ship.
func (s *Service) generateWithFallback(ctx context.Context, req *Request, progress ProgressFunc, tier Tier) *Result {
	var (
		result *Result
		err    error
	)
	switch tier {
	case TierPremium:
		result, err = s.premium.Generate(ctx, req, progress)
	default:
		result, err = s.enhanced.Generate(ctx, req, progress)
	}
	if err == nil {
		return result
	}

	s.log.WithError(err).WithFields(map[string]interface{}{
		"resourceId": req.ResourceID,
		"customerId": req.CustomerID,
		"tier":       tier,
	}).Warn("Tier generation failed, falling back to template", nil)
	metrics.GenerationFallbacks.WithLabelValues(string(req.ResourceID), string(tier), string(TierTemplate)).Inc()

	return s.template.Generate(req)
}

func (s *Service) emit(ctx context.Context, t EventType, requestID string, req *Request, payload interface{}) {
	s.emitter.Emit(ctx, Event{
		Type:       t,
		RequestID:  requestID,
		ResourceID: req.ResourceID,
		CustomerID: req.CustomerID,
		Timestamp:  time.Now().UTC(),
		Payload:    payload,
	})
}
