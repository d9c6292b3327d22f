// internal/generation/premium.go
package generation

import (
	"context"
	"fmt"
	"sort"

	"revintel-workers/internal/common/logger"
	"revintel-workers/internal/common/metrics"
)

const (
	premiumQuality    = 95
	premiumConfidence = 0.95
	premiumCost       = 1.50

	// Wall-clock cost of the publishing round trip, credited to the result
	// duration on successful publication.
	premiumPublishOverheadMS = 2000

	// Quality credit when publishing is skipped or fails and the enhanced
	// document ships under the premium label.
	premiumDegradedQualityBonus = 5
)

// PremiumGenerator is the enhanced tier plus document publishing. The
// publishing step is optional twice over: skipped when the capability was
// not detected at startup, and degraded when the publish call itself
// fails. Either way the enhanced document still ships, relabeled premium
// at enhanced cost.
type PremiumGenerator struct {
	enhanced  *EnhancedGenerator
	publisher DocumentPublisher
	caps      Capabilities
	log       logger.Logger
}

func NewPremiumGenerator(enhanced *EnhancedGenerator, publisher DocumentPublisher, caps Capabilities, log logger.Logger) *PremiumGenerator {
	return &PremiumGenerator{
		enhanced:  enhanced,
		publisher: publisher,
		caps:      caps,
		log:       log,
	}
}

func (g *PremiumGenerator) Generate(ctx context.Context, req *Request, progress ProgressFunc) (*Result, error) {
	res, err := g.enhanced.Generate(ctx, req, progress)
	if err != nil {
		return nil, err
	}

	if !g.caps.Publishing || g.publisher == nil || !g.publisher.IsServiceAvailable(ctx) {
		g.log.WithFields(map[string]interface{}{
			"resourceId": req.ResourceID,
			"customerId": req.CustomerID,
		}).Warn("Document publishing unavailable, delivering enhanced content under premium", nil)
		return premiumDegraded(res), nil
	}

	if progress != nil {
		progress("publishing", 90)
	}
	doc, perr := g.publisher.GenerateBusinessDocument(ctx, req.ResourceID, res.Content, req.Customer)
	if perr != nil || doc == nil || !doc.Success {
		metrics.CollaboratorCalls.WithLabelValues("doc_publish", "error").Inc()
		g.log.WithError(perr).WithFields(map[string]interface{}{
			"resourceId": req.ResourceID,
			"customerId": req.CustomerID,
		}).Warn("Document publishing failed, delivering enhanced content under premium", nil)
		return premiumDegraded(res), nil
	}
	metrics.CollaboratorCalls.WithLabelValues("doc_publish", "success").Inc()

	res.Content += publishedFooter(doc)
	res.DocumentURL = documentURL(doc)
	res.Quality = premiumQuality
	res.GenerationMethod = TierPremium
	res.Cost = premiumCost
	res.Confidence = premiumConfidence
	res.DurationMS += premiumPublishOverheadMS
	res.Sources = append(res.Sources, "google_workspace")
	return res, nil
}

// premiumDegraded relabels an enhanced result as premium without charging
// for publishing: a small quality credit, enhanced cost, everything else
// untouched.
func premiumDegraded(res *Result) *Result {
	res.GenerationMethod = TierPremium
	res.Cost = enhancedCost
	res.Quality += premiumDegradedQualityBonus
	if res.Quality > enhancedQualityCap {
		res.Quality = enhancedQualityCap
	}
	return res
}

func publishedFooter(doc *PublishedDocument) string {
	footer := fmt.Sprintf("\n\n---\n\n## Professional Document Generated\n\n- Document ID: %s\n- URL: %s\n", doc.DocumentID, documentURL(doc))
	keys := make([]string, 0, len(doc.Metadata))
	for k := range doc.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		footer += fmt.Sprintf("- %s: %s\n", k, doc.Metadata[k])
	}
	return footer
}

func documentURL(doc *PublishedDocument) string {
	if doc.PublicURL != "" {
		return doc.PublicURL
	}
	return doc.DocumentURL
}
