// internal/generation/enhanced.go
package generation

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"revintel-workers/internal/common/errors"
	"revintel-workers/internal/common/logger"
	"revintel-workers/internal/common/metrics"
)

const (
	enhancedBaseQuality   = 85
	enhancedQualityCap    = 95
	enhancedBaseConfident = 0.9
	enhancedCost          = 0.10
)

// ProgressFunc receives stage checkpoints during a generation. Percent is
// the caller's problem to keep monotone; generators just report stages.
type ProgressFunc func(stage string, percent int)

// EnhancedGenerator produces research-backed documents. Collaborator
// failures follow a two-lane policy: an error returned from Generate means
// the whole tier failed and the caller must substitute a lower tier; an
// error absorbed here (market analysis only) degrades that one section and
// the document still ships.
type EnhancedGenerator struct {
	research    WebResearcher
	market      MarketAnalyzer
	competitive CompetitiveScanner
	stakeholder StakeholderProfiler
	composer    ContentComposer
	caps        Capabilities
	log         logger.Logger
}

func NewEnhancedGenerator(
	research WebResearcher,
	market MarketAnalyzer,
	competitive CompetitiveScanner,
	stakeholder StakeholderProfiler,
	composer ContentComposer,
	caps Capabilities,
	log logger.Logger,
) *EnhancedGenerator {
	return &EnhancedGenerator{
		research:    research,
		market:      market,
		competitive: competitive,
		stakeholder: stakeholder,
		composer:    composer,
		caps:        caps,
		log:         log,
	}
}

func (g *EnhancedGenerator) Generate(ctx context.Context, req *Request, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(string, int) {}
	}

	enr := Enrichment{}
	sources := []string{"web_research"}

	progress("web-research", 15)
	bundle, err := g.research.ConductProductResearch(ctx, ResearchInput{
		ProductName:        req.Customer.ProductName,
		BusinessType:       req.Customer.BusinessType,
		ProductDescription: req.Customer.ProductDescription,
	}, DepthMedium)
	if err != nil {
		metrics.CollaboratorCalls.WithLabelValues("web_research", "error").Inc()
		return nil, errors.NewWebResearchFailedError(err)
	}
	metrics.CollaboratorCalls.WithLabelValues("web_research", "success").Inc()
	enr.Research = bundle

	if wantsMarketAnalysis(req) {
		progress("market-analysis", 35)
		mi, merr := g.market.AnalyzeMarket(ctx, req.Customer.ProductName, req.Customer.Industry, req.Customer.TargetMarket, req.Customer)
		if merr != nil {
			// Degrades this section only; the rest of the pipeline proceeds.
			metrics.CollaboratorCalls.WithLabelValues("market_analysis", "error").Inc()
			g.log.WithError(merr).WithFields(map[string]interface{}{
				"resourceId": req.ResourceID,
				"customerId": req.CustomerID,
			}).Warn("Market analysis failed, continuing without market intelligence", nil)
		} else {
			metrics.CollaboratorCalls.WithLabelValues("market_analysis", "success").Inc()
			enr.Market = mi
			sources = append(sources, "market_analysis")
		}
	}

	if g.caps.Competitive {
		progress("competitive-intelligence", 50)
		ci, cerr := g.competitive.ScanCompetitors(ctx, req)
		if cerr != nil {
			metrics.CollaboratorCalls.WithLabelValues("competitive", "error").Inc()
			return nil, errors.NewCompetitiveScanFailedError(cerr)
		}
		metrics.CollaboratorCalls.WithLabelValues("competitive", "success").Inc()
		enr.Competitive = ci
		sources = append(sources, "puppeteer")
	}

	if g.caps.Stakeholder && req.Stakeholders != nil {
		progress("stakeholder-research", 60)
		si, serr := g.stakeholder.ProfileStakeholders(ctx, req)
		if serr != nil {
			metrics.CollaboratorCalls.WithLabelValues("stakeholder", "error").Inc()
			return nil, errors.NewStakeholderResearchFailedError(serr)
		}
		metrics.CollaboratorCalls.WithLabelValues("stakeholder", "success").Inc()
		enr.Stakeholder = si
		sources = append(sources, "linkedin")
	}

	progress("composing", 75)
	content, err := g.buildContent(ctx, req, enr)
	if err != nil {
		return nil, err
	}
	sources = append(sources, "ai_components")

	return &Result{
		Content:          content,
		Quality:          enhancedQuality(enr),
		GenerationMethod: TierEnhanced,
		Cost:             enhancedCost,
		DurationMS:       0,
		Sources:          sources,
		Confidence:       enhancedConfidence(enr),
	}, nil
}

// enhancedQuality starts at the tier base and credits each intelligence
// section that made it into the document, capped at the tier ceiling.
func enhancedQuality(enr Enrichment) int {
	q := enhancedBaseQuality
	if enr.Market != nil {
		bonus := int(math.Round(enr.Market.Confidence * 10))
		if bonus > 10 {
			bonus = 10
		}
		q += bonus
	}
	if enr.Competitive != nil {
		q += 5
	}
	if enr.Stakeholder != nil {
		q += 5
	}
	if q > enhancedQualityCap {
		q = enhancedQualityCap
	}
	return q
}

func enhancedConfidence(enr Enrichment) float64 {
	c := enhancedBaseConfident
	if enr.Market != nil && enr.Market.Confidence > c {
		c = enr.Market.Confidence
	}
	return c
}

// wantsMarketAnalysis gates the market collaborator on the three fields it
// cannot work without.
func wantsMarketAnalysis(req *Request) bool {
	return req.Customer.ProductName != "" &&
		req.Customer.Industry != "" &&
		req.Customer.TargetMarket != ""
}

// buildContent routes to a bespoke builder for the two resources whose
// structure is fully programmatic, and to the AI composer for the rest.
// A composer error escalates the whole tier.
func (g *EnhancedGenerator) buildContent(ctx context.Context, req *Request, enr Enrichment) (string, error) {
	switch req.ResourceID {
	case ResourceTechnicalTranslation:
		return buildTechnicalTranslation(req, enr), nil
	case ResourceStakeholderArsenal:
		return buildStakeholderArsenal(req, enr), nil
	}

	base := RenderTemplate(req.ResourceID, req.Customer)
	content, err := g.composer.Compose(ctx, req, base, enr)
	if err != nil {
		return "", errors.NewContentComposeError(err)
	}
	return content + enrichmentSections(enr), nil
}

// enrichmentSections appends the gathered intelligence as appendix
// sections so the document carries its evidence.
func enrichmentSections(enr Enrichment) string {
	var b strings.Builder

	if enr.Market != nil {
		b.WriteString("\n\n## Market Intelligence\n")
		b.WriteString(enr.Market.IndustryContext)
		writeBulletSection(&b, "Market Conditions", enr.Market.Conditions)
		writeBulletSection(&b, "Key Trends", enr.Market.Trends)
		writeBulletSection(&b, "Notable Competitors", enr.Market.Competitors)
		writeBulletSection(&b, "Opportunities", enr.Market.Opportunities)
		writeBulletSection(&b, "Risks", enr.Market.Risks)
	}

	if enr.Competitive != nil {
		b.WriteString("\n\n## Competitive Intelligence\n")
		b.WriteString("### Pricing\n" + enr.Competitive.PricingIntelligence + "\n")
		b.WriteString("### Feature Comparison\n" + enr.Competitive.FeatureComparison + "\n")
		b.WriteString("### Market Position\n" + enr.Competitive.MarketIntelligence + "\n")
	}

	if enr.Stakeholder != nil {
		b.WriteString("\n\n## Stakeholder Intelligence\n")
		writeBulletSection(&b, "Profiles", enr.Stakeholder.StakeholderProfiles)
		b.WriteString("### Company Context\n" + enr.Stakeholder.CompanyContext + "\n")
		b.WriteString("### Relationship Map\n" + enr.Stakeholder.RelationshipMapping + "\n")
	}

	if enr.Research != nil && len(enr.Research.Data) > 0 {
		b.WriteString("\n\n## Research Notes\n")
		for _, f := range enr.Research.Data {
			fmt.Fprintf(&b, "- **%s**: %s\n", f.Topic, f.Summary)
		}
	}

	return b.String()
}

func writeBulletSection(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n### " + title + "\n")
	for _, item := range items {
		b.WriteString("- " + item + "\n")
	}
}

// buildTechnicalTranslation assembles the translation guide directly from
// customer data. Illustrative figures are derived from a stable hash of
// the company and resource so reruns produce identical documents.
func buildTechnicalTranslation(req *Request, enr Enrichment) string {
	c := req.Customer
	company := orPlaceholder(c.CompanyName, "[Company Name]")
	product := orPlaceholder(c.ProductName, "[Product Name]")
	industry := orPlaceholder(c.Industry, "[Industry]")

	efficiency := illustrative(c.CompanyName, "tt-efficiency", 15, 40)
	adoption := illustrative(c.CompanyName, "tt-adoption", 60, 90)

	var b strings.Builder
	fmt.Fprintf(&b, "# Technical Translation Guide: %s\n\n", company)
	fmt.Fprintf(&b, "## Purpose\nTranslate %s's technical capabilities into business outcomes %s buyers in %s can act on.\n\n", product, company, industry)

	b.WriteString("## Capability Translations\n")
	features := []string{"Core platform capability", "Integration surface", "Reliability and security posture"}
	if req.Product != nil && len(req.Product.Features) > 0 {
		features = req.Product.Features
	}
	b.WriteString("| Technical capability | Business translation |\n| --- | --- |\n")
	for _, f := range features {
		fmt.Fprintf(&b, "| %s | Enables measurable %s outcomes without added operational burden |\n", f, industry)
	}

	fmt.Fprintf(&b, "\n## Illustrative Impact\nTeams adopting %s-class tooling typically report %d%% workflow efficiency gains with %d%% user adoption inside two quarters. Figures are illustrative; replace with customer-verified data before executive use.\n", product, efficiency, adoption)

	if enr.Market != nil {
		b.WriteString("\n## Market Framing\n" + enr.Market.IndustryContext + "\n")
	}
	b.WriteString(enrichmentConclusion(enr))
	return b.String()
}

// buildStakeholderArsenal assembles the stakeholder playbook directly from
// the request's stakeholder context when present.
func buildStakeholderArsenal(req *Request, enr Enrichment) string {
	c := req.Customer
	company := orPlaceholder(c.CompanyName, "[Company Name]")
	product := orPlaceholder(c.ProductName, "[Product Name]")

	roi := illustrative(c.CompanyName, "sa-roi", 2, 5)
	payback := illustrative(c.CompanyName, "sa-payback", 6, 14)

	var b strings.Builder
	fmt.Fprintf(&b, "# Stakeholder Arsenal: %s\n\n", company)
	fmt.Fprintf(&b, "## Purpose\nEquip the %s team to navigate multi-stakeholder deals for %s.\n\n", company, product)

	b.WriteString("## Stakeholder Playbook\n")
	if req.Stakeholders != nil && len(req.Stakeholders.Stakeholders) > 0 {
		for _, s := range req.Stakeholders.Stakeholders {
			fmt.Fprintf(&b, "### %s (%s)\n", s.Name, s.Role)
			if s.Influence != "" {
				fmt.Fprintf(&b, "Influence: %s. ", s.Influence)
			}
			fmt.Fprintf(&b, "Tailor the %s narrative to this role's success metrics.\n\n", product)
		}
		if req.Stakeholders.DealStage != "" {
			fmt.Fprintf(&b, "Current deal stage: %s.\n\n", req.Stakeholders.DealStage)
		}
	} else {
		b.WriteString("- **Economic buyer**: lead with the growth and ROI story.\n")
		b.WriteString("- **Technical buyer**: lead with integration simplicity and security posture.\n")
		b.WriteString("- **End users**: lead with day-one workflow relief.\n\n")
	}

	fmt.Fprintf(&b, "## Value Framing\nComparable deployments frame %dx ROI with payback inside %d months. Figures are illustrative; replace with customer-verified data before sharing externally.\n", roi, payback)

	if enr.Stakeholder != nil {
		b.WriteString("\n## Researched Profiles\n")
		for _, p := range enr.Stakeholder.StakeholderProfiles {
			b.WriteString("- " + p + "\n")
		}
		b.WriteString("\n### Relationship Map\n" + enr.Stakeholder.RelationshipMapping + "\n")
	}
	b.WriteString(enrichmentConclusion(enr))
	return b.String()
}

func enrichmentConclusion(enr Enrichment) string {
	if enr.Research == nil || len(enr.Research.Data) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n## Research Notes\n")
	for _, f := range enr.Research.Data {
		fmt.Fprintf(&b, "- **%s**: %s\n", f.Topic, f.Summary)
	}
	return b.String()
}

// illustrative returns a stable value in [min,max] keyed on company and
// slot. Hash-derived rather than random so identical inputs yield
// identical documents.
func illustrative(company, slot string, min, max int) int {
	h := fnv.New32a()
	h.Write([]byte(company))
	h.Write([]byte{0})
	h.Write([]byte(slot))
	span := max - min + 1
	return min + int(h.Sum32()%uint32(span))
}
