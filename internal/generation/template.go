// internal/generation/template.go
package generation

import "strings"

// TemplateGenerator fills static document templates with customer fields.
// Pure and synchronous: malformed data produces bracketed placeholder text,
// never an error. The caller measures and fills DurationMS.
type TemplateGenerator struct{}

func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

const (
	templateQuality    = 65
	templateConfidence = 0.7
)

func (g *TemplateGenerator) Generate(req *Request) *Result {
	return &Result{
		Content:          RenderTemplate(req.ResourceID, req.Customer),
		Quality:          templateQuality,
		GenerationMethod: TierTemplate,
		Cost:             0,
		DurationMS:       0,
		Sources:          []string{"template"},
		Confidence:       templateConfidence,
	}
}

// RenderTemplate substitutes every placeholder occurrence globally. Tokens
// are disjoint strings, so replacement order does not matter.
func RenderTemplate(id ResourceID, c CustomerData) string {
	tmpl, ok := resourceTemplates[id]
	if !ok {
		tmpl = defaultTemplate
	}

	r := strings.NewReplacer(
		"{{companyName}}", orPlaceholder(c.CompanyName, "[Company Name]"),
		"{{industry}}", orPlaceholder(c.Industry, "[Industry]"),
		"{{productName}}", orPlaceholder(c.ProductName, "[Product Name]"),
		"{{currentARR}}", orPlaceholder(c.CurrentARR, "[Current ARR]"),
		"{{targetARR}}", orPlaceholder(c.TargetARR, "[Target ARR]"),
		"{{marketSize}}", orPlaceholder(c.MarketSize, "[Market Size]"),
	)
	return r.Replace(tmpl)
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}

// resourceTemplates holds the static tier-one document per resource.
// Exhaustive over KnownResourceIDs (enforced by TestTemplateTableParity).
var resourceTemplates = map[ResourceID]string{
	ResourceICPAnalysis: `# Ideal Customer Profile Analysis: {{companyName}}

## Company Overview
{{companyName}} operates in the {{industry}} sector with {{productName}} as its core offering. Current revenue stands at {{currentARR}} with a growth target of {{targetARR}}.

## Ideal Customer Characteristics
- **Industry alignment**: organizations in and adjacent to {{industry}}
- **Revenue profile**: companies whose budget supports {{productName}} adoption
- **Growth stage**: scaling businesses moving from {{currentARR}} toward {{targetARR}}

## Firmographic Criteria
Target accounts should be evaluated against company size, technology maturity, and purchasing authority for products like {{productName}}.

## Recommended Next Steps
1. Validate this profile against your three most recent closed-won deals.
2. Score your active pipeline against the criteria above.
3. Revisit quarterly as {{companyName}} approaches {{targetARR}}.`,

	ResourceBuyerPersonas: `# Buyer Personas: {{companyName}}

## Primary Persona: The Economic Buyer
Budget owner at a {{industry}} organization evaluating {{productName}}. Cares about ROI, risk, and the path from {{currentARR}}-stage vendors to durable partners.

## Secondary Persona: The Technical Evaluator
Hands-on assessor of {{productName}}. Cares about integration effort, security posture, and operational burden.

## Tertiary Persona: The Champion
Internal advocate who ties {{productName}} to a business initiative and shepherds the deal.

## Usage
Map each active opportunity at {{companyName}} to these personas and tailor messaging per role.`,

	ResourceEmpathyMap: `# Empathy Map: {{companyName}} Buyers

## Thinks
"Can {{productName}} actually move our numbers in {{industry}}?"

## Feels
Pressure to show results; wariness of vendor promises.

## Says
Asks for proof points, references, and pricing clarity.

## Does
Compares {{productName}} against incumbent tools and the status quo.

## Pains
Budget scrutiny, integration fatigue, change-management cost.

## Gains
A credible path from {{currentARR}} toward {{targetARR}}.`,

	ResourceMarketAssessment: `# Market Assessment: {{companyName}}

## Market Definition
{{companyName}} competes in the {{industry}} market with {{productName}}. Estimated addressable market: {{marketSize}}.

## Current Position
Revenue of {{currentARR}} against a target of {{targetARR}} implies the company must expand share or segments.

## Key Questions
1. Which {{industry}} segments are underserved by incumbents?
2. What buying triggers correlate with {{productName}} adoption?
3. Where does pricing power exist today?

## Assessment Summary
A focused segment strategy beats broad coverage at this revenue stage.`,

	ResourceCompetitiveIntel: `# Competitive Intelligence Brief: {{companyName}}

## Competitive Landscape
The {{industry}} market for {{productName}}-class offerings includes established incumbents and emerging challengers.

## Positioning Snapshot
{{companyName}} at {{currentARR}} competes on specialization where larger vendors compete on breadth.

## Battlecard Starters
- **Against incumbents**: speed of deployment, focus on {{industry}} workflows.
- **Against challengers**: maturity, proof of revenue ({{currentARR}}), roadmap credibility.

## Intelligence Gaps
Pricing and win/loss data require the research-augmented tier for current figures.`,

	ResourceMarketOpportunity: `# Market Opportunity Analysis: {{companyName}}

## Opportunity Sizing
Within a {{marketSize}} market, {{companyName}} currently captures {{currentARR}}; the gap to {{targetARR}} frames the near-term opportunity.

## Expansion Vectors
1. Deeper penetration of the {{industry}} core segment.
2. Adjacent use cases for {{productName}}.
3. Pricing and packaging optimization.

## Risks
Opportunity estimates without current market research carry wide error bars.`,

	ResourceExecutiveBusinessCase: `# Executive Business Case: {{companyName}}

## Executive Summary
{{companyName}} proposes investment in {{productName}} capabilities to grow from {{currentARR}} to {{targetARR}} within the {{industry}} market ({{marketSize}}).

## Strategic Rationale
The business case rests on market timing, competitive differentiation, and unit economics at scale.

## Financial Frame
- Current ARR: {{currentARR}}
- Target ARR: {{targetARR}}
- Addressable market: {{marketSize}}

## Decision Requested
Approve the growth investment outlined above, subject to quarterly milestones.`,

	ResourceSeriesBReadiness: `# Series B Readiness Review: {{companyName}}

## Revenue Benchmark
{{companyName}} reports {{currentARR}} ARR targeting {{targetARR}}. Series B investors in {{industry}} typically look for efficient growth, retention strength, and a repeatable sales motion.

## Readiness Checklist
- [ ] Net revenue retention documented
- [ ] CAC payback within segment norms
- [ ] {{productName}} differentiation defensible in diligence
- [ ] Market sizing ({{marketSize}}) supported by third-party data

## Summary
Complete the checklist gaps before engaging institutional investors.`,

	ResourceProductMarketFit: `# Product-Market Fit Assessment: {{companyName}}

## Signal Review
{{productName}} serves the {{industry}} market; revenue of {{currentARR}} indicates early commercial traction.

## Fit Indicators
- Retention and expansion within the core segment
- Inbound demand attributable to word of mouth
- Willingness to pay at current pricing

## Gaps to Close
Quantitative PMF scoring requires usage and churn data beyond this template.`,

	ResourceStakeholderArsenal: `# Stakeholder Arsenal: {{companyName}}

## Purpose
Equip the {{companyName}} team to navigate multi-stakeholder deals for {{productName}} in {{industry}}.

## Stakeholder Playbook
- **Economic buyer**: lead with the {{currentARR}} → {{targetARR}} growth story.
- **Technical buyer**: lead with integration simplicity and security posture.
- **End users**: lead with workflow relief.

## Objection Bank
Standard objections and responses; augment with deal-specific intelligence in the enhanced tier.`,

	ResourceTechnicalTranslation: `# Technical Translation Guide: {{companyName}}

## Purpose
Translate {{productName}}'s technical capabilities into {{industry}} business outcomes.

## Translation Table
| Technical capability | Business outcome |
| --- | --- |
| Core {{productName}} functionality | Operational efficiency in {{industry}} workflows |
| Integration surface | Lower switching cost |
| Reliability posture | Reduced business risk |

## Usage
Pair each capability statement with a customer-verifiable outcome before executive conversations.`,

	ResourceROIModels: `# ROI Model Framework: {{companyName}}

## Model Inputs
- Current ARR: {{currentARR}}
- Target ARR: {{targetARR}}
- Market context: {{industry}}, {{marketSize}}

## ROI Structure
1. Direct revenue impact attributable to {{productName}}
2. Cost avoidance and efficiency gains
3. Risk-adjusted payback period

## Caveat
Populate with customer-specific figures; template values are placeholders.`,

	ResourceBoardPresentation: `# Board Presentation: {{companyName}}

## Slide 1 — Where We Are
{{currentARR}} ARR in the {{industry}} market with {{productName}}.

## Slide 2 — Where We're Going
{{targetARR}} target within an addressable market of {{marketSize}}.

## Slide 3 — How We Get There
Segment focus, competitive differentiation, and disciplined spend.

## Slide 4 — What We Need
Board alignment on the growth plan and investment envelope.

## Appendix
Supporting market and competitive detail available in companion analyses.`,
}

const defaultTemplate = `# Business Analysis: {{companyName}}

## Overview
{{companyName}} operates in {{industry}} with {{productName}}. Current revenue: {{currentARR}}; target: {{targetARR}}; market context: {{marketSize}}.

## Analysis
This document provides a baseline structure for further analysis. Richer, research-backed content is available through the enhanced generation tier.

## Next Steps
Review the overview above and request an enhanced analysis for data-driven detail.`
