// internal/generation/complexity.go
package generation

import (
	"fmt"
	"strings"
)

const (
	// Routing thresholds, inclusive on the low side: a score of exactly 7
	// stays enhanced, exactly 8 goes premium. Callers depend on these exact
	// boundaries.
	templateCeiling = 3
	enhancedCeiling = 7

	defaultComplexityWeight = 5
	dataRichnessCap         = 3
)

// complexityWeights is the base score per resource, range [2,10].
// Exhaustive over KnownResourceIDs (enforced by TestWeightTableParity).
var complexityWeights = map[ResourceID]int{
	ResourceICPAnalysis:           5,
	ResourceBuyerPersonas:         4,
	ResourceEmpathyMap:            3,
	ResourceMarketAssessment:      4,
	ResourceCompetitiveIntel:      7,
	ResourceMarketOpportunity:     6,
	ResourceExecutiveBusinessCase: 8,
	ResourceSeriesBReadiness:      8,
	ResourceProductMarketFit:      6,
	ResourceStakeholderArsenal:    6,
	ResourceTechnicalTranslation:  5,
	ResourceROIModels:             5,
	ResourceBoardPresentation:     10,
}

// industryComplexity holds per-industry bonus points, keyed by normalized
// industry name. Industries present but unlisted get +1.
var industryComplexity = map[string]int{
	"fintech":                 2,
	"financial-services":      2,
	"healthcare":              2,
	"healthtech":              2,
	"biotech":                 3,
	"pharmaceuticals":         3,
	"cybersecurity":           2,
	"artificial-intelligence": 2,
	"manufacturing":           1,
	"saas":                    1,
	"e-commerce":              1,
	"edtech":                  1,
	"logistics":               1,
	"real-estate":             1,
}

// marketIntelligenceHeavy are the resources whose value comes mostly from
// market analysis; strategicResources lean on it but less so.
var marketIntelligenceHeavy = map[ResourceID]bool{
	ResourceCompetitiveIntel:      true,
	ResourceMarketOpportunity:     true,
	ResourceExecutiveBusinessCase: true,
	ResourceSeriesBReadiness:      true,
	ResourceProductMarketFit:      true,
}

var strategicResources = map[ResourceID]bool{
	ResourceStakeholderArsenal:   true,
	ResourceTechnicalTranslation: true,
	ResourceROIModels:            true,
}

// AnalyzeComplexity scores a request and recommends a generation tier.
// Best effort: it never fails. Each scoring contribution appends one
// human-readable entry to Factors, in the order applied.
func AnalyzeComplexity(req *Request) ComplexityAnalysis {
	score := 0
	factors := []string{}

	// 1. Base weight from the resource table
	base, known := complexityWeights[req.ResourceID]
	if !known {
		base = defaultComplexityWeight
	}
	score += base
	factors = append(factors, fmt.Sprintf("base complexity for %s (+%d)", req.ResourceID, base))

	// 2. Data richness, capped
	richness := dataRichnessBonus(req.Customer)
	if richness > 0 {
		score += richness
		factors = append(factors, fmt.Sprintf("customer data richness (+%d)", richness))
	}

	// 3. Stakeholder context
	if req.Stakeholders != nil {
		score += 2
		factors = append(factors, "stakeholder context provided (+2)")
	}

	// 4. Product feature depth
	if req.Product != nil && len(req.Product.Features) > 5 {
		score += 1
		factors = append(factors, fmt.Sprintf("%d product features (+1)", len(req.Product.Features)))
	}

	// 5. Industry complexity
	if req.Customer.Industry != "" {
		bonus, listed := industryComplexity[NormalizeIndustry(req.Customer.Industry)]
		if !listed {
			bonus = 1
		}
		score += bonus
		factors = append(factors, fmt.Sprintf("industry %s complexity (+%d)", req.Customer.Industry, bonus))
	}

	// 6. Market-analysis value, only meaningful with industry and product known
	if req.Customer.Industry != "" && req.Customer.ProductName != "" {
		bonus := marketValueBonus(req.ResourceID)
		score += bonus
		factors = append(factors, fmt.Sprintf("market analysis value (+%d)", bonus))
	}

	return ComplexityAnalysis{
		Score:          score,
		Factors:        factors,
		Recommendation: RecommendTier(score),
	}
}

// RecommendTier maps a complexity score onto a generation tier.
func RecommendTier(score int) Tier {
	switch {
	case score <= templateCeiling:
		return TierTemplate
	case score <= enhancedCeiling:
		return TierEnhanced
	default:
		return TierPremium
	}
}

func dataRichnessBonus(c CustomerData) int {
	bonus := 0
	if c.CurrentARR != "" {
		bonus++
	}
	if c.Industry != "" {
		bonus++
	}
	if c.CompanySize != "" {
		bonus++
	}
	if c.TargetMarket != "" {
		bonus++
	}
	if len(c.Competencies) > 0 {
		bonus++
	}
	if bonus > dataRichnessCap {
		bonus = dataRichnessCap
	}
	return bonus
}

func marketValueBonus(id ResourceID) int {
	if marketIntelligenceHeavy[id] {
		return 2
	}
	if strategicResources[id] {
		return 1
	}
	return 0
}

// NormalizeIndustry lowercases an industry name and hyphenates spaces so
// lookups tolerate the free-form casing CRM records arrive with.
func NormalizeIndustry(industry string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(industry)), " ", "-")
}
