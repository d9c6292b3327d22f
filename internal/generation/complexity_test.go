// internal/generation/complexity_test.go
package generation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Tier Boundary Tests
// ==========================

func TestRecommendTier_Boundaries(t *testing.T) {
	tests := []struct {
		score    int
		expected Tier
	}{
		{0, TierTemplate},
		{2, TierTemplate},
		{3, TierTemplate},
		{4, TierEnhanced},
		{5, TierEnhanced},
		{7, TierEnhanced},
		{8, TierPremium},
		{12, TierPremium},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("score_%d", tt.score), func(t *testing.T) {
			assert.Equal(t, tt.expected, RecommendTier(tt.score))
		})
	}
}

func TestAnalyzeComplexity_BoundaryRequests(t *testing.T) {
	tests := []struct {
		name          string
		req           *Request
		expectedScore int
		expectedTier  Tier
	}{
		{
			// empathy-map base 3, no customer data, no bonuses
			name:          "bare empathy-map stays template",
			req:           &Request{ResourceID: ResourceEmpathyMap},
			expectedScore: 3,
			expectedTier:  TierTemplate,
		},
		{
			// buyer-personas base 4 crosses into enhanced on its own
			name:          "bare buyer-personas routes enhanced",
			req:           &Request{ResourceID: ResourceBuyerPersonas},
			expectedScore: 4,
			expectedTier:  TierEnhanced,
		},
		{
			// competitive-intelligence base 7 sits on the enhanced ceiling
			name:          "bare competitive-intelligence stays enhanced",
			req:           &Request{ResourceID: ResourceCompetitiveIntel},
			expectedScore: 7,
			expectedTier:  TierEnhanced,
		},
		{
			// executive-business-case base 8 routes premium on its own
			name:          "bare executive-business-case routes premium",
			req:           &Request{ResourceID: ResourceExecutiveBusinessCase},
			expectedScore: 8,
			expectedTier:  TierPremium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := AnalyzeComplexity(tt.req)
			assert.Equal(t, tt.expectedScore, analysis.Score)
			assert.Equal(t, tt.expectedTier, analysis.Recommendation)
		})
	}
}

// ==========================
// Scoring Contribution Tests
// ==========================

func TestAnalyzeComplexity_Additivity(t *testing.T) {
	// board-presentation base 10 with nothing else attached
	bare := AnalyzeComplexity(&Request{ResourceID: ResourceBoardPresentation})
	assert.Equal(t, 10, bare.Score)
	assert.Equal(t, TierPremium, bare.Recommendation)

	// adding stakeholder context contributes exactly +2
	withStakeholders := AnalyzeComplexity(&Request{
		ResourceID:   ResourceBoardPresentation,
		Stakeholders: &StakeholderContext{DealStage: "negotiation"},
	})
	assert.Equal(t, 12, withStakeholders.Score)
	assert.Equal(t, TierPremium, withStakeholders.Recommendation)
}

func TestAnalyzeComplexity_DataRichnessCapped(t *testing.T) {
	// All five richness fields present; bonus must stay capped at 3.
	analysis := AnalyzeComplexity(&Request{
		ResourceID: ResourceEmpathyMap,
		Customer: CustomerData{
			CurrentARR:   "$2M",
			Industry:     "saas",
			CompanySize:  "50-100",
			TargetMarket: "mid-market",
			Competencies: []string{"sales"},
		},
	})
	// 3 base + 3 richness (capped) + 1 saas industry = 7
	assert.Equal(t, 7, analysis.Score)
	assert.Equal(t, TierEnhanced, analysis.Recommendation)
}

func TestAnalyzeComplexity_IndustryBonus(t *testing.T) {
	tests := []struct {
		industry string
		bonus    int
	}{
		{"fintech", 2},
		{"Fintech", 2},
		{"biotech", 3},
		{"saas", 1},
		{"Financial Services", 2},
		{"underwater basket weaving", 1}, // present but unlisted
	}

	for _, tt := range tests {
		t.Run(tt.industry, func(t *testing.T) {
			base := AnalyzeComplexity(&Request{ResourceID: ResourceEmpathyMap})
			with := AnalyzeComplexity(&Request{
				ResourceID: ResourceEmpathyMap,
				Customer:   CustomerData{Industry: tt.industry},
			})
			// industry contributes its own bonus plus one richness point
			assert.Equal(t, base.Score+tt.bonus+1, with.Score)
		})
	}
}

func TestAnalyzeComplexity_MarketValueRequiresIndustryAndProduct(t *testing.T) {
	// industry alone does not unlock the market-analysis contribution
	withoutProduct := AnalyzeComplexity(&Request{
		ResourceID: ResourceCompetitiveIntel,
		Customer:   CustomerData{Industry: "saas"},
	})
	// 7 base + 1 richness + 1 saas = 9
	assert.Equal(t, 9, withoutProduct.Score)

	withProduct := AnalyzeComplexity(&Request{
		ResourceID: ResourceCompetitiveIntel,
		Customer:   CustomerData{Industry: "saas", ProductName: "FlowOps"},
	})
	// 9 + 2 market-intelligence-heavy = 11
	assert.Equal(t, 11, withProduct.Score)
}

func TestAnalyzeComplexity_ProductFeatureDepth(t *testing.T) {
	fiveFeatures := AnalyzeComplexity(&Request{
		ResourceID: ResourceEmpathyMap,
		Product:    &ProductContext{Features: []string{"a", "b", "c", "d", "e"}},
	})
	assert.Equal(t, 3, fiveFeatures.Score)

	sixFeatures := AnalyzeComplexity(&Request{
		ResourceID: ResourceEmpathyMap,
		Product:    &ProductContext{Features: []string{"a", "b", "c", "d", "e", "f"}},
	})
	assert.Equal(t, 4, sixFeatures.Score)
}

func TestAnalyzeComplexity_UnknownResourceDefaultWeight(t *testing.T) {
	analysis := AnalyzeComplexity(&Request{ResourceID: ResourceID("mystery-report")})
	assert.Equal(t, 5, analysis.Score)
	assert.Equal(t, TierEnhanced, analysis.Recommendation)
}

func TestAnalyzeComplexity_FactorsTrackContributions(t *testing.T) {
	analysis := AnalyzeComplexity(&Request{
		ResourceID:   ResourceBoardPresentation,
		Customer:     CustomerData{Industry: "fintech"},
		Stakeholders: &StakeholderContext{},
	})

	// base, richness, stakeholders, industry: one factor per contribution,
	// in application order
	assert.Len(t, analysis.Factors, 4)
	assert.Contains(t, analysis.Factors[0], "base complexity")
	assert.Contains(t, analysis.Factors[1], "richness")
	assert.Contains(t, analysis.Factors[2], "stakeholder")
	assert.Contains(t, analysis.Factors[3], "industry")
}

// ==========================
// Table Parity Tests
// ==========================

func TestWeightTableParity(t *testing.T) {
	for _, id := range KnownResourceIDs {
		_, ok := complexityWeights[id]
		assert.True(t, ok, "missing weight for %s", id)
	}
	assert.Len(t, complexityWeights, len(KnownResourceIDs))
}

func TestNormalizeIndustry(t *testing.T) {
	assert.Equal(t, "financial-services", NormalizeIndustry("Financial Services"))
	assert.Equal(t, "saas", NormalizeIndustry("  SaaS  "))
	assert.Equal(t, "e-commerce", NormalizeIndustry("E-Commerce"))
}
