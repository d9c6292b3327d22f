// internal/generation/types.go
package generation

import "context"

// ResourceID identifies a generated business document type. The set is
// closed: the complexity-weight table and the template table are both
// keyed by these constants and kept exhaustive over them.
type ResourceID string

const (
	ResourceICPAnalysis           ResourceID = "icp-analysis"
	ResourceBuyerPersonas         ResourceID = "buyer-personas"
	ResourceEmpathyMap            ResourceID = "empathy-map"
	ResourceMarketAssessment      ResourceID = "market-assessment"
	ResourceCompetitiveIntel      ResourceID = "competitive-intelligence"
	ResourceMarketOpportunity     ResourceID = "market-opportunity"
	ResourceExecutiveBusinessCase ResourceID = "executive-business-case"
	ResourceSeriesBReadiness      ResourceID = "series-b-readiness"
	ResourceProductMarketFit      ResourceID = "product-market-fit"
	ResourceStakeholderArsenal    ResourceID = "stakeholder-arsenal"
	ResourceTechnicalTranslation  ResourceID = "technical-translation"
	ResourceROIModels             ResourceID = "roi-models"
	ResourceBoardPresentation     ResourceID = "board-presentation"
)

// KnownResourceIDs lists every resource the platform can generate.
var KnownResourceIDs = []ResourceID{
	ResourceICPAnalysis,
	ResourceBuyerPersonas,
	ResourceEmpathyMap,
	ResourceMarketAssessment,
	ResourceCompetitiveIntel,
	ResourceMarketOpportunity,
	ResourceExecutiveBusinessCase,
	ResourceSeriesBReadiness,
	ResourceProductMarketFit,
	ResourceStakeholderArsenal,
	ResourceTechnicalTranslation,
	ResourceROIModels,
	ResourceBoardPresentation,
}

// Tier is the generation method a request is routed to.
type Tier string

const (
	TierTemplate Tier = "template"
	TierEnhanced Tier = "enhanced"
	TierPremium  Tier = "premium"
)

// CustomerData carries the customer fields used for scoring and template
// substitution. Fields map 1:1 onto the CRM asset record.
type CustomerData struct {
	CompanyName        string   `json:"companyName,omitempty"`
	Industry           string   `json:"industry,omitempty"`
	ProductName        string   `json:"productName,omitempty"`
	ProductDescription string   `json:"productDescription,omitempty"`
	BusinessType       string   `json:"businessType,omitempty"`
	CurrentARR         string   `json:"currentARR,omitempty"`
	TargetARR          string   `json:"targetARR,omitempty"`
	TargetMarket       string   `json:"targetMarket,omitempty"`
	MarketSize         string   `json:"marketSize,omitempty"`
	CompanySize        string   `json:"companySize,omitempty"`
	ContactEmail       string   `json:"contactEmail,omitempty"`
	Competencies       []string `json:"competencies,omitempty"`
}

// ProductContext carries optional product detail attached to a request.
type ProductContext struct {
	Features      []string `json:"features,omitempty"`
	Differentiant string   `json:"differentiator,omitempty"`
	PricingModel  string   `json:"pricingModel,omitempty"`
}

// Stakeholder is one named decision maker in the customer's deal.
type Stakeholder struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Influence string `json:"influence,omitempty"`
}

// StakeholderContext carries optional stakeholder detail attached to a request.
type StakeholderContext struct {
	Stakeholders []Stakeholder `json:"stakeholders,omitempty"`
	DealStage    string        `json:"dealStage,omitempty"`
	CompanyName  string        `json:"companyName,omitempty"`
}

// Request is one resource-generation request. Immutable per call; the
// request is consumed by the analyzer and exactly one generator branch.
type Request struct {
	ResourceID   ResourceID          `json:"resourceId"`
	ResourceType string              `json:"resourceType"`
	CustomerID   string              `json:"customerId"`
	Customer     CustomerData        `json:"customerData"`
	Product      *ProductContext     `json:"productContext,omitempty"`
	Stakeholders *StakeholderContext `json:"stakeholderContext,omitempty"`
}

// ComplexityAnalysis is the analyzer's verdict. Recommendation is a pure
// function of Score; Factors is the audit trail, one entry per scoring
// contribution in the order contributions were added.
type ComplexityAnalysis struct {
	Score          int      `json:"score"`
	Factors        []string `json:"factors"`
	Recommendation Tier     `json:"recommendation"`
}

// Result is the outcome of one generation. Quality is a coarse 0-100
// document signal; Confidence is a 0-1 input-trust signal. The two scales
// are independent and never cross-checked.
type Result struct {
	Content          string   `json:"content"`
	Quality          int      `json:"quality"`
	GenerationMethod Tier     `json:"generationMethod"`
	Cost             float64  `json:"cost"`
	DurationMS       int64    `json:"duration"`
	Sources          []string `json:"sources"`
	Confidence       float64  `json:"confidence"`
	DocumentURL      string   `json:"documentUrl,omitempty"`
}

// Capabilities records which optional collaborators were reachable at
// startup. Injected at construction so tests can simulate any combination
// without shared mutable state.
type Capabilities struct {
	Competitive bool
	Stakeholder bool
	Publishing  bool
}

// --- Collaborator contracts ---

// ResearchDepth selects how much web research the collaborator performs.
type ResearchDepth string

const (
	DepthLight  ResearchDepth = "light"
	DepthMedium ResearchDepth = "medium"
	DepthDeep   ResearchDepth = "deep"
)

// ResearchInput is the product description handed to the web researcher.
type ResearchInput struct {
	ProductName        string `json:"productName"`
	BusinessType       string `json:"businessType"`
	ProductDescription string `json:"productDescription"`
}

// ResearchFinding is one research result entry.
type ResearchFinding struct {
	Topic   string `json:"topic"`
	Summary string `json:"summary"`
	URL     string `json:"url,omitempty"`
}

// ResearchBundle is the web researcher's response envelope.
type ResearchBundle struct {
	Successful int               `json:"successful"`
	Failed     int               `json:"failed"`
	Cached     bool              `json:"cached"`
	Real       bool              `json:"real"`
	Data       []ResearchFinding `json:"data"`
}

// MarketIntelligence is the market analyzer's response.
type MarketIntelligence struct {
	Confidence      float64  `json:"confidence"`
	IndustryContext string   `json:"industryContext"`
	Conditions      []string `json:"conditions"`
	Trends          []string `json:"trends"`
	Competitors     []string `json:"competitors"`
	Opportunities   []string `json:"opportunities"`
	Risks           []string `json:"risks"`
}

// CompetitiveIntel is the competitive scanner's response.
type CompetitiveIntel struct {
	PricingIntelligence string `json:"pricingIntelligence"`
	FeatureComparison   string `json:"featureComparison"`
	MarketIntelligence  string `json:"marketIntelligence"`
}

// StakeholderIntel is the stakeholder profiler's response.
type StakeholderIntel struct {
	StakeholderProfiles []string `json:"stakeholderProfiles"`
	CompanyContext      string   `json:"companyContext"`
	RelationshipMapping string   `json:"relationshipMapping"`
}

// PublishedDocument is the document publisher's response.
type PublishedDocument struct {
	Success     bool              `json:"success"`
	DocumentURL string            `json:"documentUrl"`
	PublicURL   string            `json:"publicUrl"`
	DocumentID  string            `json:"documentId"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Enrichment bundles whatever optional intelligence the enhanced tier
// gathered before content composition.
type Enrichment struct {
	Research    *ResearchBundle
	Market      *MarketIntelligence
	Competitive *CompetitiveIntel
	Stakeholder *StakeholderIntel
}

type WebResearcher interface {
	ConductProductResearch(ctx context.Context, in ResearchInput, depth ResearchDepth) (*ResearchBundle, error)
}

type MarketAnalyzer interface {
	AnalyzeMarket(ctx context.Context, productName, industry, targetMarket string, customer CustomerData) (*MarketIntelligence, error)
}

type CompetitiveScanner interface {
	ScanCompetitors(ctx context.Context, req *Request) (*CompetitiveIntel, error)
}

type StakeholderProfiler interface {
	ProfileStakeholders(ctx context.Context, req *Request) (*StakeholderIntel, error)
}

type DocumentPublisher interface {
	IsServiceAvailable(ctx context.Context) bool
	GenerateBusinessDocument(ctx context.Context, id ResourceID, content string, customer CustomerData) (*PublishedDocument, error)
}

// ContentComposer writes the AI-authored prose for the enhanced tier.
type ContentComposer interface {
	Compose(ctx context.Context, req *Request, base string, enrichment Enrichment) (string, error)
}
