// internal/generation/premium_test.go
package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revintel-workers/internal/common/logger"
)

func newPremiumFixture(t *testing.T, pub *fakePublisher, caps Capabilities) (*PremiumGenerator, *enhancedFixture) {
	f := newEnhancedFixture(t, caps)
	gen := NewPremiumGenerator(f.gen, pub, caps, logger.NewTestLogger(t))
	return gen, f
}

func publishedDoc() *PublishedDocument {
	return &PublishedDocument{
		Success:     true,
		DocumentID:  "doc-789",
		DocumentURL: "https://docs.example.com/d/doc-789",
		PublicURL:   "https://docs.example.com/pub/doc-789",
	}
}

// ==========================
// Publishing Success Tests
// ==========================

func TestPremiumGenerator_PublishSuccess(t *testing.T) {
	pub := &fakePublisher{available: true, doc: publishedDoc()}
	gen, _ := newPremiumFixture(t, pub, Capabilities{Publishing: true})

	res, err := gen.Generate(context.Background(), enhancedRequest(), nil)
	require.NoError(t, err)

	assert.Equal(t, TierPremium, res.GenerationMethod)
	assert.Equal(t, 95, res.Quality)
	assert.Equal(t, 1.50, res.Cost)
	assert.Equal(t, 0.95, res.Confidence)
	assert.Equal(t, int64(2000), res.DurationMS)
	assert.Contains(t, res.Sources, "google_workspace")
	assert.Contains(t, res.Content, "## Professional Document Generated")
	assert.Contains(t, res.Content, "Document ID: doc-789")
	assert.Contains(t, res.Content, "https://docs.example.com/pub/doc-789")
	assert.Equal(t, "https://docs.example.com/pub/doc-789", res.DocumentURL)
	assert.Equal(t, 1, pub.calls)
}

func TestPremiumGenerator_PublishFooterIncludesMetadata(t *testing.T) {
	doc := publishedDoc()
	doc.Metadata = map[string]string{"template": "executive", "pages": "12"}
	pub := &fakePublisher{available: true, doc: doc}
	gen, _ := newPremiumFixture(t, pub, Capabilities{Publishing: true})

	res, err := gen.Generate(context.Background(), enhancedRequest(), nil)
	require.NoError(t, err)

	assert.Contains(t, res.Content, "## Professional Document Generated")
	assert.Contains(t, res.Content, "- pages: 12")
	assert.Contains(t, res.Content, "- template: executive")
}

// ==========================
// Degrade Path Tests
// ==========================

func TestPremiumGenerator_CapabilityAbsentDegrades(t *testing.T) {
	pub := &fakePublisher{available: true, doc: publishedDoc()}
	gen, _ := newPremiumFixture(t, pub, Capabilities{Publishing: false})

	res, err := gen.Generate(context.Background(), enhancedRequest(), nil)
	require.NoError(t, err)

	// enhanced result relabeled: premium method at enhanced cost
	assert.Equal(t, TierPremium, res.GenerationMethod)
	assert.Equal(t, 0.10, res.Cost)
	assert.NotContains(t, res.Sources, "google_workspace")
	assert.Equal(t, 0, pub.calls)
}

func TestPremiumGenerator_ServiceUnavailableDegrades(t *testing.T) {
	pub := &fakePublisher{available: false, doc: publishedDoc()}
	gen, _ := newPremiumFixture(t, pub, Capabilities{Publishing: true})

	res, err := gen.Generate(context.Background(), enhancedRequest(), nil)
	require.NoError(t, err)

	assert.Equal(t, TierPremium, res.GenerationMethod)
	assert.Equal(t, 0.10, res.Cost)
	assert.Equal(t, 0, pub.calls)
}

func TestPremiumGenerator_PublishErrorDegrades(t *testing.T) {
	pub := &fakePublisher{available: true, err: errors.New("drive quota exceeded")}
	gen, _ := newPremiumFixture(t, pub, Capabilities{Publishing: true})

	res, err := gen.Generate(context.Background(), enhancedRequest(), nil)
	require.NoError(t, err)

	assert.Equal(t, TierPremium, res.GenerationMethod)
	assert.Equal(t, 0.10, res.Cost)
	assert.Equal(t, 1, pub.calls)
}

func TestPremiumGenerator_DegradedQualityCredit(t *testing.T) {
	// enhanced produces 85+8=93 here; the degrade credit lifts it to the cap
	pub := &fakePublisher{available: false}
	gen, _ := newPremiumFixture(t, pub, Capabilities{Publishing: true})

	res, err := gen.Generate(context.Background(), enhancedRequest(), nil)
	require.NoError(t, err)
	assert.Equal(t, 95, res.Quality)
}

func TestPremiumGenerator_UnsuccessfulDocDegrades(t *testing.T) {
	pub := &fakePublisher{available: true, doc: &PublishedDocument{Success: false}}
	gen, _ := newPremiumFixture(t, pub, Capabilities{Publishing: true})

	res, err := gen.Generate(context.Background(), enhancedRequest(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0.10, res.Cost)
	assert.NotContains(t, res.Sources, "google_workspace")
}

// ==========================
// Escalation Tests
// ==========================

func TestPremiumGenerator_EnhancedFailureEscalates(t *testing.T) {
	pub := &fakePublisher{available: true, doc: publishedDoc()}
	gen, f := newPremiumFixture(t, pub, Capabilities{Publishing: true})
	f.research.err = errors.New("upstream 503")

	res, err := gen.Generate(context.Background(), enhancedRequest(), nil)
	assert.Nil(t, res)
	require.Error(t, err)
	assert.Equal(t, 0, pub.calls)
}
