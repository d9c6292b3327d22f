// internal/collaborators/competitive/client_test.go
package competitive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revintel-workers/internal/common/logger"
	"revintel-workers/internal/generation"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	return NewClient(&Config{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	}, logger.NewTestLogger(t))
}

func TestProbe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	assert.True(t, newTestClient(t, server.URL).Probe(context.Background()))
	assert.False(t, newTestClient(t, "http://127.0.0.1:1").Probe(context.Background()))
	assert.False(t, newTestClient(t, "").Probe(context.Background()))
}

func TestScanCompetitors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/scan", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Write([]byte(`{
			"pricingIntelligence": "Tiered, $50-$200 per seat.",
			"featureComparison": "Near parity on core workflows.",
			"marketIntelligence": "Fragmented, no dominant vendor."
		}`))
	}))
	defer server.Close()

	intel, err := newTestClient(t, server.URL).ScanCompetitors(context.Background(), &generation.Request{
		ResourceID: generation.ResourceCompetitiveIntel,
		Customer:   generation.CustomerData{CompanyName: "Acme", ProductName: "AcmeFlow"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Tiered, $50-$200 per seat.", intel.PricingIntelligence)
	assert.Equal(t, "Fragmented, no dominant vendor.", intel.MarketIntelligence)
}

func TestScanCompetitors_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	intel, err := newTestClient(t, server.URL).ScanCompetitors(context.Background(), &generation.Request{})
	assert.Nil(t, intel)
	require.Error(t, err)
}
