// internal/collaborators/crm/client_test.go
package crm

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
		BaseID:  "base-123",
		Timeout: 2 * time.Second,
	}, logger.NewTestLogger(t))
}

func TestGetCustomerAssets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v0/base-123/customer-assets/cust-42", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Write([]byte(`{
			"id": "rec123",
			"fields": {
				"Company Name": "Acme Robotics",
				"Industry": "manufacturing",
				"Product Name": "AcmeFlow",
				"Current ARR": "$3M",
				"Core Competencies": ["automation", "vision systems"]
			}
		}`))
	}))
	defer server.Close()

	data, err := newTestClient(t, server.URL).GetCustomerAssets(context.Background(), "cust-42")
	require.NoError(t, err)
	assert.Equal(t, "Acme Robotics", data.CompanyName)
	assert.Equal(t, "manufacturing", data.Industry)
	assert.Equal(t, "$3M", data.CurrentARR)
	assert.Len(t, data.Competencies, 2)
}

func TestGetCustomerAssets_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	data, err := newTestClient(t, server.URL).GetCustomerAssets(context.Background(), "cust-missing")
	assert.Nil(t, data)
	require.Error(t, err)
}

func TestMergeCustomerData_ProvidedFieldsWin(t *testing.T) {
	provided := generation.CustomerData{
		CompanyName: "Acme Robotics",
		CurrentARR:  "$4M", // fresher than the CRM copy
	}
	record := &generation.CustomerData{
		CompanyName:  "Acme Robotics Inc",
		Industry:     "manufacturing",
		CurrentARR:   "$3M",
		TargetMarket: "mid-market",
	}

	merged := MergeCustomerData(provided, record)
	assert.Equal(t, "Acme Robotics", merged.CompanyName)
	assert.Equal(t, "$4M", merged.CurrentARR)
	assert.Equal(t, "manufacturing", merged.Industry)
	assert.Equal(t, "mid-market", merged.TargetMarket)
}

func TestMergeCustomerData_NilRecordIsIdentity(t *testing.T) {
	provided := generation.CustomerData{CompanyName: "Acme"}
	assert.Equal(t, provided, MergeCustomerData(provided, nil))
}
