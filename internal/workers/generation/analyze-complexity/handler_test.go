// internal/workers/generation/analyze-complexity/handler_test.go
package analyzecomplexity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revintel-workers/internal/common/logger"
	"revintel-workers/internal/generation"
)

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), logger.NewTestLogger(t))
}

func TestExecute_TierRecommendations(t *testing.T) {
	tests := []struct {
		name           string
		input          *Input
		expectedScore  int
		expectedMethod string
	}{
		{
			// empathy-map base 3, nothing else
			name:           "simple resource routes template",
			input:          &Input{ResourceID: "empathy-map", CustomerID: "cust-1"},
			expectedScore:  3,
			expectedMethod: "template",
		},
		{
			// icp-analysis base 5 + richness 2 (arr, industry) + saas 1 = 8
			name: "rich customer data pushes icp to premium",
			input: &Input{
				ResourceID: "icp-analysis",
				CustomerID: "cust-2",
				Customer:   generation.CustomerData{CurrentARR: "$2M", Industry: "saas"},
			},
			expectedScore:  8,
			expectedMethod: "premium",
		},
		{
			// board-presentation base 10 alone
			name:           "board presentation always premium",
			input:          &Input{ResourceID: "board-presentation", CustomerID: "cust-3"},
			expectedScore:  10,
			expectedMethod: "premium",
		},
		{
			// unknown resource falls back to the default weight
			name:           "unknown resource id gets default weight",
			input:          &Input{ResourceID: "mystery-report", CustomerID: "cust-4"},
			expectedScore:  5,
			expectedMethod: "enhanced",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := newTestHandler(t).Execute(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedScore, output.ComplexityScore)
			assert.Equal(t, tt.expectedMethod, output.RecommendedMethod)
			assert.NotEmpty(t, output.ComplexityFactors)
		})
	}
}

func TestExecute_StakeholderContextRaisesScore(t *testing.T) {
	h := newTestHandler(t)

	without, err := h.Execute(context.Background(), &Input{ResourceID: "buyer-personas", CustomerID: "cust-1"})
	require.NoError(t, err)

	with, err := h.Execute(context.Background(), &Input{
		ResourceID:   "buyer-personas",
		CustomerID:   "cust-1",
		Stakeholders: &generation.StakeholderContext{DealStage: "evaluation"},
	})
	require.NoError(t, err)

	assert.Equal(t, without.ComplexityScore+2, with.ComplexityScore)
}
