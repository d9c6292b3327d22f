// internal/events/sns_test.go
package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revintel-workers/internal/common/logger"
	"revintel-workers/internal/generation"
)

type fakePublisher struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{}, nil
}

func testEvent() generation.Event {
	return generation.Event{
		Type:       generation.EventGenerationCompleted,
		RequestID:  "req-123",
		ResourceID: generation.ResourceICPAnalysis,
		CustomerID: "cust-42",
		Timestamp:  time.Now().UTC(),
		Payload: generation.CompletedPayload{
			Method:  generation.TierEnhanced,
			Quality: 93,
			Cost:    0.10,
		},
	}
}

func TestSNSEmitter_PublishesEnvelope(t *testing.T) {
	pub := &fakePublisher{}
	emitter := NewSNSEmitter(pub, "arn:aws:sns:us-east-1:123:generation-events", logger.NewTestLogger(t))

	emitter.Emit(context.Background(), testEvent())

	require.Len(t, pub.inputs, 1)
	input := pub.inputs[0]
	assert.Equal(t, "arn:aws:sns:us-east-1:123:generation-events", *input.TopicArn)
	assert.Equal(t, "generation.completed", *input.MessageAttributes["eventType"].StringValue)
	assert.Equal(t, "icp-analysis", *input.MessageAttributes["resourceId"].StringValue)

	var decoded generation.Event
	require.NoError(t, json.Unmarshal([]byte(*input.Message), &decoded))
	assert.Equal(t, "req-123", decoded.RequestID)
	assert.Equal(t, generation.EventGenerationCompleted, decoded.Type)
}

func TestSNSEmitter_PublishFailureIsSwallowed(t *testing.T) {
	pub := &fakePublisher{err: errors.New("topic gone")}
	emitter := NewSNSEmitter(pub, "arn:topic", logger.NewTestLogger(t))

	// must not panic or propagate
	emitter.Emit(context.Background(), testEvent())
	assert.Len(t, pub.inputs, 1)
}
