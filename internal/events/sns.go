// internal/events/sns.go
package events

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"revintel-workers/internal/common/logger"
	"revintel-workers/internal/generation"
)

// snsPublisher is what the emitter needs from the SNS wrapper.
type snsPublisher interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

// SNSEmitter publishes generation lifecycle events to an SNS topic.
// Fire-and-forget: publish failures are logged, never returned, and never
// slow the generation pipeline down.
type SNSEmitter struct {
	client   snsPublisher
	topicARN string
	logger   logger.Logger
}

func NewSNSEmitter(client snsPublisher, topicARN string, log logger.Logger) *SNSEmitter {
	return &SNSEmitter{
		client:   client,
		topicARN: topicARN,
		logger:   log.With(map[string]interface{}{"component": "sns_emitter"}),
	}
}

func (e *SNSEmitter) Emit(ctx context.Context, event generation.Event) {
	body, err := json.Marshal(event)
	if err != nil {
		e.logger.WithError(err).Error("Event serialization failed", map[string]interface{}{
			"type":      event.Type,
			"requestId": event.RequestID,
		})
		return
	}

	_, err = e.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(e.topicARN),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"eventType": {
				DataType:    aws.String("String"),
				StringValue: aws.String(string(event.Type)),
			},
			"resourceId": {
				DataType:    aws.String("String"),
				StringValue: aws.String(string(event.ResourceID)),
			},
		},
	})
	if err != nil {
		e.logger.WithError(err).Warn("Event publish failed", map[string]interface{}{
			"type":      event.Type,
			"requestId": event.RequestID,
		})
	}
}
