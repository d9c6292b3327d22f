// internal/notify/email_test.go
package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revintel-workers/internal/common/logger"
	"revintel-workers/internal/generation"
)

type fakeSender struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (f *fakeSender) SendEmail(_ context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{}, nil
}

func TestSendCompletionEmail(t *testing.T) {
	sender := &fakeSender{}
	mailer := NewMailer(sender, "noreply@revintel.example", logger.NewTestLogger(t))

	err := mailer.SendCompletionEmail(context.Background(), generation.CustomerData{
		CompanyName:  "Acme Robotics",
		ContactEmail: "dana@acme.example",
	}, generation.ResourceBoardPresentation, "https://docs.example.com/pub/doc-789")
	require.NoError(t, err)

	require.Len(t, sender.inputs, 1)
	input := sender.inputs[0]
	assert.Equal(t, "noreply@revintel.example", *input.Source)
	assert.Equal(t, []string{"dana@acme.example"}, input.Destination.ToAddresses)
	assert.Equal(t, "Your board presentation is ready", *input.Message.Subject.Data)
	assert.Contains(t, *input.Message.Body.Text.Data, "https://docs.example.com/pub/doc-789")
}

func TestSendCompletionEmail_NoContactSkips(t *testing.T) {
	sender := &fakeSender{}
	mailer := NewMailer(sender, "noreply@revintel.example", logger.NewTestLogger(t))

	err := mailer.SendCompletionEmail(context.Background(), generation.CustomerData{}, generation.ResourceROIModels, "")
	require.NoError(t, err)
	assert.Empty(t, sender.inputs)
}

func TestSendCompletionEmail_NoLinkParagraphWhenDegraded(t *testing.T) {
	sender := &fakeSender{}
	mailer := NewMailer(sender, "noreply@revintel.example", logger.NewTestLogger(t))

	err := mailer.SendCompletionEmail(context.Background(), generation.CustomerData{
		ContactEmail: "dana@acme.example",
	}, generation.ResourceROIModels, "")
	require.NoError(t, err)
	require.Len(t, sender.inputs, 1)
	assert.NotContains(t, *sender.inputs[0].Message.Body.Text.Data, "View the document")
}

func TestSendCompletionEmail_SendFailureWrapped(t *testing.T) {
	sender := &fakeSender{err: errors.New("ses throttled")}
	mailer := NewMailer(sender, "noreply@revintel.example", logger.NewTestLogger(t))

	err := mailer.SendCompletionEmail(context.Background(), generation.CustomerData{
		ContactEmail: "dana@acme.example",
	}, generation.ResourceROIModels, "")
	require.Error(t, err)
}
