// internal/notify/email.go
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"revintel-workers/internal/common/errors"
	"revintel-workers/internal/common/logger"
	"revintel-workers/internal/generation"
)

// sesSender is what the mailer needs from the SES wrapper.
type sesSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// Mailer sends completion emails when a premium generation published a
// document. It requires a contact email on the customer record; requests
// without one are silently skipped, not errors.
type Mailer struct {
	client sesSender
	from   string
	logger logger.Logger
}

func NewMailer(client sesSender, from string, log logger.Logger) *Mailer {
	return &Mailer{
		client: client,
		from:   from,
		logger: log.With(map[string]interface{}{"component": "mailer"}),
	}
}

// SendCompletionEmail notifies the customer their document is ready.
// documentURL may be empty for degraded premium results; the email then
// omits the link paragraph.
func (m *Mailer) SendCompletionEmail(ctx context.Context, customer generation.CustomerData, resourceID generation.ResourceID, documentURL string) error {
	if customer.ContactEmail == "" {
		m.logger.Debug("No contact email on record, skipping completion email", map[string]interface{}{
			"resourceId": resourceID,
		})
		return nil
	}

	subject := fmt.Sprintf("Your %s is ready", displayName(resourceID))
	body := buildBody(customer, resourceID, documentURL)

	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(m.from),
		Destination: &types.Destination{
			ToAddresses: []string{customer.ContactEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
	})
	if err != nil {
		return errors.NewNotificationSendFailedError("completion_email", err)
	}

	m.logger.Info("Completion email sent", map[string]interface{}{
		"resourceId": resourceID,
		"to":         customer.ContactEmail,
	})
	return nil
}

func buildBody(customer generation.CustomerData, resourceID generation.ResourceID, documentURL string) string {
	var b strings.Builder
	name := customer.CompanyName
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&b, "Hi %s,\n\nYour %s has been generated and is ready for review.\n", name, displayName(resourceID))
	if documentURL != "" {
		fmt.Fprintf(&b, "\nView the document: %s\n", documentURL)
	}
	b.WriteString("\nThe Revenue Intelligence Team\n")
	return b.String()
}

// displayName turns a resource id into email-friendly words.
func displayName(id generation.ResourceID) string {
	return strings.ReplaceAll(string(id), "-", " ")
}
