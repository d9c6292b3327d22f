// internal/collaborators/aicontent/composer.go
package aicontent

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"revintel-workers/internal/common/logger"
	"revintel-workers/internal/generation"
)

// Config holds the Claude API settings.
type Config struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// Composer writes the research-backed prose for the enhanced tier using
// the Anthropic Messages API. The template document goes in as structure;
// the model rewrites it around the gathered intelligence.
type Composer struct {
	client anthropic.Client
	config *Config
	logger logger.Logger
}

func NewComposer(config *Config, log logger.Logger) *Composer {
	return &Composer{
		client: anthropic.NewClient(option.WithAPIKey(config.APIKey)),
		config: config,
		logger: log.With(map[string]interface{}{"collaborator": "ai_content"}),
	}
}

const systemPrompt = `You are a revenue strategy analyst writing business documents for B2B SaaS companies. Rewrite the provided document skeleton into polished, specific prose grounded in the research findings supplied. Keep the markdown heading structure. Never invent figures that are not in the research; qualify uncertain claims.`

func (c *Composer) Compose(ctx context.Context, req *generation.Request, base string, enr generation.Enrichment) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(req, base, enr))),
		},
		Temperature: anthropic.Float(c.config.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("messages API: %w", err)
	}

	var content strings.Builder
	for _, block := range message.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			content.WriteString(variant.Text)
		}
	}
	if content.Len() == 0 {
		return "", fmt.Errorf("model returned no text content")
	}

	c.logger.Debug("Content composed", map[string]interface{}{
		"resourceId":   req.ResourceID,
		"inputTokens":  message.Usage.InputTokens,
		"outputTokens": message.Usage.OutputTokens,
	})
	return content.String(), nil
}

func buildPrompt(req *generation.Request, base string, enr generation.Enrichment) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Document type: %s\nCompany: %s\nIndustry: %s\nProduct: %s\n\n",
		req.ResourceID, req.Customer.CompanyName, req.Customer.Industry, req.Customer.ProductName)

	b.WriteString("## Document skeleton\n")
	b.WriteString(base)
	b.WriteString("\n\n## Research findings\n")
	if enr.Research != nil {
		for _, f := range enr.Research.Data {
			fmt.Fprintf(&b, "- [%s] %s\n", f.Topic, f.Summary)
		}
	}
	if enr.Market != nil {
		fmt.Fprintf(&b, "\n## Market intelligence (confidence %.2f)\n%s\n", enr.Market.Confidence, enr.Market.IndustryContext)
		for _, tr := range enr.Market.Trends {
			b.WriteString("- trend: " + tr + "\n")
		}
		for _, comp := range enr.Market.Competitors {
			b.WriteString("- competitor: " + comp + "\n")
		}
	}
	b.WriteString("\nRewrite the skeleton into the final document now.")
	return b.String()
}
