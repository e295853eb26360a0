package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fjacquet/debt-planner/internal/currencyutils"
	"fjacquet/debt-planner/internal/logging"
	"fjacquet/debt-planner/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-1.5-flash"

// TextGenerator produces a completion for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// geminiGenerator adapts a genai model to TextGenerator.
type geminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no response from Gemini API")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// GeminiExplainer asks Gemini for the explanation and falls back to the
// template when the call fails or returns nothing.
type GeminiExplainer struct {
	generator TextGenerator
	fallback  Explainer
	timeout   time.Duration
	currency  string
	logger    logging.Logger
	closer    func() error
}

var _ Explainer = (*GeminiExplainer)(nil)

// NewGeminiExplainer connects to Gemini with apiKey.
func NewGeminiExplainer(ctx context.Context, apiKey, modelName string, timeout time.Duration, currency string, logger logging.Logger) (*GeminiExplainer, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	e := NewExplainerWithGenerator(&geminiGenerator{client: client, model: model}, timeout, currency, logger)
	e.closer = client.Close
	return e, nil
}

// NewExplainerWithGenerator builds a GeminiExplainer over any TextGenerator.
func NewExplainerWithGenerator(generator TextGenerator, timeout time.Duration, currency string, logger logging.Logger) *GeminiExplainer {
	return &GeminiExplainer{
		generator: generator,
		fallback:  TemplateExplainer{Currency: currency},
		timeout:   timeout,
		currency:  currency,
		logger:    logging.OrNop(logger),
	}
}

// Close releases the Gemini client.
func (e *GeminiExplainer) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer()
}

// ExplainComparison implements Explainer.
func (e *GeminiExplainer) ExplainComparison(ctx context.Context, debts []models.Debt, c *models.StrategyComparison) (string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	text, err := e.generator.Generate(ctx, e.prompt(debts, c))
	if err == nil && text != "" {
		return text, nil
	}
	if err == nil {
		err = errors.New("empty explanation")
	}

	e.logger.WithError(err).Warn("AI explanation unavailable, using template",
		logging.Field{Key: logging.FieldOperation, Value: "explain_comparison"})
	return e.fallback.ExplainComparison(ctx, debts, c)
}

func (e *GeminiExplainer) prompt(debts []models.Debt, c *models.StrategyComparison) string {
	var list strings.Builder
	for _, d := range debts {
		if !d.IsActive() {
			continue
		}
		fmt.Fprintf(&list, "- %s: balance %s at %s, minimum %s\n", d.Name,
			currencyutils.FormatAmount(d.CurrentBalance, e.currency),
			currencyutils.FormatRate(d.InterestRate),
			currencyutils.FormatAmount(d.MinimumPayment, e.currency))
	}

	return fmt.Sprintf(`You are a careful personal finance coach. Explain in 3 or 4 plain sentences why the %s method is recommended for these debts, and what to pay first.

Debts:
%s
Extra payment each month: %s
Avalanche (highest rate first): %d months, %s interest
Snowball (smallest balance first): %d months, %s interest

Only use the numbers given above.`,
		c.Recommended,
		list.String(),
		currencyutils.FormatAmount(c.ExtraPayment, e.currency),
		c.Avalanche.PayoffMonths, currencyutils.FormatAmount(c.Avalanche.TotalInterestPaid, e.currency),
		c.Snowball.PayoffMonths, currencyutils.FormatAmount(c.Snowball.TotalInterestPaid, e.currency))
}
