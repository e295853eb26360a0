package advisor

import (
	"context"
	"errors"
	"testing"
	"time"

	"fjacquet/debt-planner/internal/logging"
	"fjacquet/debt-planner/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleDebts() []models.Debt {
	return []models.Debt{
		{ID: "A", Name: "Visa", Status: models.StatusActive, CurrentBalance: d("1000"), InterestRate: d("0.24"), MinimumPayment: d("50")},
		{ID: "B", Name: "Store card", Status: models.StatusActive, CurrentBalance: d("500"), InterestRate: d("0.10"), MinimumPayment: d("30")},
	}
}

func sampleComparison() *models.StrategyComparison {
	return &models.StrategyComparison{
		ExtraPayment:  d("100"),
		Avalanche:     models.Outcome{PayoffMonths: 9, TotalInterestPaid: d("112.84")},
		Snowball:      models.Outcome{PayoffMonths: 10, TotalInterestPaid: d("140.56")},
		Recommended:   models.StrategyAvalanche,
		InterestSaved: d("27.72"),
		MonthsSaved:   1,
	}
}

type fakeGenerator struct {
	text    string
	err     error
	prompts []string
	delay   time.Duration
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

func TestTemplateExplainer(t *testing.T) {
	text, err := TemplateExplainer{Currency: "USD"}.ExplainComparison(context.Background(), sampleDebts(), sampleComparison())
	require.NoError(t, err)

	assert.Contains(t, text, "avalanche method")
	assert.Contains(t, text, "$112.84")
	assert.Contains(t, text, "$27.72 less interest than snowball")
	assert.Contains(t, text, "Start by putting every spare amount on Visa.")
}

func TestTemplateExplainer_Snowball(t *testing.T) {
	c := sampleComparison()
	c.Recommended = models.StrategySnowball
	c.InterestSaved = decimal.Zero
	c.MonthsSaved = 2

	text, err := TemplateExplainer{}.ExplainComparison(context.Background(), sampleDebts(), c)
	require.NoError(t, err)

	assert.Contains(t, text, "finishes 2 months sooner")
	assert.Contains(t, text, "Store card")
}

func TestTemplateExplainer_Tie(t *testing.T) {
	c := sampleComparison()
	c.InterestSaved = decimal.Zero
	c.MonthsSaved = 0

	text, err := TemplateExplainer{}.ExplainComparison(context.Background(), nil, c)
	require.NoError(t, err)

	assert.Contains(t, text, "Both methods cost the same")
	assert.NotContains(t, text, "Start by")
}

func TestGeminiExplainer_UsesGenerator(t *testing.T) {
	gen := &fakeGenerator{text: "Pay the Visa first."}
	e := NewExplainerWithGenerator(gen, time.Second, "USD", nil)

	text, err := e.ExplainComparison(context.Background(), sampleDebts(), sampleComparison())
	require.NoError(t, err)

	assert.Equal(t, "Pay the Visa first.", text)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Visa: balance $1,000.00 at 24.00%")
	assert.Contains(t, gen.prompts[0], "Avalanche (highest rate first): 9 months, $112.84 interest")
	assert.NoError(t, e.Close())
}

func TestGeminiExplainer_FallsBack(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"api error", &fakeGenerator{err: errors.New("quota exceeded")}},
		{"empty answer", &fakeGenerator{}},
		{"timeout", &fakeGenerator{text: "late", delay: time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := logging.NewMockLogger()
			e := NewExplainerWithGenerator(tt.gen, 10*time.Millisecond, "", logger)

			text, err := e.ExplainComparison(context.Background(), sampleDebts(), sampleComparison())
			require.NoError(t, err)

			assert.Contains(t, text, "avalanche method")
			assert.True(t, logger.HasEntry("WARN", "AI explanation unavailable, using template"))
		})
	}
}

func TestNewGeminiExplainer_RequiresKey(t *testing.T) {
	_, err := NewGeminiExplainer(context.Background(), "", "", time.Second, "", nil)
	assert.Error(t, err)
}
