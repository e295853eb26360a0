// Package advisor turns a strategy comparison into a short plain-language
// explanation, using Gemini when configured and a fixed template otherwise.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/debt-planner/internal/currencyutils"
	"fjacquet/debt-planner/internal/models"
)

// Explainer describes why a strategy was recommended.
type Explainer interface {
	ExplainComparison(ctx context.Context, debts []models.Debt, comparison *models.StrategyComparison) (string, error)
}

// TemplateExplainer builds the explanation from the numbers alone.
type TemplateExplainer struct {
	Currency string
}

var _ Explainer = TemplateExplainer{}

// ExplainComparison implements Explainer. It never fails.
func (t TemplateExplainer) ExplainComparison(_ context.Context, debts []models.Debt, c *models.StrategyComparison) (string, error) {
	chosen, other := c.Avalanche, c.Snowball
	otherName := models.StrategySnowball
	if c.Recommended == models.StrategySnowball {
		chosen, other = c.Snowball, c.Avalanche
		otherName = models.StrategyAvalanche
	}

	var b strings.Builder
	fmt.Fprintf(&b, "With the %s method you pay %s in interest and are debt free in %d months.",
		c.Recommended, currencyutils.FormatAmount(chosen.TotalInterestPaid, t.Currency), chosen.PayoffMonths)

	switch {
	case c.InterestSaved.IsPositive():
		fmt.Fprintf(&b, " That is %s less interest than %s (%s over %d months).",
			currencyutils.FormatAmount(c.InterestSaved, t.Currency), otherName,
			currencyutils.FormatAmount(other.TotalInterestPaid, t.Currency), other.PayoffMonths)
	case c.MonthsSaved > 0:
		fmt.Fprintf(&b, " Both methods cost the same interest, but %s finishes %d months sooner.", c.Recommended, c.MonthsSaved)
	default:
		b.WriteString(" Both methods cost the same for this portfolio.")
	}

	b.WriteString(" ")
	b.WriteString(strategyTip(c.Recommended))

	if first := firstTarget(debts, c.Recommended); first != "" {
		fmt.Fprintf(&b, " Start by putting every spare amount on %s.", first)
	}
	return b.String(), nil
}

func strategyTip(strategy string) string {
	if strategy == models.StrategySnowball {
		return "Paying the smallest balances first closes accounts quickly, which helps keep the plan going."
	}
	return "Paying the highest rates first keeps the total cost of borrowing as low as possible."
}

// firstTarget names the debt the strategy attacks first.
func firstTarget(debts []models.Debt, strategy string) string {
	var best *models.Debt
	for i := range debts {
		d := &debts[i]
		if !d.IsActive() {
			continue
		}
		if best == nil || before(d, best, strategy) {
			best = d
		}
	}
	if best == nil {
		return ""
	}
	if best.Name != "" {
		return best.Name
	}
	return best.ID
}

func before(a, b *models.Debt, strategy string) bool {
	var c int
	if strategy == models.StrategySnowball {
		c = a.CurrentBalance.Cmp(b.CurrentBalance)
	} else {
		c = b.InterestRate.Cmp(a.InterestRate)
	}
	if c != 0 {
		return c < 0
	}
	return a.ID < b.ID
}
