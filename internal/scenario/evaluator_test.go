package scenario

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"fjacquet/debt-planner/internal/logging"
	"fjacquet/debt-planner/internal/models"
	"fjacquet/debt-planner/internal/planerror"
	"fjacquet/debt-planner/internal/scheduler"
	"fjacquet/debt-planner/internal/strategy"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func debt(id, balance, rate, minimum string) models.Debt {
	return models.Debt{
		ID:              id,
		Status:          models.StatusActive,
		CurrentBalance:  d(balance),
		OriginalBalance: d(balance),
		InterestRate:    d(rate),
		MinimumPayment:  d(minimum),
	}
}

func portfolio() []models.Debt {
	return []models.Debt{
		debt("A", "1000", "0.24", "50"),
		debt("B", "500", "0.10", "30"),
	}
}

func newEvaluator(opts ...Option) *Evaluator {
	return NewEvaluator(scheduler.NewScheduler(nil), nil, opts...)
}

func TestEvaluateExtraPayment(t *testing.T) {
	e := newEvaluator()

	result, err := e.EvaluateExtraPayment(portfolio(), d("100"), strategy.Avalanche{})
	require.NoError(t, err)

	assert.Equal(t, models.StrategyAvalanche, result.Strategy)
	assert.Equal(t, 23, result.Baseline.PayoffMonths)
	assert.Equal(t, 9, result.Modified.PayoffMonths)
	assert.Equal(t, 14, result.MonthsSaved)
	assert.True(t, d("319.11").Equal(result.Baseline.TotalInterestPaid), "got %s", result.Baseline.TotalInterestPaid)
	assert.True(t, d("112.84").Equal(result.Modified.TotalInterestPaid), "got %s", result.Modified.TotalInterestPaid)
	assert.True(t, d("206.27").Equal(result.InterestSaved))
}

// Snowball can pay more interest with a larger extra: the extra may clear a
// small cheap debt first and leave an expensive one waiting. Only avalanche
// is monotonic.
func TestEvaluateExtraPayment_AvalancheMonotonic(t *testing.T) {
	e := newEvaluator()
	prevMonths := -1
	prevInterest := decimal.NewFromInt(-1)

	for _, extra := range []string{"0", "25", "50", "100", "200", "500"} {
		result, err := e.EvaluateExtraPayment(portfolio(), d(extra), strategy.Avalanche{})
		require.NoError(t, err)

		assert.GreaterOrEqual(t, result.MonthsSaved, prevMonths, "extra %s", extra)
		assert.True(t, result.InterestSaved.GreaterThanOrEqual(prevInterest), "extra %s", extra)
		prevMonths = result.MonthsSaved
		prevInterest = result.InterestSaved
	}
}

func TestEvaluateExtraPayment_ZeroExtra(t *testing.T) {
	result, err := newEvaluator().EvaluateExtraPayment(portfolio(), decimal.Zero, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, result.MonthsSaved)
	assert.True(t, result.InterestSaved.IsZero())
	assert.Equal(t, result.Baseline, result.Modified)
}

func TestEvaluateExtraPayment_Errors(t *testing.T) {
	e := newEvaluator()

	_, err := e.EvaluateExtraPayment(portfolio(), d("-10"), nil)
	var invalid *planerror.InvalidInputError
	assert.True(t, errors.As(err, &invalid))

	// the baseline cannot converge, so the whole evaluation fails
	_, err = e.EvaluateExtraPayment([]models.Debt{debt("A", "1000", "0.50", "10")}, d("5"), nil)
	var nc *planerror.NonConvergenceError
	assert.True(t, errors.As(err, &nc))
}

func TestEvaluateRefinance(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		rate        string
		wantTerm    int
		wantMinimum string
	}{
		{"A to zero", "A", "0", 23, "43.48"},
		{"B to zero", "B", "0", 19, "26.32"},
		{"A to lower rate", "A", "0.05", 23, "45.69"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := newEvaluator().EvaluateRefinance(portfolio(), tt.target, d(tt.rate))
			require.NoError(t, err)

			assert.Equal(t, tt.target, result.DebtID)
			assert.Equal(t, tt.wantTerm, result.RemainingTerm)
			assert.True(t, d(tt.wantMinimum).Equal(result.NewMinimumPayment), "got %s", result.NewMinimumPayment)
			assert.True(t, result.OldMinimumPayment.Sub(result.NewMinimumPayment).Equal(result.BudgetKept))
			assert.True(t, result.InterestSaved.IsPositive())
			assert.GreaterOrEqual(t, result.MonthsSaved, 0)
		})
	}
}

func TestEvaluateRefinance_ZeroRateNeverIncreasesInterest(t *testing.T) {
	tests := []struct {
		name  string
		debts []models.Debt
	}{
		{"fixture", portfolio()},
		{"three debts", []models.Debt{
			debt("card", "2500", "0.2199", "75"),
			debt("car", "8000", "0.059", "250"),
			debt("store", "600", "0.29", "25"),
		}},
		{"cheap debt with a high minimum", []models.Debt{
			debt("d0", "3374", "0.0174", "94.89"),
			debt("d1", "13736", "0.2286", "282.67"),
		}},
		{"already at zero", []models.Debt{
			debt("free", "900", "0", "45"),
			debt("card", "1800", "0.25", "60"),
		}},
	}

	for _, tt := range tests {
		for _, keep := range []bool{true, false} {
			e := newEvaluator(WithKeepBudget(keep))
			for _, target := range tt.debts {
				result, err := e.EvaluateRefinance(tt.debts, target.ID, decimal.Zero)
				require.NoError(t, err)
				assert.False(t, result.InterestSaved.IsNegative(),
					"%s: target %s keep %v saved %s", tt.name, target.ID, keep, result.InterestSaved)
				assert.True(t, result.ScheduledPayment.GreaterThanOrEqual(result.NewMinimumPayment))
			}
		}
	}
}

func TestEvaluateRefinance_ZeroRateRandomPortfolios(t *testing.T) {
	rng := rand.New(rand.NewSource(20261016))

	for i := 0; i < 150; i++ {
		n := 2 + rng.Intn(3)
		debts := make([]models.Debt, n)
		for j := range debts {
			balance := decimal.NewFromInt(int64(300 + rng.Intn(15700)))
			rate := decimal.New(int64(rng.Intn(3001)), -4)
			// interest plus 1% to 4% of the balance, so minimums always converge
			share := decimal.New(int64(10+rng.Intn(31)), -3)
			minimum := models.RoundMinor(balance.Mul(rate).Div(decimal.NewFromInt(12)).Add(balance.Mul(share)))
			debts[j] = debt(fmt.Sprintf("d%d", j), balance.String(), rate.String(), minimum.String())
		}
		target := debts[rng.Intn(n)].ID

		for _, keep := range []bool{true, false} {
			result, err := newEvaluator(WithKeepBudget(keep)).EvaluateRefinance(debts, target, decimal.Zero)
			require.NoError(t, err)
			assert.False(t, result.InterestSaved.IsNegative(),
				"portfolio %d: target %s keep %v saved %s", i, target, keep, result.InterestSaved)
		}
	}
}

func TestEvaluateRefinance_KeepPaymentOnDebt(t *testing.T) {
	result, err := newEvaluator(WithKeepBudget(false)).EvaluateRefinance(portfolio(), "A", decimal.Zero)
	require.NoError(t, err)

	assert.True(t, d("43.48").Equal(result.NewMinimumPayment))
	assert.True(t, d("50").Equal(result.ScheduledPayment))
	assert.True(t, result.BudgetKept.IsZero())
	assert.Equal(t, 20, result.Modified.PayoffMonths)
	assert.True(t, d("40.53").Equal(result.Modified.TotalInterestPaid), "got %s", result.Modified.TotalInterestPaid)
}

func TestEvaluateRefinance_DoesNotMutateInput(t *testing.T) {
	debts := portfolio()

	_, err := newEvaluator().EvaluateRefinance(debts, "A", decimal.Zero)
	require.NoError(t, err)

	assert.True(t, d("0.24").Equal(debts[0].InterestRate))
	assert.True(t, d("50").Equal(debts[0].MinimumPayment))
}

func TestEvaluateRefinance_Errors(t *testing.T) {
	e := newEvaluator()

	_, err := e.EvaluateRefinance(portfolio(), "missing", d("0.05"))
	var notFound *planerror.DebtNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "missing", notFound.DebtID)

	_, err = e.EvaluateRefinance(portfolio(), "A", d("-0.01"))
	var invalidRate *planerror.InvalidRateError
	assert.True(t, errors.As(err, &invalidRate))

	_, err = e.EvaluateRefinance(portfolio(), "A", d("11"))
	assert.True(t, errors.As(err, &invalidRate))
}

func TestEvaluateRefinance_PaidOffTargetKeepsMinimum(t *testing.T) {
	paid := debt("done", "0", "0.2", "40")
	paid.Status = models.StatusPaidOff
	debts := append(portfolio(), paid)

	result, err := newEvaluator().EvaluateRefinance(debts, "done", d("0.01"))
	require.NoError(t, err)

	assert.Equal(t, 0, result.RemainingTerm)
	assert.True(t, d("40").Equal(result.NewMinimumPayment))
	assert.True(t, result.BudgetKept.IsZero())
	assert.Equal(t, 0, result.MonthsSaved)
}

func TestCompareStrategies(t *testing.T) {
	logger := logging.NewMockLogger()
	e := NewEvaluator(nil, logger)

	result, err := e.CompareStrategies(portfolio(), d("100"))
	require.NoError(t, err)

	assert.Equal(t, models.StrategyAvalanche, result.Recommended)
	assert.True(t, d("112.84").Equal(result.Avalanche.TotalInterestPaid))
	assert.True(t, d("140.56").Equal(result.Snowball.TotalInterestPaid))
	assert.True(t, d("27.72").Equal(result.InterestSaved))
	assert.Equal(t, 1, result.MonthsSaved)
	assert.True(t, logger.HasEntry("INFO", "Strategies compared"))
}

func TestCompareStrategies_TieGoesToAvalanche(t *testing.T) {
	result, err := newEvaluator().CompareStrategies([]models.Debt{debt("only", "300", "0", "100")}, decimal.Zero)
	require.NoError(t, err)

	assert.Equal(t, models.StrategyAvalanche, result.Recommended)
	assert.True(t, result.InterestSaved.IsZero())
	assert.Equal(t, 0, result.MonthsSaved)
}
