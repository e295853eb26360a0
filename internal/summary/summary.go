// Package summary reduces a debt list to portfolio-level figures.
package summary

import (
	"fjacquet/debt-planner/internal/models"
	"fjacquet/debt-planner/internal/scheduler"
	"fjacquet/debt-planner/internal/strategy"

	"github.com/shopspring/decimal"
)

// Summarize computes point-in-time totals without simulating anything.
// HighestRateDebt points into debts. Calling it twice on the same input gives
// the same result.
func Summarize(debts []models.Debt) models.Summary {
	s := models.Summary{
		ByCategory: make(map[models.Category]decimal.Decimal),
	}

	weighted := decimal.Zero
	for i := range debts {
		d := &debts[i]
		s.DebtCount++
		s.TotalBalance = s.TotalBalance.Add(d.CurrentBalance)
		s.TotalOriginalBalance = s.TotalOriginalBalance.Add(d.OriginalBalance)

		category := d.Category
		if category == "" {
			category = models.CategoryOther
		}
		s.ByCategory[category] = s.ByCategory[category].Add(d.CurrentBalance)

		if d.IsPaidOff() {
			s.PaidOffCount++
		}
		if !d.IsActive() {
			continue
		}

		s.ActiveCount++
		s.TotalMinimumPayment = s.TotalMinimumPayment.Add(d.MinimumPayment)
		weighted = weighted.Add(d.CurrentBalance.Mul(d.InterestRate))

		if s.HighestRateDebt == nil || higherRate(*d, *s.HighestRateDebt) {
			s.HighestRateDebt = d
		}
	}

	if s.TotalBalance.IsPositive() {
		s.WeightedAverageRate = weighted.Div(s.TotalBalance).Round(6)
	}
	s.ProgressPercent = models.Percent(s.TotalOriginalBalance.Sub(s.TotalBalance), s.TotalOriginalBalance)
	return s
}

func higherRate(a, b models.Debt) bool {
	if c := a.InterestRate.Cmp(b.InterestRate); c != 0 {
		return c > 0
	}
	return a.ID < b.ID
}

// Project is Summarize plus a minimum-payment simulation that fills in
// TotalInterestPaid and PayoffMonths.
func Project(sched *scheduler.Scheduler, debts []models.Debt, strat strategy.Strategy, maxMonths int) (models.Summary, error) {
	s := Summarize(debts)
	if sched == nil {
		sched = scheduler.NewScheduler(nil)
	}

	schedule, err := sched.Simulate(debts, decimal.Zero, strat, maxMonths)
	if err != nil {
		return s, err
	}
	s.TotalInterestPaid = schedule.TotalInterestPaid
	s.PayoffMonths = schedule.PayoffMonths
	return s, nil
}
