// Package scenario answers "what if" questions by running the scheduler on a
// baseline and a modified copy of the same portfolio.
package scenario

import (
	"time"

	"fjacquet/debt-planner/internal/amortization"
	"fjacquet/debt-planner/internal/logging"
	"fjacquet/debt-planner/internal/models"
	"fjacquet/debt-planner/internal/planerror"
	"fjacquet/debt-planner/internal/scheduler"
	"fjacquet/debt-planner/internal/strategy"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Evaluator compares simulations of a portfolio under different assumptions.
type Evaluator struct {
	scheduler    *scheduler.Scheduler
	strategy     strategy.Strategy
	maxMonths    int
	extraPayment decimal.Decimal
	keepBudget   bool
	startDate    time.Time
	logger       logging.Logger
}

// Option customizes an Evaluator.
type Option func(*Evaluator)

// WithStrategy sets the strategy used when a call does not name one.
func WithStrategy(s strategy.Strategy) Option {
	return func(e *Evaluator) {
		if s != nil {
			e.strategy = s
		}
	}
}

// WithMaxMonths sets the simulation horizon.
func WithMaxMonths(months int) Option {
	return func(e *Evaluator) { e.maxMonths = months }
}

// WithExtraPayment sets the monthly extra payment assumed by refinance runs.
func WithExtraPayment(amount decimal.Decimal) Option {
	return func(e *Evaluator) { e.extraPayment = amount }
}

// WithKeepBudget controls whether a lower refinanced minimum is redirected to
// the surplus so that the total monthly outlay stays the same.
func WithKeepBudget(keep bool) Option {
	return func(e *Evaluator) { e.keepBudget = keep }
}

// WithStartDate dates the simulated months.
func WithStartDate(start time.Time) Option {
	return func(e *Evaluator) { e.startDate = start }
}

// NewEvaluator creates an Evaluator on top of sched. Defaults: avalanche,
// DefaultMaxMonths, no extra payment, budget kept.
func NewEvaluator(sched *scheduler.Scheduler, logger logging.Logger, opts ...Option) *Evaluator {
	logger = logging.OrNop(logger)
	if sched == nil {
		sched = scheduler.NewScheduler(logger)
	}
	e := &Evaluator{
		scheduler:    sched,
		strategy:     strategy.Avalanche{},
		maxMonths:    models.DefaultMaxMonths,
		extraPayment: decimal.Zero,
		keepBudget:   true,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Evaluator) simulate(debts []models.Debt, extra decimal.Decimal, strat strategy.Strategy) (*models.Schedule, error) {
	return e.scheduler.SimulateWithOptions(debts, scheduler.Options{
		ExtraPayment: extra,
		Strategy:     strat,
		MaxMonths:    e.maxMonths,
		StartDate:    e.startDate,
	})
}

// EvaluateExtraPayment compares paying only the minimums with paying
// extraAmount on top every month. A nil strat uses the evaluator default.
// Any simulation error fails the whole evaluation.
func (e *Evaluator) EvaluateExtraPayment(debts []models.Debt, extraAmount decimal.Decimal, strat strategy.Strategy) (*models.ExtraPaymentScenario, error) {
	if extraAmount.IsNegative() {
		return nil, &planerror.InvalidInputError{Field: "extra_payment", Value: extraAmount.String(), Reason: "must not be negative"}
	}
	if strat == nil {
		strat = e.strategy
	}

	log := e.logger.WithFields(
		logging.Field{Key: logging.FieldScenario, Value: "extra_payment"},
		logging.Field{Key: logging.FieldStrategy, Value: strat.Name()},
		logging.Field{Key: logging.FieldExtraPayment, Value: extraAmount.String()},
	)

	var baseline, modified *models.Schedule
	var g errgroup.Group
	g.Go(func() error {
		var err error
		baseline, err = e.simulate(debts, decimal.Zero, strat)
		return err
	})
	g.Go(func() error {
		var err error
		modified, err = e.simulate(debts, extraAmount, strat)
		return err
	})
	if err := g.Wait(); err != nil {
		log.WithError(err).Warn("Extra payment scenario failed")
		return nil, err
	}

	result := &models.ExtraPaymentScenario{
		Strategy:      strat.Name(),
		ExtraPayment:  extraAmount,
		Baseline:      baseline.Outcome(),
		Modified:      modified.Outcome(),
		MonthsSaved:   baseline.PayoffMonths - modified.PayoffMonths,
		InterestSaved: baseline.TotalInterestPaid.Sub(modified.TotalInterestPaid),
	}

	log.Info("Extra payment scenario evaluated",
		logging.Field{Key: logging.FieldMonths, Value: result.MonthsSaved},
		logging.Field{Key: logging.FieldInterest, Value: result.InterestSaved.StringFixed(models.MinorUnitPlaces)})
	return result, nil
}

// EvaluateRefinance compares the portfolio as is with the same portfolio after
// moving targetDebtID to newRate. The new minimum payment amortizes the
// target's balance over the number of months the baseline needed to pay it
// off. With the budget kept the saving on the minimum becomes extra payment,
// otherwise the refinanced debt keeps paying its old minimum.
func (e *Evaluator) EvaluateRefinance(debts []models.Debt, targetDebtID string, newRate decimal.Decimal) (*models.RefinanceScenario, error) {
	if newRate.IsNegative() {
		return nil, &planerror.InvalidRateError{Rate: newRate, Reason: "must not be negative"}
	}
	if newRate.GreaterThan(models.MaxAnnualRate) {
		return nil, &planerror.InvalidRateError{Rate: newRate, Reason: "exceeds the maximum annual rate of " + models.MaxAnnualRate.String()}
	}
	idx := models.FindDebt(debts, targetDebtID)
	if idx < 0 {
		return nil, &planerror.DebtNotFoundError{DebtID: targetDebtID}
	}

	log := e.logger.WithFields(
		logging.Field{Key: logging.FieldScenario, Value: "refinance"},
		logging.Field{Key: logging.FieldDebtID, Value: targetDebtID},
		logging.Field{Key: logging.FieldRate, Value: newRate.String()},
	)

	baseline, err := e.simulate(debts, e.extraPayment, e.strategy)
	if err != nil {
		log.WithError(err).Warn("Refinance baseline failed")
		return nil, err
	}

	target := debts[idx]
	term := baseline.DebtPayoffMonth(targetDebtID)
	newMinimum := target.MinimumPayment
	if target.IsActive() && term > 0 {
		newMinimum, err = amortization.RequiredPayment(target.CurrentBalance, newRate, term)
		if err != nil {
			return nil, err
		}
	}

	// A lower minimum never shrinks the monthly outlay: the difference goes to
	// the other debts with the budget kept, or stays on the refinanced debt.
	extra := e.extraPayment
	budgetKept := decimal.Zero
	scheduled := newMinimum
	if target.MinimumPayment.GreaterThan(newMinimum) {
		if e.keepBudget {
			budgetKept = target.MinimumPayment.Sub(newMinimum)
			extra = extra.Add(budgetKept)
		} else {
			scheduled = target.MinimumPayment
		}
	}

	refinanced := models.CloneDebts(debts)
	refinanced[idx].InterestRate = newRate
	refinanced[idx].MinimumPayment = scheduled

	modified, err := e.simulate(refinanced, extra, e.strategy)
	if err != nil {
		log.WithError(err).Warn("Refinance scenario failed")
		return nil, err
	}

	result := &models.RefinanceScenario{
		Strategy:          e.strategy.Name(),
		DebtID:            targetDebtID,
		OldRate:           target.InterestRate,
		NewRate:           newRate,
		OldMinimumPayment: target.MinimumPayment,
		NewMinimumPayment: newMinimum,
		ScheduledPayment:  scheduled,
		RemainingTerm:     term,
		BudgetKept:        budgetKept,
		Baseline:          baseline.Outcome(),
		Modified:          modified.Outcome(),
		MonthsSaved:       baseline.PayoffMonths - modified.PayoffMonths,
		InterestSaved:     baseline.TotalInterestPaid.Sub(modified.TotalInterestPaid),
	}

	log.Info("Refinance scenario evaluated",
		logging.Field{Key: logging.FieldMonths, Value: result.MonthsSaved},
		logging.Field{Key: logging.FieldInterest, Value: result.InterestSaved.StringFixed(models.MinorUnitPlaces)})
	return result, nil
}

// CompareStrategies runs the portfolio under avalanche and snowball with the
// same extra payment and recommends the one paying less interest, then the
// faster one, then avalanche.
func (e *Evaluator) CompareStrategies(debts []models.Debt, extraPayment decimal.Decimal) (*models.StrategyComparison, error) {
	if extraPayment.IsNegative() {
		return nil, &planerror.InvalidInputError{Field: "extra_payment", Value: extraPayment.String(), Reason: "must not be negative"}
	}

	var avalanche, snowball *models.Schedule
	var g errgroup.Group
	g.Go(func() error {
		var err error
		avalanche, err = e.simulate(debts, extraPayment, strategy.Avalanche{})
		return err
	})
	g.Go(func() error {
		var err error
		snowball, err = e.simulate(debts, extraPayment, strategy.Snowball{})
		return err
	})
	if err := g.Wait(); err != nil {
		e.logger.WithError(err).Warn("Strategy comparison failed")
		return nil, err
	}

	best, other := avalanche, snowball
	if prefer(snowball, avalanche) {
		best, other = snowball, avalanche
	}

	result := &models.StrategyComparison{
		ExtraPayment:  extraPayment,
		Avalanche:     avalanche.Outcome(),
		Snowball:      snowball.Outcome(),
		Recommended:   best.Strategy,
		InterestSaved: other.TotalInterestPaid.Sub(best.TotalInterestPaid),
		MonthsSaved:   other.PayoffMonths - best.PayoffMonths,
	}

	e.logger.Info("Strategies compared",
		logging.Field{Key: logging.FieldScenario, Value: "compare"},
		logging.Field{Key: logging.FieldStrategy, Value: result.Recommended})
	return result, nil
}

// prefer reports whether a beats b strictly.
func prefer(a, b *models.Schedule) bool {
	if c := a.TotalInterestPaid.Cmp(b.TotalInterestPaid); c != 0 {
		return c < 0
	}
	return a.PayoffMonths < b.PayoffMonths
}
