// Package planner is the public entry point to the debt repayment engine. It
// re-exports the engine types and wraps the scheduler, the scenario
// evaluator and the summary functions behind one value.
//
//	p := planner.New(planner.WithStrategy(planner.Snowball))
//	schedule, err := p.Simulate(debts, decimal.NewFromInt(100))
package planner

import (
	"time"

	"fjacquet/debt-planner/internal/amortization"
	"fjacquet/debt-planner/internal/logging"
	"fjacquet/debt-planner/internal/models"
	"fjacquet/debt-planner/internal/planerror"
	"fjacquet/debt-planner/internal/scenario"
	"fjacquet/debt-planner/internal/scheduler"
	"fjacquet/debt-planner/internal/strategy"
	"fjacquet/debt-planner/internal/summary"

	"github.com/shopspring/decimal"
)

// Engine types.
type (
	Debt                 = models.Debt
	Category             = models.Category
	Status               = models.Status
	Payment              = models.Payment
	Schedule             = models.Schedule
	ScheduleMonth        = models.ScheduleMonth
	ScheduleEntry        = models.ScheduleEntry
	Outcome              = models.Outcome
	Summary              = models.Summary
	ExtraPaymentScenario = models.ExtraPaymentScenario
	RefinanceScenario    = models.RefinanceScenario
	StrategyComparison   = models.StrategyComparison
	Step                 = amortization.Step
	Strategy             = strategy.Strategy
	Logger               = logging.Logger
)

// Errors returned by the engine. Inspect them with errors.As.
type (
	InvalidInputError   = planerror.InvalidInputError
	DebtNotFoundError   = planerror.DebtNotFoundError
	InvalidRateError    = planerror.InvalidRateError
	NonConvergenceError = planerror.NonConvergenceError
)

// Strategies.
var (
	Avalanche Strategy = strategy.Avalanche{}
	Snowball  Strategy = strategy.Snowball{}
)

// ParseStrategy resolves "avalanche" or "snowball". An empty name is avalanche.
func ParseStrategy(name string) (Strategy, error) {
	return strategy.Parse(name)
}

// Advance applies one month of interest and one payment to a balance.
func Advance(balance, annualRate, payment decimal.Decimal) (Step, error) {
	return amortization.Advance(balance, annualRate, payment, 0)
}

// RequiredPayment is the smallest payment that clears balance within months.
func RequiredPayment(balance, annualRate decimal.Decimal, months int) (decimal.Decimal, error) {
	return amortization.RequiredPayment(balance, annualRate, months)
}

// Summarize reduces a debt list to its totals.
func Summarize(debts []Debt) Summary {
	return summary.Summarize(debts)
}

// Planner runs simulations and scenarios with fixed settings. It is safe for
// concurrent use.
type Planner struct {
	scheduler  *scheduler.Scheduler
	strategy   Strategy
	maxMonths  int
	extra      decimal.Decimal
	keepBudget bool
	startDate  time.Time
	logger     Logger
}

// Option customizes a Planner.
type Option func(*Planner)

// WithLogger sends engine logs to logger.
func WithLogger(logger Logger) Option {
	return func(p *Planner) { p.logger = logger }
}

// WithStrategy sets the default strategy.
func WithStrategy(s Strategy) Option {
	return func(p *Planner) {
		if s != nil {
			p.strategy = s
		}
	}
}

// WithMaxMonths sets the simulation horizon.
func WithMaxMonths(months int) Option {
	return func(p *Planner) { p.maxMonths = months }
}

// WithExtraPayment sets the monthly extra assumed by refinance scenarios.
func WithExtraPayment(amount decimal.Decimal) Option {
	return func(p *Planner) { p.extra = amount }
}

// WithKeepBudget controls whether refinance savings are redirected to other
// debts or stay on the refinanced debt.
func WithKeepBudget(keep bool) Option {
	return func(p *Planner) { p.keepBudget = keep }
}

// WithStartDate dates the simulated months.
func WithStartDate(start time.Time) Option {
	return func(p *Planner) { p.startDate = start }
}

// New creates a Planner. Defaults: avalanche, a fifty year horizon, budget kept.
func New(opts ...Option) *Planner {
	p := &Planner{
		strategy:   Avalanche,
		maxMonths:  models.DefaultMaxMonths,
		extra:      decimal.Zero,
		keepBudget: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = logging.OrNop(p.logger)
	p.scheduler = scheduler.NewScheduler(p.logger)
	return p
}

func (p *Planner) evaluator() *scenario.Evaluator {
	return scenario.NewEvaluator(p.scheduler, p.logger,
		scenario.WithStrategy(p.strategy),
		scenario.WithMaxMonths(p.maxMonths),
		scenario.WithExtraPayment(p.extra),
		scenario.WithKeepBudget(p.keepBudget),
		scenario.WithStartDate(p.startDate),
	)
}

// Simulate projects the portfolio month by month with extra paid on top of
// the minimums.
func (p *Planner) Simulate(debts []Debt, extra decimal.Decimal) (*Schedule, error) {
	return p.scheduler.SimulateWithOptions(debts, scheduler.Options{
		ExtraPayment: extra,
		Strategy:     p.strategy,
		MaxMonths:    p.maxMonths,
		StartDate:    p.startDate,
	})
}

// EvaluateExtraPayment compares minimums only with minimums plus extra.
func (p *Planner) EvaluateExtraPayment(debts []Debt, extra decimal.Decimal) (*ExtraPaymentScenario, error) {
	return p.evaluator().EvaluateExtraPayment(debts, extra, p.strategy)
}

// EvaluateRefinance compares the portfolio before and after moving debtID to newRate.
func (p *Planner) EvaluateRefinance(debts []Debt, debtID string, newRate decimal.Decimal) (*RefinanceScenario, error) {
	return p.evaluator().EvaluateRefinance(debts, debtID, newRate)
}

// CompareStrategies runs avalanche and snowball with the same extra payment.
func (p *Planner) CompareStrategies(debts []Debt, extra decimal.Decimal) (*StrategyComparison, error) {
	return p.evaluator().CompareStrategies(debts, extra)
}

// Project summarizes debts and projects the minimum-payment payoff.
func (p *Planner) Project(debts []Debt) (Summary, error) {
	return summary.Project(p.scheduler, debts, p.strategy, p.maxMonths)
}
