package common

import (
	"time"

	"fjacquet/debt-planner/internal/config"
	"fjacquet/debt-planner/internal/dateutils"
	"fjacquet/debt-planner/internal/logging"
	"fjacquet/debt-planner/internal/planerror"
	"fjacquet/debt-planner/internal/scenario"
	"fjacquet/debt-planner/internal/scheduler"
	"fjacquet/debt-planner/internal/strategy"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// PlannerFlags are the flags shared by the commands that run simulations.
// Empty values fall back to the planner section of the configuration.
type PlannerFlags struct {
	Strategy  string
	Extra     string
	MaxMonths int
	Start     string
}

// Register adds the planner flags to cmd.
func (f *PlannerFlags) Register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Strategy, "strategy", "", "Payoff strategy (avalanche, snowball)")
	cmd.Flags().StringVar(&f.Extra, "extra", "", "Extra amount paid every month on top of the minimums")
	cmd.Flags().IntVar(&f.MaxMonths, "max-months", 0, "Simulation horizon in months")
	cmd.Flags().StringVar(&f.Start, "start", "", "First simulated month (YYYY-MM or YYYY-MM-DD, default this month)")
}

// Reset restores the zero values.
func (f *PlannerFlags) Reset() {
	*f = PlannerFlags{}
}

// PlanOptions is the resolved set of simulation settings.
type PlanOptions struct {
	Strategy   strategy.Strategy
	Extra      decimal.Decimal
	MaxMonths  int
	Start      time.Time
	KeepBudget bool
}

// Resolve merges the flags over cfg. now supplies the default start month.
func (f *PlannerFlags) Resolve(cfg *config.Config, now time.Time) (PlanOptions, error) {
	opts := PlanOptions{
		MaxMonths:  cfg.Planner.MaxMonths,
		KeepBudget: cfg.Planner.KeepBudget,
	}

	name := cfg.Planner.Strategy
	if f.Strategy != "" {
		name = f.Strategy
	}
	strat, err := strategy.Parse(name)
	if err != nil {
		return PlanOptions{}, err
	}
	opts.Strategy = strat

	if f.Extra != "" {
		if opts.Extra, err = ParseAmountFlag("extra", f.Extra); err != nil {
			return PlanOptions{}, err
		}
	} else if opts.Extra, err = cfg.ExtraPayment(); err != nil {
		return PlanOptions{}, err
	}

	if f.MaxMonths < 0 {
		return PlanOptions{}, &planerror.InvalidInputError{Field: "max-months", Reason: "must be positive"}
	}
	if f.MaxMonths > 0 {
		opts.MaxMonths = f.MaxMonths
	}

	if f.Start != "" {
		start, _, err := dateutils.ParseDate(f.Start)
		if err != nil {
			return PlanOptions{}, &planerror.InvalidInputError{Field: "start", Value: f.Start, Reason: "not a date"}
		}
		opts.Start = start
	} else if opts.Start, err = cfg.StartDate(); err != nil {
		return PlanOptions{}, err
	}
	if opts.Start.IsZero() {
		opts.Start = dateutils.StartOfMonth(now)
	}

	return opts, nil
}

// SchedulerOptions converts the resolved settings for a single simulation.
func (o PlanOptions) SchedulerOptions() scheduler.Options {
	return scheduler.Options{
		ExtraPayment: o.Extra,
		Strategy:     o.Strategy,
		MaxMonths:    o.MaxMonths,
		StartDate:    o.Start,
	}
}

// Evaluator builds a scenario evaluator using the resolved settings.
func (o PlanOptions) Evaluator(sched *scheduler.Scheduler, logger logging.Logger) *scenario.Evaluator {
	return scenario.NewEvaluator(sched, logger,
		scenario.WithStrategy(o.Strategy),
		scenario.WithMaxMonths(o.MaxMonths),
		scenario.WithExtraPayment(o.Extra),
		scenario.WithKeepBudget(o.KeepBudget),
		scenario.WithStartDate(o.Start),
	)
}
