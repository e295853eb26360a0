// Package scheduler projects a debt portfolio month by month until every debt
// is paid off, cascading freed-up payments according to a strategy.
package scheduler

import (
	"fmt"
	"time"

	"fjacquet/debt-planner/internal/amortization"
	"fjacquet/debt-planner/internal/dateutils"
	"fjacquet/debt-planner/internal/logging"
	"fjacquet/debt-planner/internal/models"
	"fjacquet/debt-planner/internal/planerror"
	"fjacquet/debt-planner/internal/strategy"
	"fjacquet/debt-planner/internal/validation"

	"github.com/shopspring/decimal"
)

// Options configures one simulation run.
type Options struct {
	// ExtraPayment is added on top of the minimums every month.
	ExtraPayment decimal.Decimal
	// Strategy ranks debts for the surplus. Nil selects avalanche.
	Strategy strategy.Strategy
	// MaxMonths bounds the projection. Zero or negative selects DefaultMaxMonths.
	MaxMonths int
	// StartDate, when set, dates every simulated month.
	StartDate time.Time
}

// Scheduler runs portfolio simulations. It holds no per-run state and is safe
// for concurrent use.
type Scheduler struct {
	logger logging.Logger
}

// NewScheduler creates a Scheduler. A nil logger discards output.
func NewScheduler(logger logging.Logger) *Scheduler {
	return &Scheduler{logger: logging.OrNop(logger)}
}

// Simulate projects debts with a fixed extra payment under strat.
func (s *Scheduler) Simulate(debts []models.Debt, extraPayment decimal.Decimal, strat strategy.Strategy, maxMonths int) (*models.Schedule, error) {
	return s.SimulateWithOptions(debts, Options{
		ExtraPayment: extraPayment,
		Strategy:     strat,
		MaxMonths:    maxMonths,
	})
}

// monthState tracks one debt during the month being simulated.
type monthState struct {
	entry          models.ScheduleEntry
	unpaidInterest decimal.Decimal
}

// SimulateWithOptions projects debts month by month. The input slice is never
// modified. It returns a NonConvergenceError, and no schedule, when the debts
// cannot be paid off within the month limit.
func (s *Scheduler) SimulateWithOptions(debts []models.Debt, opts Options) (*models.Schedule, error) {
	if opts.ExtraPayment.IsNegative() {
		return nil, &planerror.InvalidInputError{Field: "extra_payment", Value: opts.ExtraPayment.String(), Reason: "must not be negative"}
	}
	if err := validation.ValidateDebts(debts, s.logger); err != nil {
		return nil, err
	}

	strat := opts.Strategy
	if strat == nil {
		strat = strategy.Avalanche{}
	}
	maxMonths := opts.MaxMonths
	if maxMonths <= 0 {
		maxMonths = models.DefaultMaxMonths
	}
	extra := models.RoundMinor(opts.ExtraPayment)

	log := s.logger.WithFields(
		logging.Field{Key: logging.FieldStrategy, Value: strat.Name()},
		logging.Field{Key: logging.FieldExtraPayment, Value: extra.StringFixed(models.MinorUnitPlaces)},
		logging.Field{Key: logging.FieldMaxMonths, Value: maxMonths},
	)

	work := models.CloneDebts(debts)
	schedule := &models.Schedule{
		Strategy:          strat.Name(),
		ExtraPayment:      extra,
		Months:            []models.ScheduleMonth{},
		TotalInterestPaid: decimal.Zero,
		TotalPaid:         decimal.Zero,
	}

	if countActive(work) == 0 {
		log.Debug("No active debts to schedule")
		return schedule, nil
	}

	log.Debug("Starting simulation", logging.Field{Key: logging.FieldCount, Value: countActive(work)})

	// minimums released by debts paid off in earlier months
	freed := decimal.Zero
	warned := make(map[string]bool)

	for month := 1; ; month++ {
		if month > maxMonths {
			return nil, s.nonConvergence(log, maxMonths, month-1, work, "maximum number of months reached")
		}

		states := make(map[string]*monthState)
		order := make([]string, 0, len(work))
		pool := extra.Add(freed)

		// 1. every active debt pays its own minimum
		for i := range work {
			d := &work[i]
			if !d.IsActive() {
				continue
			}
			step, err := amortization.Advance(d.CurrentBalance, d.InterestRate, d.MinimumPayment, 0)
			if err != nil {
				return nil, fmt.Errorf("month %d, debt %s: %w", month, d.ID, err)
			}

			states[d.ID] = &monthState{
				entry: models.ScheduleEntry{
					DebtID:               d.ID,
					StartBalance:         d.CurrentBalance,
					Interest:             step.InterestPaid,
					Principal:            step.PrincipalPaid,
					Payment:              step.InterestPaid.Add(step.PrincipalPaid),
					NegativeAmortization: step.NegativeAmortization,
				},
				unpaidInterest: step.UnpaidInterest,
			}
			order = append(order, d.ID)

			d.CurrentBalance = step.NewBalance
			pool = pool.Add(step.Overpayment)
		}

		// 2. the surplus pool cascades down the ranking
		surplusApplied := decimal.Zero
		for pool.IsPositive() {
			ranked := strat.Rank(work)
			if len(ranked) == 0 {
				break
			}
			i := models.FindDebt(work, ranked[0].ID)
			d := &work[i]
			st := states[d.ID]

			step := amortization.Prepay(d.CurrentBalance, st.unpaidInterest, pool)
			applied := step.InterestPaid.Add(step.PrincipalPaid)

			st.unpaidInterest = step.UnpaidInterest
			st.entry.Interest = st.entry.Interest.Add(step.InterestPaid)
			st.entry.Principal = st.entry.Principal.Add(step.PrincipalPaid)
			st.entry.Payment = st.entry.Payment.Add(applied)
			if step.PrincipalPaid.IsPositive() {
				st.entry.NegativeAmortization = false
			}

			d.CurrentBalance = step.NewBalance
			surplusApplied = surplusApplied.Add(applied)
			pool = step.Overpayment
		}

		// 3. record the month
		record := models.ScheduleMonth{
			Month:          month,
			Entries:        make([]models.ScheduleEntry, 0, len(order)),
			SurplusApplied: surplusApplied,
			Unapplied:      decimal.Zero,
		}
		if !opts.StartDate.IsZero() {
			record.Date = dateutils.AddMonths(opts.StartDate, month)
		}

		progressed := false
		for _, id := range order {
			st := states[id]
			d := &work[models.FindDebt(work, id)]
			st.entry.EndBalance = d.CurrentBalance

			if st.entry.EndBalance.LessThan(st.entry.StartBalance) {
				progressed = true
			}
			if st.entry.NegativeAmortization && !warned[id] {
				warned[id] = true
				msg := fmt.Sprintf("debt %s: minimum payment does not cover the monthly interest", id)
				schedule.Warnings = append(schedule.Warnings, msg)
				log.Warn("Negative amortization",
					logging.Field{Key: logging.FieldDebtID, Value: id},
					logging.Field{Key: logging.FieldMonth, Value: month},
					logging.Field{Key: logging.FieldInterest, Value: st.unpaidInterest.StringFixed(models.MinorUnitPlaces)})
			}
			if d.CurrentBalance.IsZero() {
				st.entry.PaidOff = true
				d.Status = models.StatusPaidOff
				if !record.Date.IsZero() {
					paidOn := dateutils.DateForDueDay(record.Date, d.DueDay)
					d.PaidOffDate = &paidOn
				}
				freed = freed.Add(d.MinimumPayment)
				log.Debug("Debt paid off",
					logging.Field{Key: logging.FieldDebtID, Value: id},
					logging.Field{Key: logging.FieldMonth, Value: month})
			}

			schedule.TotalInterestPaid = schedule.TotalInterestPaid.Add(st.entry.Interest)
			schedule.TotalPaid = schedule.TotalPaid.Add(st.entry.Payment)
			record.Entries = append(record.Entries, st.entry)
		}

		if countActive(work) == 0 {
			record.Unapplied = pool
			schedule.Months = append(schedule.Months, record)
			schedule.PayoffMonths = month
			schedule.PayoffDate = payoffDate(record, work)

			log.Info("Simulation completed",
				logging.Field{Key: logging.FieldMonths, Value: month},
				logging.Field{Key: logging.FieldInterest, Value: schedule.TotalInterestPaid.StringFixed(models.MinorUnitPlaces)})
			return schedule, nil
		}

		if !progressed {
			return nil, s.nonConvergence(log, maxMonths, month, work, "payments no longer reduce any balance")
		}

		schedule.Months = append(schedule.Months, record)
	}
}

func (s *Scheduler) nonConvergence(log logging.Logger, maxMonths, simulated int, work []models.Debt, reason string) error {
	err := &planerror.NonConvergenceError{
		MaxMonths:        maxMonths,
		MonthsSimulated:  simulated,
		RemainingBalance: totalBalance(work),
		Reason:           reason,
	}
	log.WithError(err).Warn("Simulation did not converge")
	return err
}

// payoffDate is the latest due date among the debts paid off in the final month.
func payoffDate(last models.ScheduleMonth, work []models.Debt) time.Time {
	if last.Date.IsZero() {
		return time.Time{}
	}
	latest := time.Time{}
	for _, e := range last.Entries {
		if !e.PaidOff {
			continue
		}
		d := work[models.FindDebt(work, e.DebtID)]
		if due := dateutils.DateForDueDay(last.Date, d.DueDay); due.After(latest) {
			latest = due
		}
	}
	if latest.IsZero() {
		return last.Date
	}
	return latest
}

func countActive(debts []models.Debt) int {
	n := 0
	for _, d := range debts {
		if d.IsActive() {
			n++
		}
	}
	return n
}

func totalBalance(debts []models.Debt) decimal.Decimal {
	total := decimal.Zero
	for _, d := range debts {
		total = total.Add(d.CurrentBalance)
	}
	return total
}
