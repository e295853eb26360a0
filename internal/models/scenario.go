package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Outcome is the headline result of one simulation.
type Outcome struct {
	PayoffMonths      int             `json:"payoff_months" yaml:"payoff_months"`
	PayoffDate        time.Time       `json:"payoff_date,omitempty" yaml:"payoff_date,omitempty"`
	TotalInterestPaid decimal.Decimal `json:"total_interest_paid" yaml:"total_interest_paid"`
	TotalPaid         decimal.Decimal `json:"total_paid" yaml:"total_paid"`
}

// ExtraPaymentScenario compares paying only minimums against adding a fixed
// extra amount every month.
type ExtraPaymentScenario struct {
	Strategy      string          `json:"strategy" yaml:"strategy"`
	ExtraPayment  decimal.Decimal `json:"extra_payment" yaml:"extra_payment"`
	Baseline      Outcome         `json:"baseline" yaml:"baseline"`
	Modified      Outcome         `json:"modified" yaml:"modified"`
	MonthsSaved   int             `json:"months_saved" yaml:"months_saved"`
	InterestSaved decimal.Decimal `json:"interest_saved" yaml:"interest_saved"`
}

// PayoffDate is the payoff date reached with the extra payment.
func (s ExtraPaymentScenario) PayoffDate() time.Time {
	return s.Modified.PayoffDate
}

// RefinanceScenario compares the portfolio before and after moving one debt
// to a new rate. ScheduledPayment is what the refinanced debt pays each month
// in the modified run.
type RefinanceScenario struct {
	Strategy          string          `json:"strategy" yaml:"strategy"`
	DebtID            string          `json:"debt_id" yaml:"debt_id"`
	OldRate           decimal.Decimal `json:"old_rate" yaml:"old_rate"`
	NewRate           decimal.Decimal `json:"new_rate" yaml:"new_rate"`
	OldMinimumPayment decimal.Decimal `json:"old_minimum_payment" yaml:"old_minimum_payment"`
	NewMinimumPayment decimal.Decimal `json:"new_minimum_payment" yaml:"new_minimum_payment"`
	ScheduledPayment  decimal.Decimal `json:"scheduled_payment" yaml:"scheduled_payment"`
	RemainingTerm     int             `json:"remaining_term" yaml:"remaining_term"`
	BudgetKept        decimal.Decimal `json:"budget_kept" yaml:"budget_kept"`
	Baseline          Outcome         `json:"baseline" yaml:"baseline"`
	Modified          Outcome         `json:"modified" yaml:"modified"`
	MonthsSaved       int             `json:"months_saved" yaml:"months_saved"`
	InterestSaved     decimal.Decimal `json:"interest_saved" yaml:"interest_saved"`
}

// PayoffDate is the payoff date reached after refinancing.
func (s RefinanceScenario) PayoffDate() time.Time {
	return s.Modified.PayoffDate
}

// StrategyComparison runs the same portfolio under every strategy.
type StrategyComparison struct {
	ExtraPayment  decimal.Decimal `json:"extra_payment" yaml:"extra_payment"`
	Avalanche     Outcome         `json:"avalanche" yaml:"avalanche"`
	Snowball      Outcome         `json:"snowball" yaml:"snowball"`
	Recommended   string          `json:"recommended" yaml:"recommended"`
	InterestSaved decimal.Decimal `json:"interest_saved" yaml:"interest_saved"`
	MonthsSaved   int             `json:"months_saved" yaml:"months_saved"`
	Explanation   string          `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}
