package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleEntry is the state of one debt at the end of a simulated month.
type ScheduleEntry struct {
	DebtID               string          `json:"debt_id" yaml:"debt_id"`
	StartBalance         decimal.Decimal `json:"start_balance" yaml:"start_balance"`
	Interest             decimal.Decimal `json:"interest" yaml:"interest"`
	Principal            decimal.Decimal `json:"principal" yaml:"principal"`
	Payment              decimal.Decimal `json:"payment" yaml:"payment"`
	EndBalance           decimal.Decimal `json:"end_balance" yaml:"end_balance"`
	PaidOff              bool            `json:"paid_off" yaml:"paid_off"`
	NegativeAmortization bool            `json:"negative_amortization,omitempty" yaml:"negative_amortization,omitempty"`
}

// ScheduleMonth groups the per-debt snapshots of one simulated month.
type ScheduleMonth struct {
	Month          int             `json:"month" yaml:"month"`
	Date           time.Time       `json:"date,omitempty" yaml:"date,omitempty"`
	Entries        []ScheduleEntry `json:"entries" yaml:"entries"`
	SurplusApplied decimal.Decimal `json:"surplus_applied" yaml:"surplus_applied"`
	Unapplied      decimal.Decimal `json:"unapplied" yaml:"unapplied"`
}

// Entry returns the snapshot of the given debt for this month.
func (m ScheduleMonth) Entry(debtID string) (ScheduleEntry, bool) {
	for _, e := range m.Entries {
		if e.DebtID == debtID {
			return e, true
		}
	}
	return ScheduleEntry{}, false
}

// TotalBalance sums end balances across debts.
func (m ScheduleMonth) TotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, e := range m.Entries {
		total = total.Add(e.EndBalance)
	}
	return total
}

// TotalPaid sums payments across debts.
func (m ScheduleMonth) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, e := range m.Entries {
		total = total.Add(e.Payment)
	}
	return total
}

// Schedule is a complete month-by-month payoff projection.
type Schedule struct {
	Strategy          string          `json:"strategy" yaml:"strategy"`
	ExtraPayment      decimal.Decimal `json:"extra_payment" yaml:"extra_payment"`
	Months            []ScheduleMonth `json:"months" yaml:"months"`
	PayoffMonths      int             `json:"payoff_months" yaml:"payoff_months"`
	PayoffDate        time.Time       `json:"payoff_date,omitempty" yaml:"payoff_date,omitempty"`
	TotalInterestPaid decimal.Decimal `json:"total_interest_paid" yaml:"total_interest_paid"`
	TotalPaid         decimal.Decimal `json:"total_paid" yaml:"total_paid"`
	Warnings          []string        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// DebtPayoffMonth returns the 1-based month in which the debt reached zero,
// or 0 if it never appears as paid off.
func (s *Schedule) DebtPayoffMonth(debtID string) int {
	for _, m := range s.Months {
		if e, ok := m.Entry(debtID); ok && e.PaidOff {
			return m.Month
		}
	}
	return 0
}

// Outcome condenses the schedule for scenario comparisons.
func (s *Schedule) Outcome() Outcome {
	return Outcome{
		PayoffMonths:      s.PayoffMonths,
		PayoffDate:        s.PayoffDate,
		TotalInterestPaid: s.TotalInterestPaid,
		TotalPaid:         s.TotalPaid,
	}
}
