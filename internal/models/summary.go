package models

import "github.com/shopspring/decimal"

// Summary is a point-in-time reduction of a debt list. HighestRateDebt points
// into the caller's slice and must be treated as read-only.
type Summary struct {
	TotalBalance         decimal.Decimal              `json:"total_balance" yaml:"total_balance"`
	TotalOriginalBalance decimal.Decimal              `json:"total_original_balance" yaml:"total_original_balance"`
	TotalMinimumPayment  decimal.Decimal              `json:"total_minimum_payment" yaml:"total_minimum_payment"`
	TotalInterestPaid    decimal.Decimal              `json:"total_interest_paid" yaml:"total_interest_paid"`
	PayoffMonths         int                          `json:"payoff_months,omitempty" yaml:"payoff_months,omitempty"`
	DebtCount            int                          `json:"debt_count" yaml:"debt_count"`
	ActiveCount          int                          `json:"active_count" yaml:"active_count"`
	PaidOffCount         int                          `json:"paid_off_count" yaml:"paid_off_count"`
	ProgressPercent      int                          `json:"progress_percent" yaml:"progress_percent"`
	WeightedAverageRate  decimal.Decimal              `json:"weighted_average_rate" yaml:"weighted_average_rate"`
	ByCategory           map[Category]decimal.Decimal `json:"by_category" yaml:"by_category"`
	HighestRateDebt      *Debt                        `json:"highest_rate_debt,omitempty" yaml:"highest_rate_debt,omitempty"`
}
