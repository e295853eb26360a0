package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment records one payment against a debt and how it was split.
// PrincipalPaid + InterestPaid + Unapplied always equals Amount.
type Payment struct {
	DebtID        string          `json:"debt_id" yaml:"debt_id"`
	Amount        decimal.Decimal `json:"amount" yaml:"amount"`
	PrincipalPaid decimal.Decimal `json:"principal_paid" yaml:"principal_paid"`
	InterestPaid  decimal.Decimal `json:"interest_paid" yaml:"interest_paid"`
	Unapplied     decimal.Decimal `json:"unapplied" yaml:"unapplied"`
	PaymentDate   time.Time       `json:"payment_date" yaml:"payment_date"`
}

// Applied returns the part of the payment that reached the debt.
func (p Payment) Applied() decimal.Decimal {
	return p.PrincipalPaid.Add(p.InterestPaid)
}
