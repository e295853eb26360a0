package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category is the closed set of debt kinds.
type Category string

const (
	CategoryCreditCard   Category = "credit_card"
	CategoryPersonalLoan Category = "personal_loan"
	CategoryAutoLoan     Category = "auto_loan"
	CategoryStudentLoan  Category = "student_loan"
	CategoryMortgage     Category = "mortgage"
	CategoryMedical      Category = "medical"
	CategoryOther        Category = "other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryCreditCard,
	CategoryPersonalLoan,
	CategoryAutoLoan,
	CategoryStudentLoan,
	CategoryMortgage,
	CategoryMedical,
	CategoryOther,
}

// ParseCategory converts a string into a Category. An empty string is "other".
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryOther, nil
	}
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown debt category: %s", s)
}

// Status is the lifecycle state of a debt.
type Status string

const (
	StatusActive  Status = "active"
	StatusPaidOff Status = "paid_off"
)

// ParseStatus converts a string into a Status. An empty string is "active".
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(StatusActive):
		return StatusActive, nil
	case string(StatusPaidOff):
		return StatusPaidOff, nil
	default:
		return "", fmt.Errorf("unknown debt status: %s", s)
	}
}

// Debt is one outstanding obligation. InterestRate is an APR stored as a
// decimal fraction (0.2499 for 24.99%). DueDay is 1 to 31, or 0 when unset,
// in which case scheduled months keep the start date's day.
type Debt struct {
	ID              string          `json:"id" yaml:"id"`
	Name            string          `json:"name" yaml:"name"`
	Category        Category        `json:"category" yaml:"category"`
	Status          Status          `json:"status" yaml:"status"`
	CurrentBalance  decimal.Decimal `json:"current_balance" yaml:"current_balance"`
	OriginalBalance decimal.Decimal `json:"original_balance" yaml:"original_balance"`
	InterestRate    decimal.Decimal `json:"interest_rate" yaml:"interest_rate"`
	MinimumPayment  decimal.Decimal `json:"minimum_payment" yaml:"minimum_payment"`
	DueDay          int             `json:"due_day" yaml:"due_day"`
	PaidOffDate     *time.Time      `json:"paid_off_date,omitempty" yaml:"paid_off_date,omitempty"`
}

// IsActive reports whether the debt still has something to pay.
func (d Debt) IsActive() bool {
	return d.Status != StatusPaidOff && d.CurrentBalance.IsPositive()
}

// IsPaidOff reports whether the debt reached its terminal state.
func (d Debt) IsPaidOff() bool {
	return d.Status == StatusPaidOff
}

// Clone returns a deep copy of the debt, including its paid-off date.
func (d Debt) Clone() Debt {
	c := d
	if d.PaidOffDate != nil {
		t := *d.PaidOffDate
		c.PaidOffDate = &t
	}
	return c
}

// CloneDebts copies a debt list so callers' records are never touched.
func CloneDebts(debts []Debt) []Debt {
	out := make([]Debt, len(debts))
	for i, d := range debts {
		out[i] = d.Clone()
	}
	return out
}

// FindDebt returns the index of the debt with the given id, or -1.
func FindDebt(debts []Debt, id string) int {
	for i := range debts {
		if debts[i].ID == id {
			return i
		}
	}
	return -1
}
