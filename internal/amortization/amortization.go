// Package amortization advances a single debt balance by one billing period.
// Every higher-level projection in the planner is built from these steps.
package amortization

import (
	"fjacquet/debt-planner/internal/models"
	"fjacquet/debt-planner/internal/planerror"

	"github.com/shopspring/decimal"
)

// Step is the outcome of applying one payment for one period.
type Step struct {
	NewBalance    decimal.Decimal
	InterestPaid  decimal.Decimal
	PrincipalPaid decimal.Decimal
	// Overpayment is the part of the payment left after the balance reached zero.
	Overpayment decimal.Decimal
	// UnpaidInterest is the accrued interest the payment did not cover.
	UnpaidInterest decimal.Decimal
	// NegativeAmortization is set when the payment did not exceed the interest,
	// so the balance could not go down.
	NegativeAmortization bool
}

// Interest returns the interest accrued on balance over one period. A
// non-positive daysInPeriod selects the monthly convention (annualRate / 12),
// otherwise actual/365 is used.
func Interest(balance, annualRate decimal.Decimal, daysInPeriod int) decimal.Decimal {
	if daysInPeriod <= 0 {
		return models.MonthlyInterest(balance, annualRate)
	}
	return models.PeriodInterest(balance, annualRate, daysInPeriod)
}

// Advance accrues one period of interest on balance and applies payment to it,
// interest first. Unpaid interest is not added to the balance; the caller gets
// it back in Step.UnpaidInterest together with the NegativeAmortization flag.
func Advance(balance, annualRate, payment decimal.Decimal, daysInPeriod int) (Step, error) {
	if balance.IsNegative() {
		return Step{}, &planerror.InvalidInputError{Field: "balance", Value: balance.String(), Reason: "must not be negative"}
	}
	if annualRate.IsNegative() {
		return Step{}, &planerror.InvalidInputError{Field: "annual_rate", Value: annualRate.String(), Reason: "must not be negative"}
	}
	if !payment.IsPositive() {
		return Step{}, &planerror.InvalidInputError{Field: "payment", Value: payment.String(), Reason: "must be positive"}
	}

	interest := Interest(balance, annualRate, daysInPeriod)

	if payment.LessThanOrEqual(interest) {
		return Step{
			NewBalance:           balance,
			InterestPaid:         payment,
			PrincipalPaid:        decimal.Zero,
			Overpayment:          decimal.Zero,
			UnpaidInterest:       interest.Sub(payment),
			NegativeAmortization: true,
		}, nil
	}

	principal := payment.Sub(interest)
	overpayment := decimal.Zero
	if principal.GreaterThan(balance) {
		overpayment = principal.Sub(balance)
		principal = balance
	}

	return Step{
		NewBalance:     balance.Sub(principal),
		InterestPaid:   interest,
		PrincipalPaid:  principal,
		Overpayment:    overpayment,
		UnpaidInterest: decimal.Zero,
	}, nil
}

// Prepay applies an additional amount within a period whose interest has
// already accrued: outstandingInterest is settled first, then principal. No
// new interest is charged.
func Prepay(balance, outstandingInterest, amount decimal.Decimal) Step {
	interestPaid := models.MinAmount(amount, outstandingInterest)
	rest := amount.Sub(interestPaid)
	principal := models.MinAmount(rest, balance)

	return Step{
		NewBalance:     balance.Sub(principal),
		InterestPaid:   interestPaid,
		PrincipalPaid:  principal,
		Overpayment:    rest.Sub(principal),
		UnpaidInterest: outstandingInterest.Sub(interestPaid),
	}
}
