package amortization

import (
	"math"

	"fjacquet/debt-planner/internal/models"
	"fjacquet/debt-planner/internal/planerror"

	"github.com/shopspring/decimal"
)

// maxPaymentAdjustments bounds the cent-by-cent correction in RequiredPayment.
const maxPaymentAdjustments = 1000

var oneCent = models.FromMinorUnits(1)

// RequiredPayment returns the level monthly payment that pays balance off in
// at most months periods at annualRate:
//
//	payment = P * r * (1+r)^n / ((1+r)^n - 1),  r = annualRate / 12
//
// and P / n when the rate is zero. The result is rounded up to the minor unit
// and then checked against the period-by-period simulation, since monthly
// interest rounding can leave a residual cent in the last period.
func RequiredPayment(balance, annualRate decimal.Decimal, months int) (decimal.Decimal, error) {
	if months <= 0 {
		return decimal.Zero, &planerror.InvalidInputError{Field: "months", Value: decimal.NewFromInt(int64(months)).String(), Reason: "must be positive"}
	}
	if balance.IsNegative() {
		return decimal.Zero, &planerror.InvalidInputError{Field: "balance", Value: balance.String(), Reason: "must not be negative"}
	}
	if annualRate.IsNegative() {
		return decimal.Zero, &planerror.InvalidInputError{Field: "annual_rate", Value: annualRate.String(), Reason: "must not be negative"}
	}
	if balance.IsZero() {
		return decimal.Zero, nil
	}

	var payment decimal.Decimal
	if annualRate.IsZero() {
		payment = balance.Div(decimal.NewFromInt(int64(months))).RoundCeil(models.MinorUnitPlaces)
	} else {
		// float64 for the power, decimal for everything monetary.
		r := models.MonthlyRate(annualRate).InexactFloat64()
		factor := math.Pow(1+r, float64(months))
		paymentFloat := balance.InexactFloat64() * r * factor / (factor - 1)
		payment = decimal.NewFromFloat(paymentFloat).RoundCeil(models.MinorUnitPlaces)
	}

	for i := 0; i < maxPaymentAdjustments; i++ {
		if amortizesWithin(balance, annualRate, payment, months) {
			return payment, nil
		}
		payment = payment.Add(oneCent)
	}
	return payment, nil
}

func amortizesWithin(balance, annualRate, payment decimal.Decimal, months int) bool {
	for m := 0; m < months; m++ {
		step, err := Advance(balance, annualRate, payment, 0)
		if err != nil || step.NegativeAmortization {
			return false
		}
		balance = step.NewBalance
		if balance.IsZero() {
			return true
		}
	}
	return false
}
