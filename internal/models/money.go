package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MinorUnitPlaces is the number of decimal places of the currency minor unit.
const MinorUnitPlaces int32 = 2

var (
	monthsPerYear = decimal.NewFromInt(MonthsPerYear)
	daysPerYear   = decimal.NewFromInt(DaysPerYear)
	hundred       = decimal.NewFromInt(100)

	// MaxAnnualRate is the largest APR the engine accepts (1000%).
	MaxAnnualRate = decimal.NewFromInt(10)

	// NormalizedRateCeiling is the APR above which a rate probably was not
	// converted from a percentage before reaching the engine.
	NormalizedRateCeiling = decimal.NewFromInt(1)
)

// RoundMinor rounds an amount to the currency minor unit using round-half-to-even,
// which keeps rounding unbiased over hundreds of simulated periods.
func RoundMinor(amount decimal.Decimal) decimal.Decimal {
	return amount.RoundBank(MinorUnitPlaces)
}

// FromMinorUnits converts an integer amount of minor units (cents) into a decimal amount.
func FromMinorUnits(units int64) decimal.Decimal {
	return decimal.New(units, -MinorUnitPlaces)
}

// ToMinorUnits converts an amount into integer minor units after rounding.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return RoundMinor(amount).Shift(MinorUnitPlaces).IntPart()
}

// NewAmountFromString parses an amount string such as "1200.50"
func NewAmountFromString(amount string) (decimal.Decimal, error) {
	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount string '%s': %w", amount, err)
	}
	return dec, nil
}

// MonthlyRate returns the periodic rate for one month of an annual rate.
func MonthlyRate(annualRate decimal.Decimal) decimal.Decimal {
	return annualRate.Div(monthsPerYear)
}

// MonthlyInterest returns balance × annualRate / 12 rounded to the minor unit.
// Multiplying before dividing avoids the repeating decimals of annualRate/12.
func MonthlyInterest(balance, annualRate decimal.Decimal) decimal.Decimal {
	return RoundMinor(balance.Mul(annualRate).Div(monthsPerYear))
}

// PeriodInterest returns balance × annualRate × days / 365 rounded to the minor unit.
func PeriodInterest(balance, annualRate decimal.Decimal, days int) decimal.Decimal {
	return RoundMinor(balance.Mul(annualRate).Mul(decimal.NewFromInt(int64(days))).Div(daysPerYear))
}

// Percent returns part / whole × 100 rounded half away from zero to an integer.
// A zero whole yields 0.
func Percent(part, whole decimal.Decimal) int {
	if whole.IsZero() {
		return 0
	}
	return int(part.Div(whole).Mul(hundred).Round(0).IntPart())
}

// MinAmount returns the smaller of two amounts.
func MinAmount(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
