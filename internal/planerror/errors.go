// Package planerror defines the typed errors returned by the planning engine
// and by the debt file loaders. Callers inspect them with errors.As.
package planerror

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InvalidInputError reports a malformed numeric or structural input, such as a
// negative balance or a non-positive payment.
type InvalidInputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid input %s='%s': %s", e.Field, e.Value, e.Reason)
}

// DebtNotFoundError is returned when a scenario references an unknown debt id.
type DebtNotFoundError struct {
	DebtID string
}

func (e *DebtNotFoundError) Error() string {
	return fmt.Sprintf("debt not found: %s", e.DebtID)
}

// InvalidRateError is returned when a proposed interest rate is out of range.
type InvalidRateError struct {
	Rate   decimal.Decimal
	Reason string
}

func (e *InvalidRateError) Error() string {
	return fmt.Sprintf("invalid rate %s: %s", e.Rate.String(), e.Reason)
}

// NonConvergenceError is returned when a simulation cannot pay off every debt
// within the month cap. No partial schedule accompanies it.
type NonConvergenceError struct {
	MaxMonths        int
	MonthsSimulated  int
	RemainingBalance decimal.Decimal
	Reason           string
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("debts not paid off after %d of %d months (remaining balance %s): %s",
		e.MonthsSimulated, e.MaxMonths, e.RemainingBalance.StringFixed(2), e.Reason)
}

// ParseError represents an error while reading a debt record from a file
type ParseError struct {
	Source string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Source, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a debt file that cannot be used at all
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}
