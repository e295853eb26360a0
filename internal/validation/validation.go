// Package validation checks debt lists and user-facing options before they
// reach the planning engine.
package validation

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"fjacquet/debt-planner/internal/logging"
	"fjacquet/debt-planner/internal/models"
	"fjacquet/debt-planner/internal/planerror"

	"github.com/shopspring/decimal"
)

// OutputFormats lists the formats the CLI can render.
var OutputFormats = []string{"text", "json", "yaml", "csv"}

// ValidateDebts checks every record and the list as a whole. Rates above 1.0
// are accepted but logged, since they usually mean a percentage was passed
// where a decimal fraction was expected.
func ValidateDebts(debts []models.Debt, logger logging.Logger) error {
	logger = logging.OrNop(logger)
	seen := make(map[string]struct{}, len(debts))

	for _, d := range debts {
		if strings.TrimSpace(d.ID) == "" {
			return &planerror.InvalidInputError{Field: "id", Reason: "debt id must not be empty"}
		}
		if _, dup := seen[d.ID]; dup {
			return &planerror.InvalidInputError{Field: "id", Value: d.ID, Reason: "duplicate debt id"}
		}
		seen[d.ID] = struct{}{}

		if err := ValidateDebt(d); err != nil {
			return err
		}

		if d.InterestRate.GreaterThan(models.NormalizedRateCeiling) {
			logger.Warn("Interest rate above 100%, check that it is a decimal fraction",
				logging.Field{Key: logging.FieldDebtID, Value: d.ID},
				logging.Field{Key: logging.FieldRate, Value: d.InterestRate.String()})
		}
	}
	return nil
}

// ValidateDebt checks a single record's numeric ranges and invariants.
func ValidateDebt(d models.Debt) error {
	field := func(name string) string { return d.ID + "." + name }

	if d.CurrentBalance.IsNegative() {
		return &planerror.InvalidInputError{Field: field("current_balance"), Value: d.CurrentBalance.String(), Reason: "must not be negative"}
	}
	if d.OriginalBalance.LessThan(d.CurrentBalance) {
		return &planerror.InvalidInputError{Field: field("original_balance"), Value: d.OriginalBalance.String(), Reason: "must be at least the current balance"}
	}
	if err := ValidateRate(d.InterestRate); err != nil {
		return &planerror.InvalidInputError{Field: field("interest_rate"), Value: d.InterestRate.String(), Reason: err.Error()}
	}
	if d.IsActive() && !d.MinimumPayment.IsPositive() {
		return &planerror.InvalidInputError{Field: field("minimum_payment"), Value: d.MinimumPayment.String(), Reason: "must be positive"}
	}
	if d.MinimumPayment.IsNegative() {
		return &planerror.InvalidInputError{Field: field("minimum_payment"), Value: d.MinimumPayment.String(), Reason: "must not be negative"}
	}
	if d.DueDay < 0 || d.DueDay > 31 {
		return &planerror.InvalidInputError{Field: field("due_day"), Value: strconv.Itoa(d.DueDay), Reason: "must be 0 (unset) or a day of month between 1 and 31"}
	}
	if d.Status == models.StatusPaidOff && !d.CurrentBalance.IsZero() {
		return &planerror.InvalidInputError{Field: field("status"), Value: string(d.Status), Reason: "a paid off debt must have a zero balance"}
	}
	if d.Status != "" && d.Status != models.StatusActive && d.Status != models.StatusPaidOff {
		return &planerror.InvalidInputError{Field: field("status"), Value: string(d.Status), Reason: "unknown status"}
	}
	if d.Category != "" {
		if _, err := models.ParseCategory(string(d.Category)); err != nil {
			return &planerror.InvalidInputError{Field: field("category"), Value: string(d.Category), Reason: "unknown category"}
		}
	}
	return nil
}

// ValidateRate checks an APR given as a decimal fraction.
func ValidateRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return fmt.Errorf("must not be negative")
	}
	if rate.GreaterThan(models.MaxAnnualRate) {
		return fmt.Errorf("must not exceed %s", models.MaxAnnualRate.String())
	}
	return nil
}

// ValidateAmount checks a non-negative amount such as an extra payment.
func ValidateAmount(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return &planerror.InvalidInputError{Field: field, Value: amount.String(), Reason: "must not be negative"}
	}
	return nil
}

// IsValidOutputFormat checks if the given format is supported.
func IsValidOutputFormat(format string) error {
	for _, f := range OutputFormats {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("unsupported output format: %s. Supported formats are %s", format, strings.Join(OutputFormats, ", "))
}

// IsValidInputFile checks that a debts file exists and is a regular file.
func IsValidInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}
	return nil
}
