// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"fjacquet/debt-planner/internal/amortization"
	"fjacquet/debt-planner/internal/currencyutils"
	"fjacquet/debt-planner/internal/logging"
	"fjacquet/debt-planner/internal/models"
	"fjacquet/debt-planner/internal/planerror"
	"fjacquet/debt-planner/internal/report"
	"fjacquet/debt-planner/internal/store"
	"fjacquet/debt-planner/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// ParseAmountFlag parses a non-negative money flag value.
func ParseAmountFlag(name, value string) (decimal.Decimal, error) {
	amount, err := currencyutils.ParseAmount(value)
	if err != nil {
		return decimal.Zero, &planerror.InvalidInputError{Field: name, Value: value, Reason: "not an amount"}
	}
	if err := validation.ValidateAmount(name, amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// ParseRateFlag parses a rate flag given as a fraction or a percentage.
func ParseRateFlag(name, value string) (decimal.Decimal, error) {
	rate, err := currencyutils.ParseRate(value)
	if err != nil {
		return decimal.Zero, &planerror.InvalidInputError{Field: name, Value: value, Reason: "not a rate"}
	}
	return rate, nil
}

// LoadDebts reads the debt book and refuses an empty one.
func LoadDebts(repo store.DebtRepository) ([]models.Debt, error) {
	debts, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load debts: %w", err)
	}
	if len(debts) == 0 {
		return nil, &planerror.InvalidInputError{Field: "debts", Reason: "the debts file lists no debts"}
	}
	return debts, nil
}

// RecordPayment applies amount to the debt with debtID, saves the updated
// book and appends the payment to its history.
func RecordPayment(repo store.DebtRepository, debtID string, amount decimal.Decimal, on time.Time, logger logging.Logger) (*report.PaymentReceipt, error) {
	logger = logging.OrNop(logger).WithField(logging.FieldDebtID, debtID)

	debts, err := LoadDebts(repo)
	if err != nil {
		return nil, err
	}
	idx := models.FindDebt(debts, debtID)
	if idx < 0 {
		return nil, &planerror.DebtNotFoundError{DebtID: debtID}
	}

	updated, payment, err := amortization.ApplyPayment(debts[idx], amount, on)
	if err != nil {
		return nil, err
	}
	debts[idx] = updated

	if err := repo.Save(debts); err != nil {
		return nil, fmt.Errorf("failed to save debts: %w", err)
	}
	if err := repo.AppendPayment(payment); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	logger.Info("Payment recorded",
		logging.Field{Key: "amount", Value: payment.Amount.StringFixed(2)},
		logging.Field{Key: logging.FieldBalance, Value: updated.CurrentBalance.StringFixed(2)})
	if payment.Unapplied.IsPositive() {
		logger.Warn("Payment exceeded the balance", logging.Field{Key: "unapplied", Value: payment.Unapplied.StringFixed(2)})
	}
	return &report.PaymentReceipt{Payment: payment, Debt: updated}, nil
}

// Render writes result in format to outputFile, or to the command's output
// when outputFile is empty.
func Render(cmd *cobra.Command, gen *report.ReportGenerator, result any, format, outputFile string, logger logging.Logger) error {
	if outputFile == "" {
		return gen.Write(cmd.OutOrStdout(), result, format)
	}

	data, err := gen.GenerateReport(result, format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(outputFile); dir != "." {
		if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outputFile, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("failed to write report to file %s: %w", outputFile, err)
	}
	logging.OrNop(logger).Info("Report written to file",
		logging.Field{Key: logging.FieldFile, Value: outputFile},
		logging.Field{Key: logging.FieldFormat, Value: format})
	return nil
}

// Println writes a line to the command's output.
func Println(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format+"\n", args...)
}
