package amortization

import (
	"time"

	"fjacquet/debt-planner/internal/models"
	"fjacquet/debt-planner/internal/planerror"

	"github.com/shopspring/decimal"
)

// ApplyPayment records a real monthly payment against debt and returns the
// updated copy together with the payment split. The input debt is not modified.
// When the balance reaches zero the debt becomes paid off and its paid-off date
// is set, once. Any amount the debt cannot absorb is returned as Unapplied.
func ApplyPayment(debt models.Debt, amount decimal.Decimal, on time.Time) (models.Debt, models.Payment, error) {
	if !amount.IsPositive() {
		return models.Debt{}, models.Payment{}, &planerror.InvalidInputError{Field: "amount", Value: amount.String(), Reason: "must be positive"}
	}

	updated := debt.Clone()
	payment := models.Payment{
		DebtID:        debt.ID,
		Amount:        amount,
		PrincipalPaid: decimal.Zero,
		InterestPaid:  decimal.Zero,
		Unapplied:     amount,
		PaymentDate:   on,
	}

	if !debt.IsActive() {
		return updated, payment, nil
	}

	step, err := Advance(debt.CurrentBalance, debt.InterestRate, amount, 0)
	if err != nil {
		return models.Debt{}, models.Payment{}, err
	}

	payment.PrincipalPaid = step.PrincipalPaid
	payment.InterestPaid = step.InterestPaid
	payment.Unapplied = step.Overpayment

	updated.CurrentBalance = step.NewBalance
	if updated.CurrentBalance.IsZero() {
		updated.Status = models.StatusPaidOff
		if updated.PaidOffDate == nil {
			paidOn := on
			updated.PaidOffDate = &paidOn
		}
	}

	return updated, payment, nil
}
