package validation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/debt-planner/internal/logging"
	"fjacquet/debt-planner/internal/models"
	"fjacquet/debt-planner/internal/planerror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDebt(id string) models.Debt {
	return models.Debt{
		ID:              id,
		Category:        models.CategoryCreditCard,
		Status:          models.StatusActive,
		CurrentBalance:  decimal.NewFromInt(1000),
		OriginalBalance: decimal.NewFromInt(1500),
		InterestRate:    decimal.RequireFromString("0.2499"),
		MinimumPayment:  decimal.NewFromInt(50),
		DueDay:          15,
	}
}

func TestValidateDebt(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *models.Debt)
		field  string
	}{
		{"valid", func(d *models.Debt) {}, ""},
		{"negative balance", func(d *models.Debt) { d.CurrentBalance = decimal.NewFromInt(-1) }, "a.current_balance"},
		{"balance above original", func(d *models.Debt) { d.OriginalBalance = decimal.NewFromInt(900) }, "a.original_balance"},
		{"negative rate", func(d *models.Debt) { d.InterestRate = decimal.RequireFromString("-0.01") }, "a.interest_rate"},
		{"rate above cap", func(d *models.Debt) { d.InterestRate = decimal.NewFromInt(11) }, "a.interest_rate"},
		{"zero minimum on active debt", func(d *models.Debt) { d.MinimumPayment = decimal.Zero }, "a.minimum_payment"},
		{"due day out of range", func(d *models.Debt) { d.DueDay = 32 }, "a.due_day"},
		{"negative due day", func(d *models.Debt) { d.DueDay = -1 }, "a.due_day"},
		{"due day unset", func(d *models.Debt) { d.DueDay = 0 }, ""},
		{"paid off with balance", func(d *models.Debt) { d.Status = models.StatusPaidOff }, "a.status"},
		{"unknown status", func(d *models.Debt) { d.Status = "frozen" }, "a.status"},
		{"unknown category", func(d *models.Debt) { d.Category = "yacht" }, "a.category"},
		{"paid off with zero minimum", func(d *models.Debt) {
			d.Status = models.StatusPaidOff
			d.CurrentBalance = decimal.Zero
			d.MinimumPayment = decimal.Zero
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDebt("a")
			tt.mutate(&d)

			err := ValidateDebt(d)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			var invalid *planerror.InvalidInputError
			require.True(t, errors.As(err, &invalid), "expected InvalidInputError, got %v", err)
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestValidateDebts_DuplicateAndEmptyIDs(t *testing.T) {
	err := ValidateDebts([]models.Debt{validDebt("a"), validDebt("a")}, nil)
	var invalid *planerror.InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "duplicate debt id", invalid.Reason)

	err = ValidateDebts([]models.Debt{validDebt("")}, nil)
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "id", invalid.Field)

	assert.NoError(t, ValidateDebts(nil, nil))
}

func TestValidateDebts_WarnsOnPercentageLikeRate(t *testing.T) {
	mock := logging.NewMockLogger()
	d := validDebt("visa")
	d.InterestRate = decimal.RequireFromString("2.499")

	require.NoError(t, ValidateDebts([]models.Debt{d}, mock))

	warnings := mock.GetEntriesByLevel("WARN")
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Fields, logging.Field{Key: logging.FieldDebtID, Value: "visa"})
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount("extra_payment", decimal.Zero))
	assert.Error(t, ValidateAmount("extra_payment", decimal.NewFromInt(-5)))
}

func TestIsValidOutputFormat(t *testing.T) {
	for _, f := range []string{"text", "json", "yaml", "csv"} {
		assert.NoError(t, IsValidOutputFormat(f))
	}
	err := IsValidOutputFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format: xml")
}

func TestIsValidInputFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "debts.yaml")
	require.NoError(t, os.WriteFile(file, []byte("debts: []\n"), 0600))

	assert.NoError(t, IsValidInputFile(file))
	assert.Error(t, IsValidInputFile(filepath.Join(dir, "missing.yaml")))
	assert.Error(t, IsValidInputFile(dir))
}
