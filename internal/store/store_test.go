package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/debt-planner/internal/models"
	"fjacquet/debt-planner/internal/planerror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	err := os.WriteFile(path, []byte(content), 0600)
	require.NoError(t, err)
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

const sampleYAML = `debts:
  - id: visa
    name: Visa
    category: credit_card
    current_balance: 1200.50
    original_balance: "2,000"
    interest_rate: 24.99%
    minimum_payment: 35
    due_day: 15
  - name: Car loan
    category: auto_loan
    current_balance: 8000
    interest_rate: 0.059
    minimum_payment: 250
`

func TestNewDebtStore(t *testing.T) {
	s := NewDebtStore("", 0, nil)
	assert.Equal(t, DefaultDebtsFile, s.FilePath)
}

func TestFindDataFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "debts.yaml")
	writeFile(t, file, sampleYAML)

	found, err := FindDataFile(file)
	require.NoError(t, err)
	assert.Equal(t, file, found)

	_, err = FindDataFile(filepath.Join(dir, "nonexistent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "debts.yaml")
	writeFile(t, file, sampleYAML)

	debts, err := NewDebtStore(file, 0, nil).Load()
	require.NoError(t, err)
	require.Len(t, debts, 2)

	visa := debts[0]
	assert.Equal(t, "visa", visa.ID)
	assert.Equal(t, models.CategoryCreditCard, visa.Category)
	assert.Equal(t, models.StatusActive, visa.Status)
	assert.True(t, d("1200.50").Equal(visa.CurrentBalance))
	assert.True(t, d("2000").Equal(visa.OriginalBalance))
	assert.True(t, d("0.2499").Equal(visa.InterestRate))
	assert.True(t, d("35").Equal(visa.MinimumPayment))
	assert.Equal(t, 15, visa.DueDay)

	car := debts[1]
	_, err = uuid.Parse(car.ID)
	assert.NoError(t, err, "missing ids are generated")
	assert.Equal(t, "Car loan", car.Name)
	assert.True(t, car.OriginalBalance.Equal(car.CurrentBalance))
	assert.Equal(t, 0, car.DueDay)
}

func TestLoad_DerivedIDsAreStable(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "debts.yaml")
	writeFile(t, file, `debts:
  - name: Store card
    current_balance: 400
    interest_rate: 0.2
    minimum_payment: 25
  - name: Phone plan
    current_balance: 400
    interest_rate: 0.2
    minimum_payment: 25
`)
	s := NewDebtStore(file, 0, nil)

	first, err := s.Load()
	require.NoError(t, err)
	second, err := s.Load()
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[1].ID, second[1].ID)
	assert.NotEqual(t, first[0].ID, first[1].ID)

	require.NoError(t, s.Save(first))
	third, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, third[0].ID)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), first[0].ID)
}

func TestLoad_CSV(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "debts.csv")
	writeFile(t, file, "id;name;category;status;current_balance;original_balance;interest_rate;minimum_payment;due_day;paid_off_date\n"+
		"visa;Visa;credit_card;active;1'200.50;2000;24.99%;35;15;\n"+
		"old;Old loan;personal_loan;paid_off;0;500;0.08;0;;2025-06-30\n")

	debts, err := NewDebtStore(file, ';', nil).Load()
	require.NoError(t, err)
	require.Len(t, debts, 2)

	assert.True(t, d("1200.50").Equal(debts[0].CurrentBalance))
	assert.Equal(t, models.StatusPaidOff, debts[1].Status)
	require.NotNil(t, debts[1].PaidOffDate)
	assert.Equal(t, time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC), *debts[1].PaidOffDate)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := NewDebtStore(filepath.Join(dir, "missing.yaml"), 0, nil).Load()
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		file := filepath.Join(dir, "broken.yaml")
		writeFile(t, file, "debts: [unclosed")

		_, err := NewDebtStore(file, 0, nil).Load()
		var invalid *planerror.ValidationError
		assert.True(t, errors.As(err, &invalid))
	})

	t.Run("unparseable rate", func(t *testing.T) {
		file := filepath.Join(dir, "rate.yaml")
		writeFile(t, file, "debts:\n  - id: a\n    current_balance: 10\n    interest_rate: high\n    minimum_payment: 5\n")

		_, err := NewDebtStore(file, 0, nil).Load()
		var parseErr *planerror.ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, "interest_rate", parseErr.Field)
	})

	t.Run("invalid debt", func(t *testing.T) {
		file := filepath.Join(dir, "invalid.yaml")
		writeFile(t, file, "debts:\n  - id: a\n    current_balance: 10\n    interest_rate: 0.1\n    minimum_payment: 0\n")

		_, err := NewDebtStore(file, 0, nil).Load()
		var invalid *planerror.InvalidInputError
		assert.True(t, errors.As(err, &invalid))
	})
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	for _, name := range []string{"debts.yaml", "debts.csv"} {
		t.Run(name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "nested", name)
			paidOn := time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC)
			debts := []models.Debt{
				{ID: "visa", Name: "Visa", Category: models.CategoryCreditCard, Status: models.StatusActive,
					CurrentBalance: d("1108"), OriginalBalance: d("2000"), InterestRate: d("0.12"), MinimumPayment: d("104"), DueDay: 3},
				{ID: "store", Name: "Store card", Category: models.CategoryOther, Status: models.StatusPaidOff,
					CurrentBalance: decimal.Zero, OriginalBalance: d("300"), InterestRate: d("0.29"), MinimumPayment: decimal.Zero,
					PaidOffDate: &paidOn},
			}

			s := NewDebtStore(file, 0, nil)
			require.NoError(t, s.Save(debts))

			loaded, err := s.Load()
			require.NoError(t, err)
			require.Len(t, loaded, 2)

			for i := range debts {
				assert.Equal(t, debts[i].ID, loaded[i].ID)
				assert.Equal(t, debts[i].Status, loaded[i].Status)
				assert.True(t, debts[i].CurrentBalance.Equal(loaded[i].CurrentBalance))
				assert.True(t, debts[i].InterestRate.Equal(loaded[i].InterestRate))
				assert.Equal(t, debts[i].DueDay, loaded[i].DueDay)
			}
			require.NotNil(t, loaded[1].PaidOffDate)
			assert.Equal(t, paidOn, *loaded[1].PaidOffDate)
		})
	}
}

func TestPayments(t *testing.T) {
	for _, name := range []string{"debts.yaml", "debts.csv"} {
		t.Run(name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), name)
			s := NewDebtStore(file, 0, nil)
			require.NoError(t, s.Save([]models.Debt{
				{ID: "visa", Name: "Visa", Status: models.StatusActive, Category: models.CategoryCreditCard,
					CurrentBalance: d("1200"), OriginalBalance: d("1200"), InterestRate: d("0.12"), MinimumPayment: d("104")},
			}))

			empty, err := s.LoadPayments()
			require.NoError(t, err)
			assert.Empty(t, empty)

			payment := models.Payment{
				DebtID:        "visa",
				Amount:        d("104"),
				PrincipalPaid: d("92"),
				InterestPaid:  d("12"),
				Unapplied:     decimal.Zero,
				PaymentDate:   time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			}
			require.NoError(t, s.AppendPayment(payment))
			require.NoError(t, s.AppendPayment(payment))

			payments, err := s.LoadPayments()
			require.NoError(t, err)
			require.Len(t, payments, 2)
			assert.Equal(t, "visa", payments[0].DebtID)
			assert.True(t, d("92").Equal(payments[0].PrincipalPaid))
			assert.Equal(t, payment.PaymentDate, payments[1].PaymentDate)

			// saving debts keeps the history
			debts, err := s.Load()
			require.NoError(t, err)
			require.NoError(t, s.Save(debts))
			payments, err = s.LoadPayments()
			require.NoError(t, err)
			assert.Len(t, payments, 2)
		})
	}
}

func TestMockDebtStore(t *testing.T) {
	m := &MockDebtStore{Debts: []models.Debt{{ID: "a", CurrentBalance: d("10")}}}

	debts, err := m.Load()
	require.NoError(t, err)
	debts[0].CurrentBalance = decimal.Zero
	assert.True(t, d("10").Equal(m.Debts[0].CurrentBalance), "Load returns a copy")

	require.NoError(t, m.Save(debts))
	assert.Equal(t, 1, m.SaveCalls)

	m.LoadError = errors.New("boom")
	_, err = m.Load()
	assert.EqualError(t, err, "boom")
}
