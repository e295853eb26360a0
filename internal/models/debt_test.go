package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input       string
		expected    Category
		expectError bool
	}{
		{"credit_card", CategoryCreditCard, false},
		{" Mortgage ", CategoryMortgage, false},
		{"", CategoryOther, false},
		{"boat_loan", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, s)

	s, err = ParseStatus("PAID_OFF")
	require.NoError(t, err)
	assert.Equal(t, StatusPaidOff, s)

	_, err = ParseStatus("closed")
	assert.Error(t, err)
}

func TestDebt_IsActive(t *testing.T) {
	d := Debt{Status: StatusActive, CurrentBalance: decimal.NewFromInt(10)}
	assert.True(t, d.IsActive())

	d.CurrentBalance = decimal.Zero
	assert.False(t, d.IsActive())

	d = Debt{Status: StatusPaidOff}
	assert.False(t, d.IsActive())
	assert.True(t, d.IsPaidOff())
}

func TestCloneDebts_DoesNotShareState(t *testing.T) {
	paid := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	debts := []Debt{
		{ID: "a", CurrentBalance: decimal.NewFromInt(100), PaidOffDate: &paid},
		{ID: "b", CurrentBalance: decimal.NewFromInt(200)},
	}

	clone := CloneDebts(debts)
	clone[0].CurrentBalance = decimal.Zero
	*clone[0].PaidOffDate = paid.AddDate(1, 0, 0)

	assert.Equal(t, "100", debts[0].CurrentBalance.String())
	assert.Equal(t, paid, *debts[0].PaidOffDate)
	assert.Equal(t, 1, FindDebt(clone, "b"))
	assert.Equal(t, -1, FindDebt(clone, "missing"))
}

func TestSchedule_DebtPayoffMonth(t *testing.T) {
	s := &Schedule{
		Months: []ScheduleMonth{
			{Month: 1, Entries: []ScheduleEntry{{DebtID: "a", EndBalance: decimal.NewFromInt(5)}}},
			{Month: 2, Entries: []ScheduleEntry{{DebtID: "a", PaidOff: true}}},
		},
		PayoffMonths:      2,
		TotalInterestPaid: decimal.NewFromInt(3),
	}

	assert.Equal(t, 2, s.DebtPayoffMonth("a"))
	assert.Equal(t, 0, s.DebtPayoffMonth("b"))
	assert.Equal(t, 2, s.Outcome().PayoffMonths)
	assert.Equal(t, "5", s.Months[0].TotalBalance().String())
}
