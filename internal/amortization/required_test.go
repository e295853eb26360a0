package amortization

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredPayment(t *testing.T) {
	tests := []struct {
		name    string
		balance string
		rate    string
		months  int
		want    string
	}{
		{"zero rate divides evenly", "1200", "0", 12, "100"},
		{"zero rate rounds up", "1000", "0", 3, "333.34"},
		{"zero balance", "0", "0.2", 12, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RequiredPayment(d(tt.balance), d(tt.rate), tt.months)
			require.NoError(t, err)
			assert.True(t, d(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestRequiredPayment_Amortizes(t *testing.T) {
	tests := []struct {
		name    string
		balance string
		rate    string
		months  int
		approx  string
	}{
		{"thirty year mortgage", "100000", "0.05", 360, "536.82"},
		{"credit card", "5000", "0.2499", 36, "198.77"},
		{"short loan", "1200", "0.12", 12, "106.62"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RequiredPayment(d(tt.balance), d(tt.rate), tt.months)
			require.NoError(t, err)

			assert.True(t, got.Sub(d(tt.approx)).Abs().LessThanOrEqual(d("0.05")), "got %s", got)
			assert.True(t, amortizesWithin(d(tt.balance), d(tt.rate), got, tt.months))
			assert.True(t, got.Equal(got.Round(2)), "payment must be in whole cents")
		})
	}
}

func TestRequiredPayment_InvalidInput(t *testing.T) {
	_, err := RequiredPayment(d("100"), d("0.1"), 0)
	assert.Error(t, err)

	_, err = RequiredPayment(d("-100"), d("0.1"), 12)
	assert.Error(t, err)

	_, err = RequiredPayment(d("100"), d("-0.1"), 12)
	assert.Error(t, err)

	_, err = RequiredPayment(decimal.NewFromInt(100), decimal.Zero, -1)
	assert.Error(t, err)
}
