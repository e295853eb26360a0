package pay

import (
	"testing"
	"time"

	"fjacquet/debt-planner/cmd/internal/clitest"
	"fjacquet/debt-planner/internal/models"
	"fjacquet/debt-planner/internal/planerror"
	"fjacquet/debt-planner/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, f *clitest.Fixture, args ...string) (string, error) {
	t.Helper()
	debtID, amount, date = "", "", ""
	return f.Run(t, Cmd, args...)
}

func TestPayCommand(t *testing.T) {
	f := clitest.NewFixture(t, "")

	out, err := run(t, f, "--debt", "A", "--amount", "100", "--date", "2026-02-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Payment to Credit card on 2026-02-01")
	assert.Contains(t, out, "New balance:")

	repo := store.NewDebtStore(f.DebtsPath, ',', nil)
	debts, err := repo.Load()
	require.NoError(t, err)
	idx := models.FindDebt(debts, "A")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "920.00", debts[idx].CurrentBalance.StringFixed(2))

	payments, err := repo.LoadPayments()
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "A", payments[0].DebtID)
	assert.Equal(t, "20.00", payments[0].InterestPaid.StringFixed(2))
	assert.Equal(t, "80.00", payments[0].PrincipalPaid.StringFixed(2))
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), payments[0].PaymentDate)
}

func TestPayCommand_PaysOff(t *testing.T) {
	f := clitest.NewFixture(t, "")

	out, err := run(t, f, "--debt", "B", "--amount", "600", "--date", "2026-02-01")
	require.NoError(t, err)
	assert.Contains(t, out, "paid off")

	debts, err := store.NewDebtStore(f.DebtsPath, ',', nil).Load()
	require.NoError(t, err)
	b := debts[models.FindDebt(debts, "B")]
	assert.True(t, b.IsPaidOff())
	require.NotNil(t, b.PaidOffDate)
}

func TestPayCommand_Errors(t *testing.T) {
	f := clitest.NewFixture(t, "")

	_, err := run(t, f, "--debt", "Z", "--amount", "10")
	var nf *planerror.DebtNotFoundError
	assert.ErrorAs(t, err, &nf)

	_, err = run(t, f, "--debt", "A", "--amount", "10", "--date", "soon")
	var inv *planerror.InvalidInputError
	assert.ErrorAs(t, err, &inv)
}
