// Package pay implements the command that records a real payment in the debt book.
package pay

import (
	"time"

	"fjacquet/debt-planner/cmd/common"
	"fjacquet/debt-planner/cmd/root"
	"fjacquet/debt-planner/internal/dateutils"
	"fjacquet/debt-planner/internal/planerror"

	"github.com/spf13/cobra"
)

var (
	debtID string
	amount string
	date   string
)

// Cmd represents the pay command
var Cmd = &cobra.Command{
	Use:   "pay",
	Short: "Record a payment against one debt and update the debts file",
	Long: `Record a payment: one month of interest is charged on the current balance,
the rest of the payment reduces the principal, and the debts file is rewritten.
A debt whose balance reaches zero is marked as paid off.`,
	RunE: payFunc,
}

func init() {
	Cmd.Flags().StringVar(&debtID, "debt", "", "Id of the debt being paid")
	Cmd.Flags().StringVar(&amount, "amount", "", "Amount paid")
	Cmd.Flags().StringVar(&date, "date", "", "Payment date (default today)")
	_ = Cmd.MarkFlagRequired("debt")
	_ = Cmd.MarkFlagRequired("amount")
}

func payFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	paid, err := common.ParseAmountFlag("amount", amount)
	if err != nil {
		return err
	}

	on := time.Now()
	if date != "" {
		if on, _, err = dateutils.ParseDate(date); err != nil {
			return &planerror.InvalidInputError{Field: "date", Value: date, Reason: "not a date"}
		}
	}

	receipt, err := common.RecordPayment(c.GetStore(), debtID, paid, on, root.Log)
	if err != nil {
		return err
	}
	return common.Render(cmd, c.GetReportGenerator(), receipt, c.GetConfig().Output.Format, root.SharedFlags.Output, root.Log)
}
