// Package scenario implements the "what if" commands: paying extra every
// month, and refinancing one debt at a new rate.
package scenario

import (
	"time"

	"fjacquet/debt-planner/cmd/common"
	"fjacquet/debt-planner/cmd/root"
	"fjacquet/debt-planner/internal/planerror"

	"github.com/spf13/cobra"
)

var (
	flags      common.PlannerFlags
	amount     string
	debtID     string
	rate       string
	keepBudget bool
)

// Cmd represents the scenario command
var Cmd = &cobra.Command{
	Use:   "scenario",
	Short: "Compare the current plan with an extra payment or a refinance",
}

var extraCmd = &cobra.Command{
	Use:   "extra",
	Short: "Compare paying only minimums with paying an extra amount every month",
	RunE:  extraFunc,
}

var refinanceCmd = &cobra.Command{
	Use:   "refinance",
	Short: "Compare the plan before and after moving one debt to a new rate",
	Long: `Compare the plan before and after moving one debt to a new rate. The new
minimum payment pays the debt off over the months the current plan needs for it.
With --keep-budget (the default) a lower minimum is redirected to the other debts,
with --keep-budget=false the refinanced debt keeps its old payment.`,
	RunE: refinanceFunc,
}

func init() {
	for _, c := range []*cobra.Command{extraCmd, refinanceCmd} {
		c.Flags().StringVar(&flags.Strategy, "strategy", "", "Payoff strategy (avalanche, snowball)")
		c.Flags().IntVar(&flags.MaxMonths, "max-months", 0, "Simulation horizon in months")
		c.Flags().StringVar(&flags.Start, "start", "", "First simulated month (YYYY-MM or YYYY-MM-DD)")
	}

	extraCmd.Flags().StringVar(&amount, "amount", "", "Extra amount paid every month")
	_ = extraCmd.MarkFlagRequired("amount")

	refinanceCmd.Flags().StringVar(&flags.Extra, "extra", "", "Extra amount paid every month in both runs")
	refinanceCmd.Flags().StringVar(&debtID, "debt", "", "Id of the debt to refinance")
	refinanceCmd.Flags().StringVar(&rate, "rate", "", "New annual rate (0.059 or 5.9%)")
	refinanceCmd.Flags().BoolVar(&keepBudget, "keep-budget", true, "Redirect a lower minimum payment to the other debts instead of keeping it on the refinanced debt")
	_ = refinanceCmd.MarkFlagRequired("debt")
	_ = refinanceCmd.MarkFlagRequired("rate")

	Cmd.AddCommand(extraCmd, refinanceCmd)
}

func extraFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	cfg := c.GetConfig()

	extra, err := common.ParseAmountFlag("amount", amount)
	if err != nil {
		return err
	}
	if !extra.IsPositive() {
		return &planerror.InvalidInputError{Field: "amount", Value: amount, Reason: "must be positive"}
	}
	opts, err := flags.Resolve(cfg, time.Now())
	if err != nil {
		return err
	}
	debts, err := common.LoadDebts(c.GetStore())
	if err != nil {
		return err
	}

	result, err := opts.Evaluator(c.GetScheduler(), root.Log).EvaluateExtraPayment(debts, extra, opts.Strategy)
	if err != nil {
		return err
	}
	return common.Render(cmd, c.GetReportGenerator(), result, cfg.Output.Format, root.SharedFlags.Output, root.Log)
}

func refinanceFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	cfg := c.GetConfig()

	newRate, err := common.ParseRateFlag("rate", rate)
	if err != nil {
		return err
	}
	opts, err := flags.Resolve(cfg, time.Now())
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("keep-budget") {
		opts.KeepBudget = keepBudget
	}
	debts, err := common.LoadDebts(c.GetStore())
	if err != nil {
		return err
	}

	result, err := opts.Evaluator(c.GetScheduler(), root.Log).EvaluateRefinance(debts, debtID, newRate)
	if err != nil {
		return err
	}
	return common.Render(cmd, c.GetReportGenerator(), result, cfg.Output.Format, root.SharedFlags.Output, root.Log)
}
