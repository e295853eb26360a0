// Package plan implements the command that prints a month-by-month payoff schedule.
package plan

import (
	"time"

	"fjacquet/debt-planner/cmd/common"
	"fjacquet/debt-planner/cmd/root"
	"fjacquet/debt-planner/internal/logging"

	"github.com/spf13/cobra"
)

var flags common.PlannerFlags

// Cmd represents the plan command
var Cmd = &cobra.Command{
	Use:   "plan",
	Short: "Simulate the payoff of every debt month by month",
	Long: `Simulate paying the minimum on every debt each month and sending any extra
amount, plus the minimums freed by paid off debts, to the debt ranked first
by the chosen strategy.`,
	RunE: planFunc,
}

func init() {
	flags.Register(Cmd)
}

func planFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	cfg := c.GetConfig()

	opts, err := flags.Resolve(cfg, time.Now())
	if err != nil {
		return err
	}
	debts, err := common.LoadDebts(c.GetStore())
	if err != nil {
		return err
	}

	schedule, err := c.GetScheduler().SimulateWithOptions(debts, opts.SchedulerOptions())
	if err != nil {
		return err
	}

	root.Log.Info("Plan computed",
		logging.Field{Key: logging.FieldStrategy, Value: schedule.Strategy},
		logging.Field{Key: logging.FieldMonths, Value: schedule.PayoffMonths})
	return common.Render(cmd, c.GetReportGenerator(), schedule, cfg.Output.Format, root.SharedFlags.Output, root.Log)
}
