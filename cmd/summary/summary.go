// Package summary implements the command that reports where the debt book stands.
package summary

import (
	"time"

	"fjacquet/debt-planner/cmd/common"
	"fjacquet/debt-planner/cmd/root"
	"fjacquet/debt-planner/internal/logging"
	"fjacquet/debt-planner/internal/models"
	"fjacquet/debt-planner/internal/summary"

	"github.com/spf13/cobra"
)

var (
	project bool
	flags   common.PlannerFlags
)

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Show balances, progress and the average rate of the debt book",
	Long: `Show totals for the debt book. With --project the minimum payments are also
simulated to report the months and interest left to pay.`,
	RunE: summaryFunc,
}

func init() {
	Cmd.Flags().BoolVar(&project, "project", false, "Simulate minimum payments to project payoff and interest")
	Cmd.Flags().StringVar(&flags.Strategy, "strategy", "", "Strategy used by --project (avalanche, snowball)")
	Cmd.Flags().IntVar(&flags.MaxMonths, "max-months", 0, "Simulation horizon used by --project")
}

func summaryFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	cfg := c.GetConfig()

	debts, err := common.LoadDebts(c.GetStore())
	if err != nil {
		return err
	}

	var s models.Summary
	if project {
		opts, err := flags.Resolve(cfg, time.Now())
		if err != nil {
			return err
		}
		if s, err = summary.Project(c.GetScheduler(), debts, opts.Strategy, opts.MaxMonths); err != nil {
			return err
		}
	} else {
		s = summary.Summarize(debts)
	}

	root.Log.Debug("Summary computed",
		logging.Field{Key: logging.FieldCount, Value: s.DebtCount},
		logging.Field{Key: logging.FieldBalance, Value: s.TotalBalance.StringFixed(2)})
	return common.Render(cmd, c.GetReportGenerator(), &s, cfg.Output.Format, root.SharedFlags.Output, root.Log)
}
