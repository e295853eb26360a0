// Package rank implements the command that lists debts in payoff order.
package rank

import (
	"fjacquet/debt-planner/cmd/common"
	"fjacquet/debt-planner/cmd/root"
	"fjacquet/debt-planner/internal/report"
	"fjacquet/debt-planner/internal/strategy"

	"github.com/spf13/cobra"
)

var strategyName string

// Cmd represents the rank command
var Cmd = &cobra.Command{
	Use:   "rank",
	Short: "List active debts in the order a strategy pays them off",
	RunE:  rankFunc,
}

func init() {
	Cmd.Flags().StringVar(&strategyName, "strategy", "", "Payoff strategy (avalanche, snowball)")
}

func rankFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	strat := c.GetStrategy()
	if strategyName != "" {
		if strat, err = strategy.Parse(strategyName); err != nil {
			return err
		}
	}

	debts, err := common.LoadDebts(c.GetStore())
	if err != nil {
		return err
	}

	ranking := &report.Ranking{Strategy: strat.Name(), Debts: strat.Rank(debts)}
	return common.Render(cmd, c.GetReportGenerator(), ranking, c.GetConfig().Output.Format, root.SharedFlags.Output, root.Log)
}
