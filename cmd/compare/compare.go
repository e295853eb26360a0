// Package compare implements the command that runs both strategies side by side.
package compare

import (
	"context"
	"time"

	"fjacquet/debt-planner/cmd/common"
	"fjacquet/debt-planner/cmd/root"

	"github.com/spf13/cobra"
)

var (
	flags   common.PlannerFlags
	explain bool
)

// Cmd represents the compare command
var Cmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the avalanche and snowball strategies",
	Long: `Run the debt book under both strategies with the same extra payment and
recommend the one that pays less interest. With --explain a short explanation
is added, written by Gemini when ai.enabled is set and from a template otherwise.`,
	RunE: compareFunc,
}

func init() {
	Cmd.Flags().StringVar(&flags.Extra, "extra", "", "Extra amount paid every month on top of the minimums")
	Cmd.Flags().IntVar(&flags.MaxMonths, "max-months", 0, "Simulation horizon in months")
	Cmd.Flags().StringVar(&flags.Start, "start", "", "First simulated month (YYYY-MM or YYYY-MM-DD)")
	Cmd.Flags().BoolVar(&explain, "explain", false, "Explain the recommendation in plain language")
}

func compareFunc(cmd *cobra.Command, args []string) error {
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

	comparison, err := opts.Evaluator(c.GetScheduler(), root.Log).CompareStrategies(debts, opts.Extra)
	if err != nil {
		return err
	}

	if explain {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		text, err := c.GetExplainer().ExplainComparison(ctx, debts, comparison)
		if err != nil {
			root.Log.WithError(err).Warn("No explanation available")
		} else {
			comparison.Explanation = text
		}
	}

	return common.Render(cmd, c.GetReportGenerator(), comparison, cfg.Output.Format, root.SharedFlags.Output, root.Log)
}
