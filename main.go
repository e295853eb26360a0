package main

import (
	"fmt"
	"os"

	"fjacquet/debt-planner/cmd/compare"
	"fjacquet/debt-planner/cmd/pay"
	"fjacquet/debt-planner/cmd/plan"
	"fjacquet/debt-planner/cmd/rank"
	"fjacquet/debt-planner/cmd/root"
	"fjacquet/debt-planner/cmd/scenario"
	"fjacquet/debt-planner/cmd/summary"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(plan.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(scenario.Cmd)
	root.Cmd.AddCommand(compare.Cmd)
	root.Cmd.AddCommand(rank.Cmd)
	root.Cmd.AddCommand(pay.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", root.UserMessage(err))
		os.Exit(1)
	}
}
