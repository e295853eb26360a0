// Package clitest runs subcommands against a throwaway debts file.
package clitest

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"fjacquet/debt-planner/cmd/root"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// Debts holds two debts: A (1000 at 24%, minimum 50) and B (500 at 10%, minimum 30).
const Debts = `debts:
  - id: A
    name: Credit card
    category: credit_card
    current_balance: "1000"
    original_balance: "1250"
    interest_rate: "24%"
    minimum_payment: "50"
  - id: B
    name: Car loan
    category: auto_loan
    current_balance: "500"
    original_balance: "750"
    interest_rate: "0.10"
    minimum_payment: "30"
`

const configYAML = `log:
  level: error
planner:
  start_date: "2026-01-01"
output:
  currency: CHF
`

var registered sync.Map

// Fixture is a temp dir holding a config file and a debts file.
type Fixture struct {
	Dir        string
	ConfigPath string
	DebtsPath  string
}

// NewFixture writes debts (Debts when empty) and a quiet config into a temp
// dir and isolates HOME.
func NewFixture(t *testing.T, debts string) *Fixture {
	t.Helper()
	if debts == "" {
		debts = Debts
	}
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("GEMINI_API_KEY", "")

	f := &Fixture{
		Dir:        dir,
		ConfigPath: filepath.Join(dir, "config.yaml"),
		DebtsPath:  filepath.Join(dir, "debts.yaml"),
	}
	require.NoError(t, os.WriteFile(f.ConfigPath, []byte(configYAML), 0600))
	require.NoError(t, os.WriteFile(f.DebtsPath, []byte(debts), 0600))
	return f
}

// Run adds cmd to the root command once and executes it with args followed
// by the fixture's --config and --input flags.
func (f *Fixture) Run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	if _, loaded := registered.LoadOrStore(cmd, true); !loaded {
		root.Cmd.AddCommand(cmd)
	}

	var out bytes.Buffer
	full := append([]string{cmd.Name()}, args...)
	full = append(full, "--config", f.ConfigPath, "-i", f.DebtsPath)
	err := root.ExecuteArgs(&out, full...)
	return out.String(), err
}
