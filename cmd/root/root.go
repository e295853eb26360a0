// Package root contains the root command for the application
package root

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"fjacquet/debt-planner/internal/config"
	"fjacquet/debt-planner/internal/container"
	"fjacquet/debt-planner/internal/logging"
	"fjacquet/debt-planner/internal/planerror"
	"fjacquet/debt-planner/internal/validation"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
	Input      string
	Output     string
	Format     string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewNopLogger()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "debt-planner",
		Short: "Plan the payoff of a set of debts month by month.",
		Long: `debt-planner simulates paying off a portfolio of debts with the avalanche
or snowball strategy, evaluates extra payment and refinance scenarios,
and keeps a small debt book up to date as payments are made.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to debt-planner!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app == nil {
				return
			}
			if err := app.Close(); err != nil {
				Log.WithError(err).Warn("Failed to close container")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// SharedFlags holds the persistent flag values.
	SharedFlags = CommonFlags{}

	app      *container.Container
	initOnce sync.Once
)

// Init registers the persistent flags. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		flags := Cmd.PersistentFlags()
		flags.StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default searches $HOME/.debt-planner, .debt-planner and .)")
		flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
		flags.StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format (text, json)")
		flags.StringVarP(&SharedFlags.Input, "input", "i", "", "Debts file (.yaml or .csv)")
		flags.StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default stdout)")
		flags.StringVarP(&SharedFlags.Format, "format", "f", "", "Output format (text, json, yaml, csv)")
	})
}

// Setup loads .env and the configuration, applies flag overrides and builds
// the container used by every subcommand.
func Setup() error {
	config.LoadEnv(nil)

	if SharedFlags.Input != "" {
		if err := validation.IsValidInputFile(SharedFlags.Input); err != nil {
			return fmt.Errorf("invalid debts file: %w", err)
		}
	}

	cfg, err := config.InitializeConfigFromFile(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	applyFlags(cfg)

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	app = c
	Log = c.GetLogger()
	return nil
}

func applyFlags(cfg *config.Config) {
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if SharedFlags.LogFormat != "" {
		cfg.Log.Format = SharedFlags.LogFormat
	}
	if SharedFlags.Input != "" {
		cfg.Data.Directory = ""
		cfg.Data.DebtsFile = SharedFlags.Input
	}
	if SharedFlags.Format != "" {
		cfg.Output.Format = SharedFlags.Format
	}
}

// GetContainer returns the container built by Setup.
func GetContainer() (*container.Container, error) {
	if app == nil {
		return nil, errors.New("application not initialized")
	}
	return app, nil
}

// UserMessage turns a command error into the line shown to the user.
func UserMessage(err error) string {
	var nc *planerror.NonConvergenceError
	if errors.As(err, &nc) {
		return fmt.Sprintf("these debts can never be paid off at current minimums (%v)", err)
	}
	var nf *planerror.DebtNotFoundError
	if errors.As(err, &nf) {
		return fmt.Sprintf("no debt with id %q in the debts file", nf.DebtID)
	}
	return err.Error()
}

// ExecuteArgs runs the command tree with args and sends command output to
// out. Shared flags are reset first so repeated runs do not leak values.
func ExecuteArgs(out io.Writer, args ...string) error {
	Init()
	SharedFlags = CommonFlags{}
	Cmd.SetArgs(args)
	Cmd.SetOut(out)
	return Cmd.Execute()
}
