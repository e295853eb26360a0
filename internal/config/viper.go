// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fjacquet/debt-planner/internal/currencyutils"
	"fjacquet/debt-planner/internal/dateutils"
	"fjacquet/debt-planner/internal/logging"
	"fjacquet/debt-planner/internal/models"
	"fjacquet/debt-planner/internal/report"
	"fjacquet/debt-planner/internal/strategy"
	"fjacquet/debt-planner/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. DEBTPLAN_LOG_LEVEL.
const EnvPrefix = "DEBTPLAN"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter      string `mapstructure:"delimiter" yaml:"delimiter"`
		IncludeHeaders bool   `mapstructure:"include_headers" yaml:"include_headers"`
	} `mapstructure:"csv" yaml:"csv"`

	Planner struct {
		Strategy     string `mapstructure:"strategy" yaml:"strategy"`
		MaxMonths    int    `mapstructure:"max_months" yaml:"max_months"`
		ExtraPayment string `mapstructure:"extra_payment" yaml:"extra_payment"`
		KeepBudget   bool   `mapstructure:"keep_budget" yaml:"keep_budget"`
		StartDate    string `mapstructure:"start_date" yaml:"start_date"`
	} `mapstructure:"planner" yaml:"planner"`

	Data struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
		DebtsFile string `mapstructure:"debts_file" yaml:"debts_file"`
	} `mapstructure:"data" yaml:"data"`

	Output struct {
		Format   string `mapstructure:"format" yaml:"format"`
		Currency string `mapstructure:"currency" yaml:"currency"`
	} `mapstructure:"output" yaml:"output"`

	AI struct {
		Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
		Model          string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return InitializeConfigFromFile("")
}

// InitializeConfigFromFile behaves like InitializeConfig but reads configFile
// instead of searching the standard locations when it is not empty. A missing
// explicit file is an error.
func InitializeConfigFromFile(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.debt-planner")
		v.AddConfigPath(".debt-planner")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	// 5. The API key always comes from the unprefixed variable
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.include_headers", true)

	v.SetDefault("planner.strategy", models.StrategyAvalanche)
	v.SetDefault("planner.max_months", models.DefaultMaxMonths)
	v.SetDefault("planner.extra_payment", "0")
	v.SetDefault("planner.keep_budget", true)
	v.SetDefault("planner.start_date", "")

	v.SetDefault("data.directory", "")
	v.SetDefault("data.debts_file", "debts.yaml")

	v.SetDefault("output.format", report.FormatText)
	v.SetDefault("output.currency", "CHF")

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-1.5-flash")
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("ai.api_key", "")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, ok := logging.ParseLevel(config.Log.Level); !ok {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if _, err := strategy.Parse(config.Planner.Strategy); err != nil {
		return fmt.Errorf("planner.strategy: %w", err)
	}

	if config.Planner.MaxMonths < 1 || config.Planner.MaxMonths > 1200 {
		return fmt.Errorf("planner.max_months must be between 1 and 1200, got: %d", config.Planner.MaxMonths)
	}

	if _, err := config.ExtraPayment(); err != nil {
		return err
	}

	if _, err := config.StartDate(); err != nil {
		return err
	}

	if err := validation.IsValidOutputFormat(config.Output.Format); err != nil {
		return fmt.Errorf("invalid output format: %w", err)
	}

	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}

		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	return nil
}

// ExtraPayment parses planner.extra_payment. An empty value means zero.
func (c *Config) ExtraPayment() (decimal.Decimal, error) {
	if strings.TrimSpace(c.Planner.ExtraPayment) == "" {
		return decimal.Zero, nil
	}
	amount, err := currencyutils.ParseAmount(c.Planner.ExtraPayment)
	if err != nil {
		return decimal.Zero, fmt.Errorf("planner.extra_payment: %w", err)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("planner.extra_payment must not be negative, got: %s", c.Planner.ExtraPayment)
	}
	return amount, nil
}

// StartDate parses planner.start_date. An empty value yields the zero time.
func (c *Config) StartDate() (time.Time, error) {
	if strings.TrimSpace(c.Planner.StartDate) == "" {
		return time.Time{}, nil
	}
	start, _, err := dateutils.ParseDate(c.Planner.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("planner.start_date: %w", err)
	}
	return start, nil
}

// Delimiter returns the configured CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	if c.CSV.Delimiter == "" {
		return ','
	}
	return rune(c.CSV.Delimiter[0])
}

// AITimeout returns the configured AI request timeout.
func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AI.TimeoutSeconds) * time.Second
}

// ConfigureLoggingFromConfig builds the application logger from the Config.
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}

// DebtsPath joins data.directory and data.debts_file. An absolute debts file
// ignores the directory.
func (c *Config) DebtsPath() string {
	if c.Data.Directory == "" || filepath.IsAbs(c.Data.DebtsFile) {
		return c.Data.DebtsFile
	}
	return filepath.Join(c.Data.Directory, c.Data.DebtsFile)
}
