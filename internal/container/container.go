// Package container provides dependency injection for the debt-planner
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"context"
	"fmt"

	"fjacquet/debt-planner/internal/advisor"
	"fjacquet/debt-planner/internal/config"
	"fjacquet/debt-planner/internal/logging"
	"fjacquet/debt-planner/internal/report"
	"fjacquet/debt-planner/internal/scenario"
	"fjacquet/debt-planner/internal/scheduler"
	"fjacquet/debt-planner/internal/store"
	"fjacquet/debt-planner/internal/strategy"
)

// Container holds all application dependencies. It is immutable after
// creation; dependencies are reached through getters only.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	store     store.DebtRepository
	scheduler *scheduler.Scheduler
	evaluator *scenario.Evaluator
	reports   *report.ReportGenerator
	explainer advisor.Explainer
	strategy  strategy.Strategy
}

// NewContainer creates and wires all application dependencies from cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.ConfigureLoggingFromConfig(cfg))
}

// NewContainerWithLogger is NewContainer with a caller supplied logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger = logging.OrNop(logger)

	strat, err := strategy.Parse(cfg.Planner.Strategy)
	if err != nil {
		return nil, fmt.Errorf("invalid strategy: %w", err)
	}
	extra, err := cfg.ExtraPayment()
	if err != nil {
		return nil, err
	}
	start, err := cfg.StartDate()
	if err != nil {
		return nil, err
	}

	debtStore := store.NewDebtStore(cfg.DebtsPath(), cfg.Delimiter(), logger)
	sched := scheduler.NewScheduler(logger)
	evaluator := scenario.NewEvaluator(sched, logger,
		scenario.WithStrategy(strat),
		scenario.WithMaxMonths(cfg.Planner.MaxMonths),
		scenario.WithExtraPayment(extra),
		scenario.WithKeepBudget(cfg.Planner.KeepBudget),
		scenario.WithStartDate(start),
	)
	reports := report.NewReportGenerator(logger, cfg.Output.Currency, cfg.Delimiter())

	var explainer advisor.Explainer = advisor.TemplateExplainer{Currency: cfg.Output.Currency}
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		gemini, err := advisor.NewGeminiExplainer(context.Background(), cfg.AI.APIKey, cfg.AI.Model, cfg.AITimeout(), cfg.Output.Currency, logger)
		if err != nil {
			logger.WithError(err).Warn("Gemini unavailable, explanations use the template")
		} else {
			explainer = gemini
			logger.Info("AI explanations enabled", logging.Field{Key: "model", Value: cfg.AI.Model})
		}
	} else {
		logger.Debug("AI explanations disabled")
	}

	logger.Debug("Container initialized successfully",
		logging.Field{Key: logging.FieldStrategy, Value: strat.Name()},
		logging.Field{Key: logging.FieldFile, Value: cfg.DebtsPath()},
		logging.Field{Key: "ai_enabled", Value: cfg.AI.Enabled})

	return &Container{
		logger:    logger,
		config:    cfg,
		store:     debtStore,
		scheduler: sched,
		evaluator: evaluator,
		reports:   reports,
		explainer: explainer,
		strategy:  strat,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the debt book repository.
func (c *Container) GetStore() store.DebtRepository {
	return c.store
}

// GetScheduler returns the portfolio scheduler.
func (c *Container) GetScheduler() *scheduler.Scheduler {
	return c.scheduler
}

// GetEvaluator returns the scenario evaluator configured from the planner section.
func (c *Container) GetEvaluator() *scenario.Evaluator {
	return c.evaluator
}

// GetReportGenerator returns the report renderer.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reports
}

// GetExplainer returns the Gemini explainer when AI is enabled, otherwise the template.
func (c *Container) GetExplainer() advisor.Explainer {
	return c.explainer
}

// GetStrategy returns the configured default strategy.
func (c *Container) GetStrategy() strategy.Strategy {
	return c.strategy
}

// Close releases the AI client when one was created.
func (c *Container) Close() error {
	if closer, ok := c.explainer.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("failed to close explainer: %w", err)
		}
	}
	c.logger.Debug("Container closed")
	return nil
}
