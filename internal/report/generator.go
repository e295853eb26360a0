// Package report renders plans, summaries and scenarios as text, JSON, YAML
// or CSV.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"fjacquet/debt-planner/internal/common"
	"fjacquet/debt-planner/internal/logging"
	"fjacquet/debt-planner/internal/models"

	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// Ranking is the payoff order produced by a strategy.
type Ranking struct {
	Strategy string        `json:"strategy" yaml:"strategy"`
	Debts    []models.Debt `json:"debts" yaml:"debts"`
}

// PaymentReceipt is a recorded payment together with the updated debt.
type PaymentReceipt struct {
	Payment models.Payment `json:"payment" yaml:"payment"`
	Debt    models.Debt    `json:"debt" yaml:"debt"`
}

// ReportGenerator renders planner results in the configured formats.
type ReportGenerator struct {
	logger    logging.Logger
	currency  string
	delimiter rune
}

// NewReportGenerator creates a generator. currency is only used for text
// output; delimiter only for CSV.
func NewReportGenerator(logger logging.Logger, currency string, delimiter rune) *ReportGenerator {
	return &ReportGenerator{
		logger:    logging.OrNop(logger).WithField("component", "ReportGenerator"),
		currency:  currency,
		delimiter: delimiter,
	}
}

// GenerateReport renders report in format and returns the bytes.
func (g *ReportGenerator) GenerateReport(report any, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.Write(&buf, report, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders report in format to w.
func (g *ReportGenerator) Write(w io.Writer, report any, format string) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		return g.writeText(w, report)
	case FormatJSON:
		return g.writeJSON(w, report)
	case FormatYAML:
		return g.writeYAML(w, report)
	case FormatCSV:
		return g.writeCSV(w, report)
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *ReportGenerator) writeJSON(w io.Writer, report any) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func (g *ReportGenerator) writeYAML(w io.Writer, report any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return enc.Close()
}

func (g *ReportGenerator) writeCSV(w io.Writer, report any) error {
	switch r := report.(type) {
	case *models.Schedule:
		return common.WriteCSV(w, ScheduleRows(r), g.delimiter)
	case *Ranking:
		return common.WriteCSV(w, RankingRows(r), g.delimiter)
	default:
		return fmt.Errorf("csv output is not available for %T", report)
	}
}
