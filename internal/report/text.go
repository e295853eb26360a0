package report

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"fjacquet/debt-planner/internal/currencyutils"
	"fjacquet/debt-planner/internal/dateutils"
	"fjacquet/debt-planner/internal/models"

	"github.com/shopspring/decimal"
)

func (g *ReportGenerator) writeText(w io.Writer, report any) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	switch r := report.(type) {
	case *models.Schedule:
		g.textSchedule(tw, r)
	case models.Summary:
		g.textSummary(tw, &r)
	case *models.Summary:
		g.textSummary(tw, r)
	case *models.ExtraPaymentScenario:
		g.textExtraPayment(tw, r)
	case *models.RefinanceScenario:
		g.textRefinance(tw, r)
	case *models.StrategyComparison:
		g.textComparison(tw, r)
	case *Ranking:
		g.textRanking(tw, r)
	case *PaymentReceipt:
		g.textReceipt(tw, r)
	default:
		return fmt.Errorf("text output is not available for %T", report)
	}
	return tw.Flush()
}

func (g *ReportGenerator) money(amount decimal.Decimal) string {
	return currencyutils.FormatAmount(amount, g.currency)
}

func months(n int) string {
	if n == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", n)
}

func payoff(o models.Outcome) string {
	if o.PayoffDate.IsZero() {
		return months(o.PayoffMonths)
	}
	return fmt.Sprintf("%s (%s)", months(o.PayoffMonths), dateutils.ToISODate(o.PayoffDate))
}

func (g *ReportGenerator) textSchedule(w io.Writer, s *models.Schedule) {
	fmt.Fprintf(w, "Strategy:\t%s\n", s.Strategy)
	fmt.Fprintf(w, "Extra payment:\t%s\n", g.money(s.ExtraPayment))
	fmt.Fprintf(w, "Debt free in:\t%s\n", payoff(s.Outcome()))
	fmt.Fprintf(w, "Total interest:\t%s\n", g.money(s.TotalInterestPaid))
	fmt.Fprintf(w, "Total paid:\t%s\n", g.money(s.TotalPaid))
	for _, warning := range s.Warnings {
		fmt.Fprintf(w, "Warning:\t%s\n", warning)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Month\tDate\tDebt\tPayment\tInterest\tPrincipal\tBalance\t")
	for _, m := range s.Months {
		for _, e := range m.Entries {
			mark := ""
			if e.PaidOff {
				mark = "paid off"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				m.Month, dateutils.ToISODate(m.Date), e.DebtID,
				g.money(e.Payment), g.money(e.Interest), g.money(e.Principal), g.money(e.EndBalance), mark)
		}
	}
}

func (g *ReportGenerator) textSummary(w io.Writer, s *models.Summary) {
	fmt.Fprintf(w, "Debts:\t%d (%d active, %d paid off)\n", s.DebtCount, s.ActiveCount, s.PaidOffCount)
	fmt.Fprintf(w, "Total balance:\t%s\n", g.money(s.TotalBalance))
	fmt.Fprintf(w, "Original balance:\t%s\n", g.money(s.TotalOriginalBalance))
	fmt.Fprintf(w, "Progress:\t%d%%\n", s.ProgressPercent)
	fmt.Fprintf(w, "Monthly minimums:\t%s\n", g.money(s.TotalMinimumPayment))
	fmt.Fprintf(w, "Average rate:\t%s\n", currencyutils.FormatRate(s.WeightedAverageRate))
	if s.HighestRateDebt != nil {
		fmt.Fprintf(w, "Highest rate:\t%s (%s)\n", s.HighestRateDebt.Name, currencyutils.FormatRate(s.HighestRateDebt.InterestRate))
	}
	if s.PayoffMonths > 0 {
		fmt.Fprintf(w, "Debt free in:\t%s\n", months(s.PayoffMonths))
		fmt.Fprintf(w, "Projected interest:\t%s\n", g.money(s.TotalInterestPaid))
	}

	categories := make([]models.Category, 0, len(s.ByCategory))
	for c := range s.ByCategory {
		categories = append(categories, c)
	}
	slices.Sort(categories)
	for _, c := range categories {
		fmt.Fprintf(w, "  %s:\t%s\n", c, g.money(s.ByCategory[c]))
	}
}

func (g *ReportGenerator) textOutcomes(w io.Writer, baseline, modified models.Outcome, monthsSaved int, interestSaved decimal.Decimal) {
	fmt.Fprintln(w, "\tBaseline\tScenario\t")
	fmt.Fprintf(w, "Debt free in\t%s\t%s\t\n", payoff(baseline), payoff(modified))
	fmt.Fprintf(w, "Total interest\t%s\t%s\t\n", g.money(baseline.TotalInterestPaid), g.money(modified.TotalInterestPaid))
	fmt.Fprintf(w, "Total paid\t%s\t%s\t\n", g.money(baseline.TotalPaid), g.money(modified.TotalPaid))
	fmt.Fprintf(w, "Months saved\t%d\t\t\n", monthsSaved)
	fmt.Fprintf(w, "Interest saved\t%s\t\t\n", g.money(interestSaved))
}

func (g *ReportGenerator) textExtraPayment(w io.Writer, s *models.ExtraPaymentScenario) {
	fmt.Fprintf(w, "Extra payment of %s per month (%s)\n\n", g.money(s.ExtraPayment), s.Strategy)
	g.textOutcomes(w, s.Baseline, s.Modified, s.MonthsSaved, s.InterestSaved)
}

func (g *ReportGenerator) textRefinance(w io.Writer, s *models.RefinanceScenario) {
	fmt.Fprintf(w, "Refinance %s from %s to %s (%s)\n", s.DebtID,
		currencyutils.FormatRate(s.OldRate), currencyutils.FormatRate(s.NewRate), s.Strategy)
	fmt.Fprintf(w, "Minimum payment:\t%s -> %s over %s\n",
		g.money(s.OldMinimumPayment), g.money(s.NewMinimumPayment), months(s.RemainingTerm))
	if s.BudgetKept.IsPositive() {
		fmt.Fprintf(w, "Redirected to other debts:\t%s\n", g.money(s.BudgetKept))
	} else if s.ScheduledPayment.GreaterThan(s.NewMinimumPayment) {
		fmt.Fprintf(w, "Still paid on %s:\t%s\n", s.DebtID, g.money(s.ScheduledPayment))
	}
	fmt.Fprintln(w)
	g.textOutcomes(w, s.Baseline, s.Modified, s.MonthsSaved, s.InterestSaved)
}

func (g *ReportGenerator) textComparison(w io.Writer, c *models.StrategyComparison) {
	fmt.Fprintf(w, "Extra payment:\t%s\n\n", g.money(c.ExtraPayment))
	fmt.Fprintln(w, "\tAvalanche\tSnowball\t")
	fmt.Fprintf(w, "Debt free in\t%s\t%s\t\n", payoff(c.Avalanche), payoff(c.Snowball))
	fmt.Fprintf(w, "Total interest\t%s\t%s\t\n", g.money(c.Avalanche.TotalInterestPaid), g.money(c.Snowball.TotalInterestPaid))
	fmt.Fprintf(w, "\nRecommended:\t%s (saves %s and %s)\n", c.Recommended, g.money(c.InterestSaved), months(c.MonthsSaved))
	if c.Explanation != "" {
		fmt.Fprintf(w, "\n%s\n", c.Explanation)
	}
}

func (g *ReportGenerator) textRanking(w io.Writer, r *Ranking) {
	fmt.Fprintf(w, "Payoff order (%s)\n\n", r.Strategy)
	fmt.Fprintln(w, "#\tDebt\tBalance\tRate\tMinimum\t")
	for _, row := range RankingRows(r) {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t\n", row.Position, row.Name,
			g.money(r.Debts[row.Position-1].CurrentBalance), row.InterestRate,
			g.money(r.Debts[row.Position-1].MinimumPayment))
	}
}

func (g *ReportGenerator) textReceipt(w io.Writer, r *PaymentReceipt) {
	fmt.Fprintf(w, "Payment to %s on %s\n", r.Debt.Name, dateutils.ToISODate(r.Payment.PaymentDate))
	fmt.Fprintf(w, "Amount:\t%s\n", g.money(r.Payment.Amount))
	fmt.Fprintf(w, "Interest:\t%s\n", g.money(r.Payment.InterestPaid))
	fmt.Fprintf(w, "Principal:\t%s\n", g.money(r.Payment.PrincipalPaid))
	if r.Payment.Unapplied.IsPositive() {
		fmt.Fprintf(w, "Not needed:\t%s\n", g.money(r.Payment.Unapplied))
	}
	fmt.Fprintf(w, "New balance:\t%s\n", g.money(r.Debt.CurrentBalance))
	if r.Debt.IsPaidOff() {
		fmt.Fprintln(w, "Status:\tpaid off")
	}
}
