package report

import (
	"fjacquet/debt-planner/internal/currencyutils"
	"fjacquet/debt-planner/internal/dateutils"
	"fjacquet/debt-planner/internal/models"
)

// ScheduleRow is one debt in one month of a schedule, flattened for CSV.
type ScheduleRow struct {
	Month        int    `csv:"month"`
	Date         string `csv:"date"`
	DebtID       string `csv:"debt_id"`
	StartBalance string `csv:"start_balance"`
	Payment      string `csv:"payment"`
	Interest     string `csv:"interest"`
	Principal    string `csv:"principal"`
	EndBalance   string `csv:"end_balance"`
	PaidOff      bool   `csv:"paid_off"`
}

// ScheduleRows flattens a schedule in month order.
func ScheduleRows(s *models.Schedule) []ScheduleRow {
	rows := []ScheduleRow{}
	for _, m := range s.Months {
		for _, e := range m.Entries {
			rows = append(rows, ScheduleRow{
				Month:        m.Month,
				Date:         dateutils.ToISODate(m.Date),
				DebtID:       e.DebtID,
				StartBalance: e.StartBalance.StringFixed(models.MinorUnitPlaces),
				Payment:      e.Payment.StringFixed(models.MinorUnitPlaces),
				Interest:     e.Interest.StringFixed(models.MinorUnitPlaces),
				Principal:    e.Principal.StringFixed(models.MinorUnitPlaces),
				EndBalance:   e.EndBalance.StringFixed(models.MinorUnitPlaces),
				PaidOff:      e.PaidOff,
			})
		}
	}
	return rows
}

// RankingRow is one debt of a ranking.
type RankingRow struct {
	Position       int    `csv:"position"`
	DebtID         string `csv:"debt_id"`
	Name           string `csv:"name"`
	Balance        string `csv:"balance"`
	InterestRate   string `csv:"interest_rate"`
	MinimumPayment string `csv:"minimum_payment"`
}

// RankingRows flattens a ranking.
func RankingRows(r *Ranking) []RankingRow {
	rows := make([]RankingRow, len(r.Debts))
	for i, d := range r.Debts {
		rows[i] = RankingRow{
			Position:       i + 1,
			DebtID:         d.ID,
			Name:           d.Name,
			Balance:        d.CurrentBalance.StringFixed(models.MinorUnitPlaces),
			InterestRate:   currencyutils.FormatRate(d.InterestRate),
			MinimumPayment: d.MinimumPayment.StringFixed(models.MinorUnitPlaces),
		}
	}
	return rows
}
