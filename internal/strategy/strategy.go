// Package strategy orders debts for receiving surplus payments.
package strategy

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"fjacquet/debt-planner/internal/models"
	"fjacquet/debt-planner/internal/planerror"
)

// Strategy defines a priority order over debts. The first debt returned by
// Rank receives any surplus before the others.
type Strategy interface {
	// Rank returns the active debts in priority order. It never modifies
	// the input slice. Debts with equal keys are ordered by ascending id so
	// that the result is deterministic.
	Rank(debts []models.Debt) []models.Debt

	// Name returns the name of this strategy for logging and reporting.
	Name() string
}

// Avalanche targets the highest interest rate first, minimizing total interest.
type Avalanche struct{}

// Name implements Strategy.
func (Avalanche) Name() string { return models.StrategyAvalanche }

// Rank implements Strategy.
func (Avalanche) Rank(debts []models.Debt) []models.Debt {
	return rank(debts, func(a, b models.Debt) int {
		return b.InterestRate.Cmp(a.InterestRate)
	})
}

// Snowball targets the smallest balance first, closing accounts sooner.
type Snowball struct{}

// Name implements Strategy.
func (Snowball) Name() string { return models.StrategySnowball }

// Rank implements Strategy.
func (Snowball) Rank(debts []models.Debt) []models.Debt {
	return rank(debts, func(a, b models.Debt) int {
		return a.CurrentBalance.Cmp(b.CurrentBalance)
	})
}

func rank(debts []models.Debt, key func(a, b models.Debt) int) []models.Debt {
	ranked := make([]models.Debt, 0, len(debts))
	for _, d := range debts {
		if d.IsActive() {
			ranked = append(ranked, d)
		}
	}
	slices.SortFunc(ranked, func(a, b models.Debt) int {
		if c := key(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return ranked
}

// Names lists the supported strategy names.
func Names() []string {
	return []string{models.StrategyAvalanche, models.StrategySnowball}
}

// Parse returns the strategy for a name, case-insensitively. An empty name
// selects avalanche.
func Parse(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", models.StrategyAvalanche:
		return Avalanche{}, nil
	case models.StrategySnowball:
		return Snowball{}, nil
	default:
		return nil, &planerror.InvalidInputError{
			Field:  "strategy",
			Value:  name,
			Reason: fmt.Sprintf("must be one of %s", strings.Join(Names(), ", ")),
		}
	}
}
