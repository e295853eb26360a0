package models

// Simulation limits
const (
	// DefaultMaxMonths is the safety cap applied when callers pass a
	// non-positive month limit: a fifty year horizon.
	DefaultMaxMonths = 600

	// MonthsPerYear is used to derive monthly rates from APRs.
	MonthsPerYear = 12

	// DaysPerYear is the day-count basis for explicit period lengths.
	DaysPerYear = 365
)

// Strategy names
const (
	StrategyAvalanche = "avalanche"
	StrategySnowball  = "snowball"
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
