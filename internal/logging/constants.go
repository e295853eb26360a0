package logging

// Field names shared by every log line the planner emits.
const (
	FieldDebtID       = "debt_id"
	FieldStrategy     = "strategy"
	FieldMonth        = "month"
	FieldMonths       = "months"
	FieldMaxMonths    = "max_months"
	FieldExtraPayment = "extra_payment"
	FieldRate         = "rate"
	FieldBalance      = "balance"
	FieldInterest     = "interest"
	FieldScenario     = "scenario"
	FieldOperation    = "operation"
	FieldError        = "error"
	FieldCount        = "count"
	FieldFile         = "file_path"
	FieldFormat       = "format"
)
