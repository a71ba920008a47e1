package payroll

import (
	"context"

	"github.com/shopspring/decimal"
)

// EvaluationInput is what the statutory rule evaluator sees for one employee:
// the prorated gross lines and the wage bases derived from the catalog's
// participation flags.
type EvaluationInput struct {
	OrgID         string
	EmployeeID    string
	Month         int
	Year          int
	GrossLines    []SnapshotLine
	GrossEarnings decimal.Decimal
	PFWageBase    decimal.Decimal
	ESICWageBase  decimal.Decimal
}

// EvaluationResult carries the statutory outcome. Deduction line amounts are
// negative, employer-cost amounts non-negative; the engine re-coerces signs
// anyway before snapshotting.
type EvaluationResult struct {
	DeductionLines    []SnapshotLine
	EmployerCostLines []SnapshotLine
	PFWages           decimal.Decimal
	ESICWages         decimal.Decimal
	PTAmount          decimal.Decimal
	TDSAmount         decimal.Decimal
}

// RuleEvaluator computes statutory deductions, employer costs and wage bases
// for one employee-period. Implementations are treated as pure functions with
// a bounded timeout; a failure or timeout is a hard per-employee failure and
// is never retried.
type RuleEvaluator interface {
	Evaluate(ctx context.Context, input EvaluationInput) (EvaluationResult, error)
}
