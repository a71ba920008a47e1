// Package statutory provides the default RuleEvaluator implementation: a
// flat-rate profile covering PF, ESIC, PT and TDS. Orgs with bespoke rules
// plug their own evaluator in at wiring time.
package statutory

import (
	"context"

	"github.com/paylane-hq/payroll-backend-go/internal/domain/catalog"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Profile holds the rates and thresholds the flat-rate evaluator applies.
// All rates are fractions (0.12 = 12%), thresholds monthly amounts.
type Profile struct {
	PFEmployeeRate   decimal.Decimal
	PFEmployerRate   decimal.Decimal
	PFWageCeiling    decimal.Decimal // PF wage base cap per month; zero = uncapped
	ESICEmployeeRate decimal.Decimal
	ESICEmployerRate decimal.Decimal
	ESICGrossCeiling decimal.Decimal // ESIC applies only when gross is at or under this
	PTSlabs          []PTSlab        // evaluated top-down, first match wins
	TDSFlatRate      decimal.Decimal // fraction of taxable gross withheld
}

// PTSlab maps a monthly gross floor to a flat professional tax amount.
type PTSlab struct {
	GrossAbove decimal.Decimal
	Amount     decimal.Decimal
}

// DefaultProfile mirrors the common Indian statutory setup.
func DefaultProfile() Profile {
	return Profile{
		PFEmployeeRate:   decimal.NewFromFloat(0.12),
		PFEmployerRate:   decimal.NewFromFloat(0.12),
		PFWageCeiling:    decimal.NewFromInt(15000),
		ESICEmployeeRate: decimal.NewFromFloat(0.0075),
		ESICEmployerRate: decimal.NewFromFloat(0.0325),
		ESICGrossCeiling: decimal.NewFromInt(21000),
		PTSlabs: []PTSlab{
			{GrossAbove: decimal.NewFromInt(15000), Amount: decimal.NewFromInt(200)},
			{GrossAbove: decimal.NewFromInt(10000), Amount: decimal.NewFromInt(150)},
		},
		TDSFlatRate: decimal.Zero,
	}
}

type FlatRateEvaluator struct {
	profile Profile
}

func NewFlatRateEvaluator(profile Profile) *FlatRateEvaluator {
	return &FlatRateEvaluator{profile: profile}
}

func (e *FlatRateEvaluator) Evaluate(_ context.Context, input payroll.EvaluationInput) (payroll.EvaluationResult, error) {
	p := e.profile

	pfWages := input.PFWageBase
	if p.PFWageCeiling.IsPositive() && pfWages.GreaterThan(p.PFWageCeiling) {
		pfWages = p.PFWageCeiling
	}

	esicWages := decimal.Zero
	if p.ESICGrossCeiling.IsPositive() && input.GrossEarnings.LessThanOrEqual(p.ESICGrossCeiling) {
		esicWages = input.ESICWageBase
	}

	pfEmployee := pfWages.Mul(p.PFEmployeeRate).Round(2)
	pfEmployer := pfWages.Mul(p.PFEmployerRate).Round(2)
	esicEmployee := esicWages.Mul(p.ESICEmployeeRate).Round(2)
	esicEmployer := esicWages.Mul(p.ESICEmployerRate).Round(2)
	ptAmount := ptFor(p.PTSlabs, input.GrossEarnings)
	tdsAmount := input.GrossEarnings.Mul(p.TDSFlatRate).Round(2)

	result := payroll.EvaluationResult{
		PFWages:   pfWages,
		ESICWages: esicWages,
		PTAmount:  ptAmount,
		TDSAmount: tdsAmount,
	}

	if pfEmployee.IsPositive() {
		result.DeductionLines = append(result.DeductionLines, deduction("PF", "Provident Fund", pfEmployee))
	}
	if esicEmployee.IsPositive() {
		result.DeductionLines = append(result.DeductionLines, deduction("ESIC", "Employee State Insurance", esicEmployee))
	}
	if ptAmount.IsPositive() {
		result.DeductionLines = append(result.DeductionLines, deduction("PT", "Professional Tax", ptAmount))
	}
	if tdsAmount.IsPositive() {
		result.DeductionLines = append(result.DeductionLines, deduction("TDS", "Tax Deducted at Source", tdsAmount))
	}
	if pfEmployer.IsPositive() {
		result.EmployerCostLines = append(result.EmployerCostLines, employerCost("PF_EMPLOYER", "PF Employer Contribution", pfEmployer))
	}
	if esicEmployer.IsPositive() {
		result.EmployerCostLines = append(result.EmployerCostLines, employerCost("ESIC_EMPLOYER", "ESIC Employer Contribution", esicEmployer))
	}

	return result, nil
}

func ptFor(slabs []PTSlab, gross decimal.Decimal) decimal.Decimal {
	for _, slab := range slabs {
		if gross.GreaterThan(slab.GrossAbove) {
			return slab.Amount
		}
	}
	return decimal.Zero
}

func deduction(code, name string, amount decimal.Decimal) payroll.SnapshotLine {
	return payroll.SnapshotLine{Code: code, Name: name, Type: catalog.ComponentTypeDeduction, Amount: amount.Neg()}
}

func employerCost(code, name string, amount decimal.Decimal) payroll.SnapshotLine {
	return payroll.SnapshotLine{Code: code, Name: name, Type: catalog.ComponentTypeEmployerCost, Amount: amount}
}
