package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComponentType enum
type ComponentType string

const (
	ComponentTypeEarning      ComponentType = "earning"
	ComponentTypeDeduction    ComponentType = "deduction"
	ComponentTypeEmployerCost ComponentType = "employer_cost"
)

// CalcMethod enum
type CalcMethod string

const (
	CalcMethodFixedAmount        CalcMethod = "fixed_amount"
	CalcMethodPercentOfComponent CalcMethod = "percent_of_component"
	CalcMethodPercentOfGross     CalcMethod = "percent_of_gross"
	CalcMethodFormula            CalcMethod = "formula"
)

// PayComponent - one configurable entry in the org's chart of pay components.
// Code is immutable once any compensation or run references it.
type PayComponent struct {
	ID                   string
	OrgID                string
	Code                 string
	Name                 string
	Type                 ComponentType
	CalcMethod           CalcMethod
	CalcValue            decimal.Decimal
	Taxable              bool
	PFWageParticipates   bool
	ESICWageParticipates bool
	NonProrated          bool
	SortOrder            int
	Active               bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsDeduction reports whether amounts under this component carry a negative sign.
func (c PayComponent) IsDeduction() bool {
	return c.Type == ComponentTypeDeduction
}
