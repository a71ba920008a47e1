// Package fixtures provides default catalog data seeded for new orgs.
package fixtures

import (
	"github.com/paylane-hq/payroll-backend-go/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// DefaultComponents returns the standard Indian salary structure a new org
// starts from: common earnings plus the statutory deduction and employer-cost
// components the rule evaluator emits. Orgs extend or retire entries after
// seeding.
func DefaultComponents(orgID string) []catalog.PayComponent {
	return []catalog.PayComponent{
		// Earnings
		{
			OrgID:                orgID,
			Code:                 "BASIC",
			Name:                 "Basic Salary",
			Type:                 catalog.ComponentTypeEarning,
			CalcMethod:           catalog.CalcMethodFixedAmount,
			Taxable:              true,
			PFWageParticipates:   true,
			ESICWageParticipates: true,
			SortOrder:            1,
			Active:               true,
		},
		{
			OrgID:                orgID,
			Code:                 "HRA",
			Name:                 "House Rent Allowance",
			Type:                 catalog.ComponentTypeEarning,
			CalcMethod:           catalog.CalcMethodPercentOfComponent,
			CalcValue:            decimal.NewFromInt(50),
			Taxable:              true,
			ESICWageParticipates: true,
			SortOrder:            2,
			Active:               true,
		},
		{
			OrgID:                orgID,
			Code:                 "CONV",
			Name:                 "Conveyance Allowance",
			Type:                 catalog.ComponentTypeEarning,
			CalcMethod:           catalog.CalcMethodFixedAmount,
			Taxable:              true,
			ESICWageParticipates: true,
			SortOrder:            3,
			Active:               true,
		},
		{
			OrgID:                orgID,
			Code:                 "SPECIAL",
			Name:                 "Special Allowance",
			Type:                 catalog.ComponentTypeEarning,
			CalcMethod:           catalog.CalcMethodFixedAmount,
			Taxable:              true,
			ESICWageParticipates: true,
			SortOrder:            4,
			Active:               true,
		},
		{
			OrgID:       orgID,
			Code:        "STATUTORY_BONUS",
			Name:        "Statutory Bonus",
			Type:        catalog.ComponentTypeEarning,
			CalcMethod:  catalog.CalcMethodFixedAmount,
			Taxable:     true,
			NonProrated: true,
			SortOrder:   5,
			Active:      true,
		},

		// Statutory deductions
		{
			OrgID:      orgID,
			Code:       "PF",
			Name:       "Provident Fund",
			Type:       catalog.ComponentTypeDeduction,
			CalcMethod: catalog.CalcMethodFormula,
			SortOrder:  10,
			Active:     true,
		},
		{
			OrgID:      orgID,
			Code:       "ESIC",
			Name:       "Employee State Insurance",
			Type:       catalog.ComponentTypeDeduction,
			CalcMethod: catalog.CalcMethodFormula,
			SortOrder:  11,
			Active:     true,
		},
		{
			OrgID:      orgID,
			Code:       "PT",
			Name:       "Professional Tax",
			Type:       catalog.ComponentTypeDeduction,
			CalcMethod: catalog.CalcMethodFormula,
			SortOrder:  12,
			Active:     true,
		},
		{
			OrgID:      orgID,
			Code:       "TDS",
			Name:       "Tax Deducted at Source",
			Type:       catalog.ComponentTypeDeduction,
			CalcMethod: catalog.CalcMethodFormula,
			SortOrder:  13,
			Active:     true,
		},

		// Employer costs
		{
			OrgID:      orgID,
			Code:       "PF_EMPLOYER",
			Name:       "PF Employer Contribution",
			Type:       catalog.ComponentTypeEmployerCost,
			CalcMethod: catalog.CalcMethodFormula,
			SortOrder:  20,
			Active:     true,
		},
		{
			OrgID:      orgID,
			Code:       "ESIC_EMPLOYER",
			Name:       "ESIC Employer Contribution",
			Type:       catalog.ComponentTypeEmployerCost,
			CalcMethod: catalog.CalcMethodFormula,
			SortOrder:  21,
			Active:     true,
		},
	}
}
