package catalog

import (
	"github.com/paylane-hq/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== COMPONENT DTOs ==========

type CreateComponentRequest struct {
	Code                 string          `json:"code"`
	Name                 string          `json:"name"`
	Type                 string          `json:"type"` // "earning", "deduction" or "employer_cost"
	CalcMethod           string          `json:"calc_method"`
	CalcValue            decimal.Decimal `json:"calc_value"`
	Taxable              *bool           `json:"taxable,omitempty"`
	PFWageParticipates   *bool           `json:"pf_wage_participates,omitempty"`
	ESICWageParticipates *bool           `json:"esic_wage_participates,omitempty"`
	NonProrated          *bool           `json:"non_prorated,omitempty"`
	SortOrder            int             `json:"sort_order"`
}

func (r *CreateComponentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidComponentCode(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "must be 2-30 uppercase letters, digits or underscores"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !validator.IsInSlice(r.Type, []string{"earning", "deduction", "employer_cost"}) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'earning', 'deduction' or 'employer_cost'"})
	}
	if !validator.IsInSlice(r.CalcMethod, []string{"fixed_amount", "percent_of_component", "percent_of_gross", "formula"}) {
		errs = append(errs, validator.ValidationError{Field: "calc_method", Message: "must be a supported calculation method"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateComponentRequest struct {
	Code                 string
	Name                 *string          `json:"name,omitempty"`
	CalcMethod           *string          `json:"calc_method,omitempty"`
	CalcValue            *decimal.Decimal `json:"calc_value,omitempty"`
	Taxable              *bool            `json:"taxable,omitempty"`
	PFWageParticipates   *bool            `json:"pf_wage_participates,omitempty"`
	ESICWageParticipates *bool            `json:"esic_wage_participates,omitempty"`
	NonProrated          *bool            `json:"non_prorated,omitempty"`
	SortOrder            *int             `json:"sort_order,omitempty"`
	Active               *bool            `json:"active,omitempty"`
}

type ComponentResponse struct {
	ID                   string          `json:"id"`
	OrgID                string          `json:"org_id"`
	Code                 string          `json:"code"`
	Name                 string          `json:"name"`
	Type                 string          `json:"type"`
	CalcMethod           string          `json:"calc_method"`
	CalcValue            decimal.Decimal `json:"calc_value"`
	Taxable              bool            `json:"taxable"`
	PFWageParticipates   bool            `json:"pf_wage_participates"`
	ESICWageParticipates bool            `json:"esic_wage_participates"`
	NonProrated          bool            `json:"non_prorated"`
	SortOrder            int             `json:"sort_order"`
	Active               bool            `json:"active"`
}

// ========== CANONICALIZATION DTOs ==========

// RawComponentLine is an uncanonicalized component line as it arrives from
// free-text or AI-drafted input.
type RawComponentLine struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}

// ResolvedComponentLine is a line whose code has been mapped onto the catalog
// and whose sign matches the component type.
type ResolvedComponentLine struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}

// UnmappedComponentLine is a line no catalog code or alias matched. Callers
// must surface these to a human; the amounts are excluded from every total.
type UnmappedComponentLine struct {
	RawCode string          `json:"raw_code"`
	Amount  decimal.Decimal `json:"amount"`
}

type CanonicalizeRequest struct {
	Components []RawComponentLine `json:"components"`
}

type CanonicalizeResponse struct {
	Resolved []ResolvedComponentLine `json:"resolved"`
	Unmapped []UnmappedComponentLine `json:"unmapped"`
}
