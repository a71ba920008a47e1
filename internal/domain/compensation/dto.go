package compensation

import (
	"github.com/paylane-hq/payroll-backend-go/internal/domain/catalog"
	"github.com/paylane-hq/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UpsertCompensationRequest struct {
	ID            string                     `json:"id,omitempty"` // empty = insert
	EmployeeID    string                     `json:"-"`
	EffectiveFrom string                     `json:"effective_from"`
	EffectiveTo   *string                    `json:"effective_to,omitempty"`
	CTCAnnual     decimal.Decimal            `json:"ctc_annual"`
	PaySchedule   string                     `json:"pay_schedule"`
	Currency      string                     `json:"currency"`
	Components    []catalog.RawComponentLine `json:"components"`

	// Strict turns the overlap check from a warning into a hard reject.
	Strict bool `json:"strict,omitempty"`

	// SupersedePrior closes the effective_to of overlapping open-ended
	// records to the day before this record starts.
	SupersedePrior bool `json:"supersede_prior,omitempty"`
}

func (r *UpsertCompensationRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.EffectiveTo != nil {
		if _, ok := validator.IsValidDate(*r.EffectiveTo); !ok {
			errs = append(errs, validator.ValidationError{Field: "effective_to", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if !validator.IsInSlice(r.PaySchedule, []string{"monthly", "weekly", "biweekly"}) {
		errs = append(errs, validator.ValidationError{Field: "pay_schedule", Message: "must be 'monthly', 'weekly' or 'biweekly'"})
	}
	if !validator.IsValidCurrency(r.Currency) {
		errs = append(errs, validator.ValidationError{Field: "currency", Message: "must be a three-letter currency code"})
	}
	if r.CTCAnnual.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "ctc_annual", Message: "must not be negative"})
	}
	for i, line := range r.Components {
		if validator.IsEmpty(line.Code) {
			errs = append(errs, validator.ValidationError{Field: "components", Message: "line " + validator.Itoa(i) + " has an empty component code"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CompensationDraft is the candidate structure an AI drafting widget (or a
// free-text import) proposes. It is untrusted input: it goes through the
// canonicalizer and the same validation as a hand-entered record.
type CompensationDraft struct {
	CTCAnnual   decimal.Decimal            `json:"ctc_annual"`
	PaySchedule string                     `json:"pay_schedule"`
	Currency    string                     `json:"currency"`
	Components  []catalog.RawComponentLine `json:"components"`
	Notes       *string                    `json:"notes,omitempty"`
}

type IntakeDraftRequest struct {
	EmployeeID    string            `json:"-"`
	EffectiveFrom string            `json:"effective_from"`
	Draft         CompensationDraft `json:"draft"`
}

type CompensationResponse struct {
	ID            string                          `json:"id"`
	EmployeeID    string                          `json:"employee_id"`
	EffectiveFrom string                          `json:"effective_from"`
	EffectiveTo   *string                         `json:"effective_to,omitempty"`
	CTCAnnual     decimal.Decimal                 `json:"ctc_annual"`
	PaySchedule   string                          `json:"pay_schedule"`
	Currency      string                          `json:"currency"`
	Components    []catalog.ResolvedComponentLine `json:"components"`

	// OverlapWarning is set when the saved record's interval intersects an
	// existing one. Advisory: the record was persisted anyway.
	OverlapWarning *string `json:"overlap_warning,omitempty"`
}

type IntakeDraftResponse struct {
	Record   *CompensationResponse           `json:"record,omitempty"`
	Unmapped []catalog.UnmappedComponentLine `json:"unmapped,omitempty"`
}
