package attendance

import (
	"github.com/paylane-hq/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RecordFactRequest struct {
	EmployeeID string `json:"-"`
	Date       string `json:"date"`
	IsAbsent   bool   `json:"is_absent"`
	IsHalfDay  bool   `json:"is_half_day"`
	IsWeekend  bool   `json:"is_weekend"`
	IsHoliday  bool   `json:"is_holiday"`
}

func (r *RecordFactRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.IsAbsent && r.IsHalfDay {
		errs = append(errs, validator.ValidationError{Field: "is_half_day", Message: "cannot combine with is_absent"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PeriodSummary carries the proration inputs for one employee over a period.
// WorkingDays deliberately subtracts Sundays only, never holidays, so the
// presence ratio on holiday-heavy months stays in the employee's favor.
type PeriodSummary struct {
	EmployeeID  string          `json:"employee_id"`
	PresentDays decimal.Decimal `json:"present_days"`
	WorkingDays decimal.Decimal `json:"working_days"`
}
