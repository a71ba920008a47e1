package payroll

import (
	"time"

	"github.com/paylane-hq/payroll-backend-go/internal/domain/attendance"
	"github.com/paylane-hq/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PERIOD DTOs ==========

type EnsurePeriodRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *EnsurePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidPeriodMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 2000 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be 2000 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PeriodResponse struct {
	ID     string  `json:"id"`
	OrgID  string  `json:"org_id"`
	Month  int     `json:"month"`
	Year   int     `json:"year"`
	Status string  `json:"status"`
	LockAt *string `json:"lock_at,omitempty"`
}

// PeriodSummaryResponse aggregates the period's runs: totals, run counts per
// status, and the employees with no active compensation. The latter are
// data-quality warnings, not post blockers.
type PeriodSummaryResponse struct {
	Period             PeriodResponse  `json:"period"`
	TotalGrossEarnings decimal.Decimal `json:"total_gross_earnings"`
	TotalDeductions    decimal.Decimal `json:"total_deductions"`
	TotalNetPay        decimal.Decimal `json:"total_net_pay"`
	TotalEmployerCost  decimal.Decimal `json:"total_employer_cost"`
	TotalPFWages       decimal.Decimal `json:"total_pf_wages"`
	TotalESICWages     decimal.Decimal `json:"total_esic_wages"`
	TotalPTAmount      decimal.Decimal `json:"total_pt_amount"`
	TotalTDSAmount     decimal.Decimal `json:"total_tds_amount"`
	EligibleEmployees  int             `json:"eligible_employees"`
	ProcessedCount     int             `json:"processed_count"`
	FinalizedCount     int             `json:"finalized_count"`
	PendingCount       int             `json:"pending_count"`
	NoCompensationIDs  []string        `json:"no_compensation_employee_ids,omitempty"`
}

// ========== RUN DTOs ==========

type RunResponse struct {
	ID                string                   `json:"id"`
	PayrollPeriodID   string                   `json:"payroll_period_id"`
	EmployeeID        string                   `json:"employee_id"`
	EmployeeName      *string                  `json:"employee_name,omitempty"`
	EmployeeCode      *string                  `json:"employee_code,omitempty"`
	Status            string                   `json:"status"`
	Snapshot          []SnapshotLine           `json:"snapshot"`
	GrossEarnings     decimal.Decimal          `json:"gross_earnings"`
	TotalDeductions   decimal.Decimal          `json:"total_deductions"`
	NetPay            decimal.Decimal          `json:"net_pay"`
	EmployerCost      decimal.Decimal          `json:"employer_cost"`
	PFWages           decimal.Decimal          `json:"pf_wages"`
	ESICWages         decimal.Decimal          `json:"esic_wages"`
	PTAmount          decimal.Decimal          `json:"pt_amount"`
	TDSAmount         decimal.Decimal          `json:"tds_amount"`
	AttendanceSummary attendance.PeriodSummary `json:"attendance_summary"`
}

// ========== BATCH DTOs ==========

// BatchRequest selects the employees a bulk action covers. Empty means every
// active employee in the org.
type BatchRequest struct {
	EmployeeIDs []string `json:"employee_ids,omitempty"`
}

type BatchError struct {
	EmployeeID string `json:"employee_id"`
	Message    string `json:"message"`
}

// BatchResult reports a bulk action outcome: counts plus the offending
// employee and cause for every failure.
type BatchResult struct {
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Skipped   int          `json:"skipped"`
	Errors    []BatchError `json:"errors,omitempty"`
}

// ========== FILING DTOs ==========

type GenerateFilingRequest struct {
	FilingType string `json:"filing_type"`
}

func (r *GenerateFilingRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.FilingType, []string{"pf", "esic", "pt", "tds", "challan"}) {
		errs = append(errs, validator.ValidationError{Field: "filing_type", Message: "must be one of 'pf', 'esic', 'pt', 'tds', 'challan'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type FilingResponse struct {
	ID              string        `json:"id"`
	PayrollPeriodID string        `json:"payroll_period_id"`
	FilingType      string        `json:"filing_type"`
	Status          string        `json:"status"`
	Payload         FilingPayload `json:"payload"`
	GeneratedAt     *string       `json:"generated_at,omitempty"`
}

// ========== MAPPING HELPERS ==========

func MapPeriodResponse(p PayrollPeriod) PeriodResponse {
	var lockAt *string
	if p.LockAt != nil {
		s := p.LockAt.Format(time.RFC3339)
		lockAt = &s
	}
	return PeriodResponse{
		ID:     p.ID,
		OrgID:  p.OrgID,
		Month:  p.Month,
		Year:   p.Year,
		Status: string(p.Status),
		LockAt: lockAt,
	}
}

func MapRunResponse(r PayrollRun) RunResponse {
	return RunResponse{
		ID:                r.ID,
		PayrollPeriodID:   r.PayrollPeriodID,
		EmployeeID:        r.EmployeeID,
		EmployeeName:      r.EmployeeName,
		EmployeeCode:      r.EmployeeCode,
		Status:            string(r.Status),
		Snapshot:          r.Snapshot,
		GrossEarnings:     r.GrossEarnings,
		TotalDeductions:   r.TotalDeductions,
		NetPay:            r.NetPay,
		EmployerCost:      r.EmployerCost,
		PFWages:           r.PFWages,
		ESICWages:         r.ESICWages,
		PTAmount:          r.PTAmount,
		TDSAmount:         r.TDSAmount,
		AttendanceSummary: r.AttendanceSummary,
	}
}

func MapFilingResponse(f StatutoryFiling) FilingResponse {
	var generatedAt *string
	if f.GeneratedAt != nil {
		s := f.GeneratedAt.Format(time.RFC3339)
		generatedAt = &s
	}
	return FilingResponse{
		ID:              f.ID,
		PayrollPeriodID: f.PayrollPeriodID,
		FilingType:      string(f.FilingType),
		Status:          string(f.Status),
		Payload:         f.Payload,
		GeneratedAt:     generatedAt,
	}
}
