package payroll

import (
	"time"

	"github.com/paylane-hq/payroll-backend-go/internal/domain/attendance"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// PeriodStatus enum
type PeriodStatus string

const (
	PeriodStatusDraft            PeriodStatus = "draft"
	PeriodStatusLocked           PeriodStatus = "locked"
	PeriodStatusPosted           PeriodStatus = "posted"
	PeriodStatusChallanGenerated PeriodStatus = "challan_generated"
)

// PayrollPeriod - one org-month-year unit. At most one row per key.
// Transitions: draft -> locked -> posted -> challan_generated, plus
// locked -> draft (reopen). Posted is terminal for ordinary edits.
type PayrollPeriod struct {
	ID        string
	OrgID     string
	Month     int
	Year      int
	Status    PeriodStatus
	LockAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Start returns the first day of the period in UTC.
func (p PayrollPeriod) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last day of the period in UTC.
func (p PayrollPeriod) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}

// RunStatus enum. Pending is implicit: an employee with no run row is
// pending; a row is created only once a computation succeeds.
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusProcessed RunStatus = "processed"
	RunStatusFinalized RunStatus = "finalized"
)

// SnapshotLine is one resolved component of a run at computation time.
// Earning and employer-cost amounts are non-negative, deductions negative.
type SnapshotLine struct {
	Code   string                `json:"code"`
	Name   string                `json:"name"`
	Type   catalog.ComponentType `json:"type"`
	Amount decimal.Decimal       `json:"amount"`
}

// PayrollRun - the computed payroll result for one employee in one period.
// At most one row per (payroll_period_id, employee_id). The snapshot must
// satisfy NetPay = GrossEarnings - TotalDeductions at write time.
type PayrollRun struct {
	ID                string
	PayrollPeriodID   string
	OrgID             string
	EmployeeID        string
	Status            RunStatus
	Snapshot          []SnapshotLine
	GrossEarnings     decimal.Decimal
	TotalDeductions   decimal.Decimal
	NetPay            decimal.Decimal
	EmployerCost      decimal.Decimal
	PFWages           decimal.Decimal
	ESICWages         decimal.Decimal
	PTAmount          decimal.Decimal
	TDSAmount         decimal.Decimal
	AttendanceSummary attendance.PeriodSummary
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// FilingType enum
type FilingType string

const (
	FilingTypePF      FilingType = "pf"
	FilingTypeESIC    FilingType = "esic"
	FilingTypePT      FilingType = "pt"
	FilingTypeTDS     FilingType = "tds"
	FilingTypeChallan FilingType = "challan"
)

// FilingStatus enum
type FilingStatus string

const (
	FilingStatusDraft     FilingStatus = "draft"
	FilingStatusGenerated FilingStatus = "generated"
	FilingStatusFiled     FilingStatus = "filed"
)

// FilingPayload aggregates statutory totals across the period's runs.
// Stable once the period is posted.
type FilingPayload struct {
	RunCount  int             `json:"run_count"`
	PFWages   decimal.Decimal `json:"pf_wages"`
	ESICWages decimal.Decimal `json:"esic_wages"`
	PTAmount  decimal.Decimal `json:"pt_amount"`
	TDSAmount decimal.Decimal `json:"tds_amount"`
}

// StatutoryFiling - a filing document tracked per period and type.
// Filed is terminal.
type StatutoryFiling struct {
	ID              string
	PayrollPeriodID string
	OrgID           string
	FilingType      FilingType
	Status          FilingStatus
	Payload         FilingPayload
	GeneratedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
