package payroll

import (
	"context"
	"time"
)

// PayrollRepository defines data access methods for periods, runs and
// filings. All methods take orgID to prevent cross-org data access. Run rows
// are independent units: no cross-employee transaction is required.
type PayrollRepository interface {
	// Periods
	CreatePeriod(ctx context.Context, period PayrollPeriod) (PayrollPeriod, error)
	GetPeriodByID(ctx context.Context, orgID, id string) (PayrollPeriod, error)
	GetPeriodByKey(ctx context.Context, orgID string, month, year int) (PayrollPeriod, error)
	ListPeriods(ctx context.Context, orgID string) ([]PayrollPeriod, error)
	UpdatePeriodStatus(ctx context.Context, orgID, id string, status PeriodStatus, lockAt *time.Time) error

	// Runs
	UpsertRun(ctx context.Context, run PayrollRun) (PayrollRun, error)
	GetRun(ctx context.Context, orgID, periodID, employeeID string) (PayrollRun, error)
	ListRunsByPeriod(ctx context.Context, orgID, periodID string) ([]PayrollRun, error)

	// UpdateRunStatus advances one run from->to; returns ErrRunNotFound when
	// no row matches (including a status mismatch), keeping the transition
	// atomic against concurrent writers.
	UpdateRunStatus(ctx context.Context, orgID, periodID, employeeID string, from, to RunStatus) error

	// Filings
	CreateFiling(ctx context.Context, filing StatutoryFiling) (StatutoryFiling, error)
	GetFilingByID(ctx context.Context, orgID, id string) (StatutoryFiling, error)
	ListFilingsByPeriod(ctx context.Context, orgID, periodID string) ([]StatutoryFiling, error)
	UpdateFilingStatus(ctx context.Context, orgID, id string, status FilingStatus) error
}
