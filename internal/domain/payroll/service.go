package payroll

import "context"

// PayrollService defines business logic for period and run orchestration.
type PayrollService interface {
	// Periods
	// EnsurePeriod is idempotent: it returns the existing period for the
	// (org, month, year) key or creates one in draft.
	EnsurePeriod(ctx context.Context, orgID string, req EnsurePeriodRequest) (PeriodResponse, error)
	ListPeriods(ctx context.Context, orgID string) ([]PeriodResponse, error)
	GetPeriodSummary(ctx context.Context, orgID, periodID string) (PeriodSummaryResponse, error)

	// Transitions. Each is serialized per period against in-flight bulk
	// operations on the same period.
	LockPeriod(ctx context.Context, orgID, periodID string) (PeriodResponse, error)
	ReopenPeriod(ctx context.Context, orgID, periodID string) (PeriodResponse, error)
	PostPeriod(ctx context.Context, orgID, periodID string) (PeriodResponse, error)
	MarkChallanGenerated(ctx context.Context, orgID, periodID string) (PeriodResponse, error)

	// Runs
	ComputeRun(ctx context.Context, orgID, periodID, employeeID string) (RunResponse, error)
	GetRun(ctx context.Context, orgID, periodID, employeeID string) (RunResponse, error)
	ListRuns(ctx context.Context, orgID, periodID string) ([]RunResponse, error)
	FinalizeRun(ctx context.Context, orgID, periodID, employeeID string) error
	UnfinalizeRun(ctx context.Context, orgID, periodID, employeeID string) error

	// Bulk operations: per-employee isolation, aggregate reporting.
	RecalcAll(ctx context.Context, orgID, periodID string, req BatchRequest) (BatchResult, error)
	FinalizeAll(ctx context.Context, orgID, periodID string, req BatchRequest) (BatchResult, error)
	UnfinalizeAll(ctx context.Context, orgID, periodID string, req BatchRequest) (BatchResult, error)

	// Filings
	GenerateFiling(ctx context.Context, orgID, periodID string, req GenerateFilingRequest) (FilingResponse, error)
	ListFilings(ctx context.Context, orgID, periodID string) ([]FilingResponse, error)
	MarkFilingFiled(ctx context.Context, orgID, filingID string) error
	DownloadFiling(ctx context.Context, orgID, filingID string) ([]byte, error)
}
