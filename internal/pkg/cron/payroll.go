package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/paylane-hq/payroll-backend-go/internal/domain/employee"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/payroll"
)

// PeriodJobs provisions payroll periods in the background so admins never
// hit a missing period for the current month.
type PeriodJobs struct {
	employeeRepo employee.EmployeeRepository
	payrollSvc   payroll.PayrollService
}

func NewPeriodJobs(employeeRepo employee.EmployeeRepository, payrollSvc payroll.PayrollService) *PeriodJobs {
	return &PeriodJobs{
		employeeRepo: employeeRepo,
		payrollSvc:   payrollSvc,
	}
}

// EnsureCurrentPeriods creates the current month's draft period for every org
// with an active roster. Existing periods are left untouched.
func (j *PeriodJobs) EnsureCurrentPeriods(ctx context.Context) error {
	orgIDs, err := j.employeeRepo.ListOrgIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list orgs: %w", err)
	}

	now := time.Now().UTC()
	req := payroll.EnsurePeriodRequest{Month: int(now.Month()), Year: now.Year()}

	var failed int
	for _, orgID := range orgIDs {
		if _, err := j.payrollSvc.EnsurePeriod(ctx, orgID, req); err != nil {
			failed++
			slog.Error("Failed to ensure payroll period", "org_id", orgID, "month", req.Month, "year", req.Year, "error", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("failed to ensure periods for %d of %d orgs", failed, len(orgIDs))
	}
	return nil
}
