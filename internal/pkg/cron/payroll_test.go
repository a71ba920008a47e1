package cron

import (
	"context"
	"testing"
	"time"

	"github.com/paylane-hq/payroll-backend-go/internal/domain/employee"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/payroll"
	"github.com/paylane-hq/payroll-backend-go/internal/pkg/statutory"
	"github.com/paylane-hq/payroll-backend-go/internal/pkg/storage"
	"github.com/paylane-hq/payroll-backend-go/internal/repository/memory"
	attendanceService "github.com/paylane-hq/payroll-backend-go/internal/service/attendance"
	compensationService "github.com/paylane-hq/payroll-backend-go/internal/service/compensation"
	payrollService "github.com/paylane-hq/payroll-backend-go/internal/service/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJobsEnv(t *testing.T) (*PeriodJobs, payroll.PayrollService, *memory.EmployeeRepository) {
	t.Helper()

	componentRepo := memory.NewComponentRepository()
	employeeRepo := memory.NewEmployeeRepository()
	compensationRepo := memory.NewCompensationRepository()
	attendanceRepo := memory.NewAttendanceRepository()
	payrollRepo := memory.NewPayrollRepository()

	documents, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	svc := payrollService.NewPayrollService(
		payrollRepo,
		employeeRepo,
		componentRepo,
		compensationService.NewCompensationService(compensationRepo, componentRepo, employeeRepo),
		attendanceService.NewAttendanceService(attendanceRepo, time.Sunday),
		statutory.NewFlatRateEvaluator(statutory.DefaultProfile()),
		documents,
		time.Second,
		2,
	)

	return NewPeriodJobs(employeeRepo, svc), svc, employeeRepo
}

func TestEnsureCurrentPeriods_CreatesDraftPerOrg(t *testing.T) {
	jobs, svc, employeeRepo := newJobsEnv(t)
	ctx := context.Background()

	for _, orgID := range []string{"org-a", "org-b"} {
		_, err := employeeRepo.Create(ctx, employee.Employee{OrgID: orgID, Code: "E001", Name: "Asha", Active: true})
		require.NoError(t, err)
	}

	require.NoError(t, jobs.EnsureCurrentPeriods(ctx))

	now := time.Now().UTC()
	for _, orgID := range []string{"org-a", "org-b"} {
		periods, err := svc.ListPeriods(ctx, orgID)
		require.NoError(t, err)
		require.Len(t, periods, 1)
		assert.Equal(t, int(now.Month()), periods[0].Month)
		assert.Equal(t, now.Year(), periods[0].Year)
		assert.Equal(t, string(payroll.PeriodStatusDraft), periods[0].Status)
	}

	// Re-running never duplicates periods.
	require.NoError(t, jobs.EnsureCurrentPeriods(ctx))
	periods, err := svc.ListPeriods(ctx, "org-a")
	require.NoError(t, err)
	assert.Len(t, periods, 1)
}

func TestEnsureCurrentPeriods_NoOrgs(t *testing.T) {
	jobs, _, _ := newJobsEnv(t)

	assert.NoError(t, jobs.EnsureCurrentPeriods(context.Background()))
}
