package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/paylane-hq/payroll-backend-go/internal/domain/catalog"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/compensation"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/employee"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/payroll"
	"github.com/paylane-hq/payroll-backend-go/internal/pkg/statutory"
	"github.com/paylane-hq/payroll-backend-go/internal/pkg/storage"
	"github.com/paylane-hq/payroll-backend-go/internal/repository/memory"
	attendanceService "github.com/paylane-hq/payroll-backend-go/internal/service/attendance"
	compensationService "github.com/paylane-hq/payroll-backend-go/internal/service/compensation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainAttendance "github.com/paylane-hq/payroll-backend-go/internal/domain/attendance"
)

const testOrgID = "org-1"

type testEnv struct {
	svc             payroll.PayrollService
	employeeRepo    *memory.EmployeeRepository
	attendanceRepo  *memory.AttendanceRepository
	compensationSvc compensation.CompensationService
}

// stallingEvaluator blocks until the context is cancelled.
type stallingEvaluator struct{}

func (stallingEvaluator) Evaluate(ctx context.Context, _ payroll.EvaluationInput) (payroll.EvaluationResult, error) {
	<-ctx.Done()
	return payroll.EvaluationResult{}, ctx.Err()
}

// failingEvaluator always reports a rule failure.
type failingEvaluator struct{}

func (failingEvaluator) Evaluate(context.Context, payroll.EvaluationInput) (payroll.EvaluationResult, error) {
	return payroll.EvaluationResult{}, errors.New("rule pack rejected input")
}

func newTestEnv(t *testing.T, evaluator payroll.RuleEvaluator, timeout time.Duration) testEnv {
	t.Helper()
	ctx := context.Background()

	componentRepo := memory.NewComponentRepository()
	employeeRepo := memory.NewEmployeeRepository()
	compensationRepo := memory.NewCompensationRepository()
	attendanceRepo := memory.NewAttendanceRepository()
	payrollRepo := memory.NewPayrollRepository()

	for _, c := range []catalog.PayComponent{
		{OrgID: testOrgID, Code: "BASIC", Name: "Basic Salary", Type: catalog.ComponentTypeEarning, PFWageParticipates: true, ESICWageParticipates: true, SortOrder: 1, Active: true},
		{OrgID: testOrgID, Code: "HRA", Name: "House Rent Allowance", Type: catalog.ComponentTypeEarning, SortOrder: 2, Active: true},
		{OrgID: testOrgID, Code: "STATUTORY_BONUS", Name: "Statutory Bonus", Type: catalog.ComponentTypeEarning, NonProrated: true, SortOrder: 5, Active: true},
	} {
		_, err := componentRepo.Create(ctx, c)
		require.NoError(t, err)
	}

	compensationSvc := compensationService.NewCompensationService(compensationRepo, componentRepo, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, time.Sunday)

	if evaluator == nil {
		evaluator = statutory.NewFlatRateEvaluator(statutory.DefaultProfile())
	}

	documents, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	svc := NewPayrollService(payrollRepo, employeeRepo, componentRepo, compensationSvc, attendanceSvc, evaluator, documents, timeout, 4)

	return testEnv{
		svc:             svc,
		employeeRepo:    employeeRepo,
		attendanceRepo:  attendanceRepo,
		compensationSvc: compensationSvc,
	}
}

// addEmployee creates an active employee with an open-ended BASIC-only
// compensation and full attendance minus Sundays for August 2025.
func (e *testEnv) addEmployee(t *testing.T, code string, basicAnnual int64, presentDays int) string {
	t.Helper()
	ctx := context.Background()

	emp, err := e.employeeRepo.Create(ctx, employee.Employee{OrgID: testOrgID, Code: code, Name: "Employee " + code, Active: true})
	require.NoError(t, err)

	if basicAnnual > 0 {
		_, err = e.compensationSvc.Upsert(ctx, testOrgID, compensation.UpsertCompensationRequest{
			EmployeeID:    emp.ID,
			EffectiveFrom: "2025-01-01",
			PaySchedule:   "monthly",
			Currency:      "INR",
			Components:    []catalog.RawComponentLine{{Code: "BASIC", Amount: decimal.NewFromInt(basicAnnual)}},
		})
		require.NoError(t, err)
	}

	counted := 0
	for day := 1; day <= 31 && counted < presentDays; day++ {
		date := time.Date(2025, time.August, day, 0, 0, 0, 0, time.UTC)
		fact := domainAttendance.AttendanceFact{OrgID: testOrgID, EmployeeID: emp.ID, Date: date}
		if date.Weekday() == time.Sunday {
			fact.IsWeekend = true
		} else {
			counted++
		}
		_, err := e.attendanceRepo.Upsert(ctx, fact)
		require.NoError(t, err)
	}

	return emp.ID
}

func (e *testEnv) ensureAugust(t *testing.T) payroll.PeriodResponse {
	t.Helper()
	period, err := e.svc.EnsurePeriod(context.Background(), testOrgID, payroll.EnsurePeriodRequest{Month: 8, Year: 2025})
	require.NoError(t, err)
	return period
}

func TestEnsurePeriod_Idempotent(t *testing.T) {
	env := newTestEnv(t, nil, time.Second)

	first := env.ensureAugust(t)
	second := env.ensureAugust(t)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, string(payroll.PeriodStatusDraft), second.Status)

	periods, err := env.svc.ListPeriods(context.Background(), testOrgID)
	require.NoError(t, err)
	assert.Len(t, periods, 1)
}

func TestComputeRun_ProratesAndBalances(t *testing.T) {
	env := newTestEnv(t, nil, time.Second)
	// Annual 600000 = monthly 50000; 20 of 26 working days present.
	empID := env.addEmployee(t, "E001", 600000, 20)
	period := env.ensureAugust(t)

	run, err := env.svc.ComputeRun(context.Background(), testOrgID, period.ID, empID)
	require.NoError(t, err)

	assert.Equal(t, string(payroll.RunStatusProcessed), run.Status)
	assert.True(t, run.GrossEarnings.Equal(decimal.NewFromFloat(38461.54)), "gross %s", run.GrossEarnings)

	// Flat-rate profile: PF capped at 15000 wages = 1800, gross above the
	// ESIC ceiling so no ESIC, PT slab 200.
	assert.True(t, run.PFWages.Equal(decimal.NewFromInt(15000)), "pf wages %s", run.PFWages)
	assert.True(t, run.ESICWages.Equal(decimal.Zero), "esic wages %s", run.ESICWages)
	assert.True(t, run.PTAmount.Equal(decimal.NewFromInt(200)), "pt %s", run.PTAmount)
	assert.True(t, run.TotalDeductions.Equal(decimal.NewFromInt(2000)), "deductions %s", run.TotalDeductions)
	assert.True(t, run.NetPay.Equal(decimal.NewFromFloat(36461.54)), "net %s", run.NetPay)
	assert.True(t, run.EmployerCost.Equal(decimal.NewFromFloat(40261.54)), "employer cost %s", run.EmployerCost)

	// Identity holds because every snapshot line is rounded before summing.
	assert.True(t, run.NetPay.Equal(run.GrossEarnings.Sub(run.TotalDeductions)))

	// Snapshot keeps catalog order with statutory lines appended.
	require.NotEmpty(t, run.Snapshot)
	assert.Equal(t, "BASIC", run.Snapshot[0].Code)

	assert.True(t, run.AttendanceSummary.PresentDays.Equal(decimal.NewFromInt(20)))
	assert.True(t, run.AttendanceSummary.WorkingDays.Equal(decimal.NewFromInt(26)))
}

func snapshotAmount(t *testing.T, lines []payroll.SnapshotLine, code string) decimal.Decimal {
	t.Helper()
	for _, line := range lines {
		if line.Code == code {
			return line.Amount
		}
	}
	t.Fatalf("snapshot has no line %s", code)
	return decimal.Zero
}

func TestComputeRun_NonProratedEarningSkipsProration(t *testing.T) {
	env := newTestEnv(t, nil, time.Second)
	empID := env.addEmployee(t, "E001", 0, 13)
	ctx := context.Background()

	_, err := env.compensationSvc.Upsert(ctx, testOrgID, compensation.UpsertCompensationRequest{
		EmployeeID:    empID,
		EffectiveFrom: "2025-01-01",
		PaySchedule:   "monthly",
		Currency:      "INR",
		Components: []catalog.RawComponentLine{
			{Code: "BASIC", Amount: decimal.NewFromInt(600000)},
			{Code: "STATUTORY_BONUS", Amount: decimal.NewFromInt(120000)},
		},
	})
	require.NoError(t, err)

	period := env.ensureAugust(t)
	run, err := env.svc.ComputeRun(ctx, testOrgID, period.ID, empID)
	require.NoError(t, err)

	// 13 of 26 working days: BASIC halves, the bonus pays out in full.
	basic := snapshotAmount(t, run.Snapshot, "BASIC")
	bonus := snapshotAmount(t, run.Snapshot, "STATUTORY_BONUS")
	assert.True(t, basic.Equal(decimal.NewFromInt(25000)), "basic %s", basic)
	assert.True(t, bonus.Equal(decimal.NewFromInt(10000)), "bonus %s", bonus)
	assert.True(t, run.GrossEarnings.Equal(decimal.NewFromInt(35000)), "gross %s", run.GrossEarnings)
}

func TestComputeRun_Recompute(t *testing.T) {
	env := newTestEnv(t, nil, time.Second)
	empID := env.addEmployee(t, "E001", 600000, 20)
	period := env.ensureAugust(t)
	ctx := context.Background()

	first, err := env.svc.ComputeRun(ctx, testOrgID, period.ID, empID)
	require.NoError(t, err)

	second, err := env.svc.ComputeRun(ctx, testOrgID, period.ID, empID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.NetPay.Equal(second.NetPay))
}

func TestComputeRun_NoActiveCompensation(t *testing.T) {
	env := newTestEnv(t, nil, time.Second)
	empID := env.addEmployee(t, "E001", 0, 20)
	period := env.ensureAugust(t)

	_, err := env.svc.ComputeRun(context.Background(), testOrgID, period.ID, empID)

	assert.ErrorIs(t, err, compensation.ErrNoActiveCompensation)
}

func TestComputeRun_FinalizedRunLocked(t *testing.T) {
	env := newTestEnv(t, nil, time.Second)
	empID := env.addEmployee(t, "E001", 600000, 20)
	period := env.ensureAugust(t)
	ctx := context.Background()

	_, err := env.svc.ComputeRun(ctx, testOrgID, period.ID, empID)
	require.NoError(t, err)

	_, err = env.svc.LockPeriod(ctx, testOrgID, period.ID)
	require.NoError(t, err)
	require.NoError(t, env.svc.FinalizeRun(ctx, testOrgID, period.ID, empID))

	_, err = env.svc.ComputeRun(ctx, testOrgID, period.ID, empID)
	assert.ErrorIs(t, err, payroll.ErrRunLocked)

	// Unfinalizing unlocks recomputation.
	require.NoError(t, env.svc.UnfinalizeRun(ctx, testOrgID, period.ID, empID))
	_, err = env.svc.ComputeRun(ctx, testOrgID, period.ID, empID)
	assert.NoError(t, err)
}

func TestEvaluate_TimeoutIsHardFailure(t *testing.T) {
	env := newTestEnv(t, stallingEvaluator{}, 20*time.Millisecond)
	empID := env.addEmployee(t, "E001", 600000, 20)
	period := env.ensureAugust(t)

	_, err := env.svc.ComputeRun(context.Background(), testOrgID, period.ID, empID)

	require.Error(t, err)
	assert.ErrorIs(t, err, payroll.ErrEvaluatorTimeout)

	var evalErr *payroll.EvaluatorError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, empID, evalErr.EmployeeID)

	// No run row is created on failure; the employee stays pending.
	_, err = env.svc.GetRun(context.Background(), testOrgID, period.ID, empID)
	assert.ErrorIs(t, err, payroll.ErrRunNotFound)
}

func TestEvaluate_FailureNotRetried(t *testing.T) {
	env := newTestEnv(t, failingEvaluator{}, time.Second)
	empID := env.addEmployee(t, "E001", 600000, 20)
	period := env.ensureAugust(t)

	_, err := env.svc.ComputeRun(context.Background(), testOrgID, period.ID, empID)

	var evalErr *payroll.EvaluatorError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, empID, evalErr.EmployeeID)
}

func TestLockReopenCycle(t *testing.T) {
	env := newTestEnv(t, nil, time.Second)
	period := env.ensureAugust(t)
	ctx := context.Background()

	locked, err := env.svc.LockPeriod(ctx, testOrgID, period.ID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PeriodStatusLocked), locked.Status)
	assert.NotNil(t, locked.LockAt)

	_, err = env.svc.LockPeriod(ctx, testOrgID, period.ID)
	assert.ErrorIs(t, err, payroll.ErrPeriodNotDraft)

	reopened, err := env.svc.ReopenPeriod(ctx, testOrgID, period.ID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PeriodStatusDraft), reopened.Status)
	assert.Nil(t, reopened.LockAt)

	_, err = env.svc.ReopenPeriod(ctx, testOrgID, period.ID)
	assert.ErrorIs(t, err, payroll.ErrPeriodNotLocked)
}

func TestFinalizeRun_RequiresLockedPeriod(t *testing.T) {
	env := newTestEnv(t, nil, time.Second)
	empID := env.addEmployee(t, "E001", 600000, 20)
	period := env.ensureAugust(t)
	ctx := context.Background()

	_, err := env.svc.ComputeRun(ctx, testOrgID, period.ID, empID)
	require.NoError(t, err)

	err = env.svc.FinalizeRun(ctx, testOrgID, period.ID, empID)
	assert.ErrorIs(t, err, payroll.ErrPeriodNotLocked)
}

func TestPostPeriod_GateNamesBlockers(t *testing.T) {
	env := newTestEnv(t, nil, time.Second)
	emp1 := env.addEmployee(t, "E001", 600000, 20)
	emp2 := env.addEmployee(t, "E002", 480000, 26)
	emp3 := env.addEmployee(t, "E003", 360000, 26)
	noComp := env.addEmployee(t, "E004", 0, 26)
	period := env.ensureAugust(t)
	ctx := context.Background()

	for _, id := range []string{emp1, emp2, emp3} {
		_, err := env.svc.ComputeRun(ctx, testOrgID, period.ID, id)
		require.NoError(t, err)
	}

	_, err := env.svc.LockPeriod(ctx, testOrgID, period.ID)
	require.NoError(t, err)

	require.NoError(t, env.svc.FinalizeRun(ctx, testOrgID, period.ID, emp1))
	require.NoError(t, env.svc.FinalizeRun(ctx, testOrgID, period.ID, emp2))

	// emp3 is processed but not finalized; posting must name it. The
	// employee without compensation never blocks.
	_, err = env.svc.PostPeriod(ctx, testOrgID, period.ID)
	var blocked *payroll.TransitionBlockedError
	require.ErrorAs(t, err, &blocked)
	require.Len(t, blocked.Blockers, 1)
	assert.Equal(t, emp3, blocked.Blockers[0].EmployeeID)
	assert.Equal(t, payroll.RunStatusProcessed, blocked.Blockers[0].Status)

	summary, err := env.svc.GetPeriodSummary(ctx, testOrgID, period.ID)
	require.NoError(t, err)
	assert.Contains(t, summary.NoCompensationIDs, noComp)

	require.NoError(t, env.svc.FinalizeRun(ctx, testOrgID, period.ID, emp3))

	posted, err := env.svc.PostPeriod(ctx, testOrgID, period.ID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PeriodStatusPosted), posted.Status)

	// Posted periods reject recomputation.
	_, err = env.svc.ComputeRun(ctx, testOrgID, period.ID, emp1)
	assert.ErrorIs(t, err, payroll.ErrPeriodAlreadyPosted)

	challan, err := env.svc.MarkChallanGenerated(ctx, testOrgID, period.ID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PeriodStatusChallanGenerated), challan.Status)
}

func TestPostPeriod_PendingRunBlocks(t *testing.T) {
	env := newTestEnv(t, nil, time.Second)
	empID := env.addEmployee(t, "E001", 600000, 20)
	period := env.ensureAugust(t)
	ctx := context.Background()

	_, err := env.svc.LockPeriod(ctx, testOrgID, period.ID)
	require.NoError(t, err)

	// Never computed: the employee is pending and blocks the post.
	_, err = env.svc.PostPeriod(ctx, testOrgID, period.ID)
	var blocked *payroll.TransitionBlockedError
	require.ErrorAs(t, err, &blocked)
	require.Len(t, blocked.Blockers, 1)
	assert.Equal(t, empID, blocked.Blockers[0].EmployeeID)
	assert.Equal(t, payroll.RunStatusPending, blocked.Blockers[0].Status)
}

func TestRecalcAll_PartialFailure(t *testing.T) {
	env := newTestEnv(t, nil, time.Second)
	env.addEmployee(t, "E001", 600000, 20)
	env.addEmployee(t, "E002", 480000, 26)
	noComp := env.addEmployee(t, "E003", 0, 26)
	period := env.ensureAugust(t)

	result, err := env.svc.RecalcAll(context.Background(), testOrgID, period.ID, payroll.BatchRequest{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 0, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, noComp, result.Errors[0].EmployeeID)
}

func TestFinalizeAllAndUnfinalizeAll(t *testing.T) {
	env := newTestEnv(t, nil, time.Second)
	env.addEmployee(t, "E001", 600000, 20)
	env.addEmployee(t, "E002", 480000, 26)
	period := env.ensureAugust(t)
	ctx := context.Background()

	result, err := env.svc.RecalcAll(ctx, testOrgID, period.ID, payroll.BatchRequest{})
	require.NoError(t, err)
	require.Equal(t, 2, result.Succeeded)

	_, err = env.svc.LockPeriod(ctx, testOrgID, period.ID)
	require.NoError(t, err)

	result, err = env.svc.FinalizeAll(ctx, testOrgID, period.ID, payroll.BatchRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 0, result.Failed)

	// Finalizing again fails per employee, not for the batch.
	result, err = env.svc.FinalizeAll(ctx, testOrgID, period.ID, payroll.BatchRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Succeeded)
	assert.Equal(t, 2, result.Failed)

	result, err = env.svc.UnfinalizeAll(ctx, testOrgID, period.ID, payroll.BatchRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Succeeded)
}

func TestBatch_ExplicitEmployeeSelection(t *testing.T) {
	env := newTestEnv(t, nil, time.Second)
	emp1 := env.addEmployee(t, "E001", 600000, 20)
	env.addEmployee(t, "E002", 480000, 26)
	period := env.ensureAugust(t)

	result, err := env.svc.RecalcAll(context.Background(), testOrgID, period.ID,
		payroll.BatchRequest{EmployeeIDs: []string{emp1, emp1}})
	require.NoError(t, err)

	// Duplicates collapse; only the selected employee is touched.
	assert.Equal(t, 1, result.Succeeded)

	runs, err := env.svc.ListRuns(context.Background(), testOrgID, period.ID)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRecalcAll_CancelledBatchReportsSkips(t *testing.T) {
	env := newTestEnv(t, nil, time.Second)
	for _, code := range []string{"E001", "E002", "E003", "E004", "E005", "E006"} {
		env.addEmployee(t, code, 600000, 20)
	}
	period := env.ensureAugust(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := env.svc.RecalcAll(ctx, testOrgID, period.ID, payroll.BatchRequest{})

	assert.ErrorIs(t, err, payroll.ErrBatchCancelled)
	assert.Equal(t, 0, result.Succeeded)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 6, result.Skipped)

	// Nothing was computed for the cancelled batch.
	runs, err := env.svc.ListRuns(context.Background(), testOrgID, period.ID)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestGenerateFiling_GateAndAggregation(t *testing.T) {
	env := newTestEnv(t, nil, time.Second)
	emp1 := env.addEmployee(t, "E001", 600000, 20)
	emp2 := env.addEmployee(t, "E002", 480000, 26)
	period := env.ensureAugust(t)
	ctx := context.Background()

	_, err := env.svc.GenerateFiling(ctx, testOrgID, period.ID, payroll.GenerateFilingRequest{FilingType: "pf"})
	assert.ErrorIs(t, err, payroll.ErrFilingPeriodNotReady)

	_, err = env.svc.RecalcAll(ctx, testOrgID, period.ID, payroll.BatchRequest{})
	require.NoError(t, err)
	_, err = env.svc.LockPeriod(ctx, testOrgID, period.ID)
	require.NoError(t, err)
	require.NoError(t, env.svc.FinalizeRun(ctx, testOrgID, period.ID, emp1))

	// Only finalized runs aggregate; emp2 is still processed.
	filing, err := env.svc.GenerateFiling(ctx, testOrgID, period.ID, payroll.GenerateFilingRequest{FilingType: "pf"})
	require.NoError(t, err)
	assert.Equal(t, 1, filing.Payload.RunCount)
	assert.True(t, filing.Payload.PFWages.Equal(decimal.NewFromInt(15000)), "pf wages %s", filing.Payload.PFWages)
	assert.Equal(t, string(payroll.FilingStatusGenerated), filing.Status)
	require.NotNil(t, filing.GeneratedAt)

	require.NoError(t, env.svc.FinalizeRun(ctx, testOrgID, period.ID, emp2))

	second, err := env.svc.GenerateFiling(ctx, testOrgID, period.ID, payroll.GenerateFilingRequest{FilingType: "pf"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Payload.RunCount)

	filings, err := env.svc.ListFilings(ctx, testOrgID, period.ID)
	require.NoError(t, err)
	assert.Len(t, filings, 2)

	doc, err := env.svc.DownloadFiling(ctx, testOrgID, second.ID)
	require.NoError(t, err)
	var downloaded payroll.FilingResponse
	require.NoError(t, json.Unmarshal(doc, &downloaded))
	assert.Equal(t, second.ID, downloaded.ID)
	assert.Equal(t, 2, downloaded.Payload.RunCount)

	require.NoError(t, env.svc.MarkFilingFiled(ctx, testOrgID, second.ID))
	err = env.svc.MarkFilingFiled(ctx, testOrgID, second.ID)
	assert.ErrorIs(t, err, payroll.ErrFilingAlreadyFiled)
}

func TestGetPeriodSummary_Totals(t *testing.T) {
	env := newTestEnv(t, nil, time.Second)
	emp1 := env.addEmployee(t, "E001", 600000, 20)
	env.addEmployee(t, "E002", 480000, 26)
	period := env.ensureAugust(t)
	ctx := context.Background()

	_, err := env.svc.RecalcAll(ctx, testOrgID, period.ID, payroll.BatchRequest{})
	require.NoError(t, err)
	_, err = env.svc.LockPeriod(ctx, testOrgID, period.ID)
	require.NoError(t, err)
	require.NoError(t, env.svc.FinalizeRun(ctx, testOrgID, period.ID, emp1))

	summary, err := env.svc.GetPeriodSummary(ctx, testOrgID, period.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.EligibleEmployees)
	assert.Equal(t, 1, summary.ProcessedCount)
	assert.Equal(t, 1, summary.FinalizedCount)
	assert.Equal(t, 0, summary.PendingCount)

	runs, err := env.svc.ListRuns(ctx, testOrgID, period.ID)
	require.NoError(t, err)
	expectedNet := decimal.Zero
	for _, run := range runs {
		expectedNet = expectedNet.Add(run.NetPay)
	}
	assert.True(t, summary.TotalNetPay.Equal(expectedNet), "net %s vs %s", summary.TotalNetPay, expectedNet)
	assert.True(t, summary.TotalNetPay.Equal(summary.TotalGrossEarnings.Sub(summary.TotalDeductions)))
}
