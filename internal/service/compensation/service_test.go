package compensation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/paylane-hq/payroll-backend-go/internal/domain/catalog"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/compensation"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/employee"
	"github.com/paylane-hq/payroll-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrgID = "org-1"

type testEnv struct {
	svc        compensation.CompensationService
	employeeID string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	ctx := context.Background()

	componentRepo := memory.NewComponentRepository()
	employeeRepo := memory.NewEmployeeRepository()
	compensationRepo := memory.NewCompensationRepository()

	for _, c := range []catalog.PayComponent{
		{OrgID: testOrgID, Code: "BASIC", Name: "Basic Salary", Type: catalog.ComponentTypeEarning, SortOrder: 1, Active: true},
		{OrgID: testOrgID, Code: "HRA", Name: "House Rent Allowance", Type: catalog.ComponentTypeEarning, SortOrder: 2, Active: true},
		{OrgID: testOrgID, Code: "PF", Name: "Provident Fund", Type: catalog.ComponentTypeDeduction, SortOrder: 10, Active: true},
		{OrgID: testOrgID, Code: "PF_EMPLOYER", Name: "Provident Fund (Employer)", Type: catalog.ComponentTypeEmployerCost, SortOrder: 20, Active: true},
	} {
		_, err := componentRepo.Create(ctx, c)
		require.NoError(t, err)
	}

	emp, err := employeeRepo.Create(ctx, employee.Employee{OrgID: testOrgID, Code: "E001", Name: "Asha", Active: true})
	require.NoError(t, err)

	return testEnv{
		svc:        NewCompensationService(compensationRepo, componentRepo, employeeRepo),
		employeeID: emp.ID,
	}
}

func rawLine(code string, amount int64) catalog.RawComponentLine {
	return catalog.RawComponentLine{Code: code, Amount: decimal.NewFromInt(amount)}
}

func upsertReq(employeeID, from string, lines ...catalog.RawComponentLine) compensation.UpsertCompensationRequest {
	return compensation.UpsertCompensationRequest{
		EmployeeID:    employeeID,
		EffectiveFrom: from,
		PaySchedule:   "monthly",
		Currency:      "INR",
		Components:    lines,
	}
}

func TestUpsert_DerivesCTCFromComponents(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.svc.Upsert(context.Background(), testOrgID,
		upsertReq(env.employeeID, "2025-01-01", rawLine("BASIC", 600000), rawLine("HRA", 240000), rawLine("PF", 21600)))

	require.NoError(t, err)
	// CTC is the sum of earning amounts; the PF deduction stays out.
	assert.True(t, resp.CTCAnnual.Equal(decimal.NewFromInt(840000)), "got %s", resp.CTCAnnual)
	assert.Nil(t, resp.OverlapWarning)
}

func TestUpsert_DerivedCTCExcludesEmployerCost(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.svc.Upsert(context.Background(), testOrgID,
		upsertReq(env.employeeID, "2025-01-01", rawLine("BASIC", 600000), rawLine("PF_EMPLOYER", 21600)))

	require.NoError(t, err)
	// Employer-side contribution lines carry positive amounts but are not
	// earnings, so they never count toward the derived CTC.
	assert.True(t, resp.CTCAnnual.Equal(decimal.NewFromInt(600000)), "got %s", resp.CTCAnnual)
}

func TestUpsert_UnmappedComponentsAbort(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Upsert(context.Background(), testOrgID,
		upsertReq(env.employeeID, "2025-01-01", rawLine("BASIC", 600000), rawLine("SPOT_BONUS", 50000)))

	require.Error(t, err)
	assert.ErrorIs(t, err, compensation.ErrUnmappedComponents)

	var unmappedErr *compensation.UnmappedComponentsError
	require.ErrorAs(t, err, &unmappedErr)
	require.Len(t, unmappedErr.Lines, 1)
	assert.Equal(t, "SPOT_BONUS", unmappedErr.Lines[0].RawCode)
}

func TestUpsert_NonPositiveCTCRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Upsert(context.Background(), testOrgID,
		upsertReq(env.employeeID, "2025-01-01", rawLine("PF", 21600)))

	assert.ErrorIs(t, err, compensation.ErrNonPositiveCTC)
}

func TestUpsert_UnknownEmployee(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Upsert(context.Background(), testOrgID,
		upsertReq("nonexistent", "2025-01-01", rawLine("BASIC", 600000)))

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUpsert_OverlapWarnsByDefault(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Upsert(ctx, testOrgID,
		upsertReq(env.employeeID, "2025-01-01", rawLine("BASIC", 600000)))
	require.NoError(t, err)

	resp, err := env.svc.Upsert(ctx, testOrgID,
		upsertReq(env.employeeID, "2025-06-01", rawLine("BASIC", 720000)))

	require.NoError(t, err)
	require.NotNil(t, resp.OverlapWarning)
}

func TestUpsert_StrictOverlapRejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Upsert(ctx, testOrgID,
		upsertReq(env.employeeID, "2025-01-01", rawLine("BASIC", 600000)))
	require.NoError(t, err)

	req := upsertReq(env.employeeID, "2025-06-01", rawLine("BASIC", 720000))
	req.Strict = true
	_, err = env.svc.Upsert(ctx, testOrgID, req)

	assert.ErrorIs(t, err, compensation.ErrOverlappingRecords)
}

func TestUpsert_SupersedePriorClosesOpenEndedRecord(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Upsert(ctx, testOrgID,
		upsertReq(env.employeeID, "2025-01-01", rawLine("BASIC", 600000)))
	require.NoError(t, err)

	req := upsertReq(env.employeeID, "2025-06-01", rawLine("BASIC", 720000))
	req.SupersedePrior = true
	resp, err := env.svc.Upsert(ctx, testOrgID, req)
	require.NoError(t, err)
	assert.Nil(t, resp.OverlapWarning)

	records, err := env.svc.ListByEmployee(ctx, testOrgID, env.employeeID)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first; the prior record now ends the day before the new one.
	require.NotNil(t, records[1].EffectiveTo)
	assert.Equal(t, "2025-05-31", *records[1].EffectiveTo)
}

// failingCreateRepo rejects inserts on demand so transactional paths can be
// exercised against the in-memory store.
type failingCreateRepo struct {
	compensation.CompensationRepository
	fail bool
}

func (r *failingCreateRepo) Create(ctx context.Context, record compensation.CompensationRecord) (compensation.CompensationRecord, error) {
	if r.fail {
		return compensation.CompensationRecord{}, errors.New("insert rejected")
	}
	return r.CompensationRepository.Create(ctx, record)
}

func TestUpsert_SupersedeFailureLeavesPriorOpen(t *testing.T) {
	ctx := context.Background()

	componentRepo := memory.NewComponentRepository()
	employeeRepo := memory.NewEmployeeRepository()
	repo := &failingCreateRepo{CompensationRepository: memory.NewCompensationRepository()}

	_, err := componentRepo.Create(ctx, catalog.PayComponent{
		OrgID: testOrgID, Code: "BASIC", Name: "Basic Salary",
		Type: catalog.ComponentTypeEarning, SortOrder: 1, Active: true,
	})
	require.NoError(t, err)
	emp, err := employeeRepo.Create(ctx, employee.Employee{OrgID: testOrgID, Code: "E001", Name: "Asha", Active: true})
	require.NoError(t, err)

	svc := NewCompensationService(repo, componentRepo, employeeRepo)

	_, err = svc.Upsert(ctx, testOrgID, upsertReq(emp.ID, "2025-01-01", rawLine("BASIC", 600000)))
	require.NoError(t, err)

	repo.fail = true
	req := upsertReq(emp.ID, "2025-06-01", rawLine("BASIC", 720000))
	req.SupersedePrior = true
	_, err = svc.Upsert(ctx, testOrgID, req)
	require.Error(t, err)

	// The close and the insert share a transaction, so the failed insert
	// rolled the close back and the prior record is still open-ended.
	records, err := svc.ListByEmployee(ctx, testOrgID, emp.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].EffectiveTo)

	winner, err := svc.ResolveActive(ctx, testOrgID, emp.ID,
		time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, winner.CTCAnnual.Equal(decimal.NewFromInt(600000)), "got %s", winner.CTCAnnual)

	// A retry supersedes cleanly once the store recovers.
	repo.fail = false
	_, err = svc.Upsert(ctx, testOrgID, req)
	require.NoError(t, err)

	records, err = svc.ListByEmployee(ctx, testOrgID, emp.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.NotNil(t, records[1].EffectiveTo)
	assert.Equal(t, "2025-05-31", *records[1].EffectiveTo)
}

func TestResolveActive_LatestEffectiveFromWins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Upsert(ctx, testOrgID,
		upsertReq(env.employeeID, "2025-01-01", rawLine("BASIC", 600000)))
	require.NoError(t, err)

	_, err = env.svc.Upsert(ctx, testOrgID,
		upsertReq(env.employeeID, "2025-06-01", rawLine("BASIC", 720000)))
	require.NoError(t, err)

	// Both records are open-ended and overlap in August.
	asOf := time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC)
	winner, err := env.svc.ResolveActive(ctx, testOrgID, env.employeeID, asOf)

	require.NoError(t, err)
	assert.True(t, winner.CTCAnnual.Equal(decimal.NewFromInt(720000)), "got %s", winner.CTCAnnual)

	// Before the second record starts, the first one still wins.
	asOf = time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	winner, err = env.svc.ResolveActive(ctx, testOrgID, env.employeeID, asOf)

	require.NoError(t, err)
	assert.True(t, winner.CTCAnnual.Equal(decimal.NewFromInt(600000)), "got %s", winner.CTCAnnual)
}

func TestResolveActive_NoneActive(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.ResolveActive(context.Background(), testOrgID, env.employeeID,
		time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC))

	assert.ErrorIs(t, err, compensation.ErrNoActiveCompensation)
}

func TestIntakeDraft_UnmappedReturnedWithoutPersisting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.svc.IntakeDraft(ctx, testOrgID, compensation.IntakeDraftRequest{
		EmployeeID:    env.employeeID,
		EffectiveFrom: "2025-01-01",
		Draft: compensation.CompensationDraft{
			PaySchedule: "monthly",
			Currency:    "INR",
			Components:  []catalog.RawComponentLine{rawLine("BASIC", 600000), rawLine("GADGET_ALLOW", 12000)},
		},
	})

	require.NoError(t, err)
	assert.Nil(t, resp.Record)
	require.Len(t, resp.Unmapped, 1)
	assert.Equal(t, "GADGET_ALLOW", resp.Unmapped[0].RawCode)

	records, err := env.svc.ListByEmployee(ctx, testOrgID, env.employeeID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestIntakeDraft_CleanDraftPersists(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.svc.IntakeDraft(context.Background(), testOrgID, compensation.IntakeDraftRequest{
		EmployeeID:    env.employeeID,
		EffectiveFrom: "2025-01-01",
		Draft: compensation.CompensationDraft{
			PaySchedule: "monthly",
			Currency:    "INR",
			Components:  []catalog.RawComponentLine{rawLine("basic", 600000), rawLine("hra", 240000)},
		},
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Unmapped)
	require.NotNil(t, resp.Record)
	assert.True(t, resp.Record.CTCAnnual.Equal(decimal.NewFromInt(840000)), "got %s", resp.Record.CTCAnnual)
}

func TestUpsert_InvalidEffectiveWindow(t *testing.T) {
	env := newTestEnv(t)

	to := "2024-12-01"
	req := upsertReq(env.employeeID, "2025-01-01", rawLine("BASIC", 600000))
	req.EffectiveTo = &to
	_, err := env.svc.Upsert(context.Background(), testOrgID, req)

	assert.ErrorIs(t, err, compensation.ErrInvalidEffectiveWindow)
}
