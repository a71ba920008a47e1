package catalog

import (
	"context"
	"testing"

	"github.com/paylane-hq/payroll-backend-go/internal/domain/catalog"
	"github.com/paylane-hq/payroll-backend-go/internal/pkg/validator"
	"github.com/paylane-hq/payroll-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrgID = "org-1"

func newService() (catalog.ComponentService, *memory.ComponentRepository) {
	repo := memory.NewComponentRepository()
	return NewComponentService(repo), repo
}

func createReq(code string) catalog.CreateComponentRequest {
	return catalog.CreateComponentRequest{
		Code:       code,
		Name:       "Component " + code,
		Type:       "earning",
		CalcMethod: "fixed_amount",
		SortOrder:  1,
	}
}

func TestCreateComponent_Defaults(t *testing.T) {
	svc, _ := newService()

	created, err := svc.CreateComponent(context.Background(), testOrgID, createReq("BASIC"))
	require.NoError(t, err)

	assert.Equal(t, "BASIC", created.Code)
	assert.True(t, created.Active)
	assert.False(t, created.Taxable)
	assert.False(t, created.PFWageParticipates)
	assert.NotEmpty(t, created.ID)
}

func TestCreateComponent_RejectsBadCode(t *testing.T) {
	svc, _ := newService()

	_, err := svc.CreateComponent(context.Background(), testOrgID, createReq("basic salary"))

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "code", errs[0].Field)
}

func TestCreateComponent_DuplicateCode(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.CreateComponent(ctx, testOrgID, createReq("BASIC"))
	require.NoError(t, err)

	_, err = svc.CreateComponent(ctx, testOrgID, createReq("BASIC"))
	assert.ErrorIs(t, err, catalog.ErrComponentCodeExists)
}

func TestListComponents_ActiveFilter(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	_, err := svc.CreateComponent(ctx, testOrgID, createReq("BASIC"))
	require.NoError(t, err)
	_, err = svc.CreateComponent(ctx, testOrgID, createReq("HRA"))
	require.NoError(t, err)
	require.NoError(t, repo.Deactivate(ctx, testOrgID, "HRA"))

	active, err := svc.ListComponents(ctx, testOrgID, true)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := svc.ListComponents(ctx, testOrgID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateComponent_PartialUpdate(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.CreateComponent(ctx, testOrgID, createReq("BASIC"))
	require.NoError(t, err)

	name := "Base Pay"
	pf := true
	err = svc.UpdateComponent(ctx, testOrgID, catalog.UpdateComponentRequest{
		Code:               "BASIC",
		Name:               &name,
		PFWageParticipates: &pf,
	})
	require.NoError(t, err)

	got, err := svc.GetComponent(ctx, testOrgID, "BASIC")
	require.NoError(t, err)
	assert.Equal(t, "Base Pay", got.Name)
	assert.True(t, got.PFWageParticipates)
	// Untouched fields keep their values.
	assert.Equal(t, "earning", got.Type)
	assert.True(t, got.Active)
}

func TestDeleteComponent_UnreferencedHardDeletes(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.CreateComponent(ctx, testOrgID, createReq("CONV"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteComponent(ctx, testOrgID, "CONV"))

	_, err = svc.GetComponent(ctx, testOrgID, "CONV")
	assert.ErrorIs(t, err, catalog.ErrComponentNotFound)
}

func TestDeleteComponent_ReferencedDeactivates(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	_, err := svc.CreateComponent(ctx, testOrgID, createReq("BASIC"))
	require.NoError(t, err)
	repo.MarkReferenced(testOrgID, "BASIC")

	require.NoError(t, svc.DeleteComponent(ctx, testOrgID, "BASIC"))

	// Historical compensations and runs still resolve the retired code.
	got, err := svc.GetComponent(ctx, testOrgID, "BASIC")
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestSeedDefaults_SkipsExistingCodes(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	// A pre-existing BASIC survives seeding with its own configuration.
	custom := createReq("BASIC")
	custom.Name = "Custom Basic"
	_, err := svc.CreateComponent(ctx, testOrgID, custom)
	require.NoError(t, err)

	seeded, err := svc.SeedDefaults(ctx, testOrgID)
	require.NoError(t, err)
	for _, c := range seeded {
		assert.NotEqual(t, "BASIC", c.Code)
	}

	got, err := svc.GetComponent(ctx, testOrgID, "BASIC")
	require.NoError(t, err)
	assert.Equal(t, "Custom Basic", got.Name)

	// Statutory codes the evaluator emits are all present.
	for _, code := range []string{"PF", "ESIC", "PT", "TDS", "PF_EMPLOYER", "ESIC_EMPLOYER"} {
		_, err := svc.GetComponent(ctx, testOrgID, code)
		assert.NoError(t, err, code)
	}

	// Seeding again is a no-op.
	again, err := svc.SeedDefaults(ctx, testOrgID)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestCanonicalize_ResolvesAgainstFullCatalog(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	_, err := svc.CreateComponent(ctx, testOrgID, createReq("BASIC"))
	require.NoError(t, err)
	require.NoError(t, repo.Deactivate(ctx, testOrgID, "BASIC"))

	// Retired codes still canonicalize; unknown codes surface as unmapped.
	resp, err := svc.Canonicalize(ctx, testOrgID, catalog.CanonicalizeRequest{
		Components: []catalog.RawComponentLine{
			line("basic", 40000),
			line("MYSTERY", 500),
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Resolved, 1)
	assert.Equal(t, "BASIC", resp.Resolved[0].Code)
	require.Len(t, resp.Unmapped, 1)
	assert.Equal(t, "MYSTERY", resp.Unmapped[0].RawCode)
}
