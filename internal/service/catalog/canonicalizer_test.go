package catalog

import (
	"testing"

	"github.com/paylane-hq/payroll-backend-go/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []catalog.PayComponent {
	return []catalog.PayComponent{
		{Code: "BASIC", Name: "Basic Salary", Type: catalog.ComponentTypeEarning, SortOrder: 1, Active: true},
		{Code: "HRA", Name: "House Rent Allowance", Type: catalog.ComponentTypeEarning, SortOrder: 2, Active: true},
		{Code: "CONV", Name: "Conveyance", Type: catalog.ComponentTypeEarning, SortOrder: 3, Active: true},
		{Code: "PF", Name: "Provident Fund", Type: catalog.ComponentTypeDeduction, SortOrder: 10, Active: true},
		{Code: "PF_EMPLOYER", Name: "PF Employer Contribution", Type: catalog.ComponentTypeEmployerCost, SortOrder: 20, Active: true},
	}
}

func line(code string, amount int64) catalog.RawComponentLine {
	return catalog.RawComponentLine{Code: code, Amount: decimal.NewFromInt(amount)}
}

func TestCanonicalize_MatchPriorityAndSigns(t *testing.T) {
	raw := []catalog.RawComponentLine{
		line("basic", 50000), // alias match
		line("HRA", -15000),  // exact match, earning sign flipped positive
		line("pf", 6000),     // case-insensitive match, deduction forced negative
	}

	resolved, unmapped := Canonicalize(raw, testCatalog())

	require.Empty(t, unmapped)
	require.Len(t, resolved, 3)
	assert.Equal(t, "BASIC", resolved[0].Code)
	assert.True(t, resolved[0].Amount.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, "HRA", resolved[1].Code)
	assert.True(t, resolved[1].Amount.Equal(decimal.NewFromInt(15000)))
	assert.Equal(t, "PF", resolved[2].Code)
	assert.True(t, resolved[2].Amount.Equal(decimal.NewFromInt(-6000)))
}

func TestCanonicalize_UnmappedReported(t *testing.T) {
	raw := []catalog.RawComponentLine{
		line("BASIC", 40000),
		line("MYSTERY_ALLOWANCE", 1200),
	}

	resolved, unmapped := Canonicalize(raw, testCatalog())

	require.Len(t, resolved, 1)
	require.Len(t, unmapped, 1)
	assert.Equal(t, "MYSTERY_ALLOWANCE", unmapped[0].RawCode)
	assert.True(t, unmapped[0].Amount.Equal(decimal.NewFromInt(1200)))
}

func TestCanonicalize_DuplicateCollapse(t *testing.T) {
	raw := []catalog.RawComponentLine{
		line("HRA", 10000),
		line("hra", 5000),
		line("house rent allowance", 2500),
	}

	resolved, unmapped := Canonicalize(raw, testCatalog())

	require.Empty(t, unmapped)
	require.Len(t, resolved, 1)
	assert.Equal(t, "HRA", resolved[0].Code)
	assert.True(t, resolved[0].Amount.Equal(decimal.NewFromInt(17500)))
}

func TestCanonicalize_AliasRequiresCatalogTarget(t *testing.T) {
	// "esic" has a registered alias, but the catalog has no ESIC component.
	raw := []catalog.RawComponentLine{line("esic", 500)}

	resolved, unmapped := Canonicalize(raw, testCatalog())

	assert.Empty(t, resolved)
	require.Len(t, unmapped, 1)
	assert.Equal(t, "esic", unmapped[0].RawCode)
}

func TestCanonicalize_EmptyInput(t *testing.T) {
	resolved, unmapped := Canonicalize(nil, testCatalog())
	assert.Empty(t, resolved)
	assert.Empty(t, unmapped)
}

func TestCanonicalize_Idempotent(t *testing.T) {
	raw := []catalog.RawComponentLine{
		line("basic", 50000),
		line("HRA", -15000),
		line("pf", 6000),
		line("pf", 400),
	}

	first, unmapped := Canonicalize(raw, testCatalog())
	require.Empty(t, unmapped)

	again := make([]catalog.RawComponentLine, 0, len(first))
	for _, r := range first {
		again = append(again, catalog.RawComponentLine{Code: r.Code, Amount: r.Amount})
	}

	second, unmapped := Canonicalize(again, testCatalog())
	require.Empty(t, unmapped)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Code, second[i].Code)
		assert.True(t, first[i].Amount.Equal(second[i].Amount),
			"amount drift for %s: %s vs %s", first[i].Code, first[i].Amount, second[i].Amount)
	}
}

func TestCanonicalize_EmployerCostForcedNonNegative(t *testing.T) {
	raw := []catalog.RawComponentLine{line("PF_EMPLOYER", -7200)}

	resolved, unmapped := Canonicalize(raw, testCatalog())

	require.Empty(t, unmapped)
	require.Len(t, resolved, 1)
	assert.True(t, resolved[0].Amount.Equal(decimal.NewFromInt(7200)))
}
