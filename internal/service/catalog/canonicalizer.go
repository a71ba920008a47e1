package catalog

import (
	"strings"

	"github.com/paylane-hq/payroll-backend-go/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// componentAlias maps a free-text spelling onto a canonical catalog code.
// The table is static and ordered: the first registered alias for a spelling
// wins, which keeps resolution deterministic. An alias only applies when its
// target code actually exists in the org's catalog.
type componentAlias struct {
	Alias  string
	Target string
}

var componentAliases = []componentAlias{
	{"basic", "BASIC"},
	{"basic salary", "BASIC"},
	{"hra", "HRA"},
	{"house rent", "HRA"},
	{"house rent allowance", "HRA"},
	{"da", "DA"},
	{"dearness", "DA"},
	{"dearness allowance", "DA"},
	{"conveyance", "CONV"},
	{"conv", "CONV"},
	{"transport", "CONV"},
	{"special", "SPECIAL"},
	{"special allowance", "SPECIAL"},
	{"lta", "LTA"},
	{"leave travel", "LTA"},
	{"medical", "MED"},
	{"medical allowance", "MED"},
	{"bonus", "BONUS"},
	{"pf", "PF"},
	{"epf", "PF"},
	{"provident fund", "PF"},
	{"esic", "ESIC"},
	{"esi", "ESIC"},
	{"pt", "PT"},
	{"ptax", "PT"},
	{"professional tax", "PT"},
	{"tds", "TDS"},
	{"income tax", "TDS"},
	{"pf employer", "PF_EMPLOYER"},
	{"esic employer", "ESIC_EMPLOYER"},
	{"gratuity", "GRATUITY"},
}

// Canonicalize maps raw component lines onto the catalog. Match priority per
// line: exact code, then case-insensitive code, then alias; first success
// wins. Matched amounts are coerced to the component type's sign convention
// (deductions negative, everything else non-negative), duplicates collapse by
// summation, and unmatched lines are reported instead of silently dropped.
func Canonicalize(raw []catalog.RawComponentLine, components []catalog.PayComponent) ([]catalog.ResolvedComponentLine, []catalog.UnmappedComponentLine) {
	byCode := make(map[string]catalog.PayComponent, len(components))
	byFold := make(map[string]string, len(components))
	for _, c := range components {
		byCode[c.Code] = c
		fold := strings.ToLower(c.Code)
		if _, ok := byFold[fold]; !ok {
			byFold[fold] = c.Code
		}
	}

	aliasTargets := make(map[string]string, len(componentAliases))
	for _, a := range componentAliases {
		if _, exists := byCode[a.Target]; !exists {
			continue
		}
		if _, taken := aliasTargets[a.Alias]; taken {
			continue
		}
		aliasTargets[a.Alias] = a.Target
	}

	var resolved []catalog.ResolvedComponentLine
	var unmapped []catalog.UnmappedComponentLine
	index := make(map[string]int)

	for _, line := range raw {
		code, ok := match(line.Code, byCode, byFold, aliasTargets)
		if !ok {
			unmapped = append(unmapped, catalog.UnmappedComponentLine{
				RawCode: line.Code,
				Amount:  line.Amount,
			})
			continue
		}

		amount := coerceSign(line.Amount, byCode[code])
		if i, seen := index[code]; seen {
			resolved[i].Amount = resolved[i].Amount.Add(amount)
			continue
		}
		index[code] = len(resolved)
		resolved = append(resolved, catalog.ResolvedComponentLine{Code: code, Amount: amount})
	}

	return resolved, unmapped
}

func match(rawCode string, byCode map[string]catalog.PayComponent, byFold, aliasTargets map[string]string) (string, bool) {
	if _, ok := byCode[rawCode]; ok {
		return rawCode, true
	}
	fold := strings.ToLower(strings.TrimSpace(rawCode))
	if code, ok := byFold[fold]; ok {
		return code, true
	}
	if code, ok := aliasTargets[fold]; ok {
		return code, true
	}
	return "", false
}

// coerceSign flips, never rejects: free-text and AI input routinely get the
// convention wrong.
func coerceSign(amount decimal.Decimal, component catalog.PayComponent) decimal.Decimal {
	if component.IsDeduction() {
		if amount.IsPositive() {
			return amount.Neg()
		}
		return amount
	}
	if amount.IsNegative() {
		return amount.Neg()
	}
	return amount
}
