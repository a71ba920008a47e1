package payroll

import (
	"context"
	"errors"
	"sort"

	"github.com/paylane-hq/payroll-backend-go/internal/domain/catalog"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/compensation"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/payroll"
	catalogService "github.com/paylane-hq/payroll-backend-go/internal/service/catalog"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

func (s *PayrollServiceImpl) ComputeRun(ctx context.Context, orgID, periodID, employeeID string) (payroll.RunResponse, error) {
	period, err := s.payrollRepo.GetPeriodByID(ctx, orgID, periodID)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	run, err := s.computeAndStoreRun(ctx, orgID, period, employeeID)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	return payroll.MapRunResponse(run), nil
}

// computeAndStoreRun performs one employee's calculation: resolve
// compensation as of the period's last day, canonicalize against the live
// catalog, prorate by attendance, apply the statutory evaluator, snapshot and
// upsert. A finalized run rejects recomputation until unfinalized.
func (s *PayrollServiceImpl) computeAndStoreRun(ctx context.Context, orgID string, period payroll.PayrollPeriod, employeeID string) (payroll.PayrollRun, error) {
	if period.Status == payroll.PeriodStatusPosted || period.Status == payroll.PeriodStatusChallanGenerated {
		return payroll.PayrollRun{}, payroll.ErrPeriodAlreadyPosted
	}

	existing, err := s.payrollRepo.GetRun(ctx, orgID, period.ID, employeeID)
	if err == nil && existing.Status == payroll.RunStatusFinalized {
		return payroll.PayrollRun{}, payroll.ErrRunLocked
	}
	if err != nil && !errors.Is(err, payroll.ErrRunNotFound) {
		return payroll.PayrollRun{}, err
	}

	comp, err := s.compensationSvc.ResolveActive(ctx, orgID, employeeID, period.End())
	if err != nil {
		// Includes ErrNoActiveCompensation: the employee is surfaced as
		// "no comp" and excluded from calculation, never defaulted to zero.
		return payroll.PayrollRun{}, err
	}

	components, err := s.componentRepo.ListByOrgID(ctx, orgID, false)
	if err != nil {
		return payroll.PayrollRun{}, err
	}
	byCode := make(map[string]catalog.PayComponent, len(components))
	for _, c := range components {
		byCode[c.Code] = c
	}

	raw := make([]catalog.RawComponentLine, 0, len(comp.Components))
	for _, line := range comp.Components {
		raw = append(raw, catalog.RawComponentLine{Code: line.ComponentCode, Amount: line.AnnualAmount})
	}
	resolved, unmapped := catalogService.Canonicalize(raw, components)
	if len(unmapped) > 0 {
		return payroll.PayrollRun{}, &compensation.UnmappedComponentsError{Lines: unmapped}
	}

	summary, err := s.attendanceSvc.Summarize(ctx, orgID, employeeID, period.Start(), period.End())
	if err != nil {
		return payroll.PayrollRun{}, err
	}

	// Snapshot order follows the catalog's sort order.
	sort.SliceStable(resolved, func(i, j int) bool {
		a, b := byCode[resolved[i].Code], byCode[resolved[j].Code]
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.Code < b.Code
	})

	var snapshot []payroll.SnapshotLine
	pfBase := decimal.Zero
	esicBase := decimal.Zero

	for _, line := range resolved {
		component := byCode[line.Code]
		amount := line.Amount.Div(monthsPerYear)

		if component.Type == catalog.ComponentTypeEarning && !component.NonProrated && summary.WorkingDays.IsPositive() {
			amount = amount.Mul(summary.PresentDays).Div(summary.WorkingDays)
		}
		amount = amount.Round(2)

		snapshot = append(snapshot, payroll.SnapshotLine{
			Code:   component.Code,
			Name:   component.Name,
			Type:   component.Type,
			Amount: amount,
		})

		if component.Type == catalog.ComponentTypeEarning {
			if component.PFWageParticipates {
				pfBase = pfBase.Add(amount)
			}
			if component.ESICWageParticipates {
				esicBase = esicBase.Add(amount)
			}
		}
	}

	gross := sumByType(snapshot, catalog.ComponentTypeEarning)

	result, err := s.evaluate(ctx, payroll.EvaluationInput{
		OrgID:         orgID,
		EmployeeID:    employeeID,
		Month:         period.Month,
		Year:          period.Year,
		GrossLines:    snapshot,
		GrossEarnings: gross,
		PFWageBase:    pfBase,
		ESICWageBase:  esicBase,
	})
	if err != nil {
		return payroll.PayrollRun{}, err
	}

	for _, line := range result.DeductionLines {
		line.Type = catalog.ComponentTypeDeduction
		if line.Amount.IsPositive() {
			line.Amount = line.Amount.Neg()
		}
		snapshot = append(snapshot, payroll.SnapshotLine{Code: line.Code, Name: line.Name, Type: line.Type, Amount: line.Amount.Round(2)})
	}
	for _, line := range result.EmployerCostLines {
		line.Type = catalog.ComponentTypeEmployerCost
		if line.Amount.IsNegative() {
			line.Amount = line.Amount.Neg()
		}
		snapshot = append(snapshot, payroll.SnapshotLine{Code: line.Code, Name: line.Name, Type: line.Type, Amount: line.Amount.Round(2)})
	}

	totalDeductions := sumByType(snapshot, catalog.ComponentTypeDeduction).Neg()
	employerLines := sumByType(snapshot, catalog.ComponentTypeEmployerCost)

	run := payroll.PayrollRun{
		ID:                existing.ID,
		PayrollPeriodID:   period.ID,
		OrgID:             orgID,
		EmployeeID:        employeeID,
		Status:            payroll.RunStatusProcessed,
		Snapshot:          snapshot,
		GrossEarnings:     gross,
		TotalDeductions:   totalDeductions,
		NetPay:            gross.Sub(totalDeductions),
		EmployerCost:      gross.Add(employerLines),
		PFWages:           result.PFWages,
		ESICWages:         result.ESICWages,
		PTAmount:          result.PTAmount,
		TDSAmount:         result.TDSAmount,
		AttendanceSummary: summary,
	}

	return s.payrollRepo.UpsertRun(ctx, run)
}

// evaluate calls the external rule evaluator under a bounded timeout. The
// evaluator gets exactly one attempt; timeouts and failures are hard
// per-employee failures.
func (s *PayrollServiceImpl) evaluate(ctx context.Context, input payroll.EvaluationInput) (payroll.EvaluationResult, error) {
	evalCtx := ctx
	if s.evaluatorTimeout > 0 {
		var cancel context.CancelFunc
		evalCtx, cancel = context.WithTimeout(ctx, s.evaluatorTimeout)
		defer cancel()
	}

	type evalOutcome struct {
		result payroll.EvaluationResult
		err    error
	}
	outcome := make(chan evalOutcome, 1)
	go func() {
		result, err := s.evaluator.Evaluate(evalCtx, input)
		outcome <- evalOutcome{result: result, err: err}
	}()

	select {
	case out := <-outcome:
		if out.err != nil {
			if errors.Is(out.err, context.DeadlineExceeded) {
				return payroll.EvaluationResult{}, &payroll.EvaluatorError{EmployeeID: input.EmployeeID, Err: payroll.ErrEvaluatorTimeout}
			}
			return payroll.EvaluationResult{}, &payroll.EvaluatorError{EmployeeID: input.EmployeeID, Err: out.err}
		}
		return out.result, nil
	case <-evalCtx.Done():
		if errors.Is(evalCtx.Err(), context.DeadlineExceeded) {
			return payroll.EvaluationResult{}, &payroll.EvaluatorError{EmployeeID: input.EmployeeID, Err: payroll.ErrEvaluatorTimeout}
		}
		return payroll.EvaluationResult{}, &payroll.EvaluatorError{EmployeeID: input.EmployeeID, Err: evalCtx.Err()}
	}
}

func (s *PayrollServiceImpl) GetRun(ctx context.Context, orgID, periodID, employeeID string) (payroll.RunResponse, error) {
	run, err := s.payrollRepo.GetRun(ctx, orgID, periodID, employeeID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	return payroll.MapRunResponse(run), nil
}

func (s *PayrollServiceImpl) ListRuns(ctx context.Context, orgID, periodID string) ([]payroll.RunResponse, error) {
	runs, err := s.payrollRepo.ListRunsByPeriod(ctx, orgID, periodID)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.RunResponse, 0, len(runs))
	for _, r := range runs {
		result = append(result, payroll.MapRunResponse(r))
	}
	return result, nil
}

func (s *PayrollServiceImpl) FinalizeRun(ctx context.Context, orgID, periodID, employeeID string) error {
	period, err := s.payrollRepo.GetPeriodByID(ctx, orgID, periodID)
	if err != nil {
		return err
	}
	return s.finalizeRun(ctx, orgID, period, employeeID)
}

// finalizeRun advances processed -> finalized. Locking the period is what
// enables finalization in the first place.
func (s *PayrollServiceImpl) finalizeRun(ctx context.Context, orgID string, period payroll.PayrollPeriod, employeeID string) error {
	if period.Status != payroll.PeriodStatusLocked {
		return payroll.ErrPeriodNotLocked
	}

	run, err := s.payrollRepo.GetRun(ctx, orgID, period.ID, employeeID)
	if err != nil {
		return err
	}
	if run.Status != payroll.RunStatusProcessed {
		return payroll.ErrRunNotProcessed
	}

	return s.payrollRepo.UpdateRunStatus(ctx, orgID, period.ID, employeeID, payroll.RunStatusProcessed, payroll.RunStatusFinalized)
}

func (s *PayrollServiceImpl) UnfinalizeRun(ctx context.Context, orgID, periodID, employeeID string) error {
	period, err := s.payrollRepo.GetPeriodByID(ctx, orgID, periodID)
	if err != nil {
		return err
	}
	return s.unfinalizeRun(ctx, orgID, period, employeeID)
}

func (s *PayrollServiceImpl) unfinalizeRun(ctx context.Context, orgID string, period payroll.PayrollPeriod, employeeID string) error {
	if period.Status == payroll.PeriodStatusPosted || period.Status == payroll.PeriodStatusChallanGenerated {
		return payroll.ErrPeriodAlreadyPosted
	}

	run, err := s.payrollRepo.GetRun(ctx, orgID, period.ID, employeeID)
	if err != nil {
		return err
	}
	if run.Status != payroll.RunStatusFinalized {
		return payroll.ErrRunNotFinalized
	}

	return s.payrollRepo.UpdateRunStatus(ctx, orgID, period.ID, employeeID, payroll.RunStatusFinalized, payroll.RunStatusProcessed)
}

func sumByType(lines []payroll.SnapshotLine, t catalog.ComponentType) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		if line.Type == t {
			total = total.Add(line.Amount)
		}
	}
	return total
}
