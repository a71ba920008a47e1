package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/paylane-hq/payroll-backend-go/internal/domain/compensation"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

func (s *PayrollServiceImpl) EnsurePeriod(ctx context.Context, orgID string, req payroll.EnsurePeriodRequest) (payroll.PeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PeriodResponse{}, err
	}

	existing, err := s.payrollRepo.GetPeriodByKey(ctx, orgID, req.Month, req.Year)
	if err == nil {
		return payroll.MapPeriodResponse(existing), nil
	}
	if !errors.Is(err, payroll.ErrPeriodNotFound) {
		return payroll.PeriodResponse{}, err
	}

	created, err := s.payrollRepo.CreatePeriod(ctx, payroll.PayrollPeriod{
		OrgID:  orgID,
		Month:  req.Month,
		Year:   req.Year,
		Status: payroll.PeriodStatusDraft,
	})
	if errors.Is(err, payroll.ErrPeriodAlreadyExists) {
		// Lost a create race; the winner's row is the period.
		existing, err = s.payrollRepo.GetPeriodByKey(ctx, orgID, req.Month, req.Year)
		if err != nil {
			return payroll.PeriodResponse{}, err
		}
		return payroll.MapPeriodResponse(existing), nil
	}
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	return payroll.MapPeriodResponse(created), nil
}

func (s *PayrollServiceImpl) ListPeriods(ctx context.Context, orgID string) ([]payroll.PeriodResponse, error) {
	periods, err := s.payrollRepo.ListPeriods(ctx, orgID)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.PeriodResponse, 0, len(periods))
	for _, p := range periods {
		result = append(result, payroll.MapPeriodResponse(p))
	}
	return result, nil
}

func (s *PayrollServiceImpl) LockPeriod(ctx context.Context, orgID, periodID string) (payroll.PeriodResponse, error) {
	mu := s.periodMutex(periodID)
	mu.Lock()
	defer mu.Unlock()

	period, err := s.payrollRepo.GetPeriodByID(ctx, orgID, periodID)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	if period.Status != payroll.PeriodStatusDraft {
		return payroll.PeriodResponse{}, payroll.ErrPeriodNotDraft
	}

	// No run-count precondition: locking is what enables per-employee
	// finalize actions.
	now := time.Now().UTC()
	if err := s.payrollRepo.UpdatePeriodStatus(ctx, orgID, periodID, payroll.PeriodStatusLocked, &now); err != nil {
		return payroll.PeriodResponse{}, err
	}

	period.Status = payroll.PeriodStatusLocked
	period.LockAt = &now
	return payroll.MapPeriodResponse(period), nil
}

func (s *PayrollServiceImpl) ReopenPeriod(ctx context.Context, orgID, periodID string) (payroll.PeriodResponse, error) {
	mu := s.periodMutex(periodID)
	mu.Lock()
	defer mu.Unlock()

	period, err := s.payrollRepo.GetPeriodByID(ctx, orgID, periodID)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	if period.Status != payroll.PeriodStatusLocked {
		return payroll.PeriodResponse{}, payroll.ErrPeriodNotLocked
	}

	if err := s.payrollRepo.UpdatePeriodStatus(ctx, orgID, periodID, payroll.PeriodStatusDraft, nil); err != nil {
		return payroll.PeriodResponse{}, err
	}

	period.Status = payroll.PeriodStatusDraft
	period.LockAt = nil
	return payroll.MapPeriodResponse(period), nil
}

func (s *PayrollServiceImpl) PostPeriod(ctx context.Context, orgID, periodID string) (payroll.PeriodResponse, error) {
	mu := s.periodMutex(periodID)
	mu.Lock()
	defer mu.Unlock()

	period, err := s.payrollRepo.GetPeriodByID(ctx, orgID, periodID)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	if period.Status != payroll.PeriodStatusLocked {
		return payroll.PeriodResponse{}, payroll.ErrPeriodNotLocked
	}

	blockers, _, err := s.postBlockers(ctx, orgID, period)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	if len(blockers) > 0 {
		return payroll.PeriodResponse{}, &payroll.TransitionBlockedError{Transition: "post", Blockers: blockers}
	}

	if err := s.payrollRepo.UpdatePeriodStatus(ctx, orgID, periodID, payroll.PeriodStatusPosted, period.LockAt); err != nil {
		return payroll.PeriodResponse{}, err
	}

	period.Status = payroll.PeriodStatusPosted
	return payroll.MapPeriodResponse(period), nil
}

func (s *PayrollServiceImpl) MarkChallanGenerated(ctx context.Context, orgID, periodID string) (payroll.PeriodResponse, error) {
	mu := s.periodMutex(periodID)
	mu.Lock()
	defer mu.Unlock()

	period, err := s.payrollRepo.GetPeriodByID(ctx, orgID, periodID)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	if period.Status != payroll.PeriodStatusPosted {
		return payroll.PeriodResponse{}, payroll.ErrPeriodNotPosted
	}

	if err := s.payrollRepo.UpdatePeriodStatus(ctx, orgID, periodID, payroll.PeriodStatusChallanGenerated, period.LockAt); err != nil {
		return payroll.PeriodResponse{}, err
	}

	period.Status = payroll.PeriodStatusChallanGenerated
	return payroll.MapPeriodResponse(period), nil
}

// postBlockers walks the active roster: every employee with active
// compensation must hold a finalized run. Employees with no active
// compensation are excluded from the gate and returned separately as a
// data-quality warning.
func (s *PayrollServiceImpl) postBlockers(ctx context.Context, orgID string, period payroll.PayrollPeriod) ([]payroll.BlockedEmployee, []string, error) {
	roster, err := s.employeeRepo.ListActiveByOrgID(ctx, orgID)
	if err != nil {
		return nil, nil, err
	}

	var blockers []payroll.BlockedEmployee
	var noComp []string
	for _, emp := range roster {
		_, err := s.compensationSvc.ResolveActive(ctx, orgID, emp.ID, period.End())
		if errors.Is(err, compensation.ErrNoActiveCompensation) {
			noComp = append(noComp, emp.ID)
			continue
		}
		if err != nil {
			return nil, nil, err
		}

		run, err := s.payrollRepo.GetRun(ctx, orgID, period.ID, emp.ID)
		if errors.Is(err, payroll.ErrRunNotFound) {
			blockers = append(blockers, payroll.BlockedEmployee{EmployeeID: emp.ID, Status: payroll.RunStatusPending})
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		if run.Status != payroll.RunStatusFinalized {
			blockers = append(blockers, payroll.BlockedEmployee{EmployeeID: emp.ID, Status: run.Status})
		}
	}

	return blockers, noComp, nil
}

func (s *PayrollServiceImpl) GetPeriodSummary(ctx context.Context, orgID, periodID string) (payroll.PeriodSummaryResponse, error) {
	period, err := s.payrollRepo.GetPeriodByID(ctx, orgID, periodID)
	if err != nil {
		return payroll.PeriodSummaryResponse{}, err
	}

	runs, err := s.payrollRepo.ListRunsByPeriod(ctx, orgID, periodID)
	if err != nil {
		return payroll.PeriodSummaryResponse{}, err
	}

	blockers, noComp, err := s.postBlockers(ctx, orgID, period)
	if err != nil {
		return payroll.PeriodSummaryResponse{}, err
	}

	summary := payroll.PeriodSummaryResponse{
		Period:             payroll.MapPeriodResponse(period),
		TotalGrossEarnings: decimal.Zero,
		TotalDeductions:    decimal.Zero,
		TotalNetPay:        decimal.Zero,
		TotalEmployerCost:  decimal.Zero,
		TotalPFWages:       decimal.Zero,
		TotalESICWages:     decimal.Zero,
		TotalPTAmount:      decimal.Zero,
		TotalTDSAmount:     decimal.Zero,
		NoCompensationIDs:  noComp,
	}

	for _, run := range runs {
		summary.TotalGrossEarnings = summary.TotalGrossEarnings.Add(run.GrossEarnings)
		summary.TotalDeductions = summary.TotalDeductions.Add(run.TotalDeductions)
		summary.TotalNetPay = summary.TotalNetPay.Add(run.NetPay)
		summary.TotalEmployerCost = summary.TotalEmployerCost.Add(run.EmployerCost)
		summary.TotalPFWages = summary.TotalPFWages.Add(run.PFWages)
		summary.TotalESICWages = summary.TotalESICWages.Add(run.ESICWages)
		summary.TotalPTAmount = summary.TotalPTAmount.Add(run.PTAmount)
		summary.TotalTDSAmount = summary.TotalTDSAmount.Add(run.TDSAmount)

		switch run.Status {
		case payroll.RunStatusProcessed:
			summary.ProcessedCount++
		case payroll.RunStatusFinalized:
			summary.FinalizedCount++
		}
	}

	for _, b := range blockers {
		if b.Status == payroll.RunStatusPending {
			summary.PendingCount++
		}
	}
	summary.EligibleEmployees = len(runs) + summary.PendingCount

	return summary, nil
}
