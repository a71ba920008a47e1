package payroll

import (
	"context"
	"errors"
	"sync"

	"github.com/paylane-hq/payroll-backend-go/internal/domain/payroll"
	"golang.org/x/sync/errgroup"
)

// batchUnit is one employee's share of a bulk action. A unit failure is data
// for the BatchResult, never a reason to abort the batch.
type batchUnit func(ctx context.Context, period payroll.PayrollPeriod, employeeID string) error

func (s *PayrollServiceImpl) RecalcAll(ctx context.Context, orgID, periodID string, req payroll.BatchRequest) (payroll.BatchResult, error) {
	return s.runBatch(ctx, orgID, periodID, req, func(ctx context.Context, period payroll.PayrollPeriod, employeeID string) error {
		_, err := s.computeAndStoreRun(ctx, orgID, period, employeeID)
		return err
	})
}

func (s *PayrollServiceImpl) FinalizeAll(ctx context.Context, orgID, periodID string, req payroll.BatchRequest) (payroll.BatchResult, error) {
	return s.runBatch(ctx, orgID, periodID, req, func(ctx context.Context, period payroll.PayrollPeriod, employeeID string) error {
		return s.finalizeRun(ctx, orgID, period, employeeID)
	})
}

func (s *PayrollServiceImpl) UnfinalizeAll(ctx context.Context, orgID, periodID string, req payroll.BatchRequest) (payroll.BatchResult, error) {
	return s.runBatch(ctx, orgID, periodID, req, func(ctx context.Context, period payroll.PayrollPeriod, employeeID string) error {
		return s.unfinalizeRun(ctx, orgID, period, employeeID)
	})
}

// runBatch fans unit out over the selected employees with a bounded worker
// pool. The whole batch holds the period mutex so no status transition can
// interleave with it.
func (s *PayrollServiceImpl) runBatch(ctx context.Context, orgID, periodID string, req payroll.BatchRequest, unit batchUnit) (payroll.BatchResult, error) {
	mu := s.periodMutex(periodID)
	mu.Lock()
	defer mu.Unlock()

	period, err := s.payrollRepo.GetPeriodByID(ctx, orgID, periodID)
	if err != nil {
		return payroll.BatchResult{}, err
	}

	targets, err := s.batchTargets(ctx, orgID, req)
	if err != nil {
		return payroll.BatchResult{}, err
	}

	var (
		result   payroll.BatchResult
		resultMu sync.Mutex
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchWorkers)

	for _, employeeID := range targets {
		employeeID := employeeID
		g.Go(func() error {
			if gctx.Err() != nil {
				resultMu.Lock()
				result.Skipped++
				resultMu.Unlock()
				return nil
			}

			err := unit(gctx, period, employeeID)

			resultMu.Lock()
			defer resultMu.Unlock()
			switch {
			case err == nil:
				result.Succeeded++
			case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
				result.Skipped++
			default:
				result.Failed++
				result.Errors = append(result.Errors, payroll.BatchError{
					EmployeeID: employeeID,
					Message:    err.Error(),
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}
	if ctx.Err() != nil {
		return result, payroll.ErrBatchCancelled
	}

	return result, nil
}

func (s *PayrollServiceImpl) batchTargets(ctx context.Context, orgID string, req payroll.BatchRequest) ([]string, error) {
	if len(req.EmployeeIDs) > 0 {
		// Dedupe while keeping request order.
		seen := make(map[string]struct{}, len(req.EmployeeIDs))
		targets := make([]string, 0, len(req.EmployeeIDs))
		for _, id := range req.EmployeeIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			targets = append(targets, id)
		}
		return targets, nil
	}

	roster, err := s.employeeRepo.ListActiveByOrgID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	targets := make([]string, 0, len(roster))
	for _, emp := range roster {
		targets = append(targets, emp.ID)
	}
	return targets, nil
}
