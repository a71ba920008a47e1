package payroll

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPeriodNotFound       = errors.New("payroll period not found")
	ErrPeriodAlreadyExists  = errors.New("payroll period already exists for this month")
	ErrRunNotFound          = errors.New("payroll run not found")
	ErrRunLocked            = errors.New("payroll run is finalized; unfinalize before recomputing")
	ErrRunNotProcessed      = errors.New("payroll run is not in processed status")
	ErrRunNotFinalized      = errors.New("payroll run is not finalized")
	ErrPeriodNotDraft       = errors.New("payroll period is not in draft status")
	ErrPeriodNotLocked      = errors.New("payroll period is not locked")
	ErrPeriodNotPosted      = errors.New("payroll period is not posted")
	ErrPeriodAlreadyPosted  = errors.New("payroll period is already posted")
	ErrFilingNotFound       = errors.New("statutory filing not found")
	ErrFilingAlreadyFiled   = errors.New("statutory filing is already filed")
	ErrFilingPeriodNotReady = errors.New("statutory filings require a locked or posted period")
	ErrInvalidFilingType    = errors.New("invalid filing type")
	ErrEvaluatorTimeout     = errors.New("statutory rule evaluator timed out")
	ErrBatchCancelled       = errors.New("batch operation cancelled")
)

// TransitionBlockedError rejects a period transition and names every
// employee whose run blocks it.
type TransitionBlockedError struct {
	Transition string
	Blockers   []BlockedEmployee
}

type BlockedEmployee struct {
	EmployeeID string    `json:"employee_id"`
	Status     RunStatus `json:"status"`
}

func (e *TransitionBlockedError) Error() string {
	ids := make([]string, 0, len(e.Blockers))
	for _, b := range e.Blockers {
		ids = append(ids, fmt.Sprintf("%s (%s)", b.EmployeeID, b.Status))
	}
	return fmt.Sprintf("cannot %s period: runs not finalized for employees: %s",
		e.Transition, strings.Join(ids, ", "))
}

// EvaluatorError wraps a failure from the external statutory rule evaluator.
// Never retried; reported as a per-employee failure.
type EvaluatorError struct {
	EmployeeID string
	Err        error
}

func (e *EvaluatorError) Error() string {
	return fmt.Sprintf("statutory evaluation failed for employee %s: %v", e.EmployeeID, e.Err)
}

func (e *EvaluatorError) Unwrap() error {
	return e.Err
}
