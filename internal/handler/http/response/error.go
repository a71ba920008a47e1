package response

import (
	"errors"
	"net/http"

	"github.com/paylane-hq/payroll-backend-go/internal/domain/catalog"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/compensation"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/employee"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/payroll"
	"github.com/paylane-hq/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Unmapped component lines carry the raw codes back to the caller so a
	// human can fix the catalog or the input.
	var unmappedErr *compensation.UnmappedComponentsError
	if errors.As(err, &unmappedErr) {
		UnprocessableEntity(w, unmappedErr.Error(), unmappedCodes(unmappedErr))
		return
	}

	// Blocked period transitions enumerate the offending employees.
	var blockedErr *payroll.TransitionBlockedError
	if errors.As(err, &blockedErr) {
		ConflictWithDetails(w, blockedErr.Error(), nil, blockedErr.Blockers)
		return
	}

	switch {
	// Catalog domain errors
	case errors.Is(err, catalog.ErrComponentNotFound):
		NotFound(w, "Pay component not found")
	case errors.Is(err, catalog.ErrComponentCodeExists):
		Conflict(w, "Pay component code already exists")
	case errors.Is(err, catalog.ErrCodeImmutable):
		Conflict(w, "Pay component code cannot be changed")
	case errors.Is(err, catalog.ErrInvalidType),
		errors.Is(err, catalog.ErrInvalidCalcMethod):
		BadRequest(w, err.Error(), nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")

	// Compensation domain errors
	case errors.Is(err, compensation.ErrRecordNotFound):
		NotFound(w, "Compensation record not found")
	case errors.Is(err, compensation.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, compensation.ErrNoActiveCompensation):
		NotFound(w, "No active compensation record for employee")
	case errors.Is(err, compensation.ErrOverlappingRecords):
		Conflict(w, "Compensation record overlaps an existing record")
	case errors.Is(err, compensation.ErrNonPositiveCTC):
		BadRequest(w, "CTC must be positive", nil)
	case errors.Is(err, compensation.ErrInvalidEffectiveWindow):
		BadRequest(w, "effective_to must not precede effective_from", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPeriodNotFound):
		NotFound(w, "Payroll period not found")
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrRunLocked):
		Conflict(w, "Payroll run is finalized; unfinalize before recomputing")
	case errors.Is(err, payroll.ErrRunNotProcessed):
		Conflict(w, "Payroll run is not in processed status")
	case errors.Is(err, payroll.ErrRunNotFinalized):
		Conflict(w, "Payroll run is not finalized")
	case errors.Is(err, payroll.ErrPeriodNotDraft):
		Conflict(w, "Payroll period is not in draft status")
	case errors.Is(err, payroll.ErrPeriodNotLocked):
		Conflict(w, "Payroll period is not locked")
	case errors.Is(err, payroll.ErrPeriodNotPosted):
		Conflict(w, "Payroll period is not posted")
	case errors.Is(err, payroll.ErrPeriodAlreadyPosted):
		Conflict(w, "Payroll period is already posted")
	case errors.Is(err, payroll.ErrFilingNotFound):
		NotFound(w, "Statutory filing not found")
	case errors.Is(err, payroll.ErrFilingAlreadyFiled):
		Conflict(w, "Statutory filing is already filed")
	case errors.Is(err, payroll.ErrFilingPeriodNotReady):
		Conflict(w, "Statutory filings require a locked or posted period")
	case errors.Is(err, payroll.ErrEvaluatorTimeout):
		GatewayTimeout(w, "Statutory rule evaluator timed out")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

func unmappedCodes(err *compensation.UnmappedComponentsError) map[string]string {
	details := make(map[string]string, len(err.Lines))
	for _, line := range err.Lines {
		details[line.RawCode] = line.Amount.String()
	}
	return details
}
