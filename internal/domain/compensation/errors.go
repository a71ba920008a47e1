package compensation

import (
	"errors"
	"fmt"

	"github.com/paylane-hq/payroll-backend-go/internal/domain/catalog"
)

var (
	ErrRecordNotFound         = errors.New("compensation record not found")
	ErrNoActiveCompensation   = errors.New("no active compensation record for employee")
	ErrOverlappingRecords     = errors.New("compensation record overlaps an existing record")
	ErrUnmappedComponents     = errors.New("compensation contains unmapped component codes")
	ErrNonPositiveCTC         = errors.New("ctc_annual must be positive and is not derivable from components")
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrInvalidEffectiveWindow = errors.New("effective_to must not precede effective_from")
)

// UnmappedComponentsError carries the lines the canonicalizer could not map.
// The amounts stay out of every total until a human resolves the codes.
type UnmappedComponentsError struct {
	Lines []catalog.UnmappedComponentLine
}

func (e *UnmappedComponentsError) Error() string {
	codes := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		codes = append(codes, l.RawCode)
	}
	return fmt.Sprintf("compensation contains unmapped component codes: %v", codes)
}

func (e *UnmappedComponentsError) Is(target error) bool {
	return target == ErrUnmappedComponents
}
