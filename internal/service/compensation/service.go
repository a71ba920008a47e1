package compensation

import (
	"context"
	"fmt"
	"time"

	"github.com/paylane-hq/payroll-backend-go/internal/domain/catalog"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/compensation"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/employee"
	catalogService "github.com/paylane-hq/payroll-backend-go/internal/service/catalog"
	"github.com/shopspring/decimal"
)

type CompensationServiceImpl struct {
	compensationRepo compensation.CompensationRepository
	componentRepo    catalog.ComponentRepository
	employeeRepo     employee.EmployeeRepository
}

func NewCompensationService(
	compensationRepo compensation.CompensationRepository,
	componentRepo catalog.ComponentRepository,
	employeeRepo employee.EmployeeRepository,
) compensation.CompensationService {
	return &CompensationServiceImpl{
		compensationRepo: compensationRepo,
		componentRepo:    componentRepo,
		employeeRepo:     employeeRepo,
	}
}

func (s *CompensationServiceImpl) Upsert(ctx context.Context, orgID string, req compensation.UpsertCompensationRequest) (compensation.CompensationResponse, error) {
	if err := req.Validate(); err != nil {
		return compensation.CompensationResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, orgID, req.EmployeeID); err != nil {
		return compensation.CompensationResponse{}, err
	}

	effectiveFrom, _ := time.Parse("2006-01-02", req.EffectiveFrom)
	var effectiveTo *time.Time
	if req.EffectiveTo != nil {
		parsed, _ := time.Parse("2006-01-02", *req.EffectiveTo)
		if parsed.Before(effectiveFrom) {
			return compensation.CompensationResponse{}, compensation.ErrInvalidEffectiveWindow
		}
		effectiveTo = &parsed
	}

	// Previously-active codes must keep resolving, so the full catalog is
	// loaded for canonicalization.
	components, err := s.componentRepo.ListByOrgID(ctx, orgID, false)
	if err != nil {
		return compensation.CompensationResponse{}, err
	}

	resolved, unmapped := catalogService.Canonicalize(req.Components, components)
	if len(unmapped) > 0 {
		return compensation.CompensationResponse{}, &compensation.UnmappedComponentsError{Lines: unmapped}
	}

	ctcAnnual := req.CTCAnnual
	if ctcAnnual.IsZero() {
		ctcAnnual = deriveCTC(resolved, components)
	}
	if !ctcAnnual.IsPositive() {
		return compensation.CompensationResponse{}, compensation.ErrNonPositiveCTC
	}

	record := compensation.CompensationRecord{
		ID:            req.ID,
		OrgID:         orgID,
		EmployeeID:    req.EmployeeID,
		EffectiveFrom: effectiveFrom,
		EffectiveTo:   effectiveTo,
		CTCAnnual:     ctcAnnual,
		PaySchedule:   compensation.PaySchedule(req.PaySchedule),
		Currency:      req.Currency,
		Components:    toComponentLines(resolved),
	}

	overlapping, err := s.findOverlaps(ctx, orgID, record)
	if err != nil {
		return compensation.CompensationResponse{}, err
	}

	var overlapWarning *string
	if len(overlapping) > 0 {
		if req.Strict {
			return compensation.CompensationResponse{}, compensation.ErrOverlappingRecords
		}
		if !req.SupersedePrior {
			msg := fmt.Sprintf("effective interval overlaps %d existing record(s); latest effective_from wins at resolution", len(overlapping))
			overlapWarning = &msg
		}
	}

	// Superseding closes prior records and then writes the new one; a
	// failure midway must not leave the employee without an open record,
	// so both writes share one transaction.
	var saved compensation.CompensationRecord
	err = s.compensationRepo.Transact(ctx, func(txCtx context.Context) error {
		if req.SupersedePrior {
			cutoff := effectiveFrom.AddDate(0, 0, -1)
			for _, prior := range overlapping {
				if prior.EffectiveTo == nil && prior.EffectiveFrom.Before(effectiveFrom) {
					if err := s.compensationRepo.CloseEffectiveTo(txCtx, orgID, prior.ID, cutoff); err != nil {
						return err
					}
				}
			}
		}

		var err error
		if record.ID == "" {
			saved, err = s.compensationRepo.Create(txCtx, record)
		} else {
			saved, err = s.compensationRepo.Update(txCtx, record)
		}
		return err
	})
	if err != nil {
		return compensation.CompensationResponse{}, err
	}

	resp := mapToCompensationResponse(saved)
	resp.OverlapWarning = overlapWarning
	return resp, nil
}

func (s *CompensationServiceImpl) IntakeDraft(ctx context.Context, orgID string, req compensation.IntakeDraftRequest) (compensation.IntakeDraftResponse, error) {
	// The draft is untrusted: run it through exactly the same path as a
	// hand-entered record. Unmapped codes abort persistence and come back
	// for human action rather than failing the request.
	components, err := s.componentRepo.ListByOrgID(ctx, orgID, false)
	if err != nil {
		return compensation.IntakeDraftResponse{}, err
	}

	_, unmapped := catalogService.Canonicalize(req.Draft.Components, components)
	if len(unmapped) > 0 {
		return compensation.IntakeDraftResponse{Unmapped: unmapped}, nil
	}

	upsert := compensation.UpsertCompensationRequest{
		EmployeeID:    req.EmployeeID,
		EffectiveFrom: req.EffectiveFrom,
		CTCAnnual:     req.Draft.CTCAnnual,
		PaySchedule:   req.Draft.PaySchedule,
		Currency:      req.Draft.Currency,
		Components:    req.Draft.Components,
	}

	saved, err := s.Upsert(ctx, orgID, upsert)
	if err != nil {
		return compensation.IntakeDraftResponse{}, err
	}

	return compensation.IntakeDraftResponse{Record: &saved}, nil
}

func (s *CompensationServiceImpl) ListByEmployee(ctx context.Context, orgID, employeeID string) ([]compensation.CompensationResponse, error) {
	records, err := s.compensationRepo.ListByEmployee(ctx, orgID, employeeID)
	if err != nil {
		return nil, err
	}

	result := make([]compensation.CompensationResponse, 0, len(records))
	for _, r := range records {
		result = append(result, mapToCompensationResponse(r))
	}

	return result, nil
}

func (s *CompensationServiceImpl) ResolveActive(ctx context.Context, orgID, employeeID string, asOf time.Time) (compensation.CompensationRecord, error) {
	records, err := s.compensationRepo.ListActiveOn(ctx, orgID, employeeID, asOf)
	if err != nil {
		return compensation.CompensationRecord{}, err
	}
	if len(records) == 0 {
		return compensation.CompensationRecord{}, compensation.ErrNoActiveCompensation
	}

	// Overlap is tolerated at write time, so several records may match.
	// The latest effective_from wins; the repository orders descending.
	winner := records[0]
	for _, r := range records[1:] {
		if r.EffectiveFrom.After(winner.EffectiveFrom) {
			winner = r
		}
	}
	return winner, nil
}

func (s *CompensationServiceImpl) findOverlaps(ctx context.Context, orgID string, record compensation.CompensationRecord) ([]compensation.CompensationRecord, error) {
	existing, err := s.compensationRepo.ListByEmployee(ctx, orgID, record.EmployeeID)
	if err != nil {
		return nil, err
	}

	var overlapping []compensation.CompensationRecord
	for _, other := range existing {
		if other.ID == record.ID {
			continue
		}
		if record.Overlaps(other) {
			overlapping = append(overlapping, other)
		}
	}
	return overlapping, nil
}

// deriveCTC falls back to the sum of positive earning amounts, so AI-drafted
// structures without an explicit CTC still produce a usable record.
// Deduction and employer-cost lines never count toward CTC.
func deriveCTC(resolved []catalog.ResolvedComponentLine, components []catalog.PayComponent) decimal.Decimal {
	types := make(map[string]catalog.ComponentType, len(components))
	for _, c := range components {
		types[c.Code] = c.Type
	}

	total := decimal.Zero
	for _, line := range resolved {
		if types[line.Code] == catalog.ComponentTypeEarning && line.Amount.IsPositive() {
			total = total.Add(line.Amount)
		}
	}
	return total
}

func toComponentLines(resolved []catalog.ResolvedComponentLine) []compensation.ComponentLine {
	lines := make([]compensation.ComponentLine, 0, len(resolved))
	for _, r := range resolved {
		lines = append(lines, compensation.ComponentLine{ComponentCode: r.Code, AnnualAmount: r.Amount})
	}
	return lines
}

func mapToCompensationResponse(r compensation.CompensationRecord) compensation.CompensationResponse {
	var effectiveTo *string
	if r.EffectiveTo != nil {
		s := r.EffectiveTo.Format("2006-01-02")
		effectiveTo = &s
	}

	components := make([]catalog.ResolvedComponentLine, 0, len(r.Components))
	for _, line := range r.Components {
		components = append(components, catalog.ResolvedComponentLine{Code: line.ComponentCode, Amount: line.AnnualAmount})
	}

	return compensation.CompensationResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		EffectiveFrom: r.EffectiveFrom.Format("2006-01-02"),
		EffectiveTo:   effectiveTo,
		CTCAnnual:     r.CTCAnnual,
		PaySchedule:   string(r.PaySchedule),
		Currency:      r.Currency,
		Components:    components,
	}
}
