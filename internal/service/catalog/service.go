package catalog

import (
	"context"
	"errors"

	"github.com/paylane-hq/payroll-backend-go/internal/domain/catalog"
	"github.com/paylane-hq/payroll-backend-go/internal/fixtures"
)

type ComponentServiceImpl struct {
	componentRepo catalog.ComponentRepository
}

func NewComponentService(componentRepo catalog.ComponentRepository) catalog.ComponentService {
	return &ComponentServiceImpl{componentRepo: componentRepo}
}

func (s *ComponentServiceImpl) CreateComponent(ctx context.Context, orgID string, req catalog.CreateComponentRequest) (catalog.ComponentResponse, error) {
	if err := req.Validate(); err != nil {
		return catalog.ComponentResponse{}, err
	}

	taxable := false
	if req.Taxable != nil {
		taxable = *req.Taxable
	}
	pfParticipates := false
	if req.PFWageParticipates != nil {
		pfParticipates = *req.PFWageParticipates
	}
	esicParticipates := false
	if req.ESICWageParticipates != nil {
		esicParticipates = *req.ESICWageParticipates
	}
	nonProrated := false
	if req.NonProrated != nil {
		nonProrated = *req.NonProrated
	}

	component := catalog.PayComponent{
		OrgID:                orgID,
		Code:                 req.Code,
		Name:                 req.Name,
		Type:                 catalog.ComponentType(req.Type),
		CalcMethod:           catalog.CalcMethod(req.CalcMethod),
		CalcValue:            req.CalcValue,
		Taxable:              taxable,
		PFWageParticipates:   pfParticipates,
		ESICWageParticipates: esicParticipates,
		NonProrated:          nonProrated,
		SortOrder:            req.SortOrder,
		Active:               true,
	}

	created, err := s.componentRepo.Create(ctx, component)
	if err != nil {
		return catalog.ComponentResponse{}, err
	}

	return mapToComponentResponse(created), nil
}

func (s *ComponentServiceImpl) GetComponent(ctx context.Context, orgID, code string) (catalog.ComponentResponse, error) {
	component, err := s.componentRepo.GetByCode(ctx, orgID, code)
	if err != nil {
		return catalog.ComponentResponse{}, err
	}

	return mapToComponentResponse(component), nil
}

func (s *ComponentServiceImpl) ListComponents(ctx context.Context, orgID string, activeOnly bool) ([]catalog.ComponentResponse, error) {
	components, err := s.componentRepo.ListByOrgID(ctx, orgID, activeOnly)
	if err != nil {
		return nil, err
	}

	result := make([]catalog.ComponentResponse, 0, len(components))
	for _, c := range components {
		result = append(result, mapToComponentResponse(c))
	}

	return result, nil
}

func (s *ComponentServiceImpl) UpdateComponent(ctx context.Context, orgID string, req catalog.UpdateComponentRequest) error {
	return s.componentRepo.Update(ctx, orgID, req)
}

func (s *ComponentServiceImpl) DeleteComponent(ctx context.Context, orgID, code string) error {
	referenced, err := s.componentRepo.IsReferenced(ctx, orgID, code)
	if err != nil {
		return err
	}
	if referenced {
		// Referenced components are retired, never removed: historical runs
		// and compensations must keep resolving the code.
		return s.componentRepo.Deactivate(ctx, orgID, code)
	}
	return s.componentRepo.Delete(ctx, orgID, code)
}

func (s *ComponentServiceImpl) Canonicalize(ctx context.Context, orgID string, req catalog.CanonicalizeRequest) (catalog.CanonicalizeResponse, error) {
	// Previously-active codes must still resolve, so the full catalog is
	// loaded, not just active components.
	components, err := s.componentRepo.ListByOrgID(ctx, orgID, false)
	if err != nil {
		return catalog.CanonicalizeResponse{}, err
	}

	resolved, unmapped := Canonicalize(req.Components, components)
	return catalog.CanonicalizeResponse{Resolved: resolved, Unmapped: unmapped}, nil
}

func (s *ComponentServiceImpl) SeedDefaults(ctx context.Context, orgID string) ([]catalog.ComponentResponse, error) {
	var seeded []catalog.ComponentResponse
	for _, component := range fixtures.DefaultComponents(orgID) {
		created, err := s.componentRepo.Create(ctx, component)
		if errors.Is(err, catalog.ErrComponentCodeExists) {
			continue
		}
		if err != nil {
			return nil, err
		}
		seeded = append(seeded, mapToComponentResponse(created))
	}
	return seeded, nil
}

func mapToComponentResponse(c catalog.PayComponent) catalog.ComponentResponse {
	return catalog.ComponentResponse{
		ID:                   c.ID,
		OrgID:                c.OrgID,
		Code:                 c.Code,
		Name:                 c.Name,
		Type:                 string(c.Type),
		CalcMethod:           string(c.CalcMethod),
		CalcValue:            c.CalcValue,
		Taxable:              c.Taxable,
		PFWageParticipates:   c.PFWageParticipates,
		ESICWageParticipates: c.ESICWageParticipates,
		NonProrated:          c.NonProrated,
		SortOrder:            c.SortOrder,
		Active:               c.Active,
	}
}
