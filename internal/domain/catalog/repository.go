package catalog

import "context"

// ComponentRepository defines data access methods for the component catalog.
// All methods take orgID to prevent cross-org data access.
type ComponentRepository interface {
	Create(ctx context.Context, component PayComponent) (PayComponent, error)
	GetByCode(ctx context.Context, orgID, code string) (PayComponent, error)
	ListByOrgID(ctx context.Context, orgID string, activeOnly bool) ([]PayComponent, error)
	Update(ctx context.Context, orgID string, req UpdateComponentRequest) error
	Deactivate(ctx context.Context, orgID, code string) error
	Delete(ctx context.Context, orgID, code string) error

	// IsReferenced reports whether any compensation record or payroll run
	// references the component code.
	IsReferenced(ctx context.Context, orgID, code string) (bool, error)
}
