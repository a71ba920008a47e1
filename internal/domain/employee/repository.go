package employee

import "context"

// EmployeeRepository defines roster access. Per-employee methods take orgID
// to prevent cross-org data access.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, orgID, id string) (Employee, error)
	ListActiveByOrgID(ctx context.Context, orgID string) ([]Employee, error)

	// ListOrgIDs returns every org with at least one active employee. Used
	// by background jobs that fan out per org.
	ListOrgIDs(ctx context.Context) ([]string, error)
}
