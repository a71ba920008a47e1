package catalog

import "context"

// ComponentService defines business logic for the component catalog.
type ComponentService interface {
	CreateComponent(ctx context.Context, orgID string, req CreateComponentRequest) (ComponentResponse, error)
	GetComponent(ctx context.Context, orgID, code string) (ComponentResponse, error)
	ListComponents(ctx context.Context, orgID string, activeOnly bool) ([]ComponentResponse, error)
	UpdateComponent(ctx context.Context, orgID string, req UpdateComponentRequest) error

	// DeleteComponent removes an unreferenced component. A component
	// referenced by any compensation or run record is deactivated instead,
	// never hard-deleted.
	DeleteComponent(ctx context.Context, orgID, code string) error

	// Canonicalize maps raw component lines onto the org's catalog without
	// persisting anything.
	Canonicalize(ctx context.Context, orgID string, req CanonicalizeRequest) (CanonicalizeResponse, error)

	// SeedDefaults installs the standard component catalog for an org.
	// Codes that already exist are left untouched.
	SeedDefaults(ctx context.Context, orgID string) ([]ComponentResponse, error)
}
