package compensation

import (
	"context"
	"time"
)

// CompensationRepository defines data access methods for compensation records.
// All methods take orgID to prevent cross-org data access.
type CompensationRepository interface {
	Create(ctx context.Context, record CompensationRecord) (CompensationRecord, error)
	Update(ctx context.Context, record CompensationRecord) (CompensationRecord, error)
	GetByID(ctx context.Context, orgID, id string) (CompensationRecord, error)
	ListByEmployee(ctx context.Context, orgID, employeeID string) ([]CompensationRecord, error)

	// ListActiveOn returns every record whose effective interval contains
	// asOf, most recent EffectiveFrom first.
	ListActiveOn(ctx context.Context, orgID, employeeID string, asOf time.Time) ([]CompensationRecord, error)

	// CloseEffectiveTo sets the record's effective_to, superseding it.
	CloseEffectiveTo(ctx context.Context, orgID, id string, effectiveTo time.Time) error

	// Transact runs fn atomically: either every write fn issues through the
	// derived context is persisted, or none are.
	Transact(ctx context.Context, fn func(ctx context.Context) error) error
}
