package compensation

import (
	"context"
	"time"
)

// CompensationService defines business logic for the compensation ledger.
type CompensationService interface {
	// Upsert validates and saves a compensation record. The component lines
	// are canonicalized first; unmapped codes abort the save. Overlapping
	// intervals produce a warning on the response unless req.Strict is set,
	// in which case they reject the save.
	Upsert(ctx context.Context, orgID string, req UpsertCompensationRequest) (CompensationResponse, error)

	// IntakeDraft runs an AI-drafted (or imported) candidate structure
	// through canonicalization and the same validation as Upsert. A missing
	// CTC is derived from the sum of positive component amounts.
	IntakeDraft(ctx context.Context, orgID string, req IntakeDraftRequest) (IntakeDraftResponse, error)

	ListByEmployee(ctx context.Context, orgID, employeeID string) ([]CompensationResponse, error)

	// ResolveActive returns the record effective on asOf. When overlapping
	// records both match, the one with the latest EffectiveFrom wins.
	ResolveActive(ctx context.Context, orgID, employeeID string, asOf time.Time) (CompensationRecord, error)
}
