package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines read/write access to attendance facts.
// All methods take orgID to prevent cross-org data access.
type AttendanceRepository interface {
	Upsert(ctx context.Context, fact AttendanceFact) (AttendanceFact, error)
	ListByEmployeeRange(ctx context.Context, orgID, employeeID string, start, end time.Time) ([]AttendanceFact, error)
}
