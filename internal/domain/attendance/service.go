package attendance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceService defines business logic for attendance aggregation.
type AttendanceService interface {
	// RecordFact upserts one employee-day fact (admin corrections included).
	RecordFact(ctx context.Context, orgID string, req RecordFactRequest) (AttendanceFact, error)

	// PresentDays sums counted days over [start, end], 1.0 per full day and
	// 0.5 per half day.
	PresentDays(ctx context.Context, orgID, employeeID string, start, end time.Time) (decimal.Decimal, error)

	// WorkingDays is the proration denominator: calendar days in [start, end]
	// minus Sundays. Holidays are not subtracted.
	WorkingDays(start, end time.Time) (decimal.Decimal, error)

	// Summarize bundles PresentDays and WorkingDays for one employee.
	Summarize(ctx context.Context, orgID, employeeID string, start, end time.Time) (PeriodSummary, error)
}
