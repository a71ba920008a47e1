package compensation

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaySchedule enum
type PaySchedule string

const (
	PayScheduleMonthly  PaySchedule = "monthly"
	PayScheduleWeekly   PaySchedule = "weekly"
	PayScheduleBiweekly PaySchedule = "biweekly"
)

// ComponentLine is one (code, annual amount) entry of a compensation
// structure. Codes are canonical catalog codes; sign follows component type.
type ComponentLine struct {
	ComponentCode string          `json:"component_code"`
	AnnualAmount  decimal.Decimal `json:"annual_amount"`
}

// CompensationRecord - effective-dated compensation for one employee.
// EffectiveTo nil means open-ended. Records are superseded, never deleted:
// a new record closes the prior one's EffectiveTo.
type CompensationRecord struct {
	ID            string
	OrgID         string
	EmployeeID    string
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	CTCAnnual     decimal.Decimal
	PaySchedule   PaySchedule
	Currency      string
	Components    []ComponentLine
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ActiveOn reports whether asOf falls inside the record's effective interval.
// Both bounds are inclusive.
func (r CompensationRecord) ActiveOn(asOf time.Time) bool {
	if asOf.Before(r.EffectiveFrom) {
		return false
	}
	if r.EffectiveTo != nil && asOf.After(*r.EffectiveTo) {
		return false
	}
	return true
}

// Overlaps reports whether two effective intervals intersect.
func (r CompensationRecord) Overlaps(other CompensationRecord) bool {
	if other.EffectiveTo != nil && r.EffectiveFrom.After(*other.EffectiveTo) {
		return false
	}
	if r.EffectiveTo != nil && other.EffectiveFrom.After(*r.EffectiveTo) {
		return false
	}
	return true
}
