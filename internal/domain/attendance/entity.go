package attendance

import "time"

// AttendanceFact - one employee-day of attendance truth. Read-only input to
// payroll; the clock-in pipeline that produces these rows lives elsewhere.
type AttendanceFact struct {
	ID         string
	OrgID      string
	EmployeeID string
	Date       time.Time
	IsAbsent   bool
	IsHalfDay  bool
	IsWeekend  bool
	IsHoliday  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Counted reports whether the day contributes to present days at all.
// Weekends, holidays and absences never count; holidays are paid separately
// and are not charged against the employee.
func (f AttendanceFact) Counted() bool {
	return !f.IsAbsent && !f.IsWeekend && !f.IsHoliday
}
