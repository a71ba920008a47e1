package attendance

import (
	"context"
	"time"

	"github.com/paylane-hq/payroll-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

var (
	oneDay  = decimal.NewFromInt(1)
	halfDay = decimal.NewFromFloat(0.5)
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	restDay        time.Weekday
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, restDay time.Weekday) attendance.AttendanceService {
	return &AttendanceServiceImpl{attendanceRepo: attendanceRepo, restDay: restDay}
}

func (s *AttendanceServiceImpl) RecordFact(ctx context.Context, orgID string, req attendance.RecordFactRequest) (attendance.AttendanceFact, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceFact{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	fact := attendance.AttendanceFact{
		OrgID:      orgID,
		EmployeeID: req.EmployeeID,
		Date:       date,
		IsAbsent:   req.IsAbsent,
		IsHalfDay:  req.IsHalfDay,
		IsWeekend:  req.IsWeekend,
		IsHoliday:  req.IsHoliday,
	}

	return s.attendanceRepo.Upsert(ctx, fact)
}

func (s *AttendanceServiceImpl) PresentDays(ctx context.Context, orgID, employeeID string, start, end time.Time) (decimal.Decimal, error) {
	if end.Before(start) {
		return decimal.Zero, attendance.ErrInvalidDateSpan
	}

	facts, err := s.attendanceRepo.ListByEmployeeRange(ctx, orgID, employeeID, start, end)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, f := range facts {
		if !f.Counted() {
			continue
		}
		if f.IsHalfDay {
			total = total.Add(halfDay)
		} else {
			total = total.Add(oneDay)
		}
	}

	return total, nil
}

// WorkingDays subtracts the configured weekly rest day only. Holidays stay
// in the denominator on purpose: they are paid days, not counted against the
// employee, so the presence ratio can exceed the naive expectation on
// holiday-heavy months.
func (s *AttendanceServiceImpl) WorkingDays(start, end time.Time) (decimal.Decimal, error) {
	if end.Before(start) {
		return decimal.Zero, attendance.ErrInvalidDateSpan
	}

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != s.restDay {
			days++
		}
	}

	return decimal.NewFromInt(int64(days)), nil
}

func (s *AttendanceServiceImpl) Summarize(ctx context.Context, orgID, employeeID string, start, end time.Time) (attendance.PeriodSummary, error) {
	present, err := s.PresentDays(ctx, orgID, employeeID, start, end)
	if err != nil {
		return attendance.PeriodSummary{}, err
	}

	working, err := s.WorkingDays(start, end)
	if err != nil {
		return attendance.PeriodSummary{}, err
	}

	return attendance.PeriodSummary{
		EmployeeID:  employeeID,
		PresentDays: present,
		WorkingDays: working,
	}, nil
}
