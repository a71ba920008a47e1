package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/paylane-hq/payroll-backend-go/internal/domain/attendance"
	"github.com/paylane-hq/payroll-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Upsert(ctx context.Context, fact attendance.AttendanceFact) (attendance.AttendanceFact, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_facts (
			org_id, employee_id, date, is_absent, is_half_day, is_weekend, is_holiday
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (org_id, employee_id, date) DO UPDATE SET
			is_absent = EXCLUDED.is_absent,
			is_half_day = EXCLUDED.is_half_day,
			is_weekend = EXCLUDED.is_weekend,
			is_holiday = EXCLUDED.is_holiday,
			updated_at = NOW()
		RETURNING id, org_id, employee_id, date, is_absent, is_half_day, is_weekend, is_holiday, created_at, updated_at
	`

	var f attendance.AttendanceFact
	err := q.QueryRow(ctx, query,
		fact.OrgID, fact.EmployeeID, fact.Date,
		fact.IsAbsent, fact.IsHalfDay, fact.IsWeekend, fact.IsHoliday,
	).Scan(
		&f.ID, &f.OrgID, &f.EmployeeID, &f.Date,
		&f.IsAbsent, &f.IsHalfDay, &f.IsWeekend, &f.IsHoliday,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return attendance.AttendanceFact{}, fmt.Errorf("failed to upsert attendance fact: %w", err)
	}

	return f, nil
}

func (r *attendanceRepository) ListByEmployeeRange(ctx context.Context, orgID, employeeID string, start, end time.Time) ([]attendance.AttendanceFact, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, org_id, employee_id, date, is_absent, is_half_day, is_weekend, is_holiday, created_at, updated_at
		FROM attendance_facts
		WHERE org_id = $1 AND employee_id = $2 AND date BETWEEN $3 AND $4
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, orgID, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance facts: %w", err)
	}
	defer rows.Close()

	var facts []attendance.AttendanceFact
	for rows.Next() {
		var f attendance.AttendanceFact
		if err := rows.Scan(
			&f.ID, &f.OrgID, &f.EmployeeID, &f.Date,
			&f.IsAbsent, &f.IsHalfDay, &f.IsWeekend, &f.IsHoliday,
			&f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance fact: %w", err)
		}
		facts = append(facts, f)
	}

	return facts, rows.Err()
}
