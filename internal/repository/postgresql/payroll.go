package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/payroll"
	"github.com/paylane-hq/payroll-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== PERIODS ==========

const periodColumns = `id, org_id, month, year, status, lock_at, created_at, updated_at`

func scanPeriod(row pgx.Row) (payroll.PayrollPeriod, error) {
	var p payroll.PayrollPeriod
	err := row.Scan(&p.ID, &p.OrgID, &p.Month, &p.Year, &p.Status, &p.LockAt, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *payrollRepository) CreatePeriod(ctx context.Context, period payroll.PayrollPeriod) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_periods (org_id, month, year, status)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + periodColumns

	p, err := scanPeriod(q.QueryRow(ctx, query, period.OrgID, period.Month, period.Year, period.Status))
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_period_org_month_year") {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodAlreadyExists
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to create payroll period: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) GetPeriodByID(ctx context.Context, orgID, id string) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + periodColumns + ` FROM payroll_periods WHERE org_id = $1 AND id = $2`

	p, err := scanPeriod(q.QueryRow(ctx, query, orgID, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to get payroll period: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) GetPeriodByKey(ctx context.Context, orgID string, month, year int) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + periodColumns + ` FROM payroll_periods WHERE org_id = $1 AND month = $2 AND year = $3`

	p, err := scanPeriod(q.QueryRow(ctx, query, orgID, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to get payroll period: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) ListPeriods(ctx context.Context, orgID string) ([]payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + periodColumns + ` FROM payroll_periods WHERE org_id = $1 ORDER BY year DESC, month DESC`

	rows, err := q.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll periods: %w", err)
	}
	defer rows.Close()

	var periods []payroll.PayrollPeriod
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll period: %w", err)
		}
		periods = append(periods, p)
	}

	return periods, rows.Err()
}

func (r *payrollRepository) UpdatePeriodStatus(ctx context.Context, orgID, id string, status payroll.PeriodStatus, lockAt *time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE payroll_periods SET status = $3, lock_at = $4, updated_at = NOW() WHERE org_id = $1 AND id = $2`

	tag, err := q.Exec(ctx, query, orgID, id, status, lockAt)
	if err != nil {
		return fmt.Errorf("failed to update payroll period status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPeriodNotFound
	}

	return nil
}

// ========== RUNS ==========

const runColumns = `r.id, r.payroll_period_id, r.org_id, r.employee_id, r.status, r.snapshot,
	r.gross_earnings, r.total_deductions, r.net_pay, r.employer_cost,
	r.pf_wages, r.esic_wages, r.pt_amount, r.tds_amount,
	r.attendance_summary, r.created_at, r.updated_at,
	e.name, e.code`

func scanRun(row pgx.Row) (payroll.PayrollRun, error) {
	var run payroll.PayrollRun
	var snapshot, attendanceSummary []byte
	err := row.Scan(
		&run.ID, &run.PayrollPeriodID, &run.OrgID, &run.EmployeeID, &run.Status, &snapshot,
		&run.GrossEarnings, &run.TotalDeductions, &run.NetPay, &run.EmployerCost,
		&run.PFWages, &run.ESICWages, &run.PTAmount, &run.TDSAmount,
		&attendanceSummary, &run.CreatedAt, &run.UpdatedAt,
		&run.EmployeeName, &run.EmployeeCode,
	)
	if err != nil {
		return payroll.PayrollRun{}, err
	}
	if err := json.Unmarshal(snapshot, &run.Snapshot); err != nil {
		return payroll.PayrollRun{}, fmt.Errorf("failed to decode run snapshot: %w", err)
	}
	if err := json.Unmarshal(attendanceSummary, &run.AttendanceSummary); err != nil {
		return payroll.PayrollRun{}, fmt.Errorf("failed to decode attendance summary: %w", err)
	}
	return run, nil
}

func (r *payrollRepository) UpsertRun(ctx context.Context, run payroll.PayrollRun) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	snapshot, err := json.Marshal(run.Snapshot)
	if err != nil {
		return payroll.PayrollRun{}, fmt.Errorf("failed to encode run snapshot: %w", err)
	}
	attendanceSummary, err := json.Marshal(run.AttendanceSummary)
	if err != nil {
		return payroll.PayrollRun{}, fmt.Errorf("failed to encode attendance summary: %w", err)
	}

	query := `
		WITH upserted AS (
			INSERT INTO payroll_runs (
				payroll_period_id, org_id, employee_id, status, snapshot,
				gross_earnings, total_deductions, net_pay, employer_cost,
				pf_wages, esic_wages, pt_amount, tds_amount, attendance_summary
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			ON CONFLICT (payroll_period_id, employee_id) DO UPDATE SET
				status = EXCLUDED.status,
				snapshot = EXCLUDED.snapshot,
				gross_earnings = EXCLUDED.gross_earnings,
				total_deductions = EXCLUDED.total_deductions,
				net_pay = EXCLUDED.net_pay,
				employer_cost = EXCLUDED.employer_cost,
				pf_wages = EXCLUDED.pf_wages,
				esic_wages = EXCLUDED.esic_wages,
				pt_amount = EXCLUDED.pt_amount,
				tds_amount = EXCLUDED.tds_amount,
				attendance_summary = EXCLUDED.attendance_summary,
				updated_at = NOW()
			RETURNING *
		)
		SELECT ` + runColumns + `
		FROM upserted r
		JOIN employees e ON e.id = r.employee_id
	`

	result, err := scanRun(q.QueryRow(ctx, query,
		run.PayrollPeriodID, run.OrgID, run.EmployeeID, run.Status, snapshot,
		run.GrossEarnings, run.TotalDeductions, run.NetPay, run.EmployerCost,
		run.PFWages, run.ESICWages, run.PTAmount, run.TDSAmount, attendanceSummary,
	))
	if err != nil {
		return payroll.PayrollRun{}, fmt.Errorf("failed to upsert payroll run: %w", err)
	}

	return result, nil
}

func (r *payrollRepository) GetRun(ctx context.Context, orgID, periodID, employeeID string) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + runColumns + `
		FROM payroll_runs r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.org_id = $1 AND r.payroll_period_id = $2 AND r.employee_id = $3
	`

	run, err := scanRun(q.QueryRow(ctx, query, orgID, periodID, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRun{}, payroll.ErrRunNotFound
		}
		return payroll.PayrollRun{}, fmt.Errorf("failed to get payroll run: %w", err)
	}

	return run, nil
}

func (r *payrollRepository) ListRunsByPeriod(ctx context.Context, orgID, periodID string) ([]payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + runColumns + `
		FROM payroll_runs r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.org_id = $1 AND r.payroll_period_id = $2
		ORDER BY e.code
	`

	rows, err := q.Query(ctx, query, orgID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.PayrollRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (r *payrollRepository) UpdateRunStatus(ctx context.Context, orgID, periodID, employeeID string, from, to payroll.RunStatus) error {
	q := GetQuerier(ctx, r.db)

	// The from-status predicate makes the transition atomic against
	// concurrent writers.
	query := `
		UPDATE payroll_runs SET status = $5, updated_at = NOW()
		WHERE org_id = $1 AND payroll_period_id = $2 AND employee_id = $3 AND status = $4
	`

	tag, err := q.Exec(ctx, query, orgID, periodID, employeeID, from, to)
	if err != nil {
		return fmt.Errorf("failed to update payroll run status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}

	return nil
}

// ========== FILINGS ==========

const filingColumns = `id, payroll_period_id, org_id, filing_type, status, payload, generated_at, created_at, updated_at`

func scanFiling(row pgx.Row) (payroll.StatutoryFiling, error) {
	var f payroll.StatutoryFiling
	var payload []byte
	err := row.Scan(&f.ID, &f.PayrollPeriodID, &f.OrgID, &f.FilingType, &f.Status, &payload, &f.GeneratedAt, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return payroll.StatutoryFiling{}, err
	}
	if err := json.Unmarshal(payload, &f.Payload); err != nil {
		return payroll.StatutoryFiling{}, fmt.Errorf("failed to decode filing payload: %w", err)
	}
	return f, nil
}

func (r *payrollRepository) CreateFiling(ctx context.Context, filing payroll.StatutoryFiling) (payroll.StatutoryFiling, error) {
	q := GetQuerier(ctx, r.db)

	payload, err := json.Marshal(filing.Payload)
	if err != nil {
		return payroll.StatutoryFiling{}, fmt.Errorf("failed to encode filing payload: %w", err)
	}

	query := `
		INSERT INTO statutory_filings (payroll_period_id, org_id, filing_type, status, payload, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + filingColumns

	f, err := scanFiling(q.QueryRow(ctx, query,
		filing.PayrollPeriodID, filing.OrgID, filing.FilingType, filing.Status, payload, filing.GeneratedAt,
	))
	if err != nil {
		return payroll.StatutoryFiling{}, fmt.Errorf("failed to create statutory filing: %w", err)
	}

	return f, nil
}

func (r *payrollRepository) GetFilingByID(ctx context.Context, orgID, id string) (payroll.StatutoryFiling, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + filingColumns + ` FROM statutory_filings WHERE org_id = $1 AND id = $2`

	f, err := scanFiling(q.QueryRow(ctx, query, orgID, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.StatutoryFiling{}, payroll.ErrFilingNotFound
		}
		return payroll.StatutoryFiling{}, fmt.Errorf("failed to get statutory filing: %w", err)
	}

	return f, nil
}

func (r *payrollRepository) ListFilingsByPeriod(ctx context.Context, orgID, periodID string) ([]payroll.StatutoryFiling, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + filingColumns + ` FROM statutory_filings WHERE org_id = $1 AND payroll_period_id = $2 ORDER BY created_at`

	rows, err := q.Query(ctx, query, orgID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list statutory filings: %w", err)
	}
	defer rows.Close()

	var filings []payroll.StatutoryFiling
	for rows.Next() {
		f, err := scanFiling(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statutory filing: %w", err)
		}
		filings = append(filings, f)
	}

	return filings, rows.Err()
}

func (r *payrollRepository) UpdateFilingStatus(ctx context.Context, orgID, id string, status payroll.FilingStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE statutory_filings SET status = $3, updated_at = NOW() WHERE org_id = $1 AND id = $2`

	tag, err := q.Exec(ctx, query, orgID, id, status)
	if err != nil {
		return fmt.Errorf("failed to update statutory filing status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrFilingNotFound
	}

	return nil
}
