package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/compensation"
	"github.com/paylane-hq/payroll-backend-go/internal/pkg/database"
)

type compensationRepository struct {
	db *database.DB
}

func NewCompensationRepository(db *database.DB) compensation.CompensationRepository {
	return &compensationRepository{db: db}
}

const compensationColumns = `id, org_id, employee_id, effective_from, effective_to,
	ctc_annual, pay_schedule, currency, components, created_at, updated_at`

func scanCompensation(row pgx.Row) (compensation.CompensationRecord, error) {
	var rec compensation.CompensationRecord
	var components []byte
	err := row.Scan(
		&rec.ID, &rec.OrgID, &rec.EmployeeID, &rec.EffectiveFrom, &rec.EffectiveTo,
		&rec.CTCAnnual, &rec.PaySchedule, &rec.Currency, &components,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return compensation.CompensationRecord{}, err
	}
	if err := json.Unmarshal(components, &rec.Components); err != nil {
		return compensation.CompensationRecord{}, fmt.Errorf("failed to decode component lines: %w", err)
	}
	return rec, nil
}

func (r *compensationRepository) Create(ctx context.Context, record compensation.CompensationRecord) (compensation.CompensationRecord, error) {
	q := GetQuerier(ctx, r.db)

	components, err := json.Marshal(record.Components)
	if err != nil {
		return compensation.CompensationRecord{}, fmt.Errorf("failed to encode component lines: %w", err)
	}

	query := `
		INSERT INTO compensation_records (
			org_id, employee_id, effective_from, effective_to,
			ctc_annual, pay_schedule, currency, components
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + compensationColumns

	rec, err := scanCompensation(q.QueryRow(ctx, query,
		record.OrgID, record.EmployeeID, record.EffectiveFrom, record.EffectiveTo,
		record.CTCAnnual, record.PaySchedule, record.Currency, components,
	))
	if err != nil {
		return compensation.CompensationRecord{}, fmt.Errorf("failed to create compensation record: %w", err)
	}

	return rec, nil
}

func (r *compensationRepository) Update(ctx context.Context, record compensation.CompensationRecord) (compensation.CompensationRecord, error) {
	q := GetQuerier(ctx, r.db)

	components, err := json.Marshal(record.Components)
	if err != nil {
		return compensation.CompensationRecord{}, fmt.Errorf("failed to encode component lines: %w", err)
	}

	query := `
		UPDATE compensation_records SET
			effective_from = $3,
			effective_to = $4,
			ctc_annual = $5,
			pay_schedule = $6,
			currency = $7,
			components = $8,
			updated_at = NOW()
		WHERE org_id = $1 AND id = $2
		RETURNING ` + compensationColumns

	rec, err := scanCompensation(q.QueryRow(ctx, query,
		record.OrgID, record.ID, record.EffectiveFrom, record.EffectiveTo,
		record.CTCAnnual, record.PaySchedule, record.Currency, components,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return compensation.CompensationRecord{}, compensation.ErrRecordNotFound
		}
		return compensation.CompensationRecord{}, fmt.Errorf("failed to update compensation record: %w", err)
	}

	return rec, nil
}

func (r *compensationRepository) GetByID(ctx context.Context, orgID, id string) (compensation.CompensationRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + compensationColumns + ` FROM compensation_records WHERE org_id = $1 AND id = $2`

	rec, err := scanCompensation(q.QueryRow(ctx, query, orgID, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return compensation.CompensationRecord{}, compensation.ErrRecordNotFound
		}
		return compensation.CompensationRecord{}, fmt.Errorf("failed to get compensation record: %w", err)
	}

	return rec, nil
}

func (r *compensationRepository) ListByEmployee(ctx context.Context, orgID, employeeID string) ([]compensation.CompensationRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + compensationColumns + `
		FROM compensation_records
		WHERE org_id = $1 AND employee_id = $2
		ORDER BY effective_from DESC`

	return r.queryRecords(ctx, q, query, orgID, employeeID)
}

func (r *compensationRepository) ListActiveOn(ctx context.Context, orgID, employeeID string, asOf time.Time) ([]compensation.CompensationRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + compensationColumns + `
		FROM compensation_records
		WHERE org_id = $1 AND employee_id = $2
		  AND effective_from <= $3
		  AND (effective_to IS NULL OR effective_to >= $3)
		ORDER BY effective_from DESC`

	return r.queryRecords(ctx, q, query, orgID, employeeID, asOf)
}

func (r *compensationRepository) CloseEffectiveTo(ctx context.Context, orgID, id string, effectiveTo time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE compensation_records SET effective_to = $3, updated_at = NOW() WHERE org_id = $1 AND id = $2`

	tag, err := q.Exec(ctx, query, orgID, id, effectiveTo)
	if err != nil {
		return fmt.Errorf("failed to close compensation record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return compensation.ErrRecordNotFound
	}

	return nil
}

func (r *compensationRepository) Transact(ctx context.Context, fn func(ctx context.Context) error) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, "tx", tx))
	})
}

func (r *compensationRepository) queryRecords(ctx context.Context, q database.Querier, query string, args ...any) ([]compensation.CompensationRecord, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list compensation records: %w", err)
	}
	defer rows.Close()

	var records []compensation.CompensationRecord
	for rows.Next() {
		rec, err := scanCompensation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan compensation record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
