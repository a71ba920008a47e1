package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/catalog"
	"github.com/paylane-hq/payroll-backend-go/internal/pkg/database"
)

type componentRepository struct {
	db *database.DB
}

func NewComponentRepository(db *database.DB) catalog.ComponentRepository {
	return &componentRepository{db: db}
}

const componentColumns = `id, org_id, code, name, type, calc_method, calc_value,
	taxable, pf_wage_participates, esic_wage_participates, non_prorated,
	sort_order, active, created_at, updated_at`

func scanComponent(row pgx.Row) (catalog.PayComponent, error) {
	var c catalog.PayComponent
	err := row.Scan(
		&c.ID, &c.OrgID, &c.Code, &c.Name, &c.Type, &c.CalcMethod, &c.CalcValue,
		&c.Taxable, &c.PFWageParticipates, &c.ESICWageParticipates, &c.NonProrated,
		&c.SortOrder, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *componentRepository) Create(ctx context.Context, component catalog.PayComponent) (catalog.PayComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO pay_components (
			org_id, code, name, type, calc_method, calc_value,
			taxable, pf_wage_participates, esic_wage_participates, non_prorated,
			sort_order, active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + componentColumns

	c, err := scanComponent(q.QueryRow(ctx, query,
		component.OrgID, component.Code, component.Name, component.Type,
		component.CalcMethod, component.CalcValue,
		component.Taxable, component.PFWageParticipates, component.ESICWageParticipates,
		component.NonProrated, component.SortOrder, component.Active,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_pay_component_code") {
			return catalog.PayComponent{}, catalog.ErrComponentCodeExists
		}
		return catalog.PayComponent{}, fmt.Errorf("failed to create pay component: %w", err)
	}

	return c, nil
}

func (r *componentRepository) GetByCode(ctx context.Context, orgID, code string) (catalog.PayComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + componentColumns + ` FROM pay_components WHERE org_id = $1 AND code = $2`

	c, err := scanComponent(q.QueryRow(ctx, query, orgID, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return catalog.PayComponent{}, catalog.ErrComponentNotFound
		}
		return catalog.PayComponent{}, fmt.Errorf("failed to get pay component: %w", err)
	}

	return c, nil
}

func (r *componentRepository) ListByOrgID(ctx context.Context, orgID string, activeOnly bool) ([]catalog.PayComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + componentColumns + ` FROM pay_components WHERE org_id = $1`
	if activeOnly {
		query += ` AND active = TRUE`
	}
	query += ` ORDER BY sort_order, code`

	rows, err := q.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay components: %w", err)
	}
	defer rows.Close()

	var components []catalog.PayComponent
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pay component: %w", err)
		}
		components = append(components, c)
	}

	return components, rows.Err()
}

func (r *componentRepository) Update(ctx context.Context, orgID string, req catalog.UpdateComponentRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE pay_components SET
			name = COALESCE($3, name),
			calc_method = COALESCE($4, calc_method),
			calc_value = COALESCE($5, calc_value),
			taxable = COALESCE($6, taxable),
			pf_wage_participates = COALESCE($7, pf_wage_participates),
			esic_wage_participates = COALESCE($8, esic_wage_participates),
			non_prorated = COALESCE($9, non_prorated),
			sort_order = COALESCE($10, sort_order),
			active = COALESCE($11, active),
			updated_at = NOW()
		WHERE org_id = $1 AND code = $2
	`

	tag, err := q.Exec(ctx, query, orgID, req.Code,
		req.Name, req.CalcMethod, req.CalcValue,
		req.Taxable, req.PFWageParticipates, req.ESICWageParticipates,
		req.NonProrated, req.SortOrder, req.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to update pay component: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrComponentNotFound
	}

	return nil
}

func (r *componentRepository) Deactivate(ctx context.Context, orgID, code string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE pay_components SET active = FALSE, updated_at = NOW() WHERE org_id = $1 AND code = $2`

	tag, err := q.Exec(ctx, query, orgID, code)
	if err != nil {
		return fmt.Errorf("failed to deactivate pay component: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrComponentNotFound
	}

	return nil
}

func (r *componentRepository) Delete(ctx context.Context, orgID, code string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM pay_components WHERE org_id = $1 AND code = $2`

	tag, err := q.Exec(ctx, query, orgID, code)
	if err != nil {
		return fmt.Errorf("failed to delete pay component: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrComponentNotFound
	}

	return nil
}

func (r *componentRepository) IsReferenced(ctx context.Context, orgID, code string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	// Compensation component lines and run snapshots are JSONB arrays of
	// objects carrying a "component_code" / "code" key.
	query := `
		SELECT EXISTS (
			SELECT 1 FROM compensation_records
			WHERE org_id = $1
			  AND components @> $2::jsonb
		) OR EXISTS (
			SELECT 1 FROM payroll_runs
			WHERE org_id = $1
			  AND snapshot @> $3::jsonb
		)
	`

	compMatch := fmt.Sprintf(`[{"component_code": %q}]`, code)
	snapMatch := fmt.Sprintf(`[{"code": %q}]`, code)

	var referenced bool
	if err := q.QueryRow(ctx, query, orgID, compMatch, snapMatch).Scan(&referenced); err != nil {
		return false, fmt.Errorf("failed to check pay component references: %w", err)
	}

	return referenced, nil
}
