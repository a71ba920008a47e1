package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/payroll"
)

type PayrollRepository struct {
	mu      sync.RWMutex
	periods map[string]payroll.PayrollPeriod   // id -> period
	runs    map[string]payroll.PayrollRun      // periodID/employeeID -> run
	filings map[string]payroll.StatutoryFiling // id -> filing
}

func NewPayrollRepository() *PayrollRepository {
	return &PayrollRepository{
		periods: make(map[string]payroll.PayrollPeriod),
		runs:    make(map[string]payroll.PayrollRun),
		filings: make(map[string]payroll.StatutoryFiling),
	}
}

func runKey(periodID, employeeID string) string {
	return periodID + "/" + employeeID
}

func (r *PayrollRepository) CreatePeriod(ctx context.Context, period payroll.PayrollPeriod) (payroll.PayrollPeriod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.periods {
		if existing.OrgID == period.OrgID && existing.Month == period.Month && existing.Year == period.Year {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodAlreadyExists
		}
	}

	period.ID = uuid.NewString()
	period.CreatedAt = time.Now().UTC()
	period.UpdatedAt = period.CreatedAt
	r.periods[period.ID] = period
	return period, nil
}

func (r *PayrollRepository) GetPeriodByID(ctx context.Context, orgID, id string) (payroll.PayrollPeriod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	period, ok := r.periods[id]
	if !ok || period.OrgID != orgID {
		return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
	}
	return period, nil
}

func (r *PayrollRepository) GetPeriodByKey(ctx context.Context, orgID string, month, year int) (payroll.PayrollPeriod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, period := range r.periods {
		if period.OrgID == orgID && period.Month == month && period.Year == year {
			return period, nil
		}
	}
	return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
}

func (r *PayrollRepository) ListPeriods(ctx context.Context, orgID string) ([]payroll.PayrollPeriod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []payroll.PayrollPeriod
	for _, period := range r.periods {
		if period.OrgID == orgID {
			result = append(result, period)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year > result[j].Year
		}
		return result[i].Month > result[j].Month
	})
	return result, nil
}

func (r *PayrollRepository) UpdatePeriodStatus(ctx context.Context, orgID, id string, status payroll.PeriodStatus, lockAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	period, ok := r.periods[id]
	if !ok || period.OrgID != orgID {
		return payroll.ErrPeriodNotFound
	}
	period.Status = status
	period.LockAt = lockAt
	period.UpdatedAt = time.Now().UTC()
	r.periods[id] = period
	return nil
}

func (r *PayrollRepository) UpsertRun(ctx context.Context, run payroll.PayrollRun) (payroll.PayrollRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := runKey(run.PayrollPeriodID, run.EmployeeID)
	now := time.Now().UTC()
	if existing, ok := r.runs[key]; ok {
		run.ID = existing.ID
		run.CreatedAt = existing.CreatedAt
	} else {
		run.ID = uuid.NewString()
		run.CreatedAt = now
	}
	run.UpdatedAt = now
	r.runs[key] = run
	return run, nil
}

func (r *PayrollRepository) GetRun(ctx context.Context, orgID, periodID, employeeID string) (payroll.PayrollRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.runs[runKey(periodID, employeeID)]
	if !ok || run.OrgID != orgID {
		return payroll.PayrollRun{}, payroll.ErrRunNotFound
	}
	return run, nil
}

func (r *PayrollRepository) ListRunsByPeriod(ctx context.Context, orgID, periodID string) ([]payroll.PayrollRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []payroll.PayrollRun
	for _, run := range r.runs {
		if run.OrgID == orgID && run.PayrollPeriodID == periodID {
			result = append(result, run)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].EmployeeID < result[j].EmployeeID
	})
	return result, nil
}

func (r *PayrollRepository) UpdateRunStatus(ctx context.Context, orgID, periodID, employeeID string, from, to payroll.RunStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := runKey(periodID, employeeID)
	run, ok := r.runs[key]
	if !ok || run.OrgID != orgID || run.Status != from {
		return payroll.ErrRunNotFound
	}
	run.Status = to
	run.UpdatedAt = time.Now().UTC()
	r.runs[key] = run
	return nil
}

func (r *PayrollRepository) CreateFiling(ctx context.Context, filing payroll.StatutoryFiling) (payroll.StatutoryFiling, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	filing.ID = uuid.NewString()
	filing.CreatedAt = time.Now().UTC()
	filing.UpdatedAt = filing.CreatedAt
	r.filings[filing.ID] = filing
	return filing, nil
}

func (r *PayrollRepository) GetFilingByID(ctx context.Context, orgID, id string) (payroll.StatutoryFiling, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filing, ok := r.filings[id]
	if !ok || filing.OrgID != orgID {
		return payroll.StatutoryFiling{}, payroll.ErrFilingNotFound
	}
	return filing, nil
}

func (r *PayrollRepository) ListFilingsByPeriod(ctx context.Context, orgID, periodID string) ([]payroll.StatutoryFiling, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []payroll.StatutoryFiling
	for _, filing := range r.filings {
		if filing.OrgID == orgID && filing.PayrollPeriodID == periodID {
			result = append(result, filing)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *PayrollRepository) UpdateFilingStatus(ctx context.Context, orgID, id string, status payroll.FilingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	filing, ok := r.filings[id]
	if !ok || filing.OrgID != orgID {
		return payroll.ErrFilingNotFound
	}
	filing.Status = status
	filing.UpdatedAt = time.Now().UTC()
	r.filings[id] = filing
	return nil
}
