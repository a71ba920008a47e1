package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/compensation"
)

type CompensationRepository struct {
	mu      sync.RWMutex
	records map[string]compensation.CompensationRecord // id -> record
}

func NewCompensationRepository() *CompensationRepository {
	return &CompensationRepository{
		records: make(map[string]compensation.CompensationRecord),
	}
}

func (r *CompensationRepository) Create(ctx context.Context, record compensation.CompensationRecord) (compensation.CompensationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record.ID = uuid.NewString()
	record.CreatedAt = time.Now().UTC()
	record.UpdatedAt = record.CreatedAt
	r.records[record.ID] = record
	return record, nil
}

func (r *CompensationRepository) Update(ctx context.Context, record compensation.CompensationRecord) (compensation.CompensationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.records[record.ID]
	if !ok || existing.OrgID != record.OrgID {
		return compensation.CompensationRecord{}, compensation.ErrRecordNotFound
	}

	record.CreatedAt = existing.CreatedAt
	record.UpdatedAt = time.Now().UTC()
	r.records[record.ID] = record
	return record, nil
}

func (r *CompensationRepository) GetByID(ctx context.Context, orgID, id string) (compensation.CompensationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok || record.OrgID != orgID {
		return compensation.CompensationRecord{}, compensation.ErrRecordNotFound
	}
	return record, nil
}

func (r *CompensationRepository) ListByEmployee(ctx context.Context, orgID, employeeID string) ([]compensation.CompensationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []compensation.CompensationRecord
	for _, record := range r.records {
		if record.OrgID == orgID && record.EmployeeID == employeeID {
			result = append(result, record)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].EffectiveFrom.After(result[j].EffectiveFrom)
	})
	return result, nil
}

func (r *CompensationRepository) ListActiveOn(ctx context.Context, orgID, employeeID string, asOf time.Time) ([]compensation.CompensationRecord, error) {
	records, err := r.ListByEmployee(ctx, orgID, employeeID)
	if err != nil {
		return nil, err
	}

	var result []compensation.CompensationRecord
	for _, record := range records {
		if record.ActiveOn(asOf) {
			result = append(result, record)
		}
	}
	return result, nil
}

func (r *CompensationRepository) CloseEffectiveTo(ctx context.Context, orgID, id string, effectiveTo time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok || record.OrgID != orgID {
		return compensation.ErrRecordNotFound
	}
	record.EffectiveTo = &effectiveTo
	record.UpdatedAt = time.Now().UTC()
	r.records[id] = record
	return nil
}

func (r *CompensationRepository) Transact(ctx context.Context, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	snapshot := make(map[string]compensation.CompensationRecord, len(r.records))
	for id, record := range r.records {
		snapshot[id] = record
	}
	r.mu.Unlock()

	if err := fn(ctx); err != nil {
		r.mu.Lock()
		r.records = snapshot
		r.mu.Unlock()
		return err
	}
	return nil
}
