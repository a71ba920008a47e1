package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/attendance"
)

type AttendanceRepository struct {
	mu    sync.RWMutex
	facts map[string]attendance.AttendanceFact // orgID/employeeID/date -> fact
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{
		facts: make(map[string]attendance.AttendanceFact),
	}
}

func factKey(orgID, employeeID string, date time.Time) string {
	return orgID + "/" + employeeID + "/" + date.Format("2006-01-02")
}

func (r *AttendanceRepository) Upsert(ctx context.Context, fact attendance.AttendanceFact) (attendance.AttendanceFact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := factKey(fact.OrgID, fact.EmployeeID, fact.Date)
	now := time.Now().UTC()
	if existing, ok := r.facts[key]; ok {
		fact.ID = existing.ID
		fact.CreatedAt = existing.CreatedAt
	} else {
		fact.ID = uuid.NewString()
		fact.CreatedAt = now
	}
	fact.UpdatedAt = now
	r.facts[key] = fact
	return fact, nil
}

func (r *AttendanceRepository) ListByEmployeeRange(ctx context.Context, orgID, employeeID string, start, end time.Time) ([]attendance.AttendanceFact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []attendance.AttendanceFact
	for _, fact := range r.facts {
		if fact.OrgID != orgID || fact.EmployeeID != employeeID {
			continue
		}
		if fact.Date.Before(start) || fact.Date.After(end) {
			continue
		}
		result = append(result, fact)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}
