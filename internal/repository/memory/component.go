// Package memory provides in-process repository implementations backed by
// maps and mutexes. They honor the same sentinel-error contracts as the
// postgresql implementations and back the service test suites.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/catalog"
)

type ComponentRepository struct {
	mu         sync.RWMutex
	components map[string]catalog.PayComponent // id -> component
	referenced map[string]bool                 // orgID/code -> referenced
}

func NewComponentRepository() *ComponentRepository {
	return &ComponentRepository{
		components: make(map[string]catalog.PayComponent),
		referenced: make(map[string]bool),
	}
}

// MarkReferenced simulates a compensation record or run referencing the code.
func (r *ComponentRepository) MarkReferenced(orgID, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.referenced[orgID+"/"+code] = true
}

func (r *ComponentRepository) Create(ctx context.Context, component catalog.PayComponent) (catalog.PayComponent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.components {
		if existing.OrgID == component.OrgID && existing.Code == component.Code {
			return catalog.PayComponent{}, catalog.ErrComponentCodeExists
		}
	}

	component.ID = uuid.NewString()
	component.CreatedAt = time.Now().UTC()
	component.UpdatedAt = component.CreatedAt
	r.components[component.ID] = component
	return component, nil
}

func (r *ComponentRepository) GetByCode(ctx context.Context, orgID, code string) (catalog.PayComponent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.components {
		if c.OrgID == orgID && c.Code == code {
			return c, nil
		}
	}
	return catalog.PayComponent{}, catalog.ErrComponentNotFound
}

func (r *ComponentRepository) ListByOrgID(ctx context.Context, orgID string, activeOnly bool) ([]catalog.PayComponent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []catalog.PayComponent
	for _, c := range r.components {
		if c.OrgID != orgID {
			continue
		}
		if activeOnly && !c.Active {
			continue
		}
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SortOrder != result[j].SortOrder {
			return result[i].SortOrder < result[j].SortOrder
		}
		return result[i].Code < result[j].Code
	})
	return result, nil
}

func (r *ComponentRepository) Update(ctx context.Context, orgID string, req catalog.UpdateComponentRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.components {
		if c.OrgID != orgID || c.Code != req.Code {
			continue
		}
		if req.Name != nil {
			c.Name = *req.Name
		}
		if req.CalcMethod != nil {
			c.CalcMethod = catalog.CalcMethod(*req.CalcMethod)
		}
		if req.CalcValue != nil {
			c.CalcValue = *req.CalcValue
		}
		if req.Taxable != nil {
			c.Taxable = *req.Taxable
		}
		if req.PFWageParticipates != nil {
			c.PFWageParticipates = *req.PFWageParticipates
		}
		if req.ESICWageParticipates != nil {
			c.ESICWageParticipates = *req.ESICWageParticipates
		}
		if req.NonProrated != nil {
			c.NonProrated = *req.NonProrated
		}
		if req.SortOrder != nil {
			c.SortOrder = *req.SortOrder
		}
		if req.Active != nil {
			c.Active = *req.Active
		}
		c.UpdatedAt = time.Now().UTC()
		r.components[id] = c
		return nil
	}
	return catalog.ErrComponentNotFound
}

func (r *ComponentRepository) Deactivate(ctx context.Context, orgID, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.components {
		if c.OrgID == orgID && c.Code == code {
			c.Active = false
			c.UpdatedAt = time.Now().UTC()
			r.components[id] = c
			return nil
		}
	}
	return catalog.ErrComponentNotFound
}

func (r *ComponentRepository) Delete(ctx context.Context, orgID, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.components {
		if c.OrgID == orgID && c.Code == code {
			delete(r.components, id)
			return nil
		}
	}
	return catalog.ErrComponentNotFound
}

func (r *ComponentRepository) IsReferenced(ctx context.Context, orgID, code string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.referenced[orgID+"/"+code], nil
}
