package employee

import (
	"github.com/paylane-hq/payroll-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID     string `json:"id"`
	OrgID  string `json:"org_id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

func MapEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:     e.ID,
		OrgID:  e.OrgID,
		Code:   e.Code,
		Name:   e.Name,
		Active: e.Active,
	}
}
