package employee

import (
	"context"

	"github.com/paylane-hq/payroll-backend-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, orgID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing, err := s.employeeRepo.ListActiveByOrgID(ctx, orgID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	for _, e := range existing {
		if e.Code == req.Code {
			return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
		}
	}

	emp, err := s.employeeRepo.Create(ctx, employee.Employee{
		OrgID:  orgID,
		Code:   req.Code,
		Name:   req.Name,
		Active: true,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.MapEmployeeResponse(emp), nil
}

func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, orgID, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.MapEmployeeResponse(emp), nil
}

func (s *EmployeeServiceImpl) ListActiveEmployees(ctx context.Context, orgID string) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.ListActiveByOrgID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	result := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		result = append(result, employee.MapEmployeeResponse(e))
	}
	return result, nil
}
