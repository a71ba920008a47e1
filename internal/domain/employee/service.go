package employee

import "context"

// EmployeeService exposes the thin roster slice payroll depends on.
type EmployeeService interface {
	CreateEmployee(ctx context.Context, orgID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetEmployee(ctx context.Context, orgID, id string) (EmployeeResponse, error)
	ListActiveEmployees(ctx context.Context, orgID string) ([]EmployeeResponse, error)
}
