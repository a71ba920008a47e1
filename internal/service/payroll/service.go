package payroll

import (
	"sync"
	"time"

	"github.com/paylane-hq/payroll-backend-go/internal/domain/attendance"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/catalog"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/compensation"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/employee"
	"github.com/paylane-hq/payroll-backend-go/internal/domain/payroll"
	"github.com/paylane-hq/payroll-backend-go/internal/pkg/storage"
)

type PayrollServiceImpl struct {
	payrollRepo      payroll.PayrollRepository
	employeeRepo     employee.EmployeeRepository
	componentRepo    catalog.ComponentRepository
	compensationSvc  compensation.CompensationService
	attendanceSvc    attendance.AttendanceService
	evaluator        payroll.RuleEvaluator
	documents        storage.DocumentStore
	evaluatorTimeout time.Duration
	batchWorkers     int

	// periodLocks serializes period-status transitions against in-flight
	// bulk run operations on the same period.
	periodLocks sync.Map // period id -> *sync.Mutex
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	componentRepo catalog.ComponentRepository,
	compensationSvc compensation.CompensationService,
	attendanceSvc attendance.AttendanceService,
	evaluator payroll.RuleEvaluator,
	documents storage.DocumentStore,
	evaluatorTimeout time.Duration,
	batchWorkers int,
) payroll.PayrollService {
	if batchWorkers < 1 {
		batchWorkers = 1
	}
	return &PayrollServiceImpl{
		payrollRepo:      payrollRepo,
		employeeRepo:     employeeRepo,
		componentRepo:    componentRepo,
		compensationSvc:  compensationSvc,
		attendanceSvc:    attendanceSvc,
		evaluator:        evaluator,
		documents:        documents,
		evaluatorTimeout: evaluatorTimeout,
		batchWorkers:     batchWorkers,
	}
}

func (s *PayrollServiceImpl) periodMutex(periodID string) *sync.Mutex {
	mu, _ := s.periodLocks.LoadOrStore(periodID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
