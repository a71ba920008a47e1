package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/paylane-hq/payroll-backend-go/internal/config"
	appHTTP "github.com/paylane-hq/payroll-backend-go/internal/handler/http"
	"github.com/paylane-hq/payroll-backend-go/internal/pkg/cron"
	"github.com/paylane-hq/payroll-backend-go/internal/pkg/database"
	"github.com/paylane-hq/payroll-backend-go/internal/pkg/statutory"
	"github.com/paylane-hq/payroll-backend-go/internal/pkg/storage"
	"github.com/paylane-hq/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/paylane-hq/payroll-backend-go/internal/service/attendance"
	catalogService "github.com/paylane-hq/payroll-backend-go/internal/service/catalog"
	compensationService "github.com/paylane-hq/payroll-backend-go/internal/service/compensation"
	employeeService "github.com/paylane-hq/payroll-backend-go/internal/service/employee"
	payrollService "github.com/paylane-hq/payroll-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	componentRepo := postgresql.NewComponentRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	compensationRepo := postgresql.NewCompensationRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	componentSvc := catalogService.NewComponentService(componentRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	compensationSvc := compensationService.NewCompensationService(compensationRepo, componentRepo, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, cfg.Attendance.RestDay)
	evaluator := statutory.NewFlatRateEvaluator(statutory.DefaultProfile())

	documents, err := storage.NewLocalStore(cfg.Storage.FilingPath)
	if err != nil {
		fmt.Println("Error opening filing storage:", err)
		return
	}

	payrollSvc := payrollService.NewPayrollService(
		payrollRepo,
		employeeRepo,
		componentRepo,
		compensationSvc,
		attendanceSvc,
		evaluator,
		documents,
		cfg.Payroll.EvaluatorTimeout,
		cfg.Payroll.BatchWorkers,
	)

	scheduler := cron.NewScheduler()
	periodJobs := cron.NewPeriodJobs(employeeRepo, payrollSvc)
	scheduler.AddJob("ensure-payroll-periods", cfg.Payroll.PeriodEnsureInterval, periodJobs.EnsureCurrentPeriods)
	scheduler.Start()
	defer scheduler.Stop()

	catalogHandler := appHTTP.NewCatalogHandler(componentSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	compensationHandler := appHTTP.NewCompensationHandler(compensationSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	tokenAuth := jwtauth.New("HS256", []byte(cfg.JWT.Secret), nil)
	router := appHTTP.NewRouter(
		tokenAuth,
		catalogHandler,
		employeeHandler,
		compensationHandler,
		attendanceHandler,
		payrollHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Starting server on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
