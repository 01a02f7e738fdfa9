package main

import (
	"fmt"
	"net/http"

	"github.com/geoshift-hq/attendance-backend-go/internal/config"
	appHTTP "github.com/geoshift-hq/attendance-backend-go/internal/handler/http"
	"github.com/geoshift-hq/attendance-backend-go/internal/pkg/clock"
	"github.com/geoshift-hq/attendance-backend-go/internal/pkg/cron"
	"github.com/geoshift-hq/attendance-backend-go/internal/pkg/database"
	"github.com/geoshift-hq/attendance-backend-go/internal/pkg/jwt"
	"github.com/geoshift-hq/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/geoshift-hq/attendance-backend-go/internal/service/attendance"
	branchService "github.com/geoshift-hq/attendance-backend-go/internal/service/branch"
	employeeService "github.com/geoshift-hq/attendance-backend-go/internal/service/employee"
	payrollService "github.com/geoshift-hq/attendance-backend-go/internal/service/payroll"
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

	sessionRepo := postgresql.NewSessionRepository(db)
	branchRepo := postgresql.NewBranchRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	businessRepo := postgresql.NewBusinessRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	clk := clock.System()

	attendanceSvc := attendanceService.NewAttendanceService(
		sessionRepo,
		employeeRepo,
		assignmentRepo,
		branchRepo,
		clk,
	)
	payrollSvc := payrollService.NewPayrollService(
		sessionRepo,
		employeeRepo,
		assignmentRepo,
		branchRepo,
	)
	branchSvc := branchService.NewBranchService(branchRepo, businessRepo)
	employeeSvc := employeeService.NewEmployeeService(
		employeeRepo,
		assignmentRepo,
		branchRepo,
		sessionRepo,
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, clk).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	branchHandler := appHTTP.NewBranchHandler(branchSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		payrollHandler,
		branchHandler,
		employeeHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
