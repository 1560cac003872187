package main

import (
	"fmt"
	"net/http"

	"github.com/shiftpay-hq/shiftpay-backend-go/internal/config"
	appHTTP "github.com/shiftpay-hq/shiftpay-backend-go/internal/handler/http"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/pkg/cron"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/pkg/database"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/repository/postgresql"
	attendanceService "github.com/shiftpay-hq/shiftpay-backend-go/internal/service/attendance"
	payrollService "github.com/shiftpay-hq/shiftpay-backend-go/internal/service/payroll"
	scheduleService "github.com/shiftpay-hq/shiftpay-backend-go/internal/service/schedule"
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

	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	timeLogRepo := postgresql.NewTimeLogRepository(db)
	compensationRepo := postgresql.NewCompensationRepository(db)
	payComponentRepo := postgresql.NewPayComponentRepository(db)
	employeeComponentRepo := postgresql.NewEmployeeComponentRepository(db)
	penaltySettingsRepo := postgresql.NewPenaltySettingsRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	grace := attendanceService.GraceConfig{
		LateGraceMinutes:         cfg.Attendance.LateGraceMinutes,
		UndertimeGraceMinutes:    cfg.Attendance.UndertimeGraceMinutes,
		OvertimeThresholdMinutes: cfg.Attendance.OvertimeThresholdMinutes,
	}

	attendanceSvc := attendanceService.NewAttendanceService(db, timeLogRepo, employeeRepo, shiftRepo, grace)
	scheduleSvc := scheduleService.NewScheduleService(shiftRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(
		db,
		payrollRepo,
		compensationRepo,
		payComponentRepo,
		employeeComponentRepo,
		penaltySettingsRepo,
		timeLogRepo,
		shiftRepo,
		grace,
		cfg.Payroll.StandardMonthlyHours,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(timeLogRepo, shiftRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg.App.Env, attendanceHandler, scheduleHandler, payrollHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
