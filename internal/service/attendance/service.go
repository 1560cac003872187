package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/attendance"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/employee"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/schedule"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/pkg/database"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/repository/postgresql"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.TimeLogRepository
	employee.EmployeeRepository
	schedule.ShiftRepository
	grace GraceConfig
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, employeeID string) (attendance.TimeLogResponse, error) {
	if _, err := a.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return attendance.TimeLogResponse{}, err
	}

	var created attendance.TimeLog
	err := postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		// Serializes concurrent clock actions for the same employee so the
		// single-open-log invariant holds.
		if err := a.TimeLogRepository.LockEmployee(txCtx, employeeID); err != nil {
			return err
		}

		open, err := a.TimeLogRepository.GetOpenByEmployee(txCtx, employeeID)
		if err != nil {
			return err
		}
		if open != nil {
			return attendance.ErrAlreadyClockedIn
		}

		created, err = a.TimeLogRepository.Create(txCtx, attendance.TimeLog{
			EmployeeID: employeeID,
			ClockIn:    time.Now().UTC(),
			Source:     "api",
		})
		if err != nil {
			return fmt.Errorf("failed to record clock-in: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.TimeLogResponse{}, err
	}

	return toTimeLogResponse(created), nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, employeeID string) (attendance.TimeLogResponse, error) {
	if _, err := a.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return attendance.TimeLogResponse{}, err
	}

	var closed attendance.TimeLog
	err := postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := a.TimeLogRepository.LockEmployee(txCtx, employeeID); err != nil {
			return err
		}

		open, err := a.TimeLogRepository.GetOpenByEmployee(txCtx, employeeID)
		if err != nil {
			return err
		}
		if open == nil {
			return attendance.ErrNoOpenLog
		}

		closed, err = a.TimeLogRepository.Close(txCtx, open.ID, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to record clock-out: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.TimeLogResponse{}, err
	}

	return toTimeLogResponse(closed), nil
}

// GetAttendanceForEmployee implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendanceForEmployee(ctx context.Context, req attendance.DateRangeRequest) ([]attendance.DailyAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	days, err := a.buildRange(ctx, req)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.DailyAttendanceResponse, 0, len(days))
	for _, day := range days {
		responses = append(responses, toDailyResponse(day))
	}

	return responses, nil
}

// GetSummaryForEmployee implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetSummaryForEmployee(ctx context.Context, req attendance.DateRangeRequest) (attendance.PeriodSummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PeriodSummaryResponse{}, err
	}

	days, err := a.buildRange(ctx, req)
	if err != nil {
		return attendance.PeriodSummaryResponse{}, err
	}

	summary := BuildPeriodSummary(req.EmployeeID, days)

	responseDays := make([]attendance.DailyAttendanceResponse, 0, len(summary.Days))
	for _, day := range summary.Days {
		responseDays = append(responseDays, toDailyResponse(day))
	}

	return attendance.PeriodSummaryResponse{
		EmployeeID:            summary.EmployeeID,
		TotalRenderedHours:    summary.TotalRenderedHours(),
		TotalLateMinutes:      summary.TotalLateMinutes,
		TotalUndertimeMinutes: summary.TotalUndertimeMinutes,
		TotalOvertimeMinutes:  summary.TotalOvertimeMinutes,
		FullDayAbsences:       summary.FullDayAbsences,
		DaysWithShift:         summary.DaysWithShift,
		Days:                  responseDays,
	}, nil
}

// GetAttendanceOverview implements attendance.AttendanceService. Only
// employees with at least one shift on the date are listed.
func (a *AttendanceServiceImpl) GetAttendanceOverview(ctx context.Context, req attendance.OverviewRequest) (attendance.OverviewResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.OverviewResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	scheduledIDs, err := a.ShiftRepository.EmployeeIDsWithShiftOnDate(ctx, date)
	if err != nil {
		return attendance.OverviewResponse{}, err
	}
	if req.EmployeeID != nil {
		filtered := scheduledIDs[:0]
		for _, id := range scheduledIDs {
			if id == *req.EmployeeID {
				filtered = append(filtered, id)
			}
		}
		scheduledIDs = filtered
	}

	employees, total, err := a.EmployeeRepository.ListActiveByIDsPaged(ctx, scheduledIDs, req.Page, req.PageSize)
	if err != nil {
		return attendance.OverviewResponse{}, err
	}

	pageIDs := make([]string, 0, len(employees))
	for _, emp := range employees {
		pageIDs = append(pageIDs, emp.ID)
	}

	logs, err := a.TimeLogRepository.ListForEmployeesOnDate(ctx, pageIDs, date)
	if err != nil {
		return attendance.OverviewResponse{}, err
	}
	logsByEmployee := map[string][]attendance.TimeLog{}
	for _, log := range logs {
		logsByEmployee[log.EmployeeID] = append(logsByEmployee[log.EmployeeID], log)
	}

	shifts, err := a.ShiftRepository.ListForDate(ctx, date)
	if err != nil {
		return attendance.OverviewResponse{}, err
	}
	shiftsByEmployee := map[string][]schedule.Shift{}
	for _, sh := range shifts {
		shiftsByEmployee[sh.EmployeeID] = append(shiftsByEmployee[sh.EmployeeID], sh)
	}

	rows := make([]attendance.OverviewRow, 0, len(employees))
	for _, emp := range employees {
		day := BuildDailyAttendance(date, logsByEmployee[emp.ID], shiftsByEmployee[emp.ID], a.grace)
		rows = append(rows, attendance.OverviewRow{
			EmployeeID:   emp.ID,
			EmployeeName: emp.FullName,
			Attendance:   toDailyResponse(day),
		})
	}

	return attendance.OverviewResponse{
		Date:       req.Date,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalCount: total,
		Rows:       rows,
	}, nil
}

func (a *AttendanceServiceImpl) buildRange(ctx context.Context, req attendance.DateRangeRequest) ([]attendance.DailyAttendance, error) {
	if _, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	endOfRange := end.AddDate(0, 0, 1).Add(-time.Nanosecond)

	logs, err := a.TimeLogRepository.ListForEmployeeInRange(ctx, req.EmployeeID, start, endOfRange)
	if err != nil {
		return nil, err
	}
	shifts, err := a.ShiftRepository.ListForEmployeeInRange(ctx, req.EmployeeID, start, endOfRange)
	if err != nil {
		return nil, err
	}

	return BuildDailyRange(logs, shifts, a.grace), nil
}

func toTimeLogResponse(log attendance.TimeLog) attendance.TimeLogResponse {
	return attendance.TimeLogResponse{
		ID:         log.ID,
		EmployeeID: log.EmployeeID,
		ClockIn:    log.ClockIn.Format(time.RFC3339),
		ClockOut:   timePtrToString(log.ClockOut),
		Source:     log.Source,
	}
}

func toDailyResponse(day attendance.DailyAttendance) attendance.DailyAttendanceResponse {
	return attendance.DailyAttendanceResponse{
		Date:             day.Date.Format("2006-01-02"),
		FirstIn:          timePtrToString(day.FirstIn),
		LastOut:          timePtrToString(day.LastOut),
		WorkedHours:      day.TotalWorked.Hours(),
		ScheduledStart:   timePtrToString(day.ScheduledStart),
		ScheduledEnd:     timePtrToString(day.ScheduledEnd),
		ScheduledHours:   day.ScheduledHours,
		HasLogs:          day.HasLogs,
		IsLate:           day.IsLate,
		IsUndertime:      day.IsUndertime,
		IsOvertime:       day.IsOvertime,
		IsAbsent:         day.IsAbsent,
		LateMinutes:      day.LateMinutes,
		UndertimeMinutes: day.UndertimeMinutes,
		OvertimeMinutes:  day.OvertimeMinutes,
	}
}

func NewAttendanceService(
	db *database.DB,
	timeLogRepo attendance.TimeLogRepository,
	employeeRepo employee.EmployeeRepository,
	shiftRepo schedule.ShiftRepository,
	grace GraceConfig,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                 db,
		TimeLogRepository:  timeLogRepo,
		EmployeeRepository: employeeRepo,
		ShiftRepository:    shiftRepo,
		grace:              grace,
	}
}
