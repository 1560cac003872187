package schedule

import (
	"context"
	"time"

	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/employee"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/schedule"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/pkg/validator"
)

type ScheduleServiceImpl struct {
	schedule.ShiftRepository
	employee.EmployeeRepository
}

// CreateShift implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) CreateShift(ctx context.Context, req schedule.CreateShiftRequest) (schedule.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ShiftResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return schedule.ShiftResponse{}, err
	}

	start, _ := time.Parse(time.RFC3339, req.Start)
	end, _ := time.Parse(time.RFC3339, req.End)

	created, err := s.ShiftRepository.Create(ctx, schedule.Shift{
		EmployeeID: req.EmployeeID,
		Start:      start,
		End:        end,
		GroupName:  req.GroupName,
	})
	if err != nil {
		return schedule.ShiftResponse{}, err
	}
	created.EmployeeName = emp.FullName

	return toShiftResponse(created), nil
}

// UpdateShift implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) UpdateShift(ctx context.Context, req schedule.UpdateShiftRequest) (schedule.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ShiftResponse{}, err
	}

	existing, err := s.ShiftRepository.GetByID(ctx, req.ShiftID)
	if err != nil {
		return schedule.ShiftResponse{}, err
	}

	existing.Start, _ = time.Parse(time.RFC3339, req.Start)
	existing.End, _ = time.Parse(time.RFC3339, req.End)
	existing.GroupName = req.GroupName

	updated, err := s.ShiftRepository.Update(ctx, existing)
	if err != nil {
		return schedule.ShiftResponse{}, err
	}

	return toShiftResponse(updated), nil
}

// DeleteShift implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) DeleteShift(ctx context.Context, shiftID string) error {
	return s.ShiftRepository.Delete(ctx, shiftID)
}

// GetShift implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetShift(ctx context.Context, shiftID string) (schedule.ShiftResponse, error) {
	shift, err := s.ShiftRepository.GetByID(ctx, shiftID)
	if err != nil {
		return schedule.ShiftResponse{}, err
	}

	return toShiftResponse(shift), nil
}

// ListShiftsForEmployee implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListShiftsForEmployee(ctx context.Context, req schedule.ListShiftsRequest) ([]schedule.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	endOfRange := end.AddDate(0, 0, 1).Add(-time.Nanosecond)

	shifts, err := s.ShiftRepository.ListForEmployeeInRange(ctx, req.EmployeeID, start, endOfRange)
	if err != nil {
		return nil, err
	}

	return toShiftResponses(shifts), nil
}

// ListShiftsForDate implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListShiftsForDate(ctx context.Context, date string) ([]schedule.ShiftResponse, error) {
	parsed, ok := validator.IsValidDate(date)
	if !ok {
		return nil, validator.ValidationErrors{
			{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"},
		}
	}

	shifts, err := s.ShiftRepository.ListForDate(ctx, parsed)
	if err != nil {
		return nil, err
	}

	return toShiftResponses(shifts), nil
}

func toShiftResponse(shift schedule.Shift) schedule.ShiftResponse {
	return schedule.ShiftResponse{
		ID:           shift.ID,
		EmployeeID:   shift.EmployeeID,
		EmployeeName: shift.EmployeeName,
		Start:        shift.Start.Format(time.RFC3339),
		End:          shift.End.Format(time.RFC3339),
		GroupName:    shift.GroupName,
	}
}

func toShiftResponses(shifts []schedule.Shift) []schedule.ShiftResponse {
	responses := make([]schedule.ShiftResponse, 0, len(shifts))
	for _, shift := range shifts {
		responses = append(responses, toShiftResponse(shift))
	}
	return responses
}

func NewScheduleService(
	shiftRepo schedule.ShiftRepository,
	employeeRepo employee.EmployeeRepository,
) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		ShiftRepository:    shiftRepo,
		EmployeeRepository: employeeRepo,
	}
}
