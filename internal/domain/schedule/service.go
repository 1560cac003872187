package schedule

import "context"

// ScheduleService defines business logic for shift planning. Create and
// Update reject shifts that overlap an existing shift of the same employee.
type ScheduleService interface {
	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	UpdateShift(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)
	DeleteShift(ctx context.Context, shiftID string) error
	GetShift(ctx context.Context, shiftID string) (ShiftResponse, error)
	ListShiftsForEmployee(ctx context.Context, req ListShiftsRequest) ([]ShiftResponse, error)
	ListShiftsForDate(ctx context.Context, date string) ([]ShiftResponse, error)
}
