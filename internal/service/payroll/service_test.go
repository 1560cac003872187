package payroll

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/attendance"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/payroll"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/schedule"
	attendancesvc "github.com/shiftpay-hq/shiftpay-backend-go/internal/service/attendance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========== IN-MEMORY REPOSITORIES ==========

type fakePayrollRepo struct {
	periods map[string]payroll.PayrollPeriod
	entries map[string]payroll.PayrollEntry
	lines   map[string][]payroll.PayrollLine
	seq     int
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		periods: map[string]payroll.PayrollPeriod{},
		entries: map[string]payroll.PayrollEntry{},
		lines:   map[string][]payroll.PayrollLine{},
	}
}

func (f *fakePayrollRepo) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakePayrollRepo) CreatePeriod(_ context.Context, period payroll.PayrollPeriod) (payroll.PayrollPeriod, error) {
	period.ID = f.nextID("period")
	period.CreatedAt = time.Now().UTC()
	f.periods[period.ID] = period
	return period, nil
}

func (f *fakePayrollRepo) GetPeriodByID(_ context.Context, id string) (payroll.PayrollPeriod, error) {
	period, ok := f.periods[id]
	if !ok {
		return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
	}
	return period, nil
}

func (f *fakePayrollRepo) ListPeriods(_ context.Context) ([]payroll.PayrollPeriod, error) {
	periods := make([]payroll.PayrollPeriod, 0, len(f.periods))
	for _, period := range f.periods {
		periods = append(periods, period)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].StartDate.After(periods[j].StartDate) })
	return periods, nil
}

func (f *fakePayrollRepo) GetEntryByID(_ context.Context, id string) (payroll.PayrollEntry, error) {
	entry, ok := f.entries[id]
	if !ok {
		return payroll.PayrollEntry{}, payroll.ErrEntryNotFound
	}
	entry.Lines = append([]payroll.PayrollLine(nil), f.lines[id]...)
	return entry, nil
}

func (f *fakePayrollRepo) ListEntriesForPeriod(_ context.Context, periodID string) ([]payroll.PayrollEntry, error) {
	entries := []payroll.PayrollEntry{}
	for id, entry := range f.entries {
		if entry.PayrollPeriodID != periodID {
			continue
		}
		entry.Lines = append([]payroll.PayrollLine(nil), f.lines[id]...)
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].EmployeeID < entries[j].EmployeeID })
	return entries, nil
}

func (f *fakePayrollRepo) CreateEntry(_ context.Context, entry payroll.PayrollEntry) (payroll.PayrollEntry, error) {
	entry.ID = f.nextID("entry")
	entry.CalculatedAt = time.Now().UTC()
	stored := entry
	stored.Lines = nil
	f.entries[entry.ID] = stored
	return entry, nil
}

func (f *fakePayrollRepo) UpdateEntryTotals(_ context.Context, entry payroll.PayrollEntry) error {
	stored, ok := f.entries[entry.ID]
	if !ok {
		return payroll.ErrEntryNotFound
	}
	stored.TotalHoursWorked = entry.TotalHoursWorked
	stored.BasePay = entry.BasePay
	stored.TotalDeductions = entry.TotalDeductions
	stored.TotalBonuses = entry.TotalBonuses
	stored.NetPay = entry.NetPay
	stored.CalculatedAt = time.Now().UTC()
	f.entries[entry.ID] = stored
	return nil
}

func (f *fakePayrollRepo) DeleteEntry(_ context.Context, id string) error {
	if _, ok := f.entries[id]; !ok {
		return payroll.ErrEntryNotFound
	}
	delete(f.entries, id)
	delete(f.lines, id)
	return nil
}

func (f *fakePayrollRepo) InsertLines(_ context.Context, lines []payroll.PayrollLine) error {
	for _, line := range lines {
		if line.ID == "" {
			line.ID = f.nextID("line")
		}
		line.CreatedAt = time.Now().UTC()
		f.lines[line.PayrollEntryID] = append(f.lines[line.PayrollEntryID], line)
	}
	return nil
}

func (f *fakePayrollRepo) UpdateLine(_ context.Context, line payroll.PayrollLine) error {
	lines := f.lines[line.PayrollEntryID]
	for i := range lines {
		if lines[i].ID == line.ID {
			lines[i] = line
			return nil
		}
	}
	return payroll.ErrLineNotFound
}

func (f *fakePayrollRepo) DeleteAutoLines(_ context.Context, entryID string) error {
	kept := []payroll.PayrollLine{}
	for _, line := range f.lines[entryID] {
		if !line.IsAutoGenerated {
			kept = append(kept, line)
		}
	}
	f.lines[entryID] = kept
	return nil
}

func (f *fakePayrollRepo) GetLineByID(_ context.Context, id string) (payroll.PayrollLine, error) {
	for _, lines := range f.lines {
		for _, line := range lines {
			if line.ID == id {
				return line, nil
			}
		}
	}
	return payroll.PayrollLine{}, payroll.ErrLineNotFound
}

func (f *fakePayrollRepo) DeleteLine(_ context.Context, id string) error {
	for entryID, lines := range f.lines {
		for i, line := range lines {
			if line.ID == id {
				f.lines[entryID] = append(lines[:i:i], lines[i+1:]...)
				return nil
			}
		}
	}
	return payroll.ErrLineNotFound
}

func (f *fakePayrollRepo) LockPeriod(_ context.Context, _ string) error { return nil }

type fakeCompensationRepo struct {
	byEmployee map[string]payroll.Compensation
}

func (f *fakeCompensationRepo) GetByEmployee(_ context.Context, employeeID string) (payroll.Compensation, error) {
	comp, ok := f.byEmployee[employeeID]
	if !ok {
		return payroll.Compensation{}, payroll.ErrCompensationNotFound
	}
	return comp, nil
}

func (f *fakeCompensationRepo) ListByEmployees(_ context.Context, employeeIDs []string) ([]payroll.Compensation, error) {
	comps := []payroll.Compensation{}
	for _, id := range employeeIDs {
		if comp, ok := f.byEmployee[id]; ok {
			comps = append(comps, comp)
		}
	}
	return comps, nil
}

func (f *fakeCompensationRepo) Upsert(_ context.Context, comp payroll.Compensation) (payroll.Compensation, error) {
	f.byEmployee[comp.EmployeeID] = comp
	return comp, nil
}

type fakeComponentRepo struct {
	byID map[string]payroll.PayComponent
}

func (f *fakeComponentRepo) Create(_ context.Context, component payroll.PayComponent) (payroll.PayComponent, error) {
	component.ID = fmt.Sprintf("comp-%d", len(f.byID)+1)
	component.IsActive = true
	f.byID[component.ID] = component
	return component, nil
}

func (f *fakeComponentRepo) GetByID(_ context.Context, id string) (payroll.PayComponent, error) {
	component, ok := f.byID[id]
	if !ok {
		return payroll.PayComponent{}, payroll.ErrPayComponentNotFound
	}
	return component, nil
}

func (f *fakeComponentRepo) List(_ context.Context, activeOnly bool) ([]payroll.PayComponent, error) {
	components := []payroll.PayComponent{}
	for _, component := range f.byID {
		if activeOnly && !component.IsActive {
			continue
		}
		components = append(components, component)
	}
	return components, nil
}

func (f *fakeComponentRepo) Update(_ context.Context, req payroll.UpdatePayComponentRequest) (payroll.PayComponent, error) {
	component, ok := f.byID[req.ID]
	if !ok {
		return payroll.PayComponent{}, payroll.ErrPayComponentNotFound
	}
	if req.Name != nil {
		component.Name = *req.Name
	}
	if req.DefaultRate != nil {
		component.DefaultRate = *req.DefaultRate
	}
	if req.IsActive != nil {
		component.IsActive = *req.IsActive
	}
	f.byID[req.ID] = component
	return component, nil
}

type fakeAssignmentRepo struct {
	assignments []payroll.EmployeeComponent
}

func (f *fakeAssignmentRepo) ListByEmployee(_ context.Context, employeeID string) ([]payroll.EmployeeComponent, error) {
	matched := []payroll.EmployeeComponent{}
	for _, assignment := range f.assignments {
		if assignment.EmployeeID == employeeID {
			matched = append(matched, assignment)
		}
	}
	return matched, nil
}

func (f *fakeAssignmentRepo) ListActiveByEmployee(_ context.Context, employeeID string) ([]payroll.EmployeeComponent, error) {
	matched := []payroll.EmployeeComponent{}
	for _, assignment := range f.assignments {
		if assignment.EmployeeID == employeeID && assignment.IsActive {
			matched = append(matched, assignment)
		}
	}
	return matched, nil
}

func (f *fakeAssignmentRepo) ListActiveByEmployees(_ context.Context, employeeIDs []string) ([]payroll.EmployeeComponent, error) {
	wanted := map[string]struct{}{}
	for _, id := range employeeIDs {
		wanted[id] = struct{}{}
	}
	matched := []payroll.EmployeeComponent{}
	for _, assignment := range f.assignments {
		if _, ok := wanted[assignment.EmployeeID]; ok && assignment.IsActive {
			matched = append(matched, assignment)
		}
	}
	return matched, nil
}

func (f *fakeAssignmentRepo) Assign(_ context.Context, assignment payroll.EmployeeComponent) (payroll.EmployeeComponent, error) {
	assignment.ID = fmt.Sprintf("assign-%d", len(f.assignments)+1)
	assignment.IsActive = true
	f.assignments = append(f.assignments, assignment)
	return assignment, nil
}

func (f *fakeAssignmentRepo) Deactivate(_ context.Context, id string) error {
	for i := range f.assignments {
		if f.assignments[i].ID == id {
			f.assignments[i].IsActive = false
			return nil
		}
	}
	return payroll.ErrEmployeeComponentNotFound
}

type fakeSettingsRepo struct {
	settings payroll.PenaltySettings
}

func (f *fakeSettingsRepo) GetOrCreate(_ context.Context) (payroll.PenaltySettings, error) {
	if f.settings.ID == "" {
		f.settings.ID = "settings-1"
	}
	return f.settings, nil
}

func (f *fakeSettingsRepo) Update(_ context.Context, settings payroll.PenaltySettings) (payroll.PenaltySettings, error) {
	f.settings = settings
	return settings, nil
}

type fakeTimeLogRepo struct {
	logs []attendance.TimeLog
}

func (f *fakeTimeLogRepo) Create(_ context.Context, log attendance.TimeLog) (attendance.TimeLog, error) {
	log.ID = fmt.Sprintf("log-%d", len(f.logs)+1)
	f.logs = append(f.logs, log)
	return log, nil
}

func (f *fakeTimeLogRepo) Close(_ context.Context, id string, clockOut time.Time) (attendance.TimeLog, error) {
	for i := range f.logs {
		if f.logs[i].ID == id && f.logs[i].ClockOut == nil {
			f.logs[i].ClockOut = &clockOut
			return f.logs[i], nil
		}
	}
	return attendance.TimeLog{}, attendance.ErrTimeLogNotFound
}

func (f *fakeTimeLogRepo) GetOpenByEmployee(_ context.Context, employeeID string) (*attendance.TimeLog, error) {
	for i := range f.logs {
		if f.logs[i].EmployeeID == employeeID && f.logs[i].ClockOut == nil {
			log := f.logs[i]
			return &log, nil
		}
	}
	return nil, nil
}

func (f *fakeTimeLogRepo) ListForEmployeeInRange(_ context.Context, employeeID string, start, end time.Time) ([]attendance.TimeLog, error) {
	matched := []attendance.TimeLog{}
	for _, log := range f.logs {
		if log.EmployeeID == employeeID && !log.ClockIn.Before(start) && !log.ClockIn.After(end) {
			matched = append(matched, log)
		}
	}
	return matched, nil
}

func (f *fakeTimeLogRepo) ListForEmployeesOnDate(_ context.Context, employeeIDs []string, date time.Time) ([]attendance.TimeLog, error) {
	wanted := map[string]struct{}{}
	for _, id := range employeeIDs {
		wanted[id] = struct{}{}
	}
	matched := []attendance.TimeLog{}
	for _, log := range f.logs {
		if _, ok := wanted[log.EmployeeID]; ok && log.ClockIn.Truncate(24*time.Hour).Equal(date) {
			matched = append(matched, log)
		}
	}
	return matched, nil
}

func (f *fakeTimeLogRepo) EmployeeIDsWithLogInRange(_ context.Context, start, end time.Time) ([]string, error) {
	seen := map[string]struct{}{}
	ids := []string{}
	for _, log := range f.logs {
		if log.ClockIn.Before(start) || log.ClockIn.After(end) {
			continue
		}
		if _, ok := seen[log.EmployeeID]; ok {
			continue
		}
		seen[log.EmployeeID] = struct{}{}
		ids = append(ids, log.EmployeeID)
	}
	sort.Strings(ids)
	return ids, nil
}

func (f *fakeTimeLogRepo) ListStaleOpen(_ context.Context, cutoff time.Time) ([]attendance.TimeLog, error) {
	stale := []attendance.TimeLog{}
	for _, log := range f.logs {
		if log.ClockOut == nil && log.ClockIn.Before(cutoff) {
			stale = append(stale, log)
		}
	}
	return stale, nil
}

func (f *fakeTimeLogRepo) LockEmployee(_ context.Context, _ string) error { return nil }

type fakeShiftRepo struct {
	shifts []schedule.Shift
}

func (f *fakeShiftRepo) Create(_ context.Context, shift schedule.Shift) (schedule.Shift, error) {
	shift.ID = fmt.Sprintf("shift-%d", len(f.shifts)+1)
	f.shifts = append(f.shifts, shift)
	return shift, nil
}

func (f *fakeShiftRepo) Update(_ context.Context, shift schedule.Shift) (schedule.Shift, error) {
	for i := range f.shifts {
		if f.shifts[i].ID == shift.ID {
			f.shifts[i] = shift
			return shift, nil
		}
	}
	return schedule.Shift{}, schedule.ErrShiftNotFound
}

func (f *fakeShiftRepo) Delete(_ context.Context, id string) error {
	for i := range f.shifts {
		if f.shifts[i].ID == id {
			f.shifts = append(f.shifts[:i:i], f.shifts[i+1:]...)
			return nil
		}
	}
	return schedule.ErrShiftNotFound
}

func (f *fakeShiftRepo) GetByID(_ context.Context, id string) (schedule.Shift, error) {
	for _, shift := range f.shifts {
		if shift.ID == id {
			return shift, nil
		}
	}
	return schedule.Shift{}, schedule.ErrShiftNotFound
}

func (f *fakeShiftRepo) ListForEmployeeInRange(_ context.Context, employeeID string, start, end time.Time) ([]schedule.Shift, error) {
	matched := []schedule.Shift{}
	for _, shift := range f.shifts {
		if shift.EmployeeID == employeeID && !shift.Start.Before(start) && !shift.Start.After(end) {
			matched = append(matched, shift)
		}
	}
	return matched, nil
}

func (f *fakeShiftRepo) ListForDate(_ context.Context, date time.Time) ([]schedule.Shift, error) {
	matched := []schedule.Shift{}
	for _, shift := range f.shifts {
		if shift.Start.Truncate(24 * time.Hour).Equal(date) {
			matched = append(matched, shift)
		}
	}
	return matched, nil
}

func (f *fakeShiftRepo) EmployeeIDsWithShiftOnDate(_ context.Context, date time.Time) ([]string, error) {
	seen := map[string]struct{}{}
	ids := []string{}
	for _, shift := range f.shifts {
		if !shift.Start.Truncate(24 * time.Hour).Equal(date) {
			continue
		}
		if _, ok := seen[shift.EmployeeID]; ok {
			continue
		}
		seen[shift.EmployeeID] = struct{}{}
		ids = append(ids, shift.EmployeeID)
	}
	return ids, nil
}

func (f *fakeShiftRepo) EmployeeIDsWithShiftOverlapping(_ context.Context, start, end time.Time) ([]string, error) {
	seen := map[string]struct{}{}
	ids := []string{}
	for _, shift := range f.shifts {
		if shift.Start.After(end) || shift.End.Before(start) {
			continue
		}
		if _, ok := seen[shift.EmployeeID]; ok {
			continue
		}
		seen[shift.EmployeeID] = struct{}{}
		ids = append(ids, shift.EmployeeID)
	}
	sort.Strings(ids)
	return ids, nil
}

// ========== FIXTURE ==========

type payrollFixture struct {
	service     *PayrollServiceImpl
	payrolls    *fakePayrollRepo
	comps       *fakeCompensationRepo
	components  *fakeComponentRepo
	assignments *fakeAssignmentRepo
	settings    *fakeSettingsRepo
	timeLogs    *fakeTimeLogRepo
	shifts      *fakeShiftRepo
}

func newPayrollFixture() *payrollFixture {
	fx := &payrollFixture{
		payrolls:    newFakePayrollRepo(),
		comps:       &fakeCompensationRepo{byEmployee: map[string]payroll.Compensation{}},
		components:  &fakeComponentRepo{byID: map[string]payroll.PayComponent{}},
		assignments: &fakeAssignmentRepo{},
		settings:    &fakeSettingsRepo{},
		timeLogs:    &fakeTimeLogRepo{},
		shifts:      &fakeShiftRepo{},
	}
	fx.service = &PayrollServiceImpl{
		PayrollRepository:           fx.payrolls,
		CompensationRepository:      fx.comps,
		PayComponentRepository:      fx.components,
		EmployeeComponentRepository: fx.assignments,
		PenaltySettingsRepository:   fx.settings,
		timeLogRepo:                 fx.timeLogs,
		shiftRepo:                   fx.shifts,
		inTx: func(ctx context.Context, fn func(tx pgx.Tx) error) error {
			return fn(nil)
		},
		grace: attendancesvc.GraceConfig{
			LateGraceMinutes:         5,
			UndertimeGraceMinutes:    5,
			OvertimeThresholdMinutes: 5,
		},
		standardMonthlyHours: 160,
	}
	return fx
}

// seedMarchPeriod stores a March period and one hourly employee, "emp-1", who
// worked the 10th from 09:06 to 17:00 against a 09:00-17:00 shift with a
// late penalty of 2 per minute: base 790, one graced late minute, net 788.
func (fx *payrollFixture) seedMarchPeriod(t *testing.T) string {
	t.Helper()

	period, err := fx.service.CreatePeriod(context.Background(), payroll.CreatePeriodRequest{
		Name:      "March 2025",
		StartDate: "2025-03-01",
		EndDate:   "2025-03-31",
	})
	require.NoError(t, err)

	fx.comps.byEmployee["emp-1"] = payroll.Compensation{EmployeeID: "emp-1", HourlyRate: decPtr("100")}
	fx.settings.settings = payroll.PenaltySettings{LatePenaltyPerMinute: dec("2")}

	clockIn := time.Date(2025, 3, 10, 9, 6, 0, 0, time.UTC)
	clockOut := time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)
	fx.timeLogs.logs = append(fx.timeLogs.logs, attendance.TimeLog{
		ID:         "log-emp-1",
		EmployeeID: "emp-1",
		ClockIn:    clockIn,
		ClockOut:   &clockOut,
	})
	fx.shifts.shifts = append(fx.shifts.shifts, schedule.Shift{
		ID:         "shift-emp-1",
		EmployeeID: "emp-1",
		Start:      time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		End:        time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC),
	})

	return period.ID
}

func findResponseLine(t *testing.T, lines []payroll.LineResponse, code string) payroll.LineResponse {
	t.Helper()
	for _, line := range lines {
		if line.Code == code {
			return line
		}
	}
	t.Fatalf("no line with code %s", code)
	return payroll.LineResponse{}
}

func countResponseLines(lines []payroll.LineResponse, code string) int {
	count := 0
	for _, line := range lines {
		if line.Code == code {
			count++
		}
	}
	return count
}

// ========== TESTS ==========

func TestGeneratePayrollForPeriod_RegenerateTwiceProducesSameResult(t *testing.T) {
	fx := newPayrollFixture()
	periodID := fx.seedMarchPeriod(t)
	ctx := context.Background()

	first, err := fx.service.GeneratePayrollForPeriod(ctx, periodID)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.True(t, first[0].NetPay.Equal(dec("788")), "net pay %s", first[0].NetPay)

	second, err := fx.service.GeneratePayrollForPeriod(ctx, periodID)
	require.NoError(t, err)
	require.Len(t, second, 1)

	// The same entry is reused, auto lines are replaced rather than stacked.
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Len(t, second[0].Lines, len(first[0].Lines))
	assert.Equal(t, 1, countResponseLines(second[0].Lines, payroll.LineCodeBase))
	assert.Equal(t, 1, countResponseLines(second[0].Lines, payroll.LineCodeLate))
	assert.True(t, second[0].BasePay.Equal(first[0].BasePay))
	assert.True(t, second[0].NetPay.Equal(first[0].NetPay))
}

func TestGeneratePayrollForPeriod_ManualLinesSurviveRegeneration(t *testing.T) {
	fx := newPayrollFixture()
	periodID := fx.seedMarchPeriod(t)
	ctx := context.Background()

	entries, err := fx.service.GeneratePayrollForPeriod(ctx, periodID)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	adjusted, err := fx.service.AddAdjustment(ctx, payroll.AddAdjustmentRequest{
		EntryID: entries[0].ID,
		Type:    "Deduction",
		Label:   "Cash advance",
		Amount:  dec("50"),
	})
	require.NoError(t, err)
	assert.True(t, adjusted.NetPay.Equal(dec("738")), "net pay %s", adjusted.NetPay)

	regenerated, err := fx.service.GeneratePayrollForPeriod(ctx, periodID)
	require.NoError(t, err)
	require.Len(t, regenerated, 1)

	manual := findResponseLine(t, regenerated[0].Lines, payroll.LineCodeManual)
	assert.Equal(t, "Cash advance", manual.Description)
	assert.False(t, manual.IsAutoGenerated)
	assert.True(t, regenerated[0].NetPay.Equal(dec("738")), "net pay %s", regenerated[0].NetPay)
}

func TestGeneratePayrollForPeriod_DeletesEntriesForEmployeesWithNoActivity(t *testing.T) {
	fx := newPayrollFixture()
	periodID := fx.seedMarchPeriod(t)
	ctx := context.Background()

	// A leftover entry from a previous run for an employee with no logs or
	// shifts in the period anymore.
	stale, err := fx.payrolls.CreateEntry(ctx, payroll.PayrollEntry{
		PayrollPeriodID:  periodID,
		EmployeeID:       "emp-gone",
		TotalHoursWorked: decimal.Zero,
		BasePay:          decimal.Zero,
		TotalDeductions:  decimal.Zero,
		TotalBonuses:     decimal.Zero,
		NetPay:           decimal.Zero,
	})
	require.NoError(t, err)

	entries, err := fx.service.GeneratePayrollForPeriod(ctx, periodID)
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "emp-1", entries[0].EmployeeID)
	_, err = fx.payrolls.GetEntryByID(ctx, stale.ID)
	assert.ErrorIs(t, err, payroll.ErrEntryNotFound)
}

func TestGeneratePayrollForPeriod_SkipsEmployeesWithNoImpact(t *testing.T) {
	fx := newPayrollFixture()
	periodID := fx.seedMarchPeriod(t)
	ctx := context.Background()

	// An open log keeps the employee in the active set but contributes no
	// worked time; with no shift and no components there is nothing to pay.
	fx.timeLogs.logs = append(fx.timeLogs.logs, attendance.TimeLog{
		ID:         "log-emp-idle",
		EmployeeID: "emp-idle",
		ClockIn:    time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC),
	})
	stale, err := fx.payrolls.CreateEntry(ctx, payroll.PayrollEntry{
		PayrollPeriodID:  periodID,
		EmployeeID:       "emp-idle",
		TotalHoursWorked: decimal.Zero,
		BasePay:          decimal.Zero,
		TotalDeductions:  decimal.Zero,
		TotalBonuses:     decimal.Zero,
		NetPay:           decimal.Zero,
	})
	require.NoError(t, err)

	entries, err := fx.service.GeneratePayrollForPeriod(ctx, periodID)
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "emp-1", entries[0].EmployeeID)
	_, err = fx.payrolls.GetEntryByID(ctx, stale.ID)
	assert.ErrorIs(t, err, payroll.ErrEntryNotFound)
}

func TestRemoveAdjustment_RejectsAutoGeneratedLines(t *testing.T) {
	fx := newPayrollFixture()
	periodID := fx.seedMarchPeriod(t)
	ctx := context.Background()

	entries, err := fx.service.GeneratePayrollForPeriod(ctx, periodID)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	base := findResponseLine(t, entries[0].Lines, payroll.LineCodeBase)
	err = fx.service.RemoveAdjustment(ctx, base.ID)
	assert.ErrorIs(t, err, payroll.ErrCannotRemoveAutoLine)

	// The base line is still there and totals are untouched.
	entry, err := fx.service.GetEntry(ctx, entries[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, countResponseLines(entry.Lines, payroll.LineCodeBase))
	assert.True(t, entry.NetPay.Equal(dec("788")))
}

func TestRemoveAdjustment_RemovesManualLineAndRecalculates(t *testing.T) {
	fx := newPayrollFixture()
	periodID := fx.seedMarchPeriod(t)
	ctx := context.Background()

	entries, err := fx.service.GeneratePayrollForPeriod(ctx, periodID)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	adjusted, err := fx.service.AddAdjustment(ctx, payroll.AddAdjustmentRequest{
		EntryID: entries[0].ID,
		Type:    "Bonus",
		Label:   "Referral bonus",
		Amount:  dec("120"),
	})
	require.NoError(t, err)
	assert.True(t, adjusted.NetPay.Equal(dec("908")), "net pay %s", adjusted.NetPay)

	manual := findResponseLine(t, adjusted.Lines, payroll.LineCodeManual)
	require.NoError(t, fx.service.RemoveAdjustment(ctx, manual.ID))

	entry, err := fx.service.GetEntry(ctx, entries[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 0, countResponseLines(entry.Lines, payroll.LineCodeManual))
	assert.True(t, entry.NetPay.Equal(dec("788")), "net pay %s", entry.NetPay)
}
