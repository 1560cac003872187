package payroll

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/attendance"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/payroll"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/schedule"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/pkg/database"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/repository/postgresql"
	attendancesvc "github.com/shiftpay-hq/shiftpay-backend-go/internal/service/attendance"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	payroll.PayrollRepository
	payroll.CompensationRepository
	payroll.PayComponentRepository
	payroll.EmployeeComponentRepository
	payroll.PenaltySettingsRepository
	timeLogRepo attendance.TimeLogRepository
	shiftRepo   schedule.ShiftRepository

	// inTx runs fn inside one database transaction.
	inTx func(ctx context.Context, fn func(tx pgx.Tx) error) error

	grace                attendancesvc.GraceConfig
	standardMonthlyHours int
}

// CreatePeriod implements payroll.PayrollService.
func (p *PayrollServiceImpl) CreatePeriod(ctx context.Context, req payroll.CreatePeriodRequest) (payroll.PeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PeriodResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	period, err := p.PayrollRepository.CreatePeriod(ctx, payroll.PayrollPeriod{
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	return toPeriodResponse(period), nil
}

// ListPeriods implements payroll.PayrollService.
func (p *PayrollServiceImpl) ListPeriods(ctx context.Context) ([]payroll.PeriodResponse, error) {
	periods, err := p.PayrollRepository.ListPeriods(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PeriodResponse, 0, len(periods))
	for _, period := range periods {
		responses = append(responses, toPeriodResponse(period))
	}
	return responses, nil
}

// GeneratePayrollForPeriod implements payroll.PayrollService.
func (p *PayrollServiceImpl) GeneratePayrollForPeriod(ctx context.Context, periodID string) ([]payroll.EntryResponse, error) {
	period, err := p.PayrollRepository.GetPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}

	periodStart := period.StartDate
	periodEnd := period.EndDate.AddDate(0, 0, 1).Add(-time.Nanosecond)

	err = p.inTx(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		// One generation run per period at a time.
		if err := p.PayrollRepository.LockPeriod(txCtx, periodID); err != nil {
			return err
		}

		activeIDs, err := p.activeEmployeeSet(txCtx, periodStart, periodEnd)
		if err != nil {
			return err
		}

		comps, err := p.CompensationRepository.ListByEmployees(txCtx, activeIDs)
		if err != nil {
			return err
		}
		compByEmployee := map[string]payroll.Compensation{}
		for _, comp := range comps {
			compByEmployee[comp.EmployeeID] = comp
		}

		allAssignments, err := p.EmployeeComponentRepository.ListActiveByEmployees(txCtx, activeIDs)
		if err != nil {
			return err
		}
		assignmentsByEmployee := map[string][]payroll.EmployeeComponent{}
		for _, assignment := range allAssignments {
			assignmentsByEmployee[assignment.EmployeeID] = append(assignmentsByEmployee[assignment.EmployeeID], assignment)
		}

		settings, err := p.PenaltySettingsRepository.GetOrCreate(txCtx)
		if err != nil {
			return err
		}

		existing, err := p.PayrollRepository.ListEntriesForPeriod(txCtx, periodID)
		if err != nil {
			return err
		}
		entryByEmployee := map[string]payroll.PayrollEntry{}
		for _, entry := range existing {
			entryByEmployee[entry.EmployeeID] = entry
		}

		// Employees with zero activity this period keep no entry.
		activeSet := map[string]struct{}{}
		for _, id := range activeIDs {
			activeSet[id] = struct{}{}
		}
		for employeeID, entry := range entryByEmployee {
			if _, ok := activeSet[employeeID]; !ok {
				if err := p.PayrollRepository.DeleteEntry(txCtx, entry.ID); err != nil {
					return err
				}
				delete(entryByEmployee, employeeID)
			}
		}

		for _, employeeID := range activeIDs {
			summary, err := p.periodSummary(txCtx, employeeID, periodStart, periodEnd)
			if err != nil {
				return err
			}

			totalHours := round2(decimal.NewFromFloat(summary.TotalRenderedHours()))
			comp := compensationPtr(compByEmployee, employeeID)
			hourlyRate := hourlyRateFor(comp, p.standardMonthlyHours)
			basePay := round2(hourlyRate.Mul(totalHours))
			assignments := assignmentsByEmployee[employeeID]

			hasImpact := totalHours.IsPositive() ||
				summary.FullDayAbsences > 0 ||
				summary.TotalLateMinutes > 0 ||
				summary.TotalUndertimeMinutes > 0 ||
				summary.TotalOvertimeMinutes > 0

			if !hasImpact && len(assignments) == 0 {
				if stale, ok := entryByEmployee[employeeID]; ok {
					if err := p.PayrollRepository.DeleteEntry(txCtx, stale.ID); err != nil {
						return err
					}
				}
				continue
			}

			entry, exists := entryByEmployee[employeeID]
			if !exists {
				entry, err = p.PayrollRepository.CreateEntry(txCtx, payroll.PayrollEntry{
					PayrollPeriodID:  periodID,
					EmployeeID:       employeeID,
					TotalHoursWorked: totalHours,
					BasePay:          basePay,
					TotalDeductions:  decimal.Zero,
					TotalBonuses:     decimal.Zero,
					NetPay:           basePay,
				})
				if err != nil {
					return err
				}
			}

			if err := p.PayrollRepository.DeleteAutoLines(txCtx, entry.ID); err != nil {
				return err
			}

			autoLines := buildAutoLines(entry.ID, summary, totalHours, hourlyRate, basePay, settings, assignments)
			if err := p.PayrollRepository.InsertLines(txCtx, autoLines); err != nil {
				return err
			}

			entry.TotalHoursWorked = totalHours
			entry.Lines = append(manualLines(entry.Lines), autoLines...)
			recalcTotals(&entry)

			if err := p.PayrollRepository.UpdateEntryTotals(txCtx, entry); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return p.GetEntriesForPeriod(ctx, periodID)
}

// ApplyFixedPay implements payroll.PayrollService.
func (p *PayrollServiceImpl) ApplyFixedPay(ctx context.Context, req payroll.ApplyFixedPayRequest) ([]payroll.EntryResponse, error) {
	if _, err := p.PayrollRepository.GetPeriodByID(ctx, req.PeriodID); err != nil {
		return nil, err
	}

	err := p.inTx(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := p.PayrollRepository.LockPeriod(txCtx, req.PeriodID); err != nil {
			return err
		}

		entries, err := p.PayrollRepository.ListEntriesForPeriod(txCtx, req.PeriodID)
		if err != nil {
			return err
		}

		employeeIDs := make([]string, 0, len(entries))
		for _, entry := range entries {
			employeeIDs = append(employeeIDs, entry.EmployeeID)
		}
		comps, err := p.CompensationRepository.ListByEmployees(txCtx, employeeIDs)
		if err != nil {
			return err
		}
		compByEmployee := map[string]payroll.Compensation{}
		for _, comp := range comps {
			compByEmployee[comp.EmployeeID] = comp
		}

		for _, entry := range entries {
			comp := compensationPtr(compByEmployee, entry.EmployeeID)
			structure := payroll.DeterminePayStructure(comp)

			if structure == payroll.PayStructureFixed && !req.ApplyToFixed {
				continue
			}
			if structure == payroll.PayStructureHybrid && !req.ApplyToHybrid {
				continue
			}
			if structure != payroll.PayStructureFixed && structure != payroll.PayStructureHybrid {
				continue
			}

			hourlyRate := hourlyRateFor(comp, p.standardMonthlyHours)
			var fixedSalary *decimal.Decimal
			if comp != nil {
				fixedSalary = comp.FixedMonthlySalary
			}
			newBase := calculateBasePay(structure, entry.TotalHoursWorked, hourlyRate, fixedSalary)

			updated := false
			for i := range entry.Lines {
				if entry.Lines[i].Code != payroll.LineCodeBase || !entry.Lines[i].IsAutoGenerated {
					continue
				}
				entry.Lines[i].Amount = newBase
				entry.Lines[i].Rate = hourlyRate
				if err := p.PayrollRepository.UpdateLine(txCtx, entry.Lines[i]); err != nil {
					return err
				}
				updated = true
				break
			}
			if !updated {
				continue
			}

			recalcTotals(&entry)
			if err := p.PayrollRepository.UpdateEntryTotals(txCtx, entry); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return p.GetEntriesForPeriod(ctx, req.PeriodID)
}

// GetEntry implements payroll.PayrollService.
func (p *PayrollServiceImpl) GetEntry(ctx context.Context, entryID string) (payroll.EntryResponse, error) {
	entry, err := p.PayrollRepository.GetEntryByID(ctx, entryID)
	if err != nil {
		return payroll.EntryResponse{}, err
	}

	return toEntryResponse(entry), nil
}

// GetEntriesForPeriod implements payroll.PayrollService.
func (p *PayrollServiceImpl) GetEntriesForPeriod(ctx context.Context, periodID string) ([]payroll.EntryResponse, error) {
	if _, err := p.PayrollRepository.GetPeriodByID(ctx, periodID); err != nil {
		return nil, err
	}

	entries, err := p.PayrollRepository.ListEntriesForPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, toEntryResponse(entry))
	}
	return responses, nil
}

// AddAdjustment implements payroll.PayrollService.
func (p *PayrollServiceImpl) AddAdjustment(ctx context.Context, req payroll.AddAdjustmentRequest) (payroll.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.EntryResponse{}, err
	}

	var entry payroll.PayrollEntry
	err := p.inTx(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		entry, err = p.PayrollRepository.GetEntryByID(txCtx, req.EntryID)
		if err != nil {
			return err
		}

		kind := payroll.LineKindEarning
		if normalizeAdjustmentType(req.Type) == payroll.AdjustmentTypeDeduction {
			kind = payroll.LineKindDeduction
		}

		amount := round2(req.Amount)
		line := payroll.PayrollLine{
			PayrollEntryID:  entry.ID,
			Code:            payroll.LineCodeManual,
			Description:     req.Label,
			Kind:            kind,
			Quantity:        decimal.NewFromInt(1),
			Rate:            amount,
			Amount:          amount,
			IsAutoGenerated: false,
		}
		if err := p.PayrollRepository.InsertLines(txCtx, []payroll.PayrollLine{line}); err != nil {
			return err
		}

		entry.Lines = append(entry.Lines, line)
		recalcTotals(&entry)
		return p.PayrollRepository.UpdateEntryTotals(txCtx, entry)
	})
	if err != nil {
		return payroll.EntryResponse{}, err
	}

	return p.GetEntry(ctx, entry.ID)
}

// RemoveAdjustment implements payroll.PayrollService.
func (p *PayrollServiceImpl) RemoveAdjustment(ctx context.Context, lineID string) error {
	return p.inTx(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		line, err := p.PayrollRepository.GetLineByID(txCtx, lineID)
		if err != nil {
			return err
		}
		if line.IsAutoGenerated {
			return payroll.ErrCannotRemoveAutoLine
		}

		if err := p.PayrollRepository.DeleteLine(txCtx, lineID); err != nil {
			return err
		}

		entry, err := p.PayrollRepository.GetEntryByID(txCtx, line.PayrollEntryID)
		if err != nil {
			return err
		}
		recalcTotals(&entry)
		return p.PayrollRepository.UpdateEntryTotals(txCtx, entry)
	})
}

// activeEmployeeSet is the union of employees with a clock log in the period
// and employees with a shift overlapping it, in stable order.
func (p *PayrollServiceImpl) activeEmployeeSet(ctx context.Context, start, end time.Time) ([]string, error) {
	withLogs, err := p.timeLogRepo.EmployeeIDsWithLogInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	withShifts, err := p.shiftRepo.EmployeeIDsWithShiftOverlapping(ctx, start, end)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	ids := []string{}
	for _, id := range append(withLogs, withShifts...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids, nil
}

func (p *PayrollServiceImpl) periodSummary(ctx context.Context, employeeID string, start, end time.Time) (attendance.PeriodSummary, error) {
	logs, err := p.timeLogRepo.ListForEmployeeInRange(ctx, employeeID, start, end)
	if err != nil {
		return attendance.PeriodSummary{}, err
	}
	shifts, err := p.shiftRepo.ListForEmployeeInRange(ctx, employeeID, start, end)
	if err != nil {
		return attendance.PeriodSummary{}, err
	}

	days := attendancesvc.BuildDailyRange(logs, shifts, p.grace)
	return attendancesvc.BuildPeriodSummary(employeeID, days), nil
}

func compensationPtr(byEmployee map[string]payroll.Compensation, employeeID string) *payroll.Compensation {
	if comp, ok := byEmployee[employeeID]; ok {
		return &comp
	}
	return nil
}

func toPeriodResponse(period payroll.PayrollPeriod) payroll.PeriodResponse {
	return payroll.PeriodResponse{
		ID:        period.ID,
		Name:      period.Name,
		StartDate: period.StartDate.Format("2006-01-02"),
		EndDate:   period.EndDate.Format("2006-01-02"),
		CreatedAt: period.CreatedAt.Format(time.RFC3339),
	}
}

func toEntryResponse(entry payroll.PayrollEntry) payroll.EntryResponse {
	lines := make([]payroll.LineResponse, 0, len(entry.Lines))
	for _, line := range entry.Lines {
		lines = append(lines, payroll.LineResponse{
			ID:              line.ID,
			Code:            line.Code,
			Description:     line.Description,
			Kind:            string(line.Kind),
			Quantity:        line.Quantity,
			Rate:            line.Rate,
			Amount:          line.Amount,
			IsAutoGenerated: line.IsAutoGenerated,
			PayComponentID:  line.PayComponentID,
		})
	}

	name := ""
	if entry.EmployeeName != nil {
		name = *entry.EmployeeName
	}

	return payroll.EntryResponse{
		ID:               entry.ID,
		PayrollPeriodID:  entry.PayrollPeriodID,
		EmployeeID:       entry.EmployeeID,
		EmployeeName:     name,
		TotalHoursWorked: entry.TotalHoursWorked,
		BasePay:          entry.BasePay,
		TotalDeductions:  entry.TotalDeductions,
		TotalBonuses:     entry.TotalBonuses,
		NetPay:           entry.NetPay,
		CalculatedAt:     entry.CalculatedAt.Format(time.RFC3339),
		Lines:            lines,
	}
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	compensationRepo payroll.CompensationRepository,
	payComponentRepo payroll.PayComponentRepository,
	employeeComponentRepo payroll.EmployeeComponentRepository,
	penaltySettingsRepo payroll.PenaltySettingsRepository,
	timeLogRepo attendance.TimeLogRepository,
	shiftRepo schedule.ShiftRepository,
	grace attendancesvc.GraceConfig,
	standardMonthlyHours int,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		PayrollRepository:           payrollRepo,
		CompensationRepository:      compensationRepo,
		PayComponentRepository:      payComponentRepo,
		EmployeeComponentRepository: employeeComponentRepo,
		PenaltySettingsRepository:   penaltySettingsRepo,
		timeLogRepo:                 timeLogRepo,
		shiftRepo:                   shiftRepo,
		inTx: func(ctx context.Context, fn func(tx pgx.Tx) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
		grace:                grace,
		standardMonthlyHours: standardMonthlyHours,
	}
}
