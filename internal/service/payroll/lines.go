package payroll

import (
	"strings"

	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/attendance"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// round2 rounds to 2 decimal places, half away from zero.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// hourlyRateFor resolves the hourly-equivalent rate: the explicit hourly rate
// when positive, else the fixed monthly salary spread over the standard
// month, else zero.
func hourlyRateFor(comp *payroll.Compensation, standardMonthlyHours int) decimal.Decimal {
	if comp == nil {
		return decimal.Zero
	}
	if comp.HourlyRate != nil && comp.HourlyRate.IsPositive() {
		return *comp.HourlyRate
	}
	if comp.FixedMonthlySalary != nil && comp.FixedMonthlySalary.IsPositive() {
		return comp.FixedMonthlySalary.Div(decimal.NewFromInt(int64(standardMonthlyHours)))
	}
	return decimal.Zero
}

// calculateBasePay prices the period's rendered hours under the employee's
// pay structure. Fixed structures earn the full monthly salary regardless of
// hours; hybrid structures earn hours at the hourly rate plus the fixed part.
func calculateBasePay(structure payroll.PayStructure, totalHours, hourlyRate decimal.Decimal, fixedSalary *decimal.Decimal) decimal.Decimal {
	switch structure {
	case payroll.PayStructureFixed:
		if fixedSalary != nil {
			return round2(*fixedSalary)
		}
		return decimal.Zero
	case payroll.PayStructureHybrid:
		base := totalHours.Mul(hourlyRate)
		if fixedSalary != nil {
			base = base.Add(*fixedSalary)
		}
		return round2(base)
	default:
		return round2(totalHours.Mul(hourlyRate))
	}
}

// buildAutoLines produces the full replacement set of auto-generated lines
// for one entry: the base-pay line, attendance penalty/bonus lines, and one
// line per active component assignment. Deterministic for fixed inputs.
func buildAutoLines(
	entryID string,
	summary attendance.PeriodSummary,
	totalHours, hourlyRate, basePay decimal.Decimal,
	settings payroll.PenaltySettings,
	assignments []payroll.EmployeeComponent,
) []payroll.PayrollLine {
	lines := []payroll.PayrollLine{{
		PayrollEntryID:  entryID,
		Code:            payroll.LineCodeBase,
		Description:     "Base pay",
		Kind:            payroll.LineKindEarning,
		Quantity:        totalHours,
		Rate:            hourlyRate,
		Amount:          basePay,
		IsAutoGenerated: true,
	}}

	if summary.TotalLateMinutes > 0 && settings.LatePenaltyPerMinute.IsPositive() {
		quantity := decimal.NewFromInt(int64(summary.TotalLateMinutes))
		lines = append(lines, payroll.PayrollLine{
			PayrollEntryID:  entryID,
			Code:            payroll.LineCodeLate,
			Description:     "Late penalty",
			Kind:            payroll.LineKindDeduction,
			Quantity:        quantity,
			Rate:            settings.LatePenaltyPerMinute,
			Amount:          round2(quantity.Mul(settings.LatePenaltyPerMinute)),
			IsAutoGenerated: true,
		})
	}

	if summary.TotalUndertimeMinutes > 0 && settings.UndertimePenaltyPerMinute.IsPositive() {
		quantity := decimal.NewFromInt(int64(summary.TotalUndertimeMinutes))
		lines = append(lines, payroll.PayrollLine{
			PayrollEntryID:  entryID,
			Code:            payroll.LineCodeUndertime,
			Description:     "Undertime penalty",
			Kind:            payroll.LineKindDeduction,
			Quantity:        quantity,
			Rate:            settings.UndertimePenaltyPerMinute,
			Amount:          round2(quantity.Mul(settings.UndertimePenaltyPerMinute)),
			IsAutoGenerated: true,
		})
	}

	absentHours := decimal.NewFromFloat(summary.AbsentScheduledHours())
	if absentHours.IsPositive() && settings.AbsenceFullDayMultiplier.IsPositive() && hourlyRate.IsPositive() {
		rate := hourlyRate.Mul(settings.AbsenceFullDayMultiplier)
		lines = append(lines, payroll.PayrollLine{
			PayrollEntryID:  entryID,
			Code:            payroll.LineCodeAbsence,
			Description:     "Absence deduction",
			Kind:            payroll.LineKindDeduction,
			Quantity:        absentHours,
			Rate:            rate,
			Amount:          round2(absentHours.Mul(rate)),
			IsAutoGenerated: true,
		})
	}

	if summary.TotalOvertimeMinutes > 0 && settings.OvertimeBonusPerMinute.IsPositive() {
		quantity := decimal.NewFromInt(int64(summary.TotalOvertimeMinutes))
		lines = append(lines, payroll.PayrollLine{
			PayrollEntryID:  entryID,
			Code:            payroll.LineCodeOvertime,
			Description:     "Overtime bonus",
			Kind:            payroll.LineKindEarning,
			Quantity:        quantity,
			Rate:            settings.OvertimeBonusPerMinute,
			Amount:          round2(quantity.Mul(settings.OvertimeBonusPerMinute)),
			IsAutoGenerated: true,
		})
	}

	for _, assignment := range assignments {
		line, ok := componentLine(entryID, assignment, totalHours, basePay)
		if ok {
			lines = append(lines, line)
		}
	}

	return lines
}

// componentLine evaluates one component assignment against the entry's base
// pay and hours. Lines that evaluate to a non-positive amount are dropped.
func componentLine(entryID string, assignment payroll.EmployeeComponent, totalHours, basePay decimal.Decimal) (payroll.PayrollLine, bool) {
	if assignment.ComponentCode == nil || assignment.ComponentKind == nil || assignment.ComponentCalcType == nil {
		return payroll.PayrollLine{}, false
	}

	rate := assignment.Rate()

	var quantity, amount decimal.Decimal
	switch *assignment.ComponentCalcType {
	case payroll.CalcTypeFixedAmount:
		quantity = decimal.NewFromInt(1)
		amount = round2(rate)
	case payroll.CalcTypePercentageOfBase:
		quantity = basePay
		amount = round2(basePay.Mul(rate))
	case payroll.CalcTypePerHour:
		quantity = totalHours
		amount = round2(totalHours.Mul(rate))
	default:
		return payroll.PayrollLine{}, false
	}

	if !amount.IsPositive() {
		return payroll.PayrollLine{}, false
	}

	description := *assignment.ComponentCode
	if assignment.ComponentName != nil {
		description = *assignment.ComponentName
	}

	componentID := assignment.PayComponentID
	return payroll.PayrollLine{
		PayrollEntryID:  entryID,
		Code:            *assignment.ComponentCode,
		Description:     description,
		Kind:            *assignment.ComponentKind,
		Quantity:        quantity,
		Rate:            rate,
		Amount:          amount,
		IsAutoGenerated: true,
		PayComponentID:  &componentID,
	}, true
}

// recalcTotals derives entry totals from its lines: base pay is the BASE
// line's amount, bonuses are earnings above base, net pay is earnings minus
// deductions. Everything rounds to 2 decimal places.
func recalcTotals(entry *payroll.PayrollEntry) {
	totalEarnings := decimal.Zero
	totalDeductions := decimal.Zero
	basePay := decimal.Zero

	for _, line := range entry.Lines {
		switch line.Kind {
		case payroll.LineKindEarning:
			totalEarnings = totalEarnings.Add(line.Amount)
		case payroll.LineKindDeduction:
			totalDeductions = totalDeductions.Add(line.Amount)
		}
		if line.Code == payroll.LineCodeBase {
			basePay = line.Amount
		}
	}

	bonuses := totalEarnings.Sub(basePay)
	if bonuses.IsNegative() {
		bonuses = decimal.Zero
	}

	entry.BasePay = round2(basePay)
	entry.TotalDeductions = round2(totalDeductions)
	entry.TotalBonuses = round2(bonuses)
	entry.NetPay = round2(totalEarnings.Sub(totalDeductions))
}

// manualLines filters the lines regeneration must never touch.
func manualLines(lines []payroll.PayrollLine) []payroll.PayrollLine {
	kept := []payroll.PayrollLine{}
	for _, line := range lines {
		if !line.IsAutoGenerated {
			kept = append(kept, line)
		}
	}
	return kept
}

// normalizeAdjustmentType coerces free-form adjustment types: anything that
// is not a deduction becomes a bonus.
func normalizeAdjustmentType(raw string) payroll.AdjustmentType {
	if strings.EqualFold(raw, string(payroll.AdjustmentTypeDeduction)) {
		return payroll.AdjustmentTypeDeduction
	}
	return payroll.AdjustmentTypeBonus
}
