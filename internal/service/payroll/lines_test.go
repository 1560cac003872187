package payroll

import (
	"testing"
	"time"

	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/attendance"
	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strPtr(s string) *string { return &s }

func kindPtr(k payroll.LineKind) *payroll.LineKind { return &k }

func calcPtr(c payroll.CalcType) *payroll.CalcType { return &c }

func findLine(t *testing.T, lines []payroll.PayrollLine, code string) payroll.PayrollLine {
	t.Helper()
	for _, line := range lines {
		if line.Code == code {
			return line
		}
	}
	t.Fatalf("no line with code %s", code)
	return payroll.PayrollLine{}
}

func TestHourlyRateFor(t *testing.T) {
	assert.True(t, hourlyRateFor(nil, 160).IsZero())

	explicit := &payroll.Compensation{HourlyRate: decPtr("125")}
	assert.True(t, hourlyRateFor(explicit, 160).Equal(dec("125")))

	// Fixed salary spreads over the standard month.
	fixed := &payroll.Compensation{FixedMonthlySalary: decPtr("16000")}
	assert.True(t, hourlyRateFor(fixed, 160).Equal(dec("100")))

	// Explicit rate wins over the derived one.
	both := &payroll.Compensation{HourlyRate: decPtr("50"), FixedMonthlySalary: decPtr("16000")}
	assert.True(t, hourlyRateFor(both, 160).Equal(dec("50")))

	neither := &payroll.Compensation{IsHourly: true}
	assert.True(t, hourlyRateFor(neither, 160).IsZero())
}

func TestCalculateBasePay(t *testing.T) {
	hours := dec("40")
	rate := dec("100")
	salary := decPtr("16000")

	assert.True(t, calculateBasePay(payroll.PayStructureHourly, hours, rate, nil).Equal(dec("4000")))
	assert.True(t, calculateBasePay(payroll.PayStructureFixed, hours, rate, salary).Equal(dec("16000")))
	assert.True(t, calculateBasePay(payroll.PayStructureHybrid, hours, rate, salary).Equal(dec("20000")))
	assert.True(t, calculateBasePay(payroll.PayStructureFixed, hours, rate, nil).IsZero())
}

func TestBuildAutoLines_WorkedExample(t *testing.T) {
	// Hourly rate 100, 40 rendered hours, 10 late minutes at 2/min.
	summary := attendance.PeriodSummary{EmployeeID: "emp-1", TotalLateMinutes: 10}
	settings := payroll.PenaltySettings{LatePenaltyPerMinute: dec("2")}

	totalHours := dec("40")
	hourlyRate := dec("100")
	basePay := round2(hourlyRate.Mul(totalHours))

	lines := buildAutoLines("entry-1", summary, totalHours, hourlyRate, basePay, settings, nil)

	require.Len(t, lines, 2)

	base := findLine(t, lines, payroll.LineCodeBase)
	assert.Equal(t, payroll.LineKindEarning, base.Kind)
	assert.True(t, base.Amount.Equal(dec("4000")))
	assert.True(t, base.IsAutoGenerated)

	late := findLine(t, lines, payroll.LineCodeLate)
	assert.Equal(t, payroll.LineKindDeduction, late.Kind)
	assert.True(t, late.Amount.Equal(dec("20")))

	entry := payroll.PayrollEntry{Lines: lines}
	recalcTotals(&entry)
	assert.True(t, entry.BasePay.Equal(dec("4000")))
	assert.True(t, entry.TotalDeductions.Equal(dec("20")))
	assert.True(t, entry.TotalBonuses.IsZero())
	assert.True(t, entry.NetPay.Equal(dec("3980")))
}

func TestBuildAutoLines_SkipsLinesWithoutRateOrCount(t *testing.T) {
	summary := attendance.PeriodSummary{
		EmployeeID:            "emp-1",
		TotalLateMinutes:      30,
		TotalUndertimeMinutes: 0,
		TotalOvertimeMinutes:  45,
	}
	// No configured rates at all: only the base line survives.
	lines := buildAutoLines("entry-1", summary, dec("40"), dec("100"), dec("4000"), payroll.PenaltySettings{}, nil)
	require.Len(t, lines, 1)
	assert.Equal(t, payroll.LineCodeBase, lines[0].Code)

	// Overtime configured, late not.
	settings := payroll.PenaltySettings{OvertimeBonusPerMinute: dec("1.5")}
	lines = buildAutoLines("entry-1", summary, dec("40"), dec("100"), dec("4000"), settings, nil)
	require.Len(t, lines, 2)
	overtime := findLine(t, lines, payroll.LineCodeOvertime)
	assert.Equal(t, payroll.LineKindEarning, overtime.Kind)
	assert.True(t, overtime.Amount.Equal(dec("67.5")))
}

func TestBuildAutoLines_AbsenceNeedsHourlyRate(t *testing.T) {
	summary := attendance.PeriodSummary{
		EmployeeID:      "emp-1",
		FullDayAbsences: 1,
		Days: []attendance.DailyAttendance{
			{IsAbsent: true, ScheduledHours: 8},
		},
	}
	settings := payroll.PenaltySettings{AbsenceFullDayMultiplier: dec("1")}

	// Zero hourly rate: no absence line can be priced.
	lines := buildAutoLines("entry-1", summary, decimal.Zero, decimal.Zero, decimal.Zero, settings, nil)
	require.Len(t, lines, 1)

	lines = buildAutoLines("entry-1", summary, decimal.Zero, dec("100"), decimal.Zero, settings, nil)
	absence := findLine(t, lines, payroll.LineCodeAbsence)
	assert.Equal(t, payroll.LineKindDeduction, absence.Kind)
	assert.True(t, absence.Amount.Equal(dec("800")))
}

func TestComponentLine_CalcTypes(t *testing.T) {
	totalHours := dec("40")
	basePay := dec("4000")

	fixedAllowance := payroll.EmployeeComponent{
		PayComponentID:       "pc-1",
		ComponentCode:        strPtr("MEAL"),
		ComponentName:        strPtr("Meal allowance"),
		ComponentKind:        kindPtr(payroll.LineKindEarning),
		ComponentCalcType:    calcPtr(payroll.CalcTypeFixedAmount),
		ComponentDefaultRate: decPtr("500"),
	}
	line, ok := componentLine("entry-1", fixedAllowance, totalHours, basePay)
	require.True(t, ok)
	assert.True(t, line.Amount.Equal(dec("500")))
	assert.Equal(t, "MEAL", line.Code)
	require.NotNil(t, line.PayComponentID)
	assert.Equal(t, "pc-1", *line.PayComponentID)

	percentage := fixedAllowance
	percentage.ComponentCalcType = calcPtr(payroll.CalcTypePercentageOfBase)
	percentage.ComponentDefaultRate = decPtr("0.1")
	line, ok = componentLine("entry-1", percentage, totalHours, basePay)
	require.True(t, ok)
	assert.True(t, line.Amount.Equal(dec("400")))

	perHour := fixedAllowance
	perHour.ComponentCalcType = calcPtr(payroll.CalcTypePerHour)
	perHour.ComponentDefaultRate = decPtr("2.5")
	line, ok = componentLine("entry-1", perHour, totalHours, basePay)
	require.True(t, ok)
	assert.True(t, line.Amount.Equal(dec("100")))

	// The employee-specific override beats the catalog default.
	overridden := fixedAllowance
	overridden.RateOverride = decPtr("750")
	line, ok = componentLine("entry-1", overridden, totalHours, basePay)
	require.True(t, ok)
	assert.True(t, line.Amount.Equal(dec("750")))

	// Non-positive amounts are dropped.
	zeroRate := fixedAllowance
	zeroRate.ComponentDefaultRate = decPtr("0")
	_, ok = componentLine("entry-1", zeroRate, totalHours, basePay)
	assert.False(t, ok)
}

func TestRecalcTotals_NetPayInvariant(t *testing.T) {
	entry := payroll.PayrollEntry{Lines: []payroll.PayrollLine{
		{Code: payroll.LineCodeBase, Kind: payroll.LineKindEarning, Amount: dec("4000")},
		{Code: payroll.LineCodeOvertime, Kind: payroll.LineKindEarning, Amount: dec("150.25")},
		{Code: payroll.LineCodeManual, Kind: payroll.LineKindEarning, Amount: dec("500")},
		{Code: payroll.LineCodeLate, Kind: payroll.LineKindDeduction, Amount: dec("20")},
		{Code: payroll.LineCodeManual, Kind: payroll.LineKindDeduction, Amount: dec("75.5")},
	}}

	recalcTotals(&entry)

	earnings := dec("4000").Add(dec("150.25")).Add(dec("500"))
	deductions := dec("20").Add(dec("75.5"))
	assert.True(t, entry.NetPay.Equal(earnings.Sub(deductions)))
	assert.True(t, entry.BasePay.Equal(dec("4000")))
	assert.True(t, entry.TotalBonuses.Equal(dec("650.25")))
	assert.True(t, entry.TotalDeductions.Equal(dec("95.5")))
}

func TestRecalcTotals_BonusesNeverNegative(t *testing.T) {
	// A lone deduction with no earnings must not produce negative bonuses.
	entry := payroll.PayrollEntry{Lines: []payroll.PayrollLine{
		{Code: payroll.LineCodeLate, Kind: payroll.LineKindDeduction, Amount: dec("20")},
	}}

	recalcTotals(&entry)

	assert.True(t, entry.TotalBonuses.IsZero())
	assert.True(t, entry.BasePay.IsZero())
	assert.True(t, entry.NetPay.Equal(dec("-20")))
}

func TestBuildAutoLines_DeterministicAcrossRuns(t *testing.T) {
	summary := attendance.PeriodSummary{
		EmployeeID:            "emp-1",
		TotalLateMinutes:      10,
		TotalUndertimeMinutes: 20,
		TotalOvertimeMinutes:  30,
		FullDayAbsences:       1,
		Days: []attendance.DailyAttendance{
			{IsAbsent: true, ScheduledHours: 8},
		},
	}
	settings := payroll.PenaltySettings{
		LatePenaltyPerMinute:      dec("2"),
		UndertimePenaltyPerMinute: dec("1"),
		AbsenceFullDayMultiplier:  dec("1"),
		OvertimeBonusPerMinute:    dec("3"),
	}
	assignments := []payroll.EmployeeComponent{{
		PayComponentID:       "pc-1",
		ComponentCode:        strPtr("MEAL"),
		ComponentName:        strPtr("Meal allowance"),
		ComponentKind:        kindPtr(payroll.LineKindEarning),
		ComponentCalcType:    calcPtr(payroll.CalcTypeFixedAmount),
		ComponentDefaultRate: decPtr("500"),
	}}

	first := buildAutoLines("entry-1", summary, dec("40"), dec("100"), dec("4000"), settings, assignments)
	second := buildAutoLines("entry-1", summary, dec("40"), dec("100"), dec("4000"), settings, assignments)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Code, second[i].Code)
		assert.Equal(t, first[i].Kind, second[i].Kind)
		assert.True(t, first[i].Amount.Equal(second[i].Amount))
		assert.True(t, first[i].Quantity.Equal(second[i].Quantity))
		assert.True(t, first[i].Rate.Equal(second[i].Rate))
	}
}

func TestManualLines_SurviveFiltering(t *testing.T) {
	now := time.Now()
	lines := []payroll.PayrollLine{
		{Code: payroll.LineCodeBase, IsAutoGenerated: true, CreatedAt: now},
		{Code: payroll.LineCodeManual, Description: "Referral bonus", IsAutoGenerated: false, CreatedAt: now},
		{Code: payroll.LineCodeLate, IsAutoGenerated: true, CreatedAt: now},
	}

	kept := manualLines(lines)

	require.Len(t, kept, 1)
	assert.Equal(t, "Referral bonus", kept[0].Description)
}

func TestNormalizeAdjustmentType(t *testing.T) {
	assert.Equal(t, payroll.AdjustmentTypeDeduction, normalizeAdjustmentType("Deduction"))
	assert.Equal(t, payroll.AdjustmentTypeDeduction, normalizeAdjustmentType("deduction"))
	assert.Equal(t, payroll.AdjustmentTypeBonus, normalizeAdjustmentType("Bonus"))
	assert.Equal(t, payroll.AdjustmentTypeBonus, normalizeAdjustmentType("anything else"))
	assert.Equal(t, payroll.AdjustmentTypeBonus, normalizeAdjustmentType(""))
}

func TestRound2_HalfAwayFromZero(t *testing.T) {
	assert.True(t, round2(dec("1.005")).Equal(dec("1.01")))
	assert.True(t, round2(dec("-1.005")).Equal(dec("-1.01")))
	assert.True(t, round2(dec("2.344")).Equal(dec("2.34")))
}
