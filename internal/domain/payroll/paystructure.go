package payroll

// PayStructure classifies how an employee is paid, derived from which
// compensation fields are present.
type PayStructure string

const (
	PayStructureUnknown PayStructure = "unknown"
	PayStructureHourly  PayStructure = "hourly"
	PayStructureFixed   PayStructure = "fixed"
	PayStructureHybrid  PayStructure = "hybrid"
)

// DeterminePayStructure maps a compensation record to its pay structure.
// Both rates present means hybrid; only a fixed salary means fixed; an hourly
// rate or the is-hourly flag means hourly; anything else is unknown.
func DeterminePayStructure(comp *Compensation) PayStructure {
	if comp == nil {
		return PayStructureUnknown
	}

	hasHourly := comp.HourlyRate != nil && comp.HourlyRate.IsPositive()
	hasFixed := comp.FixedMonthlySalary != nil && comp.FixedMonthlySalary.IsPositive()

	switch {
	case hasHourly && hasFixed:
		return PayStructureHybrid
	case hasFixed:
		return PayStructureFixed
	case hasHourly || comp.IsHourly:
		return PayStructureHourly
	default:
		return PayStructureUnknown
	}
}
