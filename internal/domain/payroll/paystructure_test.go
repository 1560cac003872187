package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func ratePtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestDeterminePayStructure(t *testing.T) {
	tests := []struct {
		name string
		comp *Compensation
		want PayStructure
	}{
		{"nil compensation", nil, PayStructureUnknown},
		{"empty compensation", &Compensation{}, PayStructureUnknown},
		{"hourly rate only", &Compensation{HourlyRate: ratePtr(100)}, PayStructureHourly},
		{"is-hourly flag only", &Compensation{IsHourly: true}, PayStructureHourly},
		{"fixed salary only", &Compensation{FixedMonthlySalary: ratePtr(16000)}, PayStructureFixed},
		{"both rates", &Compensation{HourlyRate: ratePtr(100), FixedMonthlySalary: ratePtr(16000)}, PayStructureHybrid},
		{"zero rates", &Compensation{HourlyRate: ratePtr(0), FixedMonthlySalary: ratePtr(0)}, PayStructureUnknown},
		{"zero hourly with fixed", &Compensation{HourlyRate: ratePtr(0), FixedMonthlySalary: ratePtr(16000)}, PayStructureFixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeterminePayStructure(tt.comp))
		})
	}
}
