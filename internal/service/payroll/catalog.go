package payroll

import (
	"context"
	"time"

	"github.com/shiftpay-hq/shiftpay-backend-go/internal/domain/payroll"
)

// GetPenaltySettings implements payroll.PayrollService.
func (p *PayrollServiceImpl) GetPenaltySettings(ctx context.Context) (payroll.PenaltySettingsResponse, error) {
	settings, err := p.PenaltySettingsRepository.GetOrCreate(ctx)
	if err != nil {
		return payroll.PenaltySettingsResponse{}, err
	}

	return toPenaltySettingsResponse(settings), nil
}

// UpdatePenaltySettings implements payroll.PayrollService. Omitted fields
// keep their current value.
func (p *PayrollServiceImpl) UpdatePenaltySettings(ctx context.Context, req payroll.UpdatePenaltySettingsRequest) (payroll.PenaltySettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PenaltySettingsResponse{}, err
	}

	settings, err := p.PenaltySettingsRepository.GetOrCreate(ctx)
	if err != nil {
		return payroll.PenaltySettingsResponse{}, err
	}

	if req.LatePenaltyPerMinute != nil {
		settings.LatePenaltyPerMinute = *req.LatePenaltyPerMinute
	}
	if req.UndertimePenaltyPerMinute != nil {
		settings.UndertimePenaltyPerMinute = *req.UndertimePenaltyPerMinute
	}
	if req.AbsenceFullDayMultiplier != nil {
		settings.AbsenceFullDayMultiplier = *req.AbsenceFullDayMultiplier
	}
	if req.OvertimeBonusPerMinute != nil {
		settings.OvertimeBonusPerMinute = *req.OvertimeBonusPerMinute
	}

	updated, err := p.PenaltySettingsRepository.Update(ctx, settings)
	if err != nil {
		return payroll.PenaltySettingsResponse{}, err
	}

	return toPenaltySettingsResponse(updated), nil
}

// GetCompensation implements payroll.PayrollService.
func (p *PayrollServiceImpl) GetCompensation(ctx context.Context, employeeID string) (payroll.CompensationResponse, error) {
	comp, err := p.CompensationRepository.GetByEmployee(ctx, employeeID)
	if err != nil {
		return payroll.CompensationResponse{}, err
	}

	return toCompensationResponse(comp), nil
}

// UpsertCompensation implements payroll.PayrollService.
func (p *PayrollServiceImpl) UpsertCompensation(ctx context.Context, req payroll.UpsertCompensationRequest) (payroll.CompensationResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.CompensationResponse{}, err
	}

	comp, err := p.CompensationRepository.Upsert(ctx, payroll.Compensation{
		EmployeeID:         req.EmployeeID,
		IsHourly:           req.IsHourly,
		HourlyRate:         req.HourlyRate,
		FixedMonthlySalary: req.FixedMonthlySalary,
	})
	if err != nil {
		return payroll.CompensationResponse{}, err
	}

	return toCompensationResponse(comp), nil
}

// CreateComponent implements payroll.PayrollService.
func (p *PayrollServiceImpl) CreateComponent(ctx context.Context, req payroll.CreatePayComponentRequest) (payroll.PayComponentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayComponentResponse{}, err
	}

	component, err := p.PayComponentRepository.Create(ctx, payroll.PayComponent{
		Code:        req.Code,
		Name:        req.Name,
		Kind:        payroll.LineKind(req.Kind),
		CalcType:    payroll.CalcType(req.CalcType),
		DefaultRate: req.DefaultRate,
	})
	if err != nil {
		return payroll.PayComponentResponse{}, err
	}

	return toPayComponentResponse(component), nil
}

// ListComponents implements payroll.PayrollService.
func (p *PayrollServiceImpl) ListComponents(ctx context.Context, activeOnly bool) ([]payroll.PayComponentResponse, error) {
	components, err := p.PayComponentRepository.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PayComponentResponse, 0, len(components))
	for _, component := range components {
		responses = append(responses, toPayComponentResponse(component))
	}
	return responses, nil
}

// UpdateComponent implements payroll.PayrollService.
func (p *PayrollServiceImpl) UpdateComponent(ctx context.Context, req payroll.UpdatePayComponentRequest) (payroll.PayComponentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayComponentResponse{}, err
	}

	component, err := p.PayComponentRepository.Update(ctx, req)
	if err != nil {
		return payroll.PayComponentResponse{}, err
	}

	return toPayComponentResponse(component), nil
}

// GetEmployeeComponents implements payroll.PayrollService.
func (p *PayrollServiceImpl) GetEmployeeComponents(ctx context.Context, employeeID string) ([]payroll.EmployeeComponentResponse, error) {
	assignments, err := p.EmployeeComponentRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.EmployeeComponentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, toEmployeeComponentResponse(assignment))
	}
	return responses, nil
}

// BulkAssignComponents implements payroll.PayrollService. Employees who
// already hold an active assignment for a component are skipped, not
// duplicated.
func (p *PayrollServiceImpl) BulkAssignComponents(ctx context.Context, req payroll.BulkAssignRequest) (payroll.BulkAssignResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.BulkAssignResponse{}, err
	}

	for _, component := range req.Components {
		if _, err := p.PayComponentRepository.GetByID(ctx, component.PayComponentID); err != nil {
			return payroll.BulkAssignResponse{}, err
		}
	}

	result := payroll.BulkAssignResponse{EmployeesConsidered: len(req.EmployeeIDs)}

	for _, employeeID := range req.EmployeeIDs {
		active, err := p.EmployeeComponentRepository.ListActiveByEmployee(ctx, employeeID)
		if err != nil {
			return payroll.BulkAssignResponse{}, err
		}
		held := map[string]struct{}{}
		for _, assignment := range active {
			held[assignment.PayComponentID] = struct{}{}
		}

		for _, component := range req.Components {
			if _, ok := held[component.PayComponentID]; ok {
				result.AssignmentsSkippedExisting++
				continue
			}
			_, err := p.EmployeeComponentRepository.Assign(ctx, payroll.EmployeeComponent{
				EmployeeID:     employeeID,
				PayComponentID: component.PayComponentID,
				RateOverride:   component.RateOverride,
			})
			if err != nil {
				return payroll.BulkAssignResponse{}, err
			}
			result.AssignmentsCreated++
		}
	}

	return result, nil
}

// RemoveEmployeeComponent implements payroll.PayrollService.
func (p *PayrollServiceImpl) RemoveEmployeeComponent(ctx context.Context, id string) error {
	return p.EmployeeComponentRepository.Deactivate(ctx, id)
}

func toPenaltySettingsResponse(settings payroll.PenaltySettings) payroll.PenaltySettingsResponse {
	return payroll.PenaltySettingsResponse{
		ID:                        settings.ID,
		LatePenaltyPerMinute:      settings.LatePenaltyPerMinute,
		UndertimePenaltyPerMinute: settings.UndertimePenaltyPerMinute,
		AbsenceFullDayMultiplier:  settings.AbsenceFullDayMultiplier,
		OvertimeBonusPerMinute:    settings.OvertimeBonusPerMinute,
		UpdatedAt:                 settings.UpdatedAt.Format(time.RFC3339),
	}
}

func toCompensationResponse(comp payroll.Compensation) payroll.CompensationResponse {
	return payroll.CompensationResponse{
		EmployeeID:         comp.EmployeeID,
		IsHourly:           comp.IsHourly,
		HourlyRate:         comp.HourlyRate,
		FixedMonthlySalary: comp.FixedMonthlySalary,
		PayStructure:       string(payroll.DeterminePayStructure(&comp)),
	}
}

func toPayComponentResponse(component payroll.PayComponent) payroll.PayComponentResponse {
	return payroll.PayComponentResponse{
		ID:          component.ID,
		Code:        component.Code,
		Name:        component.Name,
		Kind:        string(component.Kind),
		CalcType:    string(component.CalcType),
		DefaultRate: component.DefaultRate,
		IsActive:    component.IsActive,
	}
}

func toEmployeeComponentResponse(assignment payroll.EmployeeComponent) payroll.EmployeeComponentResponse {
	response := payroll.EmployeeComponentResponse{
		ID:             assignment.ID,
		EmployeeID:     assignment.EmployeeID,
		PayComponentID: assignment.PayComponentID,
		Rate:           assignment.Rate(),
		IsActive:       assignment.IsActive,
	}
	if assignment.ComponentCode != nil {
		response.ComponentCode = *assignment.ComponentCode
	}
	if assignment.ComponentName != nil {
		response.ComponentName = *assignment.ComponentName
	}
	if assignment.ComponentKind != nil {
		response.ComponentKind = string(*assignment.ComponentKind)
	}
	if assignment.ComponentCalcType != nil {
		response.CalcType = string(*assignment.ComponentCalcType)
	}
	return response
}
