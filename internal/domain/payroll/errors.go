package payroll

import "errors"

var (
	ErrPeriodNotFound            = errors.New("payroll period not found")
	ErrEntryNotFound             = errors.New("payroll entry not found")
	ErrLineNotFound              = errors.New("payroll line not found")
	ErrCannotRemoveAutoLine      = errors.New("auto-generated lines cannot be removed; they are replaced on regeneration")
	ErrCompensationNotFound      = errors.New("compensation not found for employee")
	ErrPayComponentNotFound      = errors.New("pay component not found")
	ErrPayComponentCodeExists    = errors.New("pay component code already exists")
	ErrEmployeeComponentNotFound = errors.New("employee component assignment not found")
)
