package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/staffhours/pkg/core/model"
	"github.com/jakechorley/staffhours/pkg/db"
)

// ListEmployees returns every employee ordered by ID
func ListEmployees(ctx context.Context, store db.EmployeeLister, logger *zap.Logger) ([]model.Employee, error) {
	employees, err := store.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	logger.Debug("Listed employees", zap.Int("count", len(employees)))
	return employees, nil
}

// GetEmployee returns one employee. db.ErrNotFound is passed through.
func GetEmployee(ctx context.Context, store db.EmployeeStore, logger *zap.Logger, id int64) (*model.Employee, error) {
	employee, err := store.GetEmployee(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return employee, nil
}

// AddEmployee validates the input and stores a new employee
func AddEmployee(ctx context.Context, store db.EmployeeStore, logger *zap.Logger, input model.EmployeeInput) (*model.Employee, error) {
	if err := validateInput(input); err != nil {
		logger.Debug("Rejected new employee", zap.String("name", input.Name), zap.Error(err))
		return nil, err
	}

	employee := employeeFromInput(0, input)
	if err := store.InsertEmployee(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to insert employee: %w", err)
	}

	logger.Info("Employee added",
		zap.Int64("id", employee.ID),
		zap.String("name", employee.Name),
		zap.String("skill_level", employee.SkillLevel),
		zap.Int("experience", employee.Experience),
		zap.String("availability", employee.Availability))

	return employee, nil
}

// EditEmployee replaces every field of an existing employee
func EditEmployee(ctx context.Context, store db.EmployeeStore, logger *zap.Logger, id int64, input model.EmployeeInput) (*model.Employee, error) {
	if err := validateInput(input); err != nil {
		logger.Debug("Rejected employee edit", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	employee := employeeFromInput(id, input)
	if err := store.UpdateEmployee(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	logger.Info("Employee updated", zap.Int64("id", id), zap.String("name", employee.Name))
	return employee, nil
}

// DeleteEmployee removes an employee and any preference they submitted.
// The preference goes first so a failing preference store leaves the employee in place.
func DeleteEmployee(ctx context.Context, store db.EmployeeStore, prefs db.PreferenceStore, logger *zap.Logger, id int64) error {
	if err := prefs.DeletePreference(ctx, id); err != nil {
		return fmt.Errorf("failed to delete preference: %w", err)
	}

	if err := store.DeleteEmployee(ctx, id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	logger.Info("Employee deleted", zap.Int64("id", id))
	return nil
}
