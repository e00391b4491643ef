package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/staffhours/pkg/core/model"
	"github.com/jakechorley/staffhours/pkg/db"
)

// EmployeePreference is an employee together with their current preference
type EmployeePreference struct {
	Employee   *model.Employee
	Preference string
}

// SubmitPreference stores an employee's preference text, replacing any previous one
func SubmitPreference(ctx context.Context, store db.EmployeeStore, prefs db.PreferenceStore, logger *zap.Logger, id int64, preference string) error {
	if _, err := store.GetEmployee(ctx, id); err != nil {
		return fmt.Errorf("failed to get employee: %w", err)
	}

	if err := prefs.SetPreference(ctx, id, preference); err != nil {
		return fmt.Errorf("failed to save preference: %w", err)
	}

	logger.Info("Preference submitted", zap.Int64("employee_id", id))
	return nil
}

// GetEmployeePreference returns an employee and their preference (empty if none)
func GetEmployeePreference(ctx context.Context, store db.EmployeeStore, prefs db.PreferenceStore, logger *zap.Logger, id int64) (*EmployeePreference, error) {
	employee, err := store.GetEmployee(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	preference, _, err := prefs.GetPreference(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get preference: %w", err)
	}

	return &EmployeePreference{Employee: employee, Preference: preference}, nil
}

// ShowPreferences lists every employee with their preference, in employee ID order.
// Preferences left behind for employees that no longer exist are not shown.
func ShowPreferences(ctx context.Context, store db.EmployeeLister, prefs db.PreferenceStore, logger *zap.Logger) ([]model.PreferenceView, error) {
	employees, err := store.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	preferences, err := prefs.ListPreferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}

	views := make([]model.PreferenceView, 0, len(employees))
	for _, e := range employees {
		views = append(views, model.PreferenceView{
			EmployeeID: e.ID,
			Name:       e.Name,
			Preference: preferences[e.ID],
		})
	}

	logger.Debug("Collected preferences",
		zap.Int("employees", len(employees)),
		zap.Int("preferences", len(preferences)))

	return views, nil
}
