package db

import (
	"context"
	"errors"

	"github.com/jakechorley/staffhours/pkg/core/model"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("record not found")

// EmployeeLister is the read side needed to generate a schedule
type EmployeeLister interface {
	ListEmployees(ctx context.Context) ([]model.Employee, error)
}

// EmployeeStore defines the interface for employee record operations.
// The in-memory memstore.Store and postgres.DB both implement this interface.
type EmployeeStore interface {
	EmployeeLister
	GetEmployee(ctx context.Context, id int64) (*model.Employee, error)
	InsertEmployee(ctx context.Context, employee *model.Employee) error
	UpdateEmployee(ctx context.Context, employee *model.Employee) error
	DeleteEmployee(ctx context.Context, id int64) error
}

// PreferenceStore holds free-text preferences keyed by employee ID
type PreferenceStore interface {
	GetPreference(ctx context.Context, employeeID int64) (string, bool, error)
	SetPreference(ctx context.Context, employeeID int64, value string) error
	ListPreferences(ctx context.Context) (map[int64]string, error)
	DeletePreference(ctx context.Context, employeeID int64) error
}
