package memstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-memdb"

	"github.com/jakechorley/staffhours/pkg/core/model"
)

// GetPreference returns the preference for an employee and whether one was set
func (s *Store) GetPreference(ctx context.Context, employeeID int64) (string, bool, error) {
	txn := s.memdb.Txn(false)
	defer txn.Abort()

	obj, err := txn.First(tablePreference, indexID, employeeID)
	if err != nil {
		return "", false, fmt.Errorf("failed to get preference for employee %d: %w", employeeID, err)
	}
	if obj == nil {
		return "", false, nil
	}

	return obj.(*model.Preference).Value, true, nil
}

// SetPreference stores or replaces an employee's preference
func (s *Store) SetPreference(ctx context.Context, employeeID int64, value string) error {
	txn := s.memdb.Txn(true)
	defer txn.Abort()

	if err := txn.Insert(tablePreference, &model.Preference{EmployeeID: employeeID, Value: value}); err != nil {
		return fmt.Errorf("failed to set preference for employee %d: %w", employeeID, err)
	}
	txn.Commit()

	return nil
}

// ListPreferences returns every stored preference keyed by employee ID
func (s *Store) ListPreferences(ctx context.Context) (map[int64]string, error) {
	txn := s.memdb.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tablePreference, indexID)
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}

	preferences := make(map[int64]string)
	for obj := it.Next(); obj != nil; obj = it.Next() {
		p := obj.(*model.Preference)
		preferences[p.EmployeeID] = p.Value
	}

	return preferences, nil
}

// DeletePreference removes an employee's preference. Missing preferences are ignored.
func (s *Store) DeletePreference(ctx context.Context, employeeID int64) error {
	txn := s.memdb.Txn(true)
	defer txn.Abort()

	err := txn.Delete(tablePreference, &model.Preference{EmployeeID: employeeID})
	if errors.Is(err, memdb.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete preference for employee %d: %w", employeeID, err)
	}
	txn.Commit()

	return nil
}
