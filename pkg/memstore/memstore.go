// Package memstore keeps employee records and preferences in process memory using go-memdb.
// Data lives as long as the Store and is lost when the process exits.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/hashicorp/go-memdb"

	"github.com/jakechorley/staffhours/pkg/core/model"
	"github.com/jakechorley/staffhours/pkg/db"
)

const (
	tableEmployee   = "employee"
	tablePreference = "preference"
	indexID         = "id"
)

// Store is an in-memory implementation of db.EmployeeStore and db.PreferenceStore
type Store struct {
	memdb *memdb.MemDB

	// nextID is only touched inside write transactions, which memdb serialises
	nextID int64
}

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableEmployee: {
				Name: tableEmployee,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:    indexID,
						Unique:  true,
						Indexer: &memdb.IntFieldIndex{Field: "ID"},
					},
				},
			},
			tablePreference: {
				Name: tablePreference,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:    indexID,
						Unique:  true,
						Indexer: &memdb.IntFieldIndex{Field: "EmployeeID"},
					},
				},
			},
		},
	}
}

// New creates an empty store
func New() (*Store, error) {
	mdb, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, fmt.Errorf("failed to create memdb: %w", err)
	}
	return &Store{memdb: mdb, nextID: 1}, nil
}

// ListEmployees returns all employees ordered by ID
func (s *Store) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	txn := s.memdb.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableEmployee, indexID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	employees := []model.Employee{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		employees = append(employees, *obj.(*model.Employee))
	}

	// The int index is varint encoded, so iteration order is not numeric
	sort.Slice(employees, func(i, j int) bool {
		return employees[i].ID < employees[j].ID
	})

	return employees, nil
}

// GetEmployee returns the employee with the given ID or db.ErrNotFound
func (s *Store) GetEmployee(ctx context.Context, id int64) (*model.Employee, error) {
	txn := s.memdb.Txn(false)
	defer txn.Abort()

	obj, err := txn.First(tableEmployee, indexID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee %d: %w", id, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("employee %d: %w", id, db.ErrNotFound)
	}

	employee := *obj.(*model.Employee)
	return &employee, nil
}

// InsertEmployee stores a new employee and sets its ID
func (s *Store) InsertEmployee(ctx context.Context, employee *model.Employee) error {
	txn := s.memdb.Txn(true)
	defer txn.Abort()

	row := *employee
	row.ID = s.nextID

	if err := txn.Insert(tableEmployee, &row); err != nil {
		return fmt.Errorf("failed to insert employee: %w", err)
	}
	s.nextID++
	txn.Commit()

	employee.ID = row.ID
	return nil
}

// UpdateEmployee replaces an existing employee record
func (s *Store) UpdateEmployee(ctx context.Context, employee *model.Employee) error {
	txn := s.memdb.Txn(true)
	defer txn.Abort()

	existing, err := txn.First(tableEmployee, indexID, employee.ID)
	if err != nil {
		return fmt.Errorf("failed to look up employee %d: %w", employee.ID, err)
	}
	if existing == nil {
		return fmt.Errorf("employee %d: %w", employee.ID, db.ErrNotFound)
	}

	row := *employee
	if err := txn.Insert(tableEmployee, &row); err != nil {
		return fmt.Errorf("failed to update employee %d: %w", employee.ID, err)
	}
	txn.Commit()

	return nil
}

// DeleteEmployee removes an employee record
func (s *Store) DeleteEmployee(ctx context.Context, id int64) error {
	txn := s.memdb.Txn(true)
	defer txn.Abort()

	err := txn.Delete(tableEmployee, &model.Employee{ID: id})
	if errors.Is(err, memdb.ErrNotFound) {
		return fmt.Errorf("employee %d: %w", id, db.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to delete employee %d: %w", id, err)
	}
	txn.Commit()

	return nil
}
