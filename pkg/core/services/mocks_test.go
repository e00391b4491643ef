package services

import (
	"context"
	"sort"

	"github.com/jakechorley/staffhours/internal/config"
	"github.com/jakechorley/staffhours/pkg/clients/sheetsclient"
	"github.com/jakechorley/staffhours/pkg/core/model"
	"github.com/jakechorley/staffhours/pkg/db"
)

// mockEmployeeStore implements db.EmployeeStore for testing
type mockEmployeeStore struct {
	employees map[int64]model.Employee
	nextID    int64
	listErr   error
	insertErr error
}

func newMockEmployeeStore(employees ...model.Employee) *mockEmployeeStore {
	m := &mockEmployeeStore{employees: make(map[int64]model.Employee), nextID: 1}
	for _, e := range employees {
		m.employees[e.ID] = e
		if e.ID >= m.nextID {
			m.nextID = e.ID + 1
		}
	}
	return m
}

func (m *mockEmployeeStore) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]model.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockEmployeeStore) GetEmployee(ctx context.Context, id int64) (*model.Employee, error) {
	e, ok := m.employees[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &e, nil
}

func (m *mockEmployeeStore) InsertEmployee(ctx context.Context, employee *model.Employee) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	employee.ID = m.nextID
	m.nextID++
	m.employees[employee.ID] = *employee
	return nil
}

func (m *mockEmployeeStore) UpdateEmployee(ctx context.Context, employee *model.Employee) error {
	if _, ok := m.employees[employee.ID]; !ok {
		return db.ErrNotFound
	}
	m.employees[employee.ID] = *employee
	return nil
}

func (m *mockEmployeeStore) DeleteEmployee(ctx context.Context, id int64) error {
	if _, ok := m.employees[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.employees, id)
	return nil
}

// mockPreferenceStore implements db.PreferenceStore for testing
type mockPreferenceStore struct {
	values    map[int64]string
	setErr    error
	deleteErr error
}

func newMockPreferenceStore() *mockPreferenceStore {
	return &mockPreferenceStore{values: make(map[int64]string)}
}

func (m *mockPreferenceStore) GetPreference(ctx context.Context, employeeID int64) (string, bool, error) {
	v, ok := m.values[employeeID]
	return v, ok, nil
}

func (m *mockPreferenceStore) SetPreference(ctx context.Context, employeeID int64, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[employeeID] = value
	return nil
}

func (m *mockPreferenceStore) ListPreferences(ctx context.Context) (map[int64]string, error) {
	out := make(map[int64]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}

func (m *mockPreferenceStore) DeletePreference(ctx context.Context, employeeID int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.values, employeeID)
	return nil
}

// mockStaffSheet implements StaffSheetSource for testing
type mockStaffSheet struct {
	rows      []sheetsclient.SheetRow
	rowErrors []sheetsclient.RowError
	err       error
}

func (m *mockStaffSheet) ListEmployees(cfg *config.StaffSheetConfig) ([]sheetsclient.SheetRow, []sheetsclient.RowError, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.rows, m.rowErrors, nil
}

// mockPublisher implements SchedulePublisher for testing
type mockPublisher struct {
	spreadsheetID string
	tab           string
	published     *sheetsclient.PublishedSchedule
	err           error
}

func (m *mockPublisher) PublishSchedule(spreadsheetID, tabTitle string, schedule *sheetsclient.PublishedSchedule) error {
	if m.err != nil {
		return m.err
	}
	m.spreadsheetID = spreadsheetID
	m.tab = tabTitle
	m.published = schedule
	return nil
}
