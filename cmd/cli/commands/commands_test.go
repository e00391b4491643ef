package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/staffhours/internal/config"
	"github.com/jakechorley/staffhours/pkg/memstore"
)

func newTestApp(t *testing.T) *AppContext {
	t.Helper()

	store, err := memstore.New()
	require.NoError(t, err)

	return &AppContext{
		Cfg:         &config.Config{},
		Env:         "test",
		Employees:   store,
		Preferences: store,
		Logger:      zap.NewNop(),
		Ctx:         context.Background(),
	}
}

func newTestRoot(app *AppContext) *cobra.Command {
	root := &cobra.Command{Use: "cli", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(AddEmployeeCmd(app))
	root.AddCommand(ListEmployeesCmd(app))
	root.AddCommand(EditEmployeeCmd(app))
	root.AddCommand(DeleteEmployeeCmd(app))
	root.AddCommand(SetPreferenceCmd(app))
	root.AddCommand(ShowPreferencesCmd(app))
	root.AddCommand(GenerateScheduleCmd(app))
	root.AddCommand(InteractiveCmd(app))
	return root
}

func run(t *testing.T, root *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAddAndListEmployees(t *testing.T) {
	app := newTestApp(t)
	root := newTestRoot(app)

	out, err := run(t, root, "addEmployee", "Alice Smith", "2.5", "4", "Can work 40 hours/week")
	require.NoError(t, err)
	assert.Contains(t, out, "Employee added with ID 1")

	out, err = run(t, root, "listEmployees")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 employees")
	assert.Contains(t, out, "Alice Smith")
	assert.Contains(t, out, "Can work 40 hours/week")
}

func TestAddEmployee_BadExperience(t *testing.T) {
	root := newTestRoot(newTestApp(t))

	_, err := run(t, root, "addEmployee", "Alice", "2", "four", "40")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "experience must be a whole number")
}

func TestEditEmployee_OnlyChangesGivenFlags(t *testing.T) {
	app := newTestApp(t)
	root := newTestRoot(app)

	_, err := run(t, root, "addEmployee", "Bob", "1.5", "2", "20 hours")
	require.NoError(t, err)

	_, err = run(t, root, "editEmployee", "1", "--availability", "25 hours")
	require.NoError(t, err)

	employee, err := app.Employees.GetEmployee(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Bob", employee.Name)
	assert.Equal(t, "1.5", employee.SkillLevel)
	assert.Equal(t, 2, employee.Experience)
	assert.Equal(t, "25 hours", employee.Availability)
}

func TestDeleteEmployee_InvalidID(t *testing.T) {
	root := newTestRoot(newTestApp(t))

	_, err := run(t, root, "deleteEmployee", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive integer")
}

func TestPreferencesCommands(t *testing.T) {
	root := newTestRoot(newTestApp(t))

	_, err := run(t, root, "addEmployee", "Alice", "2", "5", "20")
	require.NoError(t, err)
	_, err = run(t, root, "addEmployee", "Bob", "1", "1", "10")
	require.NoError(t, err)

	_, err = run(t, root, "setPreference", "2", "No early shifts")
	require.NoError(t, err)

	out, err := run(t, root, "showPreferences")
	require.NoError(t, err)
	assert.Contains(t, out, "No early shifts")
	assert.Contains(t, out, "(none)")
}

func TestGenerateScheduleCmd(t *testing.T) {
	root := newTestRoot(newTestApp(t))

	_, err := run(t, root, "addEmployee", "Alice", "2.0", "5", "20 hours")
	require.NoError(t, err)
	_, err = run(t, root, "addEmployee", "Bob", "1.0", "1", "10 hours")
	require.NoError(t, err)

	out, err := run(t, root, "generateSchedule")
	require.NoError(t, err)
	assert.Contains(t, out, "Schedule generated for 2 employees")
	assert.Contains(t, out, "18.2")
	assert.Contains(t, out, "0.9")
	assert.Contains(t, out, "TOTAL")
}

func TestGenerateScheduleCmd_NoEmployees(t *testing.T) {
	root := newTestRoot(newTestApp(t))

	_, err := run(t, root, "generateSchedule")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot generate schedule")
}

func TestInteractiveSession(t *testing.T) {
	root := newTestRoot(newTestApp(t))

	input := strings.Join([]string{
		`addEmployee "Alice Smith" 2 5 "20 hours"`,
		`editEmployee 1 --name "Alice Jones"`,
		`editEmployee 1`,
		`bogus`,
		`listEmployees`,
		`exit`,
		`listEmployees`,
	}, "\n")
	root.SetIn(strings.NewReader(input))

	out, err := run(t, root, "interactive")
	require.NoError(t, err)

	assert.Contains(t, out, "Employee added with ID 1")
	assert.Contains(t, out, "Unknown command: bogus")
	assert.Contains(t, out, "Alice Jones", "name flag from the first edit should stick")
	assert.Contains(t, out, "Goodbye!")
	assert.Equal(t, 1, strings.Count(out, "Found 1 employees"), "commands after exit are not run")
}

func TestParseCommandLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
		wantErr  bool
	}{
		{"plain", "listEmployees", []string{"listEmployees"}, false},
		{"double quotes", `addEmployee "Alice Smith" 2 5 "40 hours"`, []string{"addEmployee", "Alice Smith", "2", "5", "40 hours"}, false},
		{"single quotes", `setPreference 1 'no weekends'`, []string{"setPreference", "1", "no weekends"}, false},
		{"extra spaces", "  a   b  ", []string{"a", "b"}, false},
		{"unclosed quote", `setPreference 1 "oops`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCommandLine(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
