package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jakechorley/staffhours/pkg/core/model"
	"github.com/jakechorley/staffhours/pkg/core/services"
)

// AddEmployeeCmd creates the addEmployee command
func AddEmployeeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "addEmployee <name> <skill_level> <experience> <availability>",
		Short: "Add an employee",
		Long: `Add an employee to the record store.

Quote arguments that contain spaces, for example:
  addEmployee "Alice Smith" 2.5 4 "Can work 40 hours/week"`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			experience, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("experience must be a whole number: %w", err)
			}

			employee, err := services.AddEmployee(app.Ctx, app.Employees, app.Logger, model.EmployeeInput{
				Name:         args[0],
				SkillLevel:   args[1],
				Experience:   experience,
				Availability: args[3],
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✓ Employee added with ID %d\n\n", employee.ID)
			return nil
		},
	}
}

// ListEmployeesCmd creates the listEmployees command
func ListEmployeesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listEmployees",
		Short: "List all employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := services.ListEmployees(app.Ctx, app.Employees, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(employees) == 0 {
				fmt.Fprintln(out, "\nNo employees found.")
				return nil
			}

			fmt.Fprintf(out, "\nFound %d employees:\n\n", len(employees))
			printEmployeeTable(out, employees)
			return nil
		},
	}
}

// EditEmployeeCmd creates the editEmployee command
func EditEmployeeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "editEmployee <id>",
		Short: "Edit an employee (only the flags given are changed)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEmployeeID(args[0])
			if err != nil {
				return err
			}

			current, err := services.GetEmployee(app.Ctx, app.Employees, app.Logger, id)
			if err != nil {
				return err
			}

			input := model.EmployeeInput{
				Name:         current.Name,
				SkillLevel:   current.SkillLevel,
				Experience:   current.Experience,
				Availability: current.Availability,
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				input.Name, _ = flags.GetString("name")
			}
			if flags.Changed("skill") {
				input.SkillLevel, _ = flags.GetString("skill")
			}
			if flags.Changed("experience") {
				input.Experience, _ = flags.GetInt("experience")
			}
			if flags.Changed("availability") {
				input.Availability, _ = flags.GetString("availability")
			}

			if _, err := services.EditEmployee(app.Ctx, app.Employees, app.Logger, id, input); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Employee %d updated\n\n", id)
			return nil
		},
	}

	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("skill", "", "New skill level")
	cmd.Flags().Int("experience", 0, "New years of experience")
	cmd.Flags().String("availability", "", "New availability, e.g. \"30 hours/week\"")

	return cmd
}

// DeleteEmployeeCmd creates the deleteEmployee command
func DeleteEmployeeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deleteEmployee <id>",
		Short: "Delete an employee and their preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEmployeeID(args[0])
			if err != nil {
				return err
			}

			if err := services.DeleteEmployee(app.Ctx, app.Employees, app.Preferences, app.Logger, id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Employee %d deleted\n\n", id)
			return nil
		},
	}
}

func parseEmployeeID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("employee id must be a positive integer, got %q", raw)
	}
	return id, nil
}
