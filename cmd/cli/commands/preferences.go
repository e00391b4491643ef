package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/staffhours/pkg/core/services"
)

// SetPreferenceCmd creates the setPreference command
func SetPreferenceCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setPreference <id> <preference>",
		Short: "Submit an employee's scheduling preference (replaces any previous one)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEmployeeID(args[0])
			if err != nil {
				return err
			}

			if err := services.SubmitPreference(app.Ctx, app.Employees, app.Preferences, app.Logger, id, args[1]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Preference saved for employee %d\n\n", id)
			return nil
		},
	}
}

// ShowPreferencesCmd creates the showPreferences command
func ShowPreferencesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "showPreferences",
		Short: "Show every employee's preference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			views, err := services.ShowPreferences(app.Ctx, app.Employees, app.Preferences, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(views) == 0 {
				fmt.Fprintln(out, "\nNo employees found.")
				return nil
			}

			fmt.Fprintln(out)
			printPreferenceTable(out, views)
			return nil
		},
	}
}
