package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/staffhours/pkg/core/services"
)

// GenerateScheduleCmd creates the generateSchedule command
func GenerateScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "generateSchedule",
		Short: "Allocate hours to every employee by priority",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.GenerateSchedule(app.Ctx, app.Employees, app.Logger)
			if err != nil {
				if services.IsUserError(err) {
					return fmt.Errorf("cannot generate schedule: %w", err)
				}
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✓ Schedule generated for %d employees\n\n", len(result.Entries))
			printScheduleTable(out, result)
			return nil
		},
	}
}
