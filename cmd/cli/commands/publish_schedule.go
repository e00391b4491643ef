package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/staffhours/internal/config"
	"github.com/jakechorley/staffhours/pkg/clients/sheetsclient"
	"github.com/jakechorley/staffhours/pkg/core/services"
)

// PublishScheduleCmd creates the publishSchedule command
func PublishScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publishSchedule",
		Short: "Generate the schedule and write it to the schedule tab of the staff sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oauthPath, _ := cmd.Flags().GetString("oauth-client")

			if app.Cfg.StaffSheet == nil {
				return fmt.Errorf("staffSheet is not set in the %s config", app.Env)
			}

			oauthCfg, err := config.LoadOAuthClient(app.Env, oauthPath)
			if err != nil {
				return fmt.Errorf("failed to load OAuth client config: %w", err)
			}

			client, err := sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env, app.Logger)
			if err != nil {
				return fmt.Errorf("failed to create sheets client: %w", err)
			}

			result, err := services.PublishSchedule(app.Ctx, app.Employees, client, app.Cfg.StaffSheet, app.Logger, time.Now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✓ Schedule for %d employees published to tab %q\n\n", len(result.Entries), app.Cfg.StaffSheet.ScheduleTab)
			printScheduleTable(out, result)
			return nil
		},
	}

	cmd.Flags().String("oauth-client", "", "Path to the OAuth client JSON (default: search for oauthClient.<env>.json)")

	return cmd
}
