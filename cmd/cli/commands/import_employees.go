package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/staffhours/internal/config"
	"github.com/jakechorley/staffhours/pkg/clients/sheetsclient"
	"github.com/jakechorley/staffhours/pkg/core/services"
)

// ImportEmployeesCmd creates the importEmployees command
func ImportEmployeesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "importEmployees",
		Short: "Import employees from the configured staff sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
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

			result, err := services.ImportEmployees(app.Ctx, app.Employees, client, app.Cfg.StaffSheet, app.Logger, dryRun)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "\nDRY RUN: %d employees would be added\n\n", len(result.Added))
			} else {
				fmt.Fprintf(out, "\n✓ Added %d employees\n\n", len(result.Added))
			}
			if len(result.Added) > 0 {
				printEmployeeTable(out, result.Added)
			}

			if len(result.Skipped) > 0 {
				fmt.Fprintf(out, "\n⚠️  Skipped %d rows:\n", len(result.Skipped))
				for _, skipped := range result.Skipped {
					fmt.Fprintf(out, "  ✗ row %d (%s): %s\n", skipped.Row, skipped.Name, skipped.Reason)
				}
				fmt.Fprintln(out)
			}

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Show what would be imported without saving")
	cmd.Flags().String("oauth-client", "", "Path to the OAuth client JSON (default: search for oauthClient.<env>.json)")

	return cmd
}
