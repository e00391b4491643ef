package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/staffhours/internal/config"
	"github.com/jakechorley/staffhours/pkg/clients/sheetsclient"
	"github.com/jakechorley/staffhours/pkg/core/model"
	"github.com/jakechorley/staffhours/pkg/db"
)

// StaffSheetSource reads employee rows from a spreadsheet
type StaffSheetSource interface {
	ListEmployees(cfg *config.StaffSheetConfig) ([]sheetsclient.SheetRow, []sheetsclient.RowError, error)
}

// ImportResult reports what an import did
type ImportResult struct {
	Added   []model.Employee
	Skipped []sheetsclient.RowError
}

// ImportEmployees adds every valid row of the staff sheet to the store.
// Invalid rows are skipped and reported. If dryRun is true nothing is stored.
func ImportEmployees(ctx context.Context, store db.EmployeeStore, source StaffSheetSource, cfg *config.StaffSheetConfig, logger *zap.Logger, dryRun bool) (*ImportResult, error) {
	if cfg == nil {
		return nil, fmt.Errorf("staffSheet is not configured")
	}

	logger.Debug("Reading staff sheet", zap.String("sheet_id", cfg.SheetID), zap.String("tab", cfg.Tab))

	rows, rowErrors, err := source.ListEmployees(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read staff sheet: %w", err)
	}

	result := &ImportResult{Skipped: rowErrors}

	for _, row := range rows {
		if err := validateInput(row.Input); err != nil {
			result.Skipped = append(result.Skipped, sheetsclient.RowError{
				Row:    row.Row,
				Name:   row.Input.Name,
				Reason: err.Error(),
			})
			continue
		}

		if dryRun {
			result.Added = append(result.Added, *employeeFromInput(0, row.Input))
			continue
		}

		employee, err := AddEmployee(ctx, store, logger, row.Input)
		if err != nil {
			return result, fmt.Errorf("failed to import row %d: %w", row.Row, err)
		}
		result.Added = append(result.Added, *employee)
	}

	logger.Info("Staff sheet import finished",
		zap.Int("added", len(result.Added)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Bool("dry_run", dryRun))

	return result, nil
}
