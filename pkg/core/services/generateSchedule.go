package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/staffhours/pkg/core/allocator"
	"github.com/jakechorley/staffhours/pkg/db"
)

// ScheduleResult is a generated schedule plus its totals
type ScheduleResult struct {
	Entries           []allocator.ScheduleEntry `json:"entries"`
	TotalAvailability int                       `json:"total_availability"`
	TotalAssigned     float64                   `json:"total_assigned"`
}

// GenerateSchedule loads every employee and allocates hours by priority.
// Allocator failures (no employees, invalid data, zero priority) are returned unwrapped
// so callers can match them with errors.Is / errors.As.
func GenerateSchedule(ctx context.Context, store db.EmployeeLister, logger *zap.Logger) (*ScheduleResult, error) {
	employees, err := store.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	logger.Debug("Generating schedule", zap.Int("employees", len(employees)))

	entries, err := allocator.GenerateSchedule(employees)
	if err != nil {
		logger.Info("Schedule not generated", zap.Error(err))
		return nil, err
	}

	totalAvailability, totalAssigned := allocator.Totals(entries)

	logger.Debug("Schedule generated",
		zap.Int("entries", len(entries)),
		zap.Int("total_availability", totalAvailability),
		zap.Float64("total_assigned", totalAssigned))

	return &ScheduleResult{
		Entries:           entries,
		TotalAvailability: totalAvailability,
		TotalAssigned:     totalAssigned,
	}, nil
}
