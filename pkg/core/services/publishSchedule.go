package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/staffhours/internal/config"
	"github.com/jakechorley/staffhours/pkg/clients/sheetsclient"
	"github.com/jakechorley/staffhours/pkg/db"
)

// SchedulePublisher writes a generated schedule to a spreadsheet tab
type SchedulePublisher interface {
	PublishSchedule(spreadsheetID, tabTitle string, schedule *sheetsclient.PublishedSchedule) error
}

// PublishSchedule generates a schedule and writes it to the configured schedule tab.
// The tab always holds only the latest schedule.
func PublishSchedule(ctx context.Context, store db.EmployeeLister, publisher SchedulePublisher, cfg *config.StaffSheetConfig, logger *zap.Logger, now time.Time) (*ScheduleResult, error) {
	if cfg == nil {
		return nil, fmt.Errorf("staffSheet is not configured")
	}

	result, err := GenerateSchedule(ctx, store, logger)
	if err != nil {
		return nil, err
	}

	published := &sheetsclient.PublishedSchedule{
		GeneratedAt:       "Generated " + now.Format("Mon Jan 02 2006 15:04"),
		Rows:              make([]sheetsclient.PublishedScheduleRow, 0, len(result.Entries)),
		TotalAvailability: result.TotalAvailability,
		TotalAssigned:     result.TotalAssigned,
	}
	for _, entry := range result.Entries {
		published.Rows = append(published.Rows, sheetsclient.PublishedScheduleRow{
			Name:          entry.Name,
			SkillLevel:    entry.SkillLevel,
			Experience:    entry.Experience,
			Availability:  entry.AvailabilityHours,
			Priority:      entry.Priority,
			AssignedHours: entry.AssignedHours,
		})
	}

	logger.Debug("Publishing schedule",
		zap.String("sheet_id", cfg.SheetID),
		zap.String("tab", cfg.ScheduleTab),
		zap.Int("rows", len(published.Rows)))

	if err := publisher.PublishSchedule(cfg.SheetID, cfg.ScheduleTab, published); err != nil {
		return nil, fmt.Errorf("failed to publish schedule: %w", err)
	}

	logger.Info("Schedule published", zap.String("tab", cfg.ScheduleTab))
	return result, nil
}
