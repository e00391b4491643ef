package sheetsclient

import (
	"fmt"
	"strconv"

	"google.golang.org/api/sheets/v4"
)

var scheduleHeader = []interface{}{
	"Name", "Skill level", "Experience", "Availability", "Priority", "Assigned hours",
}

// PublishedScheduleRow is one employee's line in the published schedule
type PublishedScheduleRow struct {
	Name          string
	SkillLevel    float64
	Experience    int
	Availability  int
	Priority      float64
	AssignedHours float64
}

// PublishedSchedule is the data written to the schedule tab
type PublishedSchedule struct {
	GeneratedAt       string // shown above the header, e.g. "Generated Mon Jan 02 2006 15:04"
	Rows              []PublishedScheduleRow
	TotalAvailability int
	TotalAssigned     float64
}

// PublishSchedule writes a schedule to the given tab, creating the tab if it doesn't exist.
// The tab is cleared first so rows from a longer previous schedule don't linger.
func (c *Client) PublishSchedule(spreadsheetID, tabTitle string, schedule *PublishedSchedule) error {
	spreadsheet, err := c.service.Spreadsheets.Get(spreadsheetID).Do()
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet metadata: %w", err)
	}

	exists := false
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties.Title == tabTitle {
			exists = true
			break
		}
	}

	if exists {
		_, err = c.service.Spreadsheets.Values.Clear(
			spreadsheetID,
			tabTitle,
			&sheets.ClearValuesRequest{},
		).Do()
		if err != nil {
			return fmt.Errorf("failed to clear tab %s: %w", tabTitle, err)
		}
	} else if err := c.createTab(spreadsheetID, tabTitle); err != nil {
		return err
	}

	valueRange := &sheets.ValueRange{
		Values: scheduleValues(schedule),
	}

	_, err = c.service.Spreadsheets.Values.Update(
		spreadsheetID,
		fmt.Sprintf("%s!A1", tabTitle),
		valueRange,
	).ValueInputOption("RAW").Do()
	if err != nil {
		return fmt.Errorf("failed to write schedule: %w", err)
	}

	return nil
}

func (c *Client) createTab(spreadsheetID, tabTitle string) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: tabTitle},
				},
			},
		},
	}

	if _, err := c.service.Spreadsheets.BatchUpdate(spreadsheetID, req).Do(); err != nil {
		return fmt.Errorf("failed to create tab %s: %w", tabTitle, err)
	}
	return nil
}

// scheduleValues lays out the tab: a title row, a blank row, the header, one row per employee, then totals
func scheduleValues(schedule *PublishedSchedule) [][]interface{} {
	values := [][]interface{}{
		{schedule.GeneratedAt},
		{},
		scheduleHeader,
	}

	for _, row := range schedule.Rows {
		values = append(values, []interface{}{
			row.Name,
			formatFloat(row.SkillLevel),
			row.Experience,
			row.Availability,
			formatFloat(row.Priority),
			strconv.FormatFloat(row.AssignedHours, 'f', 1, 64),
		})
	}

	values = append(values, []interface{}{
		"Total", "", "",
		schedule.TotalAvailability,
		"",
		strconv.FormatFloat(schedule.TotalAssigned, 'f', 1, 64),
	})

	return values
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
