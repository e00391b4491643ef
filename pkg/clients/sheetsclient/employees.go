package sheetsclient

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jakechorley/staffhours/internal/config"
	"github.com/jakechorley/staffhours/pkg/core/model"
)

// Expected column names in the staff sheet
const (
	columnName         = "Name"
	columnSkillLevel   = "Skill level"
	columnExperience   = "Experience"
	columnAvailability = "Availability"
)

var employeeFields = []string{
	columnName,
	columnSkillLevel,
	columnExperience,
	columnAvailability,
}

// SheetRow is one employee row read from the staff sheet
type SheetRow struct {
	Row   int // 1-based spreadsheet row number
	Input model.EmployeeInput
}

// RowError describes a row that could not be read
type RowError struct {
	Row    int
	Name   string
	Reason string
}

// ListEmployees reads the configured staff sheet.
// Rows with an unreadable experience cell are returned as RowErrors rather than failing the whole read.
func (c *Client) ListEmployees(cfg *config.StaffSheetConfig) ([]SheetRow, []RowError, error) {
	values, err := c.GetValues(cfg.SheetID, cfg.Tab)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get staff data: %w", err)
	}

	if len(values) == 0 {
		return nil, nil, fmt.Errorf("spreadsheet is empty")
	}

	rows, rowErrors, err := parseEmployees(values)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse staff sheet: %w", err)
	}

	return rows, rowErrors, nil
}

// parseEmployees converts raw spreadsheet data into employee inputs
func parseEmployees(raw [][]interface{}) ([]SheetRow, []RowError, error) {
	if len(raw) < 1 {
		return nil, nil, fmt.Errorf("no header row found")
	}

	// Build field index map from header row
	fieldIndexes := make(map[string]int)
	for _, field := range employeeFields {
		index := -1
		for i, cell := range raw[0] {
			if cellStr, ok := cell.(string); ok && strings.TrimSpace(cellStr) == field {
				index = i
				break
			}
		}
		if index == -1 {
			return nil, nil, fmt.Errorf("missing required field in header: %s", field)
		}
		fieldIndexes[field] = index
	}

	getField := func(field string, row []interface{}) string {
		index := fieldIndexes[field]
		if index >= len(row) {
			return ""
		}
		switch v := row[index].(type) {
		case string:
			return strings.TrimSpace(v)
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
		return ""
	}

	rows := make([]SheetRow, 0, len(raw)-1)
	var rowErrors []RowError
	for i := 1; i < len(raw); i++ {
		row := raw[i]
		sheetRow := i + 1

		name := getField(columnName, row)
		// Skip empty rows
		if name == "" {
			continue
		}

		experienceCell := getField(columnExperience, row)
		experience, err := strconv.Atoi(experienceCell)
		if err != nil {
			rowErrors = append(rowErrors, RowError{
				Row:    sheetRow,
				Name:   name,
				Reason: fmt.Sprintf("experience %q is not a whole number", experienceCell),
			})
			continue
		}

		rows = append(rows, SheetRow{
			Row: sheetRow,
			Input: model.EmployeeInput{
				Name:         name,
				SkillLevel:   getField(columnSkillLevel, row),
				Experience:   experience,
				Availability: getField(columnAvailability, row),
			},
		})
	}

	return rows, rowErrors, nil
}
