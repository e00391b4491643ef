package allocator

import (
	"math"

	"github.com/jakechorley/staffhours/pkg/core/model"
)

// GenerateSchedule distributes each employee's availability in proportion to their priority.
//
// Priority is experience * skill level. Each employee is assigned
// availability * priority / totalPriority hours, rounded to one decimal place
// (half to even). Entries are returned in input order.
//
// The call is all-or-nothing: an empty list returns ErrNoEmployees, a record that
// cannot be parsed (or whose priority overflows) returns *InvalidEmployeeDataError and a list where every priority
// is zero returns ErrZeroPriority.
func GenerateSchedule(employees []model.Employee) ([]ScheduleEntry, error) {
	if len(employees) == 0 {
		return nil, ErrNoEmployees
	}

	entries := make([]ScheduleEntry, 0, len(employees))
	totalPriority := 0.0

	for _, e := range employees {
		profile, err := model.ParseEmployee(e)
		if err != nil {
			return nil, newInvalidEmployeeDataError(e.Name, err)
		}

		priority := float64(profile.Experience) * profile.SkillLevel
		totalPriority += priority
		if math.IsInf(priority, 0) || math.IsInf(totalPriority, 0) {
			return nil, newInvalidEmployeeDataError(e.Name, ErrPriorityOverflow)
		}

		entries = append(entries, ScheduleEntry{
			EmployeeID:        e.ID,
			Name:              e.Name,
			SkillLevel:        profile.SkillLevel,
			Experience:        profile.Experience,
			AvailabilityHours: profile.AvailabilityHours,
			Priority:          priority,
		})
	}

	if totalPriority == 0 {
		return nil, ErrZeroPriority
	}

	for i := range entries {
		share := float64(entries[i].AvailabilityHours) * (entries[i].Priority / totalPriority)
		entries[i].AssignedHours = roundToTenth(share)
	}

	return entries, nil
}

// Totals returns the summed availability and assigned hours of a schedule.
// Each entry is rounded on its own, so the assigned total can drift from the exact share.
func Totals(entries []ScheduleEntry) (availability int, assigned float64) {
	for _, entry := range entries {
		availability += entry.AvailabilityHours
		assigned += entry.AssignedHours
	}
	return availability, roundToTenth(assigned)
}

// roundToTenth rounds to one decimal place, ties to even
func roundToTenth(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}
