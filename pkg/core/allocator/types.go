package allocator

// ScheduleEntry is one employee's line in a generated schedule.
// Entries are computed on demand and never stored.
type ScheduleEntry struct {
	EmployeeID        int64   `json:"employee_id"`
	Name              string  `json:"name"`
	SkillLevel        float64 `json:"skill_level"`
	Experience        int     `json:"experience"`
	AvailabilityHours int     `json:"availability"`
	Priority          float64 `json:"priority"`
	AssignedHours     float64 `json:"assigned_hours"`
}
