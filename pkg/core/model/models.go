package model

// Employee represents a stored employee record.
// SkillLevel and Availability are kept as entered; use ParseEmployee to get typed values.
type Employee struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	SkillLevel   string `json:"skill_level"`
	Experience   int    `json:"experience"`
	Availability string `json:"availability"` // e.g. "Can work 40 hours/week"
}

// EmployeeInput is the payload for creating or editing an employee
type EmployeeInput struct {
	Name         string `json:"name" validate:"required"`
	SkillLevel   string `json:"skill_level" validate:"required"`
	Experience   int    `json:"experience" validate:"min=0"`
	Availability string `json:"availability" validate:"required"`
}

// Profile holds the typed values parsed from an Employee
type Profile struct {
	SkillLevel        float64
	Experience        int
	AvailabilityHours int
}

// Preference is a free-text scheduling preference submitted by an employee
type Preference struct {
	EmployeeID int64
	Value      string
}

// PreferenceView pairs an employee with their preference (empty if none was submitted)
type PreferenceView struct {
	EmployeeID int64  `json:"employee_id"`
	Name       string `json:"name"`
	Preference string `json:"preferences"`
}
