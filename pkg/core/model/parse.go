package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Field names used in FieldError
const (
	FieldName         = "name"
	FieldSkillLevel   = "skill_level"
	FieldExperience   = "experience"
	FieldAvailability = "availability"
)

// FieldError describes a single employee field that could not be parsed
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// ParseSkillLevel parses a skill level as a non-negative finite real number
func ParseSkillLevel(raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &FieldError{Field: FieldSkillLevel, Value: raw, Reason: "not a number"}
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &FieldError{Field: FieldSkillLevel, Value: raw, Reason: "must be finite"}
	}
	if value < 0 {
		return 0, &FieldError{Field: FieldSkillLevel, Value: raw, Reason: "must not be negative"}
	}
	return value, nil
}

// ParseExperience checks that experience (in years) is not negative
func ParseExperience(years int) (int, error) {
	if years < 0 {
		return 0, &FieldError{Field: FieldExperience, Value: strconv.Itoa(years), Reason: "must not be negative"}
	}
	return years, nil
}

// ParseAvailabilityHours extracts weekly hours from free text.
// Every non-digit character is discarded and the remaining digits are read as one number,
// so "Can work 40 hours/week" gives 40.
func ParseAvailabilityHours(raw string) (int, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	if digits.Len() == 0 {
		return 0, &FieldError{Field: FieldAvailability, Value: raw, Reason: "no hours found"}
	}

	hours, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, &FieldError{Field: FieldAvailability, Value: raw, Reason: "hours out of range"}
	}

	return hours, nil
}

// ParseEmployee parses all numeric fields of an employee record.
// The first field that fails is returned as a *FieldError.
func ParseEmployee(e Employee) (Profile, error) {
	skillLevel, err := ParseSkillLevel(e.SkillLevel)
	if err != nil {
		return Profile{}, err
	}

	experience, err := ParseExperience(e.Experience)
	if err != nil {
		return Profile{}, err
	}

	hours, err := ParseAvailabilityHours(e.Availability)
	if err != nil {
		return Profile{}, err
	}

	return Profile{
		SkillLevel:        skillLevel,
		Experience:        experience,
		AvailabilityHours: hours,
	}, nil
}

// ValidateInput checks that an EmployeeInput would produce a schedulable record
func ValidateInput(input EmployeeInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return &FieldError{Field: FieldName, Value: input.Name, Reason: "must not be empty"}
	}

	profile, err := ParseEmployee(Employee{
		Name:         input.Name,
		SkillLevel:   input.SkillLevel,
		Experience:   input.Experience,
		Availability: input.Availability,
	})
	if err != nil {
		return err
	}

	if math.IsInf(float64(profile.Experience)*profile.SkillLevel, 0) {
		return &FieldError{Field: FieldSkillLevel, Value: input.SkillLevel, Reason: "too large for the given experience"}
	}
	return nil
}
