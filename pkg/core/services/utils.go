package services

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jakechorley/staffhours/pkg/core/allocator"
	"github.com/jakechorley/staffhours/pkg/core/model"
)

// ErrValidation wraps employee input that was rejected before reaching the store
var ErrValidation = errors.New("invalid employee data")

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// validateInput checks struct tags first, then that the numeric fields parse
func validateInput(input model.EmployeeInput) error {
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := model.ValidateInput(input); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// IsUserError reports whether err was caused by bad input rather than a system failure
func IsUserError(err error) bool {
	return errors.Is(err, ErrValidation) || allocator.IsScheduleError(err)
}

func employeeFromInput(id int64, input model.EmployeeInput) *model.Employee {
	return &model.Employee{
		ID:           id,
		Name:         input.Name,
		SkillLevel:   input.SkillLevel,
		Experience:   input.Experience,
		Availability: input.Availability,
	}
}
