package allocator

import (
	"errors"
	"fmt"
)

var (
	// ErrNoEmployees is returned when there is nobody to schedule
	ErrNoEmployees = errors.New("no employees to generate a schedule for")

	// ErrZeroPriority is returned when every employee has zero experience or zero skill level
	ErrZeroPriority = errors.New("all employees have zero priority")

	// ErrPriorityOverflow is wrapped in InvalidEmployeeDataError when a priority is too large to sum
	ErrPriorityOverflow = errors.New("priority is too large")
)

// InvalidEmployeeDataError is returned when an employee record cannot be parsed
type InvalidEmployeeDataError struct {
	Name string
	Err  error
}

func newInvalidEmployeeDataError(name string, err error) *InvalidEmployeeDataError {
	return &InvalidEmployeeDataError{Name: name, Err: err}
}

func (e *InvalidEmployeeDataError) Error() string {
	return fmt.Sprintf("invalid data for employee %s: %v", e.Name, e.Err)
}

func (e *InvalidEmployeeDataError) Unwrap() error {
	return e.Err
}

// IsScheduleError reports whether err is one of the allocator's input validation failures
func IsScheduleError(err error) bool {
	var invalid *InvalidEmployeeDataError
	return errors.Is(err, ErrNoEmployees) || errors.Is(err, ErrZeroPriority) || errors.As(err, &invalid)
}
