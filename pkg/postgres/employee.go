package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/staffhours/pkg/core/model"
	"github.com/jakechorley/staffhours/pkg/db"
)

// ListEmployees retrieves all employee records ordered by ID
func (d *DB) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, skill_level, experience, availability
		FROM employee
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := []model.Employee{}
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.SkillLevel, &e.Experience, &e.Availability); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	return employees, nil
}

// GetEmployee retrieves a single employee record
func (d *DB) GetEmployee(ctx context.Context, id int64) (*model.Employee, error) {
	var e model.Employee
	err := d.pool.QueryRow(ctx, `
		SELECT id, name, skill_level, experience, availability
		FROM employee
		WHERE id = $1
	`, id).Scan(&e.ID, &e.Name, &e.SkillLevel, &e.Experience, &e.Availability)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("employee %d: %w", id, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee %d: %w", id, err)
	}

	return &e, nil
}

// InsertEmployee inserts a new employee record and sets the generated ID
func (d *DB) InsertEmployee(ctx context.Context, employee *model.Employee) error {
	err := d.pool.QueryRow(ctx, `
		INSERT INTO employee (name, skill_level, experience, availability)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, employee.Name, employee.SkillLevel, employee.Experience, employee.Availability).Scan(&employee.ID)
	if err != nil {
		return fmt.Errorf("failed to insert employee: %w", err)
	}
	return nil
}

// UpdateEmployee overwrites an existing employee record
func (d *DB) UpdateEmployee(ctx context.Context, employee *model.Employee) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE employee
		SET name = $2, skill_level = $3, experience = $4, availability = $5
		WHERE id = $1
	`, employee.ID, employee.Name, employee.SkillLevel, employee.Experience, employee.Availability)
	if err != nil {
		return fmt.Errorf("failed to update employee %d: %w", employee.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("employee %d: %w", employee.ID, db.ErrNotFound)
	}
	return nil
}

// DeleteEmployee removes an employee record
func (d *DB) DeleteEmployee(ctx context.Context, id int64) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM employee WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("employee %d: %w", id, db.ErrNotFound)
	}
	return nil
}
