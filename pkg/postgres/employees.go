package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
	"github.com/jakechorley/shift-scheduler/pkg/db"
)

// ListEmployees retrieves every employee of a business ordered by display name
func (d *DB) ListEmployees(ctx context.Context, businessID string) ([]model.Employee, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, business_id, display_name, skill_tier, active, is_admin
		FROM employees
		WHERE business_id = $1
		ORDER BY display_name, id
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []model.Employee
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.BusinessID, &e.DisplayName, &e.Tier, &e.Active, &e.IsAdmin); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	return employees, nil
}

// GetEmployee retrieves a single employee
func (d *DB) GetEmployee(ctx context.Context, businessID, employeeID string) (*model.Employee, error) {
	var e model.Employee
	err := d.pool.QueryRow(ctx, `
		SELECT id, business_id, display_name, skill_tier, active, is_admin
		FROM employees
		WHERE business_id = $1 AND id = $2
	`, businessID, employeeID).Scan(&e.ID, &e.BusinessID, &e.DisplayName, &e.Tier, &e.Active, &e.IsAdmin)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee %s: %w", employeeID, err)
	}
	return &e, nil
}

// InsertEmployee inserts an employee, assigning an ID if it has none
func (d *DB) InsertEmployee(ctx context.Context, employee *model.Employee) error {
	if employee.ID == "" {
		employee.ID = uuid.New().String()
	}
	_, err := d.pool.Exec(ctx, `
		INSERT INTO employees (id, business_id, display_name, skill_tier, active, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, employee.ID, employee.BusinessID, employee.DisplayName, string(employee.Tier), employee.Active, employee.IsAdmin)
	if err != nil {
		return fmt.Errorf("failed to insert employee: %w", err)
	}
	return nil
}

// UpdateEmployee overwrites an existing employee's details
func (d *DB) UpdateEmployee(ctx context.Context, employee *model.Employee) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE employees
		SET display_name = $3, skill_tier = $4, active = $5, is_admin = $6
		WHERE business_id = $1 AND id = $2
	`, employee.BusinessID, employee.ID, employee.DisplayName, string(employee.Tier), employee.Active, employee.IsAdmin)
	if err != nil {
		return fmt.Errorf("failed to update employee %s: %w", employee.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// DeleteEmployee removes an employee. Shifts and availability cascade.
func (d *DB) DeleteEmployee(ctx context.Context, businessID, employeeID string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM employees WHERE business_id = $1 AND id = $2`, businessID, employeeID)
	if err != nil {
		return fmt.Errorf("failed to delete employee %s: %w", employeeID, err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
