package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
	"github.com/jakechorley/shift-scheduler/pkg/db"
)

const employeeColumns = `id, business_id, display_name, skill_tier, active, is_admin`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (model.Employee, error) {
	var e model.Employee
	var tier string
	err := row.Scan(&e.ID, &e.BusinessID, &e.DisplayName, &tier, &e.Active, &e.IsAdmin)
	e.Tier = model.SkillTier(tier)
	return e, err
}

// ListEmployees retrieves every employee of a business ordered by display name
func (d *DB) ListEmployees(ctx context.Context, businessID string) ([]model.Employee, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT `+employeeColumns+`
		FROM employees
		WHERE business_id = ?
		ORDER BY display_name, id
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []model.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
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
	e, err := scanEmployee(d.db.QueryRowContext(ctx, `
		SELECT `+employeeColumns+`
		FROM employees
		WHERE business_id = ? AND id = ?
	`, businessID, employeeID))
	if errors.Is(err, sql.ErrNoRows) {
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
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO employees (`+employeeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`, employee.ID, employee.BusinessID, employee.DisplayName, string(employee.Tier), employee.Active, employee.IsAdmin)
	if err != nil {
		return fmt.Errorf("failed to insert employee: %w", err)
	}
	return nil
}

// UpdateEmployee overwrites an existing employee's details
func (d *DB) UpdateEmployee(ctx context.Context, employee *model.Employee) error {
	result, err := d.db.ExecContext(ctx, `
		UPDATE employees
		SET display_name = ?, skill_tier = ?, active = ?, is_admin = ?
		WHERE business_id = ? AND id = ?
	`, employee.DisplayName, string(employee.Tier), employee.Active, employee.IsAdmin, employee.BusinessID, employee.ID)
	if err != nil {
		return fmt.Errorf("failed to update employee %s: %w", employee.ID, err)
	}
	return affected(result)
}

// DeleteEmployee removes an employee. Shifts and availability cascade.
func (d *DB) DeleteEmployee(ctx context.Context, businessID, employeeID string) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM employees WHERE business_id = ? AND id = ?`, businessID, employeeID)
	if err != nil {
		return fmt.Errorf("failed to delete employee %s: %w", employeeID, err)
	}
	return affected(result)
}
