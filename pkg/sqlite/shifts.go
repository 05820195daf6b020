package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
	"github.com/jakechorley/shift-scheduler/pkg/db"
)

// GetShifts retrieves the shifts saved for a business-week
func (d *DB) GetShifts(ctx context.Context, businessID, weekStart string) ([]model.Shift, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, business_id, week_start, day_of_week, employee_id, start_time, end_time
		FROM shifts
		WHERE business_id = ? AND week_start = ?
	`, businessID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []model.Shift
	for rows.Next() {
		var s model.Shift
		var day string
		var startTime, endTime sql.NullString
		if err := rows.Scan(&s.ID, &s.BusinessID, &s.WeekStart, &day, &s.EmployeeID, &startTime, &endTime); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		s.Day = model.Weekday(day)
		s.StartTime = startTime.String
		s.EndTime = endTime.String
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}
	return shifts, nil
}

// ReplaceWeekShifts deletes the business-week's shifts and inserts the new set in one
// transaction. The single connection serialises concurrent writers.
func (d *DB) ReplaceWeekShifts(ctx context.Context, businessID, weekStart string, shifts []model.Shift) error {
	if err := db.CheckWeekShifts(businessID, weekStart, shifts); err != nil {
		return err
	}

	return d.withTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM shifts WHERE business_id = ? AND week_start = ?
		`, businessID, weekStart); err != nil {
			return fmt.Errorf("failed to delete existing shifts: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO shifts (id, business_id, week_start, day_of_week, employee_id, start_time, end_time)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare shift insert: %w", err)
		}
		defer stmt.Close()

		for i := range shifts {
			s := &shifts[i]
			if s.ID == "" {
				s.ID = uuid.New().String()
			}
			if _, err := stmt.ExecContext(ctx, s.ID, s.BusinessID, s.WeekStart, string(s.Day), s.EmployeeID,
				nullable(s.StartTime), nullable(s.EndTime)); err != nil {
				return fmt.Errorf("failed to insert shift for %s on %s: %w", s.EmployeeID, s.Day, err)
			}
		}
		return nil
	})
}

// DeleteWeekShifts removes every shift of a business-week
func (d *DB) DeleteWeekShifts(ctx context.Context, businessID, weekStart string) (int, error) {
	result, err := d.db.ExecContext(ctx, `
		DELETE FROM shifts WHERE business_id = ? AND week_start = ?
	`, businessID, weekStart)
	if err != nil {
		return 0, fmt.Errorf("failed to delete shifts: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return int(n), nil
}
