package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
	"github.com/jakechorley/shift-scheduler/pkg/db"
)

// GetShifts retrieves the shifts saved for a business-week
func (d *DB) GetShifts(ctx context.Context, businessID, weekStart string) ([]model.Shift, error) {
	start, err := model.ParseDate(weekStart)
	if err != nil {
		return nil, err
	}

	rows, err := d.pool.Query(ctx, `
		SELECT id, business_id, to_char(week_start, 'YYYY-MM-DD'), day_of_week, employee_id, start_time, end_time
		FROM shifts
		WHERE business_id = $1 AND week_start = $2
	`, businessID, start)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []model.Shift
	for rows.Next() {
		var s model.Shift
		var startTime, endTime *string
		if err := rows.Scan(&s.ID, &s.BusinessID, &s.WeekStart, &s.Day, &s.EmployeeID, &startTime, &endTime); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		s.StartTime = deref(startTime)
		s.EndTime = deref(endTime)
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}

	return shifts, nil
}

// ReplaceWeekShifts deletes the business-week's shifts and inserts the new set in one
// transaction. A transaction-scoped advisory lock serialises concurrent replacements of the
// same week.
func (d *DB) ReplaceWeekShifts(ctx context.Context, businessID, weekStart string, shifts []model.Shift) error {
	if err := db.CheckWeekShifts(businessID, weekStart, shifts); err != nil {
		return err
	}
	start, err := model.ParseDate(weekStart)
	if err != nil {
		return err
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, businessID+"|"+weekStart); err != nil {
		return fmt.Errorf("failed to lock week: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM shifts WHERE business_id = $1 AND week_start = $2
	`, businessID, start); err != nil {
		return fmt.Errorf("failed to delete existing shifts: %w", err)
	}

	for i := range shifts {
		if shifts[i].ID == "" {
			shifts[i].ID = uuid.New().String()
		}
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"shifts"},
		[]string{"id", "business_id", "week_start", "day_of_week", "employee_id", "start_time", "end_time"},
		pgx.CopyFromSlice(len(shifts), func(i int) ([]any, error) {
			s := shifts[i]
			return []any{s.ID, s.BusinessID, start, string(s.Day), s.EmployeeID, nullable(s.StartTime), nullable(s.EndTime)}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to insert shifts: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteWeekShifts removes every shift of a business-week
func (d *DB) DeleteWeekShifts(ctx context.Context, businessID, weekStart string) (int, error) {
	start, err := model.ParseDate(weekStart)
	if err != nil {
		return 0, err
	}
	tag, err := d.pool.Exec(ctx, `
		DELETE FROM shifts WHERE business_id = $1 AND week_start = $2
	`, businessID, start)
	if err != nil {
		return 0, fmt.Errorf("failed to delete shifts: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
