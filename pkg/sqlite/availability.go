package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
	"github.com/jakechorley/shift-scheduler/pkg/db"
)

// ListAvailability retrieves availability dated within [weekStart, weekStart+7).
// Dates are stored as YYYY-MM-DD so lexical comparison is chronological.
func (d *DB) ListAvailability(ctx context.Context, businessID, weekStart string) ([]model.AvailabilityEntry, error) {
	start, end, err := db.WeekRange(weekStart)
	if err != nil {
		return nil, err
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT employee_id, date, available, start_time, end_time
		FROM availability
		WHERE business_id = ? AND date >= ? AND date < ?
		ORDER BY date, employee_id
	`, businessID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}
	defer rows.Close()

	var entries []model.AvailabilityEntry
	for rows.Next() {
		var e model.AvailabilityEntry
		var startTime, endTime sql.NullString
		if err := rows.Scan(&e.EmployeeID, &e.Date, &e.Available, &startTime, &endTime); err != nil {
			return nil, fmt.Errorf("failed to scan availability: %w", err)
		}
		e.StartTime = startTime.String
		e.EndTime = endTime.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating availability: %w", err)
	}
	return entries, nil
}

// UpsertAvailability writes availability entries, replacing any existing row for the same
// employee and date
func (d *DB) UpsertAvailability(ctx context.Context, businessID string, entries []model.AvailabilityEntry) error {
	if len(entries) == 0 {
		return nil
	}

	return d.withTransaction(ctx, func(tx *sql.Tx) error {
		for _, e := range entries {
			date, err := model.ParseDate(e.Date)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO availability (employee_id, business_id, date, available, start_time, end_time)
				VALUES (?, ?, ?, ?, ?, ?)
				ON CONFLICT (employee_id, date) DO UPDATE
				SET available = excluded.available,
					start_time = excluded.start_time,
					end_time = excluded.end_time
			`, e.EmployeeID, businessID, date.Format(model.DateLayout), e.Available, nullable(e.StartTime), nullable(e.EndTime))
			if err != nil {
				return fmt.Errorf("failed to upsert availability for %s on %s: %w", e.EmployeeID, e.Date, err)
			}
		}
		return nil
	})
}
