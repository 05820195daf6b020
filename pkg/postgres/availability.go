package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

// ListAvailability retrieves availability dated within [weekStart, weekStart+7)
func (d *DB) ListAvailability(ctx context.Context, businessID, weekStart string) ([]model.AvailabilityEntry, error) {
	start, err := model.ParseDate(weekStart)
	if err != nil {
		return nil, err
	}

	rows, err := d.pool.Query(ctx, `
		SELECT employee_id, to_char(date, 'YYYY-MM-DD'), available, start_time, end_time
		FROM availability
		WHERE business_id = $1 AND date >= $2 AND date < $3
		ORDER BY date, employee_id
	`, businessID, start, start.AddDate(0, 0, 7))
	if err != nil {
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}
	defer rows.Close()

	var entries []model.AvailabilityEntry
	for rows.Next() {
		var e model.AvailabilityEntry
		var startTime, endTime *string
		if err := rows.Scan(&e.EmployeeID, &e.Date, &e.Available, &startTime, &endTime); err != nil {
			return nil, fmt.Errorf("failed to scan availability: %w", err)
		}
		e.StartTime = deref(startTime)
		e.EndTime = deref(endTime)
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

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range entries {
		date, err := model.ParseDate(e.Date)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO availability (employee_id, business_id, date, available, start_time, end_time)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (employee_id, date) DO UPDATE
			SET available = EXCLUDED.available,
				start_time = EXCLUDED.start_time,
				end_time = EXCLUDED.end_time
		`, e.EmployeeID, businessID, date, e.Available, nullable(e.StartTime), nullable(e.EndTime))
		if err != nil {
			return fmt.Errorf("failed to upsert availability for %s on %s: %w", e.EmployeeID, e.Date, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
