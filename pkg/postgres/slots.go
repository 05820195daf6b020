package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
	"github.com/jakechorley/shift-scheduler/pkg/db"
)

// ListShiftSlots retrieves a business's shift slots
func (d *DB) ListShiftSlots(ctx context.Context, businessID string) ([]model.ShiftSlot, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, business_id, day_of_week, start_time, end_time, required_count
		FROM shift_slots
		WHERE business_id = $1
		ORDER BY day_of_week, start_time
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift slots: %w", err)
	}
	defer rows.Close()

	var slots []model.ShiftSlot
	for rows.Next() {
		var s model.ShiftSlot
		if err := rows.Scan(&s.ID, &s.BusinessID, &s.Day, &s.StartTime, &s.EndTime, &s.RequiredCount); err != nil {
			return nil, fmt.Errorf("failed to scan shift slot: %w", err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shift slots: %w", err)
	}

	return slots, nil
}

// InsertShiftSlot inserts a slot, assigning an ID if it has none
func (d *DB) InsertShiftSlot(ctx context.Context, slot *model.ShiftSlot) error {
	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	_, err := d.pool.Exec(ctx, `
		INSERT INTO shift_slots (id, business_id, day_of_week, start_time, end_time, required_count)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, slot.ID, slot.BusinessID, string(slot.Day), slot.StartTime, slot.EndTime, slot.RequiredCount)
	if err != nil {
		return fmt.Errorf("failed to insert shift slot: %w", err)
	}
	return nil
}

// UpdateShiftSlot overwrites an existing slot
func (d *DB) UpdateShiftSlot(ctx context.Context, slot *model.ShiftSlot) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE shift_slots
		SET day_of_week = $3, start_time = $4, end_time = $5, required_count = $6
		WHERE business_id = $1 AND id = $2
	`, slot.BusinessID, slot.ID, string(slot.Day), slot.StartTime, slot.EndTime, slot.RequiredCount)
	if err != nil {
		return fmt.Errorf("failed to update shift slot %s: %w", slot.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// DeleteShiftSlot removes a slot
func (d *DB) DeleteShiftSlot(ctx context.Context, businessID, slotID string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM shift_slots WHERE business_id = $1 AND id = $2`, businessID, slotID)
	if err != nil {
		return fmt.Errorf("failed to delete shift slot %s: %w", slotID, err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
