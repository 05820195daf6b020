package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
	"github.com/jakechorley/shift-scheduler/pkg/db"
)

// ListShiftSlots retrieves a business's shift slots
func (d *DB) ListShiftSlots(ctx context.Context, businessID string) ([]model.ShiftSlot, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, business_id, day_of_week, start_time, end_time, required_count
		FROM shift_slots
		WHERE business_id = ?
		ORDER BY day_of_week, start_time
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift slots: %w", err)
	}
	defer rows.Close()

	var slots []model.ShiftSlot
	for rows.Next() {
		var s model.ShiftSlot
		var day string
		if err := rows.Scan(&s.ID, &s.BusinessID, &day, &s.StartTime, &s.EndTime, &s.RequiredCount); err != nil {
			return nil, fmt.Errorf("failed to scan shift slot: %w", err)
		}
		s.Day = model.Weekday(day)
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
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO shift_slots (id, business_id, day_of_week, start_time, end_time, required_count)
		VALUES (?, ?, ?, ?, ?, ?)
	`, slot.ID, slot.BusinessID, string(slot.Day), slot.StartTime, slot.EndTime, slot.RequiredCount)
	if err != nil {
		return fmt.Errorf("failed to insert shift slot: %w", err)
	}
	return nil
}

// UpdateShiftSlot overwrites an existing slot
func (d *DB) UpdateShiftSlot(ctx context.Context, slot *model.ShiftSlot) error {
	result, err := d.db.ExecContext(ctx, `
		UPDATE shift_slots
		SET day_of_week = ?, start_time = ?, end_time = ?, required_count = ?
		WHERE business_id = ? AND id = ?
	`, string(slot.Day), slot.StartTime, slot.EndTime, slot.RequiredCount, slot.BusinessID, slot.ID)
	if err != nil {
		return fmt.Errorf("failed to update shift slot %s: %w", slot.ID, err)
	}
	return affected(result)
}

// DeleteShiftSlot removes a slot
func (d *DB) DeleteShiftSlot(ctx context.Context, businessID, slotID string) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM shift_slots WHERE business_id = ? AND id = ?`, businessID, slotID)
	if err != nil {
		return fmt.Errorf("failed to delete shift slot %s: %w", slotID, err)
	}
	return affected(result)
}

// ListStaffingRules retrieves a business's per-day staffing rules
func (d *DB) ListStaffingRules(ctx context.Context, businessID string) ([]model.StaffingRule, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, business_id, day_of_week, required_count
		FROM staffing_rules
		WHERE business_id = ?
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to query staffing rules: %w", err)
	}
	defer rows.Close()

	var rules []model.StaffingRule
	for rows.Next() {
		var r model.StaffingRule
		var day string
		if err := rows.Scan(&r.ID, &r.BusinessID, &day, &r.RequiredCount); err != nil {
			return nil, fmt.Errorf("failed to scan staffing rule: %w", err)
		}
		r.Day = model.Weekday(day)
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staffing rules: %w", err)
	}
	return rules, nil
}

// UpsertStaffingRule sets the required headcount for a business and weekday
func (d *DB) UpsertStaffingRule(ctx context.Context, rule *model.StaffingRule) error {
	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO staffing_rules (id, business_id, day_of_week, required_count)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (business_id, day_of_week) DO UPDATE
		SET required_count = excluded.required_count
		RETURNING id
	`, rule.ID, rule.BusinessID, string(rule.Day), rule.RequiredCount).Scan(&rule.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert staffing rule: %w", err)
	}
	return nil
}

// DeleteStaffingRule removes the rule for a weekday
func (d *DB) DeleteStaffingRule(ctx context.Context, businessID string, day model.Weekday) error {
	result, err := d.db.ExecContext(ctx, `
		DELETE FROM staffing_rules WHERE business_id = ? AND day_of_week = ?
	`, businessID, string(day))
	if err != nil {
		return fmt.Errorf("failed to delete staffing rule for %s: %w", day, err)
	}
	return affected(result)
}

// GetStoreHours retrieves a business's opening hours
func (d *DB) GetStoreHours(ctx context.Context, businessID string) (model.StoreHours, error) {
	var raw string
	err := d.db.QueryRowContext(ctx, `
		SELECT store_hours FROM business_settings WHERE business_id = ?
	`, businessID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get store hours: %w", err)
	}

	var hours model.StoreHours
	if err := json.Unmarshal([]byte(raw), &hours); err != nil {
		return nil, fmt.Errorf("failed to decode store hours: %w", err)
	}
	return hours, nil
}

// SetStoreHours saves a business's opening hours
func (d *DB) SetStoreHours(ctx context.Context, businessID string, hours model.StoreHours) error {
	raw, err := json.Marshal(hours)
	if err != nil {
		return fmt.Errorf("failed to encode store hours: %w", err)
	}
	_, err = d.db.ExecContext(ctx, `
		INSERT INTO business_settings (business_id, store_hours)
		VALUES (?, ?)
		ON CONFLICT (business_id) DO UPDATE SET store_hours = excluded.store_hours
	`, businessID, string(raw))
	if err != nil {
		return fmt.Errorf("failed to save store hours: %w", err)
	}
	return nil
}
