package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
	"github.com/jakechorley/shift-scheduler/pkg/db"
)

// ListStaffingRules retrieves a business's per-day staffing rules
func (d *DB) ListStaffingRules(ctx context.Context, businessID string) ([]model.StaffingRule, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, business_id, day_of_week, required_count
		FROM staffing_rules
		WHERE business_id = $1
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to query staffing rules: %w", err)
	}
	defer rows.Close()

	var rules []model.StaffingRule
	for rows.Next() {
		var r model.StaffingRule
		if err := rows.Scan(&r.ID, &r.BusinessID, &r.Day, &r.RequiredCount); err != nil {
			return nil, fmt.Errorf("failed to scan staffing rule: %w", err)
		}
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
	err := d.pool.QueryRow(ctx, `
		INSERT INTO staffing_rules (id, business_id, day_of_week, required_count)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (business_id, day_of_week) DO UPDATE
		SET required_count = EXCLUDED.required_count
		RETURNING id
	`, rule.ID, rule.BusinessID, string(rule.Day), rule.RequiredCount).Scan(&rule.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert staffing rule: %w", err)
	}
	return nil
}

// DeleteStaffingRule removes the rule for a weekday
func (d *DB) DeleteStaffingRule(ctx context.Context, businessID string, day model.Weekday) error {
	tag, err := d.pool.Exec(ctx, `
		DELETE FROM staffing_rules WHERE business_id = $1 AND day_of_week = $2
	`, businessID, string(day))
	if err != nil {
		return fmt.Errorf("failed to delete staffing rule for %s: %w", day, err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// GetStoreHours retrieves a business's opening hours
func (d *DB) GetStoreHours(ctx context.Context, businessID string) (model.StoreHours, error) {
	var raw []byte
	err := d.pool.QueryRow(ctx, `
		SELECT store_hours FROM business_settings WHERE business_id = $1
	`, businessID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get store hours: %w", err)
	}

	var hours model.StoreHours
	if err := json.Unmarshal(raw, &hours); err != nil {
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
	_, err = d.pool.Exec(ctx, `
		INSERT INTO business_settings (business_id, store_hours)
		VALUES ($1, $2)
		ON CONFLICT (business_id) DO UPDATE SET store_hours = EXCLUDED.store_hours
	`, businessID, raw)
	if err != nil {
		return fmt.Errorf("failed to save store hours: %w", err)
	}
	return nil
}
