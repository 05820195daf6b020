package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-scheduler/pkg/core/allocator"
	"github.com/jakechorley/shift-scheduler/pkg/core/model"
	"github.com/jakechorley/shift-scheduler/pkg/db"
)

// ListStaffingRules returns a business's rules ordered Monday to Sunday
func ListStaffingRules(ctx context.Context, store db.StaffingRuleStore, businessID string) ([]model.StaffingRule, error) {
	rules, err := store.ListStaffingRules(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staffing rules: %w", err)
	}
	return allocator.NewCatalog(nil, rules).Rules(), nil
}

// SetStaffingRule sets the headcount required on a weekday
func SetStaffingRule(ctx context.Context, store db.StaffingRuleStore, logger *zap.Logger, businessID string, day model.Weekday, requiredCount int) (*model.StaffingRule, error) {
	if !day.IsValid() {
		return nil, fmt.Errorf("invalid day %q", day)
	}
	if requiredCount < 0 {
		return nil, fmt.Errorf("required count must not be negative, got %d", requiredCount)
	}

	rule := &model.StaffingRule{BusinessID: businessID, Day: day, RequiredCount: requiredCount}
	if err := store.UpsertStaffingRule(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to save staffing rule: %w", err)
	}

	logger.Debug("Set staffing rule", zap.String("day", string(day)), zap.Int("required_count", requiredCount))
	return rule, nil
}

// DeleteStaffingRule removes the rule for a weekday
func DeleteStaffingRule(ctx context.Context, store db.StaffingRuleStore, logger *zap.Logger, businessID string, day model.Weekday) error {
	if !day.IsValid() {
		return fmt.Errorf("invalid day %q", day)
	}
	if err := store.DeleteStaffingRule(ctx, businessID, day); err != nil {
		return fmt.Errorf("failed to delete staffing rule for %s: %w", day.Long(), err)
	}
	logger.Debug("Deleted staffing rule", zap.String("day", string(day)))
	return nil
}
