package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-scheduler/pkg/core/allocator"
	"github.com/jakechorley/shift-scheduler/pkg/core/model"
	"github.com/jakechorley/shift-scheduler/pkg/db"
)

// ListShiftSlots returns a business's slots ordered by weekday then start time
func ListShiftSlots(ctx context.Context, store db.ShiftSlotStore, businessID string) ([]model.ShiftSlot, error) {
	slots, err := store.ListShiftSlots(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift slots: %w", err)
	}
	return allocator.NewCatalog(slots, nil).Slots(), nil
}

// CreateShiftSlot validates and saves a new slot
func CreateShiftSlot(ctx context.Context, store db.ShiftSlotStore, logger *zap.Logger, slot model.ShiftSlot) (*model.ShiftSlot, error) {
	if err := normaliseSlot(&slot); err != nil {
		return nil, err
	}
	slot.ID = ""

	if err := store.InsertShiftSlot(ctx, &slot); err != nil {
		return nil, fmt.Errorf("failed to create shift slot: %w", err)
	}

	logger.Debug("Created shift slot",
		zap.String("id", slot.ID),
		zap.String("day", string(slot.Day)),
		zap.String("start", slot.StartTime),
		zap.String("end", slot.EndTime),
		zap.Int("required_count", slot.RequiredCount))
	return &slot, nil
}

// UpdateShiftSlot validates and overwrites an existing slot
func UpdateShiftSlot(ctx context.Context, store db.ShiftSlotStore, logger *zap.Logger, slot model.ShiftSlot) (*model.ShiftSlot, error) {
	if slot.ID == "" {
		return nil, fmt.Errorf("shift slot id is required")
	}
	if err := normaliseSlot(&slot); err != nil {
		return nil, err
	}

	if err := store.UpdateShiftSlot(ctx, &slot); err != nil {
		return nil, fmt.Errorf("failed to update shift slot %s: %w", slot.ID, err)
	}

	logger.Debug("Updated shift slot", zap.String("id", slot.ID))
	return &slot, nil
}

// DeleteShiftSlot removes a slot
func DeleteShiftSlot(ctx context.Context, store db.ShiftSlotStore, logger *zap.Logger, businessID, slotID string) error {
	if err := store.DeleteShiftSlot(ctx, businessID, slotID); err != nil {
		return fmt.Errorf("failed to delete shift slot %s: %w", slotID, err)
	}
	logger.Debug("Deleted shift slot", zap.String("id", slotID))
	return nil
}

// normaliseSlot validates the day, times and headcount of a slot and zero-pads its times
func normaliseSlot(slot *model.ShiftSlot) error {
	if slot.BusinessID == "" {
		return fmt.Errorf("business id is required")
	}
	if !slot.Day.IsValid() {
		return fmt.Errorf("invalid day %q", slot.Day)
	}

	start, err := model.ParseClock(slot.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start time: %w", err)
	}
	end, err := model.ParseClock(slot.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end time: %w", err)
	}
	if start >= end {
		return fmt.Errorf("start time %s must be before end time %s", start, end)
	}
	if slot.RequiredCount < 0 {
		return fmt.Errorf("required count must not be negative, got %d", slot.RequiredCount)
	}

	slot.StartTime = start
	slot.EndTime = end
	return nil
}
