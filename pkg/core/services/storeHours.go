package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
	"github.com/jakechorley/shift-scheduler/pkg/db"
)

// GetStoreHours returns the saved hours, or the defaults when none have been saved
func GetStoreHours(ctx context.Context, store db.StoreHoursStore, businessID string) (model.StoreHours, error) {
	hours, err := store.GetStoreHours(ctx, businessID)
	if errors.Is(err, db.ErrNotFound) {
		return model.DefaultStoreHours(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch store hours: %w", err)
	}
	return hours, nil
}

// SetStoreHours updates the hours of the given days, keeping the other days as they were
func SetStoreHours(ctx context.Context, store db.StoreHoursStore, logger *zap.Logger, businessID string, changes model.StoreHours) (model.StoreHours, error) {
	hours, err := GetStoreHours(ctx, store, businessID)
	if err != nil {
		return nil, err
	}

	for day, h := range changes {
		if !day.IsValid() {
			return nil, fmt.Errorf("invalid day %q", day)
		}
		if !h.Closed {
			h.Open, h.Close, err = parseWindow(h.Open, h.Close)
			if err != nil {
				return nil, fmt.Errorf("invalid hours for %s: %w", day.Long(), err)
			}
		}
		hours[day] = h
	}

	if err := store.SetStoreHours(ctx, businessID, hours); err != nil {
		return nil, fmt.Errorf("failed to save store hours: %w", err)
	}

	logger.Debug("Saved store hours", zap.Int("changed_days", len(changes)))
	return hours, nil
}
