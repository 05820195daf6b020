package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-scheduler/pkg/clients/xlsxclient"
	"github.com/jakechorley/shift-scheduler/pkg/core/allocator"
	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

// PublishScheduleStore defines the database operations needed for publishing a schedule
type PublishScheduleStore interface {
	ViewShiftsStore
	ListShiftSlots(ctx context.Context, businessID string) ([]model.ShiftSlot, error)
	ListStaffingRules(ctx context.Context, businessID string) ([]model.StaffingRule, error)
}

// PublishSchedule writes a week's saved schedule to a tab of the workbook at path and returns
// the tab title. Each row is one shift window with its lead and staff names and the required
// headcount.
func PublishSchedule(ctx context.Context, store PublishScheduleStore, logger *zap.Logger, businessID, weekStart, path string) (string, error) {
	week, err := ViewShifts(ctx, store, logger, businessID, weekStart)
	if err != nil {
		return "", err
	}
	if week.ShiftCount() == 0 {
		return "", fmt.Errorf("no shifts saved for week starting %s", weekStart)
	}

	slots, err := store.ListShiftSlots(ctx, businessID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch shift slots: %w", err)
	}
	rules, err := store.ListStaffingRules(ctx, businessID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch staffing rules: %w", err)
	}

	schedule := buildPublishedSchedule(week, allocator.NewCatalog(slots, rules))

	logger.Debug("Publishing schedule",
		zap.String("path", path),
		zap.String("week_start", weekStart),
		zap.Int("row_count", len(schedule.Rows)))

	title, err := xlsxclient.PublishSchedule(path, schedule)
	if err != nil {
		return "", fmt.Errorf("failed to publish schedule: %w", err)
	}
	return title, nil
}

// buildPublishedSchedule groups each day's shifts by time window in start-time order
func buildPublishedSchedule(week *WeekView, catalog *allocator.Catalog) *xlsxclient.PublishedSchedule {
	daily := allocator.DailyRequirements(catalog.DemandUnits())
	schedule := &xlsxclient.PublishedSchedule{WeekStart: week.WeekStart}

	for _, day := range week.Days {
		var rows []*xlsxclient.PublishedScheduleRow
		index := make(map[[2]string]*xlsxclient.PublishedScheduleRow)

		for _, shift := range day.Shifts {
			key := [2]string{shift.StartTime, shift.EndTime}
			row, ok := index[key]
			if !ok {
				row = &xlsxclient.PublishedScheduleRow{
					Date:     day.Date,
					Start:    shift.StartTime,
					End:      shift.EndTime,
					Required: requiredFor(catalog, daily, day.Day, shift.StartTime, shift.EndTime),
				}
				index[key] = row
				rows = append(rows, row)
			}
			if shift.Tier == model.TierLead {
				row.Leads = append(row.Leads, shift.DisplayName)
			} else {
				row.Staff = append(row.Staff, shift.DisplayName)
			}
		}

		for _, row := range rows {
			schedule.Rows = append(schedule.Rows, *row)
		}
	}

	return schedule
}

// requiredFor returns the matching slot's headcount, or the day's total for rule-based demand
func requiredFor(catalog *allocator.Catalog, daily map[model.Weekday]int, day model.Weekday, start, end string) int {
	if !catalog.UsesSlots() {
		return daily[day]
	}
	for _, slot := range catalog.SlotsFor(day) {
		if slot.StartTime == start && slot.EndTime == end {
			return slot.RequiredCount
		}
	}
	return 0
}
