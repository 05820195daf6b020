package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

// SetAvailabilityStore defines the database operations needed for recording availability
type SetAvailabilityStore interface {
	GetEmployee(ctx context.Context, businessID, employeeID string) (*model.Employee, error)
	UpsertAvailability(ctx context.Context, businessID string, entries []model.AvailabilityEntry) error
}

// DayAvailability is one day of an employee's weekly availability submission
type DayAvailability struct {
	Day       model.Weekday
	Available bool
	StartTime string
	EndTime   string
}

// SetAvailability records an employee's availability for the days of the week starting at
// weekStart. Days not listed are left unchanged.
func SetAvailability(ctx context.Context, store SetAvailabilityStore, logger *zap.Logger, businessID, employeeID, weekStart string, days []DayAvailability) ([]model.AvailabilityEntry, error) {
	start, err := model.ParseDate(weekStart)
	if err != nil {
		return nil, fmt.Errorf("invalid week start: %w", err)
	}

	if _, err := store.GetEmployee(ctx, businessID, employeeID); err != nil {
		return nil, fmt.Errorf("failed to fetch employee %s: %w", employeeID, err)
	}

	dates := model.WeekDates(start)
	entries := make([]model.AvailabilityEntry, 0, len(days))
	for _, day := range days {
		date, ok := dates[day.Day]
		if !ok {
			return nil, fmt.Errorf("invalid day %q", day.Day)
		}

		entry := model.AvailabilityEntry{
			EmployeeID: employeeID,
			Date:       date.Format(model.DateLayout),
			Available:  day.Available,
		}
		if day.Available && (day.StartTime != "" || day.EndTime != "") {
			entry.StartTime, entry.EndTime, err = parseWindow(day.StartTime, day.EndTime)
			if err != nil {
				return nil, fmt.Errorf("invalid window for %s: %w", day.Day.Long(), err)
			}
		}
		entries = append(entries, entry)
	}

	if err := store.UpsertAvailability(ctx, businessID, entries); err != nil {
		return nil, fmt.Errorf("failed to save availability: %w", err)
	}

	logger.Debug("Saved availability",
		zap.String("employee_id", employeeID),
		zap.String("week_start", weekStart),
		zap.Int("entry_count", len(entries)))
	return entries, nil
}

func parseWindow(start, end string) (string, string, error) {
	s, err := model.ParseClock(start)
	if err != nil {
		return "", "", err
	}
	e, err := model.ParseClock(end)
	if err != nil {
		return "", "", err
	}
	if s >= e {
		return "", "", fmt.Errorf("start time %s must be before end time %s", s, e)
	}
	return s, e, nil
}
