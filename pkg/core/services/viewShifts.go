package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

// ViewShiftsStore defines the database operations needed for viewing a week's shifts
type ViewShiftsStore interface {
	GetShifts(ctx context.Context, businessID, weekStart string) ([]model.Shift, error)
	ListEmployees(ctx context.Context, businessID string) ([]model.Employee, error)
}

// ShiftView is a shift joined with its employee
type ShiftView struct {
	ShiftID     string
	EmployeeID  string
	DisplayName string
	Tier        model.SkillTier
	StartTime   string
	EndTime     string
}

// DayView contains a day's shifts ordered by start time then name
type DayView struct {
	Day    model.Weekday
	Date   time.Time
	Shifts []ShiftView
}

// WeekView is a week's schedule grouped by day in calendar order from the week start
type WeekView struct {
	WeekStart time.Time
	Days      []DayView
}

// ShiftCount returns the number of shifts in the week
func (w *WeekView) ShiftCount() int {
	count := 0
	for _, day := range w.Days {
		count += len(day.Shifts)
	}
	return count
}

// ViewShifts loads a week's shifts with employee names and tiers.
// Shifts whose employee no longer exists are shown with the raw employee ID.
func ViewShifts(ctx context.Context, store ViewShiftsStore, logger *zap.Logger, businessID, weekStart string) (*WeekView, error) {
	start, err := model.ParseDate(weekStart)
	if err != nil {
		return nil, fmt.Errorf("invalid week start: %w", err)
	}
	weekKey := start.Format(model.DateLayout)

	shifts, err := store.GetShifts(ctx, businessID, weekKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts: %w", err)
	}
	employees, err := store.ListEmployees(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}

	logger.Debug("Loaded week",
		zap.String("week_start", weekKey),
		zap.Int("shift_count", len(shifts)),
		zap.Int("employee_count", len(employees)))

	byID := make(map[string]model.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	byDay := make(map[model.Weekday][]ShiftView)
	for _, s := range shifts {
		view := ShiftView{
			ShiftID:     s.ID,
			EmployeeID:  s.EmployeeID,
			DisplayName: s.EmployeeID,
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
		}
		if e, ok := byID[s.EmployeeID]; ok {
			view.DisplayName = e.DisplayName
			view.Tier = e.Tier
		}
		byDay[s.Day] = append(byDay[s.Day], view)
	}

	week := &WeekView{WeekStart: start}
	for offset := 0; offset < 7; offset++ {
		date := start.AddDate(0, 0, offset)
		day := model.WeekdayOf(date)
		views := byDay[day]
		sort.SliceStable(views, func(i, j int) bool {
			if views[i].StartTime != views[j].StartTime {
				return views[i].StartTime < views[j].StartTime
			}
			return views[i].DisplayName < views[j].DisplayName
		})
		week.Days = append(week.Days, DayView{Day: day, Date: date, Shifts: views})
	}

	return week, nil
}

// ShiftDeleter deletes a week's shifts
type ShiftDeleter interface {
	DeleteWeekShifts(ctx context.Context, businessID, weekStart string) (int, error)
}

// DeleteShifts removes every shift of a business-week and returns how many were removed
func DeleteShifts(ctx context.Context, store ShiftDeleter, logger *zap.Logger, businessID, weekStart string) (int, error) {
	start, err := model.ParseDate(weekStart)
	if err != nil {
		return 0, fmt.Errorf("invalid week start: %w", err)
	}

	count, err := store.DeleteWeekShifts(ctx, businessID, start.Format(model.DateLayout))
	if err != nil {
		return 0, fmt.Errorf("failed to delete shifts: %w", err)
	}

	logger.Debug("Deleted shifts", zap.String("week_start", weekStart), zap.Int("count", count))
	return count, nil
}
