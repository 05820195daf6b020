package allocator

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

// AvailabilityPolicy decides what an employee with no availability rows for the week may work
type AvailabilityPolicy string

const (
	// FailOpen treats an employee with no rows as available every day
	FailOpen AvailabilityPolicy = "fail-open"

	// FailClosed treats an employee with no rows as unavailable all week
	FailClosed AvailabilityPolicy = "fail-closed"
)

func (p AvailabilityPolicy) IsValid() bool {
	return p == FailOpen || p == FailClosed
}

// ResolveInput contains the raw data needed to resolve a week's availability
type ResolveInput struct {
	BusinessID string
	WeekStart  time.Time
	Employees  []model.Employee
	Entries    []model.AvailabilityEntry
	Policy     AvailabilityPolicy
}

// dayState accumulates the entries recorded for one employee-day
type dayState struct {
	available   bool
	unavailable bool
	window      TimeWindow
}

// ResolveAvailability converts raw per-date availability entries into a pool of schedulable
// employees with their available weekdays.
//
// Resolution rules:
//   - Inactive and administrative employees are excluded
//   - Pool order follows employee input order
//   - A row's weekday is the calendar weekday of its date; rows outside the week or with
//     unparseable dates are dropped and logged
//   - A day is available if at least one row marks it available and none marks it unavailable
//   - Employees with no surviving rows fall back to the policy (fail-open = every day)
func ResolveAvailability(input ResolveInput, logger *zap.Logger) Pool {
	policy := input.Policy
	if policy == "" {
		policy = FailOpen
	}
	// Row dates parse as UTC midnight, so compare against the week start's calendar date
	weekStart := model.CalendarDate(input.WeekStart)
	weekEnd := weekStart.AddDate(0, 0, 7)

	// Group surviving rows by employee and day
	recorded := make(map[string]map[model.Weekday]*dayState)
	for _, entry := range input.Entries {
		date, err := model.ParseDate(entry.Date)
		if err != nil {
			logger.Warn("Dropping availability row with unparseable date",
				zap.String("business_id", input.BusinessID),
				zap.String("employee_id", entry.EmployeeID),
				zap.String("date", entry.Date),
				zap.Error(err))
			continue
		}
		if date.Before(weekStart) || !date.Before(weekEnd) {
			logger.Warn("Dropping availability row outside the requested week",
				zap.String("business_id", input.BusinessID),
				zap.String("employee_id", entry.EmployeeID),
				zap.String("date", entry.Date),
				zap.String("week_start", weekStart.Format(model.DateLayout)))
			continue
		}

		days, ok := recorded[entry.EmployeeID]
		if !ok {
			days = make(map[model.Weekday]*dayState)
			recorded[entry.EmployeeID] = days
		}
		day := model.WeekdayOf(date)
		state, ok := days[day]
		if !ok {
			state = &dayState{}
			days[day] = state
		}
		if entry.Available {
			state.available = true
			if entry.StartTime != "" || entry.EndTime != "" {
				state.window = TimeWindow{Start: entry.StartTime, End: entry.EndTime}
			}
		} else {
			state.unavailable = true
		}
	}

	pool := make(Pool, 0, len(input.Employees))
	for _, emp := range input.Employees {
		if !emp.Active || emp.IsAdmin {
			continue
		}

		resolved := &PoolEmployee{
			ID:          emp.ID,
			DisplayName: emp.DisplayName,
			Tier:        emp.Tier,
			Days:        make(WeekdaySet),
			Windows:     make(map[model.Weekday]TimeWindow),
		}

		days, hasRows := recorded[emp.ID]
		switch {
		case hasRows:
			for day, state := range days {
				if state.available && !state.unavailable {
					resolved.Days[day] = true
					if state.window != (TimeWindow{}) {
						resolved.Windows[day] = state.window
					}
				}
			}
		case policy == FailOpen:
			resolved.Days = AllWeekdays()
			logger.Debug("No availability recorded, defaulting to every day",
				zap.String("employee_id", emp.ID))
		default:
			logger.Debug("No availability recorded, employee unavailable all week",
				zap.String("employee_id", emp.ID))
		}

		logger.Debug("Resolved availability",
			zap.String("employee_id", emp.ID),
			zap.String("days", fmt.Sprint(resolved.Days.Sorted())))

		pool = append(pool, resolved)
	}

	return pool
}
