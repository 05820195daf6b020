package allocator

import (
	"slices"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

// CandidateShift is an unpersisted proposed assignment produced by a strategy.
// StartTime and EndTime are empty when the demand unit it fills has no time window.
type CandidateShift struct {
	Day        model.Weekday
	EmployeeID string
	StartTime  string
	EndTime    string
}

// HasWindow returns true if the shift carries explicit start/end times
func (c CandidateShift) HasWindow() bool {
	return c.StartTime != "" && c.EndTime != ""
}

// DemandUnit is a (weekday, optional time window, required headcount) the solver tries to fill
type DemandUnit struct {
	Day       model.Weekday
	StartTime string
	EndTime   string
	Required  int

	// SlotID is the shift slot this unit came from (empty for staffing rules)
	SlotID string
}

// HasWindow returns true if the unit is a timed shift slot rather than an aggregate day rule
func (d DemandUnit) HasWindow() bool {
	return d.StartTime != "" && d.EndTime != ""
}

// TimeWindow is an inclusive HH:MM range an employee declared for a day
type TimeWindow struct {
	Start string
	End   string
}

// Covers returns true if the window fully contains start-end.
// Open-ended bounds (empty strings) always match.
func (w TimeWindow) Covers(start, end string) bool {
	if w.Start != "" && start != "" && start < w.Start {
		return false
	}
	if w.End != "" && end != "" && end > w.End {
		return false
	}
	return true
}

// WeekdaySet is the set of weekdays an employee may be scheduled on
type WeekdaySet map[model.Weekday]bool

// AllWeekdays returns a set containing every day of the week
func AllWeekdays() WeekdaySet {
	set := make(WeekdaySet, len(model.Weekdays))
	for _, day := range model.Weekdays {
		set[day] = true
	}
	return set
}

// Sorted returns the days in the set in week order
func (s WeekdaySet) Sorted() []model.Weekday {
	days := make([]model.Weekday, 0, len(s))
	for _, day := range model.Weekdays {
		if s[day] {
			days = append(days, day)
		}
	}
	return days
}

// PoolEmployee is a resolved, schedulable employee
type PoolEmployee struct {
	ID          string
	DisplayName string
	Tier        model.SkillTier

	// Days the employee may be scheduled on this week
	Days WeekdaySet

	// Windows holds optional time bounds per available day
	Windows map[model.Weekday]TimeWindow
}

// IsAvailable returns true if the employee may work on day
func (e *PoolEmployee) IsAvailable(day model.Weekday) bool {
	return e.Days[day]
}

// CanCover returns true if the employee is available on the unit's day and any declared
// window for that day covers the unit's time window
func (e *PoolEmployee) CanCover(unit DemandUnit) bool {
	if !e.IsAvailable(unit.Day) {
		return false
	}
	if !unit.HasWindow() {
		return true
	}
	window, ok := e.Windows[unit.Day]
	if !ok {
		return true
	}
	return window.Covers(unit.StartTime, unit.EndTime)
}

// Pool is an ordered set of resolved employees. Order is the stable tie-break for ranking.
type Pool []*PoolEmployee

// ByID builds a lookup map keyed by employee ID
func (p Pool) ByID() map[string]*PoolEmployee {
	byID := make(map[string]*PoolEmployee, len(p))
	for _, emp := range p {
		byID[emp.ID] = emp
	}
	return byID
}

// AvailableOn returns employees available on day, preserving pool order
func (p Pool) AvailableOn(day model.Weekday) Pool {
	return slices.DeleteFunc(slices.Clone(p), func(e *PoolEmployee) bool {
		return !e.IsAvailable(day)
	})
}
