package criteria

import (
	"github.com/jakechorley/shift-scheduler/pkg/core/allocator"
	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

// Options configures the default criteria set
type Options struct {
	// MaxDaysPerWeek is the weekly load above which an employee is flagged. Zero disables the check.
	MaxDaysPerWeek int
}

// Default returns the criteria applied to every generated schedule
func Default(opts Options) []allocator.Criterion {
	return []allocator.Criterion{
		NewSlotTimeCriterion(),
		NewShiftSizeCriterion(),
		NewTeamLeadCriterion(),
		NewAvailabilityWindowCriterion(),
		NewShiftSpreadCriterion(opts.MaxDaysPerWeek),
	}
}

// unitKey identifies the demand unit a shift belongs to: the exact slot when slots are
// configured, otherwise the whole day
type unitKey struct {
	day   model.Weekday
	start string
	end   string
}

func keyFor(state *allocator.ScheduleState, shift allocator.CandidateShift) unitKey {
	if state.Catalog.UsesSlots() {
		return unitKey{day: shift.Day, start: shift.StartTime, end: shift.EndTime}
	}
	return unitKey{day: shift.Day}
}

// groupByUnit groups shifts by demand unit, returning the keys in first-seen order
func groupByUnit(state *allocator.ScheduleState) ([]unitKey, map[unitKey][]allocator.CandidateShift) {
	var order []unitKey
	groups := make(map[unitKey][]allocator.CandidateShift)
	for _, shift := range state.Shifts {
		key := keyFor(state, shift)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], shift)
	}
	return order, groups
}
