package criteria

import (
	"fmt"

	"github.com/jakechorley/shift-scheduler/pkg/core/allocator"
)

// ShiftSizeCriterion flags demand units staffed above their required headcount.
//
// Under-staffing is reported through coverage instead, so only over-staffing is checked here.
// Violations are warnings.
type ShiftSizeCriterion struct{}

// NewShiftSizeCriterion creates a new ShiftSizeCriterion
func NewShiftSizeCriterion() *ShiftSizeCriterion {
	return &ShiftSizeCriterion{}
}

func (c *ShiftSizeCriterion) Name() string {
	return "ShiftSize"
}

func (c *ShiftSizeCriterion) ValidateSchedule(state *allocator.ScheduleState) []allocator.Violation {
	// Required headcount per unit
	required := make(map[unitKey]int)
	for _, unit := range state.Catalog.DemandUnits() {
		key := unitKey{day: unit.Day}
		if state.Catalog.UsesSlots() {
			key = unitKey{day: unit.Day, start: unit.StartTime, end: unit.EndTime}
		}
		required[key] += max(unit.Required, 0)
	}

	var violations []allocator.Violation
	order, groups := groupByUnit(state)
	for _, key := range order {
		want, ok := required[key]
		if !ok {
			// Shifts outside any unit are a slot-time problem, not a size problem
			continue
		}
		have := len(groups[key])
		if have <= want {
			continue
		}
		violations = append(violations, allocator.Violation{
			CriterionName: c.Name(),
			Severity:      allocator.SeverityWarning,
			Day:           key.day,
			Description:   fmt.Sprintf("%s is overfilled: has %d employees but requires %d", describeUnit(key), have, want),
		})
	}
	return violations
}

func describeUnit(key unitKey) string {
	if key.start == "" && key.end == "" {
		return key.day.Long()
	}
	return fmt.Sprintf("%s %s-%s", key.day.Long(), key.start, key.end)
}
