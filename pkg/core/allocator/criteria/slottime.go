package criteria

import (
	"fmt"

	"github.com/jakechorley/shift-scheduler/pkg/core/allocator"
)

// SlotTimeCriterion requires every shift's start and end to equal one of the configured slots
// for that weekday.
//
// Only applies when the business has shift slots. Aggregate staffing rules carry no times, so
// any times are accepted in that mode. Violations are errors.
type SlotTimeCriterion struct{}

// NewSlotTimeCriterion creates a new SlotTimeCriterion
func NewSlotTimeCriterion() *SlotTimeCriterion {
	return &SlotTimeCriterion{}
}

func (c *SlotTimeCriterion) Name() string {
	return "SlotTime"
}

func (c *SlotTimeCriterion) ValidateSchedule(state *allocator.ScheduleState) []allocator.Violation {
	if !state.Catalog.UsesSlots() {
		return nil
	}

	var violations []allocator.Violation
	for _, shift := range state.Shifts {
		if !shift.Day.IsValid() {
			// Reported by the core invariants
			continue
		}
		if state.Catalog.MatchesSlot(shift.Day, shift.StartTime, shift.EndTime) {
			continue
		}
		violations = append(violations, allocator.Violation{
			CriterionName: c.Name(),
			Severity:      allocator.SeverityError,
			Day:           shift.Day,
			EmployeeID:    shift.EmployeeID,
			Description: fmt.Sprintf("Employee %s shift %s-%s on %s does not match a configured shift slot",
				shift.EmployeeID, shift.StartTime, shift.EndTime, shift.Day.Long()),
		})
	}
	return violations
}
