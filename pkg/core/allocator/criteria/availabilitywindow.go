package criteria

import (
	"fmt"

	"github.com/jakechorley/shift-scheduler/pkg/core/allocator"
)

// AvailabilityWindowCriterion flags shifts that fall outside the time window an employee
// declared for that day. Day-level availability is a core invariant; the window is advisory.
type AvailabilityWindowCriterion struct{}

// NewAvailabilityWindowCriterion creates a new AvailabilityWindowCriterion
func NewAvailabilityWindowCriterion() *AvailabilityWindowCriterion {
	return &AvailabilityWindowCriterion{}
}

func (c *AvailabilityWindowCriterion) Name() string {
	return "AvailabilityWindow"
}

func (c *AvailabilityWindowCriterion) ValidateSchedule(state *allocator.ScheduleState) []allocator.Violation {
	var violations []allocator.Violation
	for _, shift := range state.Shifts {
		if !shift.HasWindow() {
			continue
		}
		emp, ok := state.Employee(shift.EmployeeID)
		if !ok {
			continue
		}
		window, ok := emp.Windows[shift.Day]
		if !ok || window.Covers(shift.StartTime, shift.EndTime) {
			continue
		}
		violations = append(violations, allocator.Violation{
			CriterionName: c.Name(),
			Severity:      allocator.SeverityWarning,
			Day:           shift.Day,
			EmployeeID:    shift.EmployeeID,
			Description: fmt.Sprintf("Employee %s shift %s-%s on %s is outside their availability %s-%s",
				shift.EmployeeID, shift.StartTime, shift.EndTime, shift.Day.Long(), window.Start, window.End),
		})
	}
	return violations
}
