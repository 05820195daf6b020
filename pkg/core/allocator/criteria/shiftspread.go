package criteria

import (
	"fmt"

	"github.com/jakechorley/shift-scheduler/pkg/core/allocator"
)

// ShiftSpreadCriterion flags employees scheduled on more days than the weekly maximum, as a
// signal that work is unevenly distributed. Violations are warnings. A zero maximum disables
// the check.
type ShiftSpreadCriterion struct {
	maxDaysPerWeek int
}

// NewShiftSpreadCriterion creates a new ShiftSpreadCriterion with the given weekly maximum
func NewShiftSpreadCriterion(maxDaysPerWeek int) *ShiftSpreadCriterion {
	return &ShiftSpreadCriterion{
		maxDaysPerWeek: maxDaysPerWeek,
	}
}

func (c *ShiftSpreadCriterion) Name() string {
	return "ShiftSpread"
}

func (c *ShiftSpreadCriterion) ValidateSchedule(state *allocator.ScheduleState) []allocator.Violation {
	if c.maxDaysPerWeek <= 0 {
		return nil
	}

	// Count distinct days per employee, remembering first-seen order for stable output
	var order []string
	days := make(map[string]map[string]bool)
	for _, shift := range state.Shifts {
		if days[shift.EmployeeID] == nil {
			days[shift.EmployeeID] = make(map[string]bool)
			order = append(order, shift.EmployeeID)
		}
		days[shift.EmployeeID][string(shift.Day)] = true
	}

	var violations []allocator.Violation
	for _, id := range order {
		count := len(days[id])
		if count <= c.maxDaysPerWeek {
			continue
		}
		violations = append(violations, allocator.Violation{
			CriterionName: c.Name(),
			Severity:      allocator.SeverityWarning,
			EmployeeID:    id,
			Description:   fmt.Sprintf("Employee %s is scheduled on %d days, above the weekly maximum of %d", id, count, c.maxDaysPerWeek),
		})
	}
	return violations
}
