package criteria

import (
	"fmt"

	"github.com/jakechorley/shift-scheduler/pkg/core/allocator"
	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

// TeamLeadCriterion flags new employees working a demand unit with no lead-capable employee
// alongside them. Pairing is a preference, so violations are warnings.
type TeamLeadCriterion struct{}

// NewTeamLeadCriterion creates a new TeamLeadCriterion
func NewTeamLeadCriterion() *TeamLeadCriterion {
	return &TeamLeadCriterion{}
}

func (c *TeamLeadCriterion) Name() string {
	return "TeamLead"
}

func (c *TeamLeadCriterion) ValidateSchedule(state *allocator.ScheduleState) []allocator.Violation {
	var violations []allocator.Violation

	order, groups := groupByUnit(state)
	for _, key := range order {
		var starters []allocator.CandidateShift
		hasLead := false
		for _, shift := range groups[key] {
			emp, ok := state.Employee(shift.EmployeeID)
			if !ok {
				continue
			}
			switch emp.Tier {
			case model.TierLead:
				hasLead = true
			case model.TierNew:
				starters = append(starters, shift)
			}
		}
		if hasLead {
			continue
		}
		for _, shift := range starters {
			violations = append(violations, allocator.Violation{
				CriterionName: c.Name(),
				Severity:      allocator.SeverityWarning,
				Day:           key.day,
				EmployeeID:    shift.EmployeeID,
				Description:   fmt.Sprintf("New employee %s works %s without a lead", shift.EmployeeID, describeUnit(key)),
			})
		}
	}
	return violations
}
