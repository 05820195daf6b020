package allocator

import (
	"fmt"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

const coreInvariantName = "CoreInvariant"

// ValidationResult is the outcome of validating a candidate schedule.
// Valid is true iff Errors is empty; warnings never affect validity.
type ValidationResult struct {
	Valid      bool
	Errors     []string
	Warnings   []string
	Violations []Violation
}

// Validate checks a candidate schedule against the core invariants and all provided criteria.
// Every rule runs and every violation is collected, so a single pass reports all problems.
func Validate(state *ScheduleState, criteria []Criterion) ValidationResult {
	violations := validateCoreInvariants(state)

	for _, criterion := range criteria {
		violations = append(violations, criterion.ValidateSchedule(state)...)
	}

	result := ValidationResult{
		Violations: violations,
		Errors:     []string{},
		Warnings:   []string{},
	}
	for _, v := range violations {
		switch v.Severity {
		case SeverityWarning:
			result.Warnings = append(result.Warnings, v.Description)
		default:
			result.Errors = append(result.Errors, v.Description)
		}
	}
	result.Valid = len(result.Errors) == 0

	return result
}

// validateCoreInvariants checks the rules that hold for every schedule regardless of
// configured criteria:
//   - every shift has a valid weekday token
//   - every shift's employee is in the resolved pool
//   - no employee appears twice on the same weekday
//   - every shift's employee is available on that weekday
func validateCoreInvariants(state *ScheduleState) []Violation {
	var violations []Violation

	seen := make(map[model.Weekday]map[string]int)

	for _, shift := range state.Shifts {
		if !shift.Day.IsValid() {
			violations = append(violations, Violation{
				CriterionName: coreInvariantName,
				Severity:      SeverityError,
				Day:           shift.Day,
				EmployeeID:    shift.EmployeeID,
				Description:   fmt.Sprintf("Employee %s scheduled on invalid day %q", shift.EmployeeID, shift.Day),
			})
			continue
		}

		if seen[shift.Day] == nil {
			seen[shift.Day] = make(map[string]int)
		}
		seen[shift.Day][shift.EmployeeID]++

		// Report a duplicate once per employee-day, on the second occurrence
		if seen[shift.Day][shift.EmployeeID] == 2 {
			violations = append(violations, Violation{
				CriterionName: coreInvariantName,
				Severity:      SeverityError,
				Day:           shift.Day,
				EmployeeID:    shift.EmployeeID,
				Description:   fmt.Sprintf("Employee %s scheduled twice on %s", shift.EmployeeID, shift.Day.Long()),
			})
		}
		if seen[shift.Day][shift.EmployeeID] > 1 {
			continue
		}

		emp, ok := state.Employee(shift.EmployeeID)
		if !ok {
			violations = append(violations, Violation{
				CriterionName: coreInvariantName,
				Severity:      SeverityError,
				Day:           shift.Day,
				EmployeeID:    shift.EmployeeID,
				Description:   fmt.Sprintf("Employee %s is not a schedulable employee (scheduled on %s)", shift.EmployeeID, shift.Day.Long()),
			})
			continue
		}

		if !emp.IsAvailable(shift.Day) {
			violations = append(violations, Violation{
				CriterionName: coreInvariantName,
				Severity:      SeverityError,
				Day:           shift.Day,
				EmployeeID:    shift.EmployeeID,
				Description:   fmt.Sprintf("Employee %s not available on %s", describeEmployee(emp), shift.Day.Long()),
			})
		}
	}

	return violations
}

// describeEmployee renders "id (name)" when a display name is known, otherwise just the id
func describeEmployee(emp *PoolEmployee) string {
	if emp.DisplayName == "" {
		return emp.ID
	}
	return fmt.Sprintf("%s (%s)", emp.ID, emp.DisplayName)
}
