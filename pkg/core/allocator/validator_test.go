package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

// stubCriterion returns a fixed set of violations
type stubCriterion struct {
	violations []Violation
}

func (c *stubCriterion) Name() string { return "Stub" }

func (c *stubCriterion) ValidateSchedule(state *ScheduleState) []Violation {
	return c.violations
}

func TestValidate_DoubleBookingAcrossSlots(t *testing.T) {
	pool := Pool{poolEmployee("5", model.TierNormal, model.Friday)}
	shifts := []CandidateShift{
		{Day: model.Friday, EmployeeID: "5", StartTime: "08:00", EndTime: "12:00"},
		{Day: model.Friday, EmployeeID: "5", StartTime: "16:00", EndTime: "22:00"},
	}

	result := Validate(NewScheduleState(shifts, pool, nil), nil)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "5")
	assert.Contains(t, result.Errors[0], "Friday")
	assert.Equal(t, "Employee 5 scheduled twice on Friday", result.Errors[0])
}

func TestValidate_TripleBookingReportedOnce(t *testing.T) {
	pool := Pool{poolEmployee("5", model.TierNormal, model.Friday)}
	shifts := []CandidateShift{
		{Day: model.Friday, EmployeeID: "5"},
		{Day: model.Friday, EmployeeID: "5"},
		{Day: model.Friday, EmployeeID: "5"},
	}

	result := Validate(NewScheduleState(shifts, pool, nil), nil)
	assert.Len(t, result.Errors, 1)
}

func TestValidate_NotAvailableNamesEmployee(t *testing.T) {
	emp := poolEmployee("7", model.TierNormal, model.Monday)
	emp.DisplayName = "Priya"

	shifts := []CandidateShift{{Day: model.Tuesday, EmployeeID: "7"}}
	result := Validate(NewScheduleState(shifts, Pool{emp}, nil), nil)

	assert.False(t, result.Valid)
	assert.Equal(t, []string{"Employee 7 (Priya) not available on Tuesday"}, result.Errors)
}

func TestValidate_NotAvailableWithoutDisplayName(t *testing.T) {
	emp := poolEmployee("7", model.TierNormal)
	emp.DisplayName = ""

	shifts := []CandidateShift{{Day: model.Sunday, EmployeeID: "7"}}
	result := Validate(NewScheduleState(shifts, Pool{emp}, nil), nil)

	assert.Equal(t, []string{"Employee 7 not available on Sunday"}, result.Errors)
}

func TestValidate_UnknownEmployeeAndDay(t *testing.T) {
	pool := Pool{poolEmployee("1", model.TierNormal, model.Monday)}
	shifts := []CandidateShift{
		{Day: model.Monday, EmployeeID: "ghost"},
		{Day: "funday", EmployeeID: "1"},
	}

	result := Validate(NewScheduleState(shifts, pool, nil), nil)

	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "ghost")
	assert.Contains(t, result.Errors[1], "funday")
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	pool := Pool{
		poolEmployee("1", model.TierNormal, model.Monday),
		poolEmployee("2", model.TierNormal, model.Monday),
	}
	shifts := []CandidateShift{
		{Day: model.Monday, EmployeeID: "1"},
		{Day: model.Monday, EmployeeID: "1"},
		{Day: model.Tuesday, EmployeeID: "2"},
	}

	result := Validate(NewScheduleState(shifts, pool, nil), nil)
	assert.Len(t, result.Errors, 2)
}

func TestValidate_ValidSchedule(t *testing.T) {
	pool := Pool{
		poolEmployee("1", model.TierLead, model.Monday, model.Tuesday),
		poolEmployee("2", model.TierNew, model.Monday),
	}
	shifts := []CandidateShift{
		{Day: model.Monday, EmployeeID: "1"},
		{Day: model.Monday, EmployeeID: "2"},
		{Day: model.Tuesday, EmployeeID: "1"},
	}

	result := Validate(NewScheduleState(shifts, pool, nil), nil)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidate_CriterionWarningsDoNotInvalidate(t *testing.T) {
	pool := Pool{poolEmployee("1", model.TierNormal, model.Monday)}
	shifts := []CandidateShift{{Day: model.Monday, EmployeeID: "1"}}

	criterion := &stubCriterion{violations: []Violation{
		{CriterionName: "Stub", Severity: SeverityWarning, Description: "uneven"},
	}}

	result := Validate(NewScheduleState(shifts, pool, nil), []Criterion{criterion})

	assert.True(t, result.Valid)
	assert.Equal(t, []string{"uneven"}, result.Warnings)
	require.Len(t, result.Violations, 1)
}

func TestValidate_CriterionErrorsInvalidate(t *testing.T) {
	pool := Pool{poolEmployee("1", model.TierNormal, model.Monday)}
	shifts := []CandidateShift{{Day: model.Monday, EmployeeID: "1"}}

	criterion := &stubCriterion{violations: []Violation{
		{CriterionName: "Stub", Severity: SeverityError, Description: "bad slot"},
	}}

	result := Validate(NewScheduleState(shifts, pool, nil), []Criterion{criterion})

	assert.False(t, result.Valid)
	assert.Equal(t, []string{"bad slot"}, result.Errors)
}
