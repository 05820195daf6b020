package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shift-scheduler/pkg/core/allocator"
	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

func TestShiftSizeCriterion_Name(t *testing.T) {
	assert.Equal(t, "ShiftSize", NewShiftSizeCriterion().Name())
}

func TestShiftSizeCriterion_OverfilledSlot(t *testing.T) {
	shifts := []allocator.CandidateShift{
		{Day: model.Friday, EmployeeID: "1", StartTime: "08:00", EndTime: "12:00"},
		{Day: model.Friday, EmployeeID: "2", StartTime: "08:00", EndTime: "12:00"},
		{Day: model.Friday, EmployeeID: "3", StartTime: "16:00", EndTime: "22:00"},
	}

	violations := NewShiftSizeCriterion().ValidateSchedule(allocator.NewScheduleState(shifts, nil, fridaySlots()))

	require.Len(t, violations, 1)
	assert.Equal(t, allocator.SeverityWarning, violations[0].Severity)
	assert.Equal(t, "Friday 08:00-12:00 is overfilled: has 2 employees but requires 1", violations[0].Description)
}

func TestShiftSizeCriterion_UnderfilledIsNotReported(t *testing.T) {
	shifts := []allocator.CandidateShift{
		{Day: model.Friday, EmployeeID: "3", StartTime: "16:00", EndTime: "22:00"},
	}

	violations := NewShiftSizeCriterion().ValidateSchedule(allocator.NewScheduleState(shifts, nil, fridaySlots()))
	assert.Empty(t, violations)
}

func TestShiftSizeCriterion_StaffingRules(t *testing.T) {
	catalog := allocator.NewCatalog(nil, []model.StaffingRule{{Day: model.Monday, RequiredCount: 1}})
	shifts := []allocator.CandidateShift{
		{Day: model.Monday, EmployeeID: "1"},
		{Day: model.Monday, EmployeeID: "2", StartTime: "10:00", EndTime: "18:00"},
	}

	violations := NewShiftSizeCriterion().ValidateSchedule(allocator.NewScheduleState(shifts, nil, catalog))

	require.Len(t, violations, 1)
	assert.Equal(t, "Monday is overfilled: has 2 employees but requires 1", violations[0].Description)
}
