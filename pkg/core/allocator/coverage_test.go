package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

func TestCalculateCoverage(t *testing.T) {
	demand := []DemandUnit{
		{Day: model.Wednesday, Required: 3},
		{Day: model.Monday, Required: 0},
		{Day: model.Friday, StartTime: "08:00", EndTime: "12:00", Required: 2},
		{Day: model.Friday, StartTime: "12:00", EndTime: "18:00", Required: 1},
	}
	shifts := []CandidateShift{
		{Day: model.Monday, EmployeeID: "1"},
		{Day: model.Wednesday, EmployeeID: "1"},
		{Day: model.Friday, EmployeeID: "1"},
		{Day: model.Friday, EmployeeID: "2"},
	}

	coverage := CalculateCoverage(shifts, demand)

	require.Len(t, coverage, 3)
	assert.Equal(t, DayCoverage{Day: model.Monday, Required: 0, Scheduled: 1, CoveragePct: 100}, coverage[0])
	assert.Equal(t, DayCoverage{Day: model.Wednesday, Required: 3, Scheduled: 1, CoveragePct: 33.3}, coverage[1])
	assert.Equal(t, DayCoverage{Day: model.Friday, Required: 3, Scheduled: 2, CoveragePct: 66.7}, coverage[2])
}

func TestCalculateCoverage_ZeroRequiredIsAlwaysFull(t *testing.T) {
	demand := []DemandUnit{{Day: model.Sunday, Required: 0}}

	for _, scheduled := range []int{0, 1, 5} {
		shifts := make([]CandidateShift, scheduled)
		for i := range shifts {
			shifts[i] = CandidateShift{Day: model.Sunday, EmployeeID: "x"}
		}
		coverage := CalculateCoverage(shifts, demand)
		require.Len(t, coverage, 1)
		assert.Equal(t, 100.0, coverage[0].CoveragePct)
	}
}

func TestCalculateCoverage_OverStaffed(t *testing.T) {
	demand := []DemandUnit{{Day: model.Monday, Required: 2}}
	shifts := []CandidateShift{
		{Day: model.Monday, EmployeeID: "1"},
		{Day: model.Monday, EmployeeID: "2"},
		{Day: model.Monday, EmployeeID: "3"},
	}

	coverage := CalculateCoverage(shifts, demand)
	assert.Equal(t, 150.0, coverage[0].CoveragePct)
}

func TestCoverageWarnings(t *testing.T) {
	coverage := []DayCoverage{
		{Day: model.Monday, Required: 2, Scheduled: 2, CoveragePct: 100},
		{Day: model.Tuesday, Required: 1, Scheduled: 0, CoveragePct: 0},
	}

	warnings := CoverageWarnings(coverage)
	require.Len(t, warnings, 1)
	assert.Equal(t, "Tuesday is under-staffed: 0 of 1 required (0.0%)", warnings[0])
}
