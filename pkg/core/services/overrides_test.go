package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-scheduler/internal/config"
	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

func TestResolveDemandOverrides(t *testing.T) {
	weekStart := time.Date(2024, 12, 23, 0, 0, 0, 0, time.UTC) // Monday
	two := 2
	five := 5

	overrides, err := resolveDemandOverrides([]config.DemandOverride{
		{RRule: "FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=25", Closed: true},
		{RRule: "FREQ=WEEKLY;BYDAY=SA,SU", RequiredCount: &two},
		{RRule: "FREQ=WEEKLY;BYDAY=SU", RequiredCount: &five},
		{RRule: "FREQ=YEARLY;BYMONTH=7;BYMONTHDAY=4", Closed: true},
	}, weekStart, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, overrides, 3)
	assert.True(t, overrides[model.Wednesday].closed)
	assert.Nil(t, overrides[model.Wednesday].requiredCount)
	assert.Equal(t, 2, *overrides[model.Saturday].requiredCount)
	// later overrides win
	assert.Equal(t, 5, *overrides[model.Sunday].requiredCount)
}

func TestResolveDemandOverrides_InvalidRule(t *testing.T) {
	_, err := resolveDemandOverrides([]config.DemandOverride{{RRule: "NOPE"}}, time.Now(), zap.NewNop())
	assert.Error(t, err)
}

func TestApplyDemandOverrides(t *testing.T) {
	zero := 0
	slots := []model.ShiftSlot{
		{ID: "a", Day: model.Monday, StartTime: "09:00", EndTime: "12:00", RequiredCount: 2},
		{ID: "b", Day: model.Tuesday, StartTime: "09:00", EndTime: "12:00", RequiredCount: 2},
		{ID: "c", Day: model.Friday, StartTime: "09:00", EndTime: "12:00", RequiredCount: 2},
	}
	rules := []model.StaffingRule{
		{Day: model.Monday, RequiredCount: 3},
		{Day: model.Friday, RequiredCount: 1},
	}

	gotSlots, gotRules := applyDemandOverrides(slots, rules, map[model.Weekday]dayOverride{
		model.Monday:  {closed: true},
		model.Tuesday: {requiredCount: &zero},
	})

	require.Len(t, gotSlots, 2)
	assert.Equal(t, "b", gotSlots[0].ID)
	assert.Equal(t, 0, gotSlots[0].RequiredCount)
	assert.Equal(t, "c", gotSlots[1].ID)
	assert.Equal(t, 2, gotSlots[1].RequiredCount)

	require.Len(t, gotRules, 1)
	assert.Equal(t, model.Friday, gotRules[0].Day)

	// inputs are untouched
	assert.Equal(t, 2, slots[1].RequiredCount)
}
