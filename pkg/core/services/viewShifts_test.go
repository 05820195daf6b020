package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-scheduler/pkg/core/allocator"
	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

func storeWithSchedule() *mockStore {
	store := storeWithTeam()
	store.shifts[testWeek] = []model.Shift{
		{ID: "a", BusinessID: testBusiness, WeekStart: testWeek, Day: model.Friday, EmployeeID: "3", StartTime: "16:00", EndTime: "22:00"},
		{ID: "b", BusinessID: testBusiness, WeekStart: testWeek, Day: model.Friday, EmployeeID: "1", StartTime: "08:00", EndTime: "12:00"},
		{ID: "c", BusinessID: testBusiness, WeekStart: testWeek, Day: model.Friday, EmployeeID: "2", StartTime: "08:00", EndTime: "12:00"},
		{ID: "d", BusinessID: testBusiness, WeekStart: testWeek, Day: model.Monday, EmployeeID: "gone", StartTime: "09:00", EndTime: "17:00"},
	}
	store.slots = []model.ShiftSlot{
		{ID: "am", Day: model.Friday, StartTime: "08:00", EndTime: "12:00", RequiredCount: 2},
		{ID: "pm", Day: model.Friday, StartTime: "16:00", EndTime: "22:00", RequiredCount: 1},
	}
	return store
}

func TestViewShifts(t *testing.T) {
	week, err := ViewShifts(context.Background(), storeWithSchedule(), zap.NewNop(), testBusiness, testWeek)
	require.NoError(t, err)

	require.Len(t, week.Days, 7)
	assert.Equal(t, 4, week.ShiftCount())

	monday := week.Days[0]
	assert.Equal(t, model.Monday, monday.Day)
	require.Len(t, monday.Shifts, 1)
	assert.Equal(t, "gone", monday.Shifts[0].DisplayName)

	friday := week.Days[4]
	assert.Equal(t, model.Friday, friday.Day)
	assert.Equal(t, "2024-01-05", friday.Date.Format(model.DateLayout))
	require.Len(t, friday.Shifts, 3)
	assert.Equal(t, "Ana", friday.Shifts[0].DisplayName)
	assert.Equal(t, model.TierLead, friday.Shifts[0].Tier)
	assert.Equal(t, "Ben", friday.Shifts[1].DisplayName)
	assert.Equal(t, "Cy", friday.Shifts[2].DisplayName)
}

func TestViewShifts_InvalidWeek(t *testing.T) {
	_, err := ViewShifts(context.Background(), newMockStore(), zap.NewNop(), testBusiness, "next week")
	assert.Error(t, err)
}

func TestDeleteShifts(t *testing.T) {
	store := storeWithSchedule()

	count, err := DeleteShifts(context.Background(), store, zap.NewNop(), testBusiness, testWeek)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.Empty(t, store.shifts[testWeek])

	count, err = DeleteShifts(context.Background(), store, zap.NewNop(), testBusiness, testWeek)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestPublishSchedule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.xlsx")

	title, err := PublishSchedule(context.Background(), storeWithSchedule(), zap.NewNop(), testBusiness, testWeek, path)
	require.NoError(t, err)
	assert.Equal(t, "Mon Jan 01 2024 - Sun Jan 07 2024", title)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(title)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Mon Jan 01 2024", "09:00-17:00", "", "gone", "0"}, rows[1])
	assert.Equal(t, []string{"Fri Jan 05 2024", "08:00-12:00", "Ana", "Ben", "2"}, rows[2])
	assert.Equal(t, []string{"Fri Jan 05 2024", "16:00-22:00", "", "Cy", "1"}, rows[3])
}

func TestPublishSchedule_EmptyWeek(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.xlsx")

	_, err := PublishSchedule(context.Background(), storeWithTeam(), zap.NewNop(), testBusiness, testWeek, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no shifts saved")
}

func TestBuildPublishedSchedule_RuleDemand(t *testing.T) {
	store := storeWithSchedule()
	store.slots = nil
	store.rules = []model.StaffingRule{{Day: model.Friday, RequiredCount: 3}}

	week, err := ViewShifts(context.Background(), store, zap.NewNop(), testBusiness, testWeek)
	require.NoError(t, err)

	schedule := buildPublishedSchedule(week, allocator.NewCatalog(nil, store.rules))
	require.Len(t, schedule.Rows, 3)
	assert.Equal(t, 0, schedule.Rows[0].Required)
	// Rule demand is a daily total, repeated on each of the day's rows
	assert.Equal(t, 3, schedule.Rows[1].Required)
	assert.Equal(t, 3, schedule.Rows[2].Required)
}
