package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
	"github.com/jakechorley/shift-scheduler/pkg/db"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	store, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "scheduler.db"))
	require.NoError(t, err)
	t.Cleanup(store.Close)

	require.NoError(t, store.RunMigrations(context.Background()))
	return store
}

func seedEmployee(t *testing.T, store *DB, id string, tier model.SkillTier) {
	t.Helper()
	require.NoError(t, store.InsertEmployee(context.Background(), &model.Employee{
		ID:          id,
		BusinessID:  "biz",
		DisplayName: "Employee " + id,
		Tier:        tier,
		Active:      true,
	}))
}

func TestRunMigrations_Idempotent(t *testing.T) {
	store := newTestDB(t)
	assert.NoError(t, store.RunMigrations(context.Background()))
}

func TestEmployees(t *testing.T) {
	ctx := context.Background()
	store := newTestDB(t)

	emp := &model.Employee{BusinessID: "biz", DisplayName: "Ana", Tier: model.TierLead, Active: true}
	require.NoError(t, store.InsertEmployee(ctx, emp))
	require.NotEmpty(t, emp.ID)

	got, err := store.GetEmployee(ctx, "biz", emp.ID)
	require.NoError(t, err)
	assert.Equal(t, *emp, *got)

	emp.Tier = model.TierNew
	emp.Active = false
	require.NoError(t, store.UpdateEmployee(ctx, emp))

	employees, err := store.ListEmployees(ctx, "biz")
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, model.TierNew, employees[0].Tier)
	assert.False(t, employees[0].Active)

	_, err = store.GetEmployee(ctx, "other-biz", emp.ID)
	assert.ErrorIs(t, err, db.ErrNotFound)

	require.NoError(t, store.DeleteEmployee(ctx, "biz", emp.ID))
	assert.ErrorIs(t, store.DeleteEmployee(ctx, "biz", emp.ID), db.ErrNotFound)
	assert.ErrorIs(t, store.UpdateEmployee(ctx, emp), db.ErrNotFound)
}

func TestAvailability_WeekWindowAndUpsert(t *testing.T) {
	ctx := context.Background()
	store := newTestDB(t)
	seedEmployee(t, store, "1", model.TierNormal)

	require.NoError(t, store.UpsertAvailability(ctx, "biz", []model.AvailabilityEntry{
		{EmployeeID: "1", Date: "2023-12-31", Available: true},
		{EmployeeID: "1", Date: "2024-01-01", Available: true, StartTime: "09:00", EndTime: "13:00"},
		{EmployeeID: "1", Date: "2024-01-07", Available: true},
		{EmployeeID: "1", Date: "2024-01-08", Available: true},
	}))
	require.NoError(t, store.UpsertAvailability(ctx, "biz", []model.AvailabilityEntry{
		{EmployeeID: "1", Date: "2024-01-07", Available: false},
	}))

	entries, err := store.ListAvailability(ctx, "biz", "2024-01-01")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, model.AvailabilityEntry{
		EmployeeID: "1", Date: "2024-01-01", Available: true, StartTime: "09:00", EndTime: "13:00",
	}, entries[0])
	assert.Equal(t, "2024-01-07", entries[1].Date)
	assert.False(t, entries[1].Available)
}

func TestShiftSlotsAndRules(t *testing.T) {
	ctx := context.Background()
	store := newTestDB(t)

	slot := &model.ShiftSlot{BusinessID: "biz", Day: model.Friday, StartTime: "08:00", EndTime: "12:00", RequiredCount: 2}
	require.NoError(t, store.InsertShiftSlot(ctx, slot))

	slot.RequiredCount = 3
	require.NoError(t, store.UpdateShiftSlot(ctx, slot))

	slots, err := store.ListShiftSlots(ctx, "biz")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, *slot, slots[0])

	require.NoError(t, store.DeleteShiftSlot(ctx, "biz", slot.ID))
	assert.ErrorIs(t, store.DeleteShiftSlot(ctx, "biz", slot.ID), db.ErrNotFound)

	require.NoError(t, store.UpsertStaffingRule(ctx, &model.StaffingRule{BusinessID: "biz", Day: model.Monday, RequiredCount: 2}))
	require.NoError(t, store.UpsertStaffingRule(ctx, &model.StaffingRule{BusinessID: "biz", Day: model.Monday, RequiredCount: 4}))

	rules, err := store.ListStaffingRules(ctx, "biz")
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, 4, rules[0].RequiredCount)

	require.NoError(t, store.DeleteStaffingRule(ctx, "biz", model.Monday))
	assert.ErrorIs(t, store.DeleteStaffingRule(ctx, "biz", model.Monday), db.ErrNotFound)
}

func TestStoreHours(t *testing.T) {
	ctx := context.Background()
	store := newTestDB(t)

	_, err := store.GetStoreHours(ctx, "biz")
	assert.ErrorIs(t, err, db.ErrNotFound)

	hours := model.DefaultStoreHours()
	hours[model.Saturday] = model.DayHours{Open: "10:00", Close: "14:00"}
	require.NoError(t, store.SetStoreHours(ctx, "biz", hours))

	got, err := store.GetStoreHours(ctx, "biz")
	require.NoError(t, err)
	assert.Equal(t, hours, got)
}

func TestReplaceWeekShifts(t *testing.T) {
	ctx := context.Background()
	store := newTestDB(t)
	seedEmployee(t, store, "1", model.TierLead)
	seedEmployee(t, store, "2", model.TierNormal)

	first := []model.Shift{
		{BusinessID: "biz", WeekStart: "2024-01-01", Day: model.Monday, EmployeeID: "1", StartTime: "09:00", EndTime: "17:00"},
		{BusinessID: "biz", WeekStart: "2024-01-01", Day: model.Tuesday, EmployeeID: "2"},
	}
	require.NoError(t, store.ReplaceWeekShifts(ctx, "biz", "2024-01-01", first))

	other := []model.Shift{{BusinessID: "biz", WeekStart: "2024-01-08", Day: model.Monday, EmployeeID: "1"}}
	require.NoError(t, store.ReplaceWeekShifts(ctx, "biz", "2024-01-08", other))

	second := []model.Shift{{BusinessID: "biz", WeekStart: "2024-01-01", Day: model.Friday, EmployeeID: "2"}}
	require.NoError(t, store.ReplaceWeekShifts(ctx, "biz", "2024-01-01", second))

	shifts, err := store.GetShifts(ctx, "biz", "2024-01-01")
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, model.Friday, shifts[0].Day)
	assert.Empty(t, shifts[0].StartTime)

	// other weeks are untouched
	shifts, err = store.GetShifts(ctx, "biz", "2024-01-08")
	require.NoError(t, err)
	assert.Len(t, shifts, 1)

	n, err := store.DeleteWeekShifts(ctx, "biz", "2024-01-08")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestReplaceWeekShifts_FailureKeepsExisting(t *testing.T) {
	ctx := context.Background()
	store := newTestDB(t)
	seedEmployee(t, store, "1", model.TierLead)

	existing := []model.Shift{{BusinessID: "biz", WeekStart: "2024-01-01", Day: model.Monday, EmployeeID: "1"}}
	require.NoError(t, store.ReplaceWeekShifts(ctx, "biz", "2024-01-01", existing))

	// unknown employee violates the foreign key mid-transaction
	bad := []model.Shift{
		{BusinessID: "biz", WeekStart: "2024-01-01", Day: model.Tuesday, EmployeeID: "1"},
		{BusinessID: "biz", WeekStart: "2024-01-01", Day: model.Wednesday, EmployeeID: "ghost"},
	}
	require.Error(t, store.ReplaceWeekShifts(ctx, "biz", "2024-01-01", bad))

	shifts, err := store.GetShifts(ctx, "biz", "2024-01-01")
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, model.Monday, shifts[0].Day)
}

func TestDeleteEmployee_CascadesShifts(t *testing.T) {
	ctx := context.Background()
	store := newTestDB(t)
	seedEmployee(t, store, "1", model.TierLead)

	require.NoError(t, store.ReplaceWeekShifts(ctx, "biz", "2024-01-01", []model.Shift{
		{BusinessID: "biz", WeekStart: "2024-01-01", Day: model.Monday, EmployeeID: "1"},
	}))
	require.NoError(t, store.DeleteEmployee(ctx, "biz", "1"))

	shifts, err := store.GetShifts(ctx, "biz", "2024-01-01")
	require.NoError(t, err)
	assert.Empty(t, shifts)
}
