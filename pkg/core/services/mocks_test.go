package services

import (
	"context"
	"errors"

	"github.com/jakechorley/shift-scheduler/pkg/core/allocator"
	"github.com/jakechorley/shift-scheduler/pkg/core/model"
	"github.com/jakechorley/shift-scheduler/pkg/db"
)

var errStore = errors.New("store unavailable")

// mockStore is an in-memory db.Database for a single business
type mockStore struct {
	employees    []model.Employee
	availability []model.AvailabilityEntry
	slots        []model.ShiftSlot
	rules        []model.StaffingRule
	storeHours   model.StoreHours
	shifts       map[string][]model.Shift // by week start

	replaceCalls    int
	listEmployeeErr error
	replaceErr      error
}

var _ db.Database = (*mockStore)(nil)

func newMockStore() *mockStore {
	return &mockStore{shifts: make(map[string][]model.Shift)}
}

func (m *mockStore) ListEmployees(ctx context.Context, businessID string) ([]model.Employee, error) {
	if m.listEmployeeErr != nil {
		return nil, m.listEmployeeErr
	}
	return m.employees, nil
}

func (m *mockStore) GetEmployee(ctx context.Context, businessID, employeeID string) (*model.Employee, error) {
	for i := range m.employees {
		if m.employees[i].ID == employeeID {
			e := m.employees[i]
			return &e, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *mockStore) InsertEmployee(ctx context.Context, employee *model.Employee) error {
	if employee.ID == "" {
		employee.ID = "generated"
	}
	m.employees = append(m.employees, *employee)
	return nil
}

func (m *mockStore) UpdateEmployee(ctx context.Context, employee *model.Employee) error {
	for i := range m.employees {
		if m.employees[i].ID == employee.ID {
			m.employees[i] = *employee
			return nil
		}
	}
	return db.ErrNotFound
}

func (m *mockStore) DeleteEmployee(ctx context.Context, businessID, employeeID string) error {
	for i := range m.employees {
		if m.employees[i].ID == employeeID {
			m.employees = append(m.employees[:i], m.employees[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

func (m *mockStore) ListAvailability(ctx context.Context, businessID, weekStart string) ([]model.AvailabilityEntry, error) {
	start, end, err := db.WeekRange(weekStart)
	if err != nil {
		return nil, err
	}
	var entries []model.AvailabilityEntry
	for _, e := range m.availability {
		if e.Date >= start && e.Date < end {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *mockStore) UpsertAvailability(ctx context.Context, businessID string, entries []model.AvailabilityEntry) error {
	for _, entry := range entries {
		replaced := false
		for i, existing := range m.availability {
			if existing.EmployeeID == entry.EmployeeID && existing.Date == entry.Date {
				m.availability[i] = entry
				replaced = true
			}
		}
		if !replaced {
			m.availability = append(m.availability, entry)
		}
	}
	return nil
}

func (m *mockStore) ListShiftSlots(ctx context.Context, businessID string) ([]model.ShiftSlot, error) {
	return m.slots, nil
}

func (m *mockStore) InsertShiftSlot(ctx context.Context, slot *model.ShiftSlot) error {
	slot.ID = "slot-new"
	m.slots = append(m.slots, *slot)
	return nil
}

func (m *mockStore) UpdateShiftSlot(ctx context.Context, slot *model.ShiftSlot) error {
	for i := range m.slots {
		if m.slots[i].ID == slot.ID {
			m.slots[i] = *slot
			return nil
		}
	}
	return db.ErrNotFound
}

func (m *mockStore) DeleteShiftSlot(ctx context.Context, businessID, slotID string) error {
	for i := range m.slots {
		if m.slots[i].ID == slotID {
			m.slots = append(m.slots[:i], m.slots[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

func (m *mockStore) ListStaffingRules(ctx context.Context, businessID string) ([]model.StaffingRule, error) {
	return m.rules, nil
}

func (m *mockStore) UpsertStaffingRule(ctx context.Context, rule *model.StaffingRule) error {
	for i := range m.rules {
		if m.rules[i].Day == rule.Day {
			m.rules[i].RequiredCount = rule.RequiredCount
			return nil
		}
	}
	m.rules = append(m.rules, *rule)
	return nil
}

func (m *mockStore) DeleteStaffingRule(ctx context.Context, businessID string, day model.Weekday) error {
	for i := range m.rules {
		if m.rules[i].Day == day {
			m.rules = append(m.rules[:i], m.rules[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

func (m *mockStore) GetStoreHours(ctx context.Context, businessID string) (model.StoreHours, error) {
	if m.storeHours == nil {
		return nil, db.ErrNotFound
	}
	hours := make(model.StoreHours, len(m.storeHours))
	for day, h := range m.storeHours {
		hours[day] = h
	}
	return hours, nil
}

func (m *mockStore) SetStoreHours(ctx context.Context, businessID string, hours model.StoreHours) error {
	m.storeHours = hours
	return nil
}

func (m *mockStore) GetShifts(ctx context.Context, businessID, weekStart string) ([]model.Shift, error) {
	return m.shifts[weekStart], nil
}

func (m *mockStore) ReplaceWeekShifts(ctx context.Context, businessID, weekStart string, shifts []model.Shift) error {
	m.replaceCalls++
	if m.replaceErr != nil {
		return m.replaceErr
	}
	if err := db.CheckWeekShifts(businessID, weekStart, shifts); err != nil {
		return err
	}
	m.shifts[weekStart] = shifts
	return nil
}

func (m *mockStore) DeleteWeekShifts(ctx context.Context, businessID, weekStart string) (int, error) {
	n := len(m.shifts[weekStart])
	delete(m.shifts, weekStart)
	return n, nil
}

func (m *mockStore) RunMigrations(ctx context.Context) error { return nil }

func (m *mockStore) Close() {}

// recordingStrategy returns canned shifts and records the request it was given
type recordingStrategy struct {
	name    string
	shifts  []allocator.CandidateShift
	err     error
	request *allocator.Request
}

func (s *recordingStrategy) Name() string { return s.name }

func (s *recordingStrategy) Produce(ctx context.Context, req *allocator.Request) ([]allocator.CandidateShift, error) {
	s.request = req
	return s.shifts, s.err
}
