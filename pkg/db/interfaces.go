package db

import (
	"context"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

// EmployeeStore defines the interface for employee database operations
type EmployeeStore interface {
	ListEmployees(ctx context.Context, businessID string) ([]model.Employee, error)
	GetEmployee(ctx context.Context, businessID, employeeID string) (*model.Employee, error)
	InsertEmployee(ctx context.Context, employee *model.Employee) error
	UpdateEmployee(ctx context.Context, employee *model.Employee) error
	// DeleteEmployee removes the employee along with their shifts and availability
	DeleteEmployee(ctx context.Context, businessID, employeeID string) error
}

// AvailabilityStore defines the interface for availability database operations
type AvailabilityStore interface {
	// ListAvailability returns entries dated within the seven days starting at weekStart
	ListAvailability(ctx context.Context, businessID, weekStart string) ([]model.AvailabilityEntry, error)
	// UpsertAvailability inserts or replaces entries keyed by (employee, date)
	UpsertAvailability(ctx context.Context, businessID string, entries []model.AvailabilityEntry) error
}

// ShiftSlotStore defines the interface for shift slot database operations
type ShiftSlotStore interface {
	ListShiftSlots(ctx context.Context, businessID string) ([]model.ShiftSlot, error)
	InsertShiftSlot(ctx context.Context, slot *model.ShiftSlot) error
	UpdateShiftSlot(ctx context.Context, slot *model.ShiftSlot) error
	DeleteShiftSlot(ctx context.Context, businessID, slotID string) error
}

// StaffingRuleStore defines the interface for legacy staffing rule operations.
// There is at most one rule per business and weekday.
type StaffingRuleStore interface {
	ListStaffingRules(ctx context.Context, businessID string) ([]model.StaffingRule, error)
	UpsertStaffingRule(ctx context.Context, rule *model.StaffingRule) error
	DeleteStaffingRule(ctx context.Context, businessID string, day model.Weekday) error
}

// StoreHoursStore defines the interface for business opening hours
type StoreHoursStore interface {
	// GetStoreHours returns ErrNotFound when none have been saved
	GetStoreHours(ctx context.Context, businessID string) (model.StoreHours, error)
	SetStoreHours(ctx context.Context, businessID string, hours model.StoreHours) error
}

// ShiftStore defines the interface for shift assignment operations
type ShiftStore interface {
	GetShifts(ctx context.Context, businessID, weekStart string) ([]model.Shift, error)
	// ReplaceWeekShifts atomically deletes every shift of the business-week and inserts shifts
	ReplaceWeekShifts(ctx context.Context, businessID, weekStart string, shifts []model.Shift) error
	// DeleteWeekShifts removes every shift of the business-week and returns how many were removed
	DeleteWeekShifts(ctx context.Context, businessID, weekStart string) (int, error)
}

// Database defines the interface for all database operations.
// Both postgres.DB and sqlite.DB implement this interface.
type Database interface {
	EmployeeStore
	AvailabilityStore
	ShiftSlotStore
	StaffingRuleStore
	StoreHoursStore
	ShiftStore

	RunMigrations(ctx context.Context) error
	Close()
}
