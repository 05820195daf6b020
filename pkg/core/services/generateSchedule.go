package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-scheduler/internal/config"
	"github.com/jakechorley/shift-scheduler/pkg/core/allocator"
	"github.com/jakechorley/shift-scheduler/pkg/core/allocator/criteria"
	"github.com/jakechorley/shift-scheduler/pkg/core/model"
	"github.com/jakechorley/shift-scheduler/pkg/db"
)

// GenerateScheduleStore defines the database operations needed for generating a schedule
type GenerateScheduleStore interface {
	ListEmployees(ctx context.Context, businessID string) ([]model.Employee, error)
	ListAvailability(ctx context.Context, businessID, weekStart string) ([]model.AvailabilityEntry, error)
	ListShiftSlots(ctx context.Context, businessID string) ([]model.ShiftSlot, error)
	ListStaffingRules(ctx context.Context, businessID string) ([]model.StaffingRule, error)
	GetStoreHours(ctx context.Context, businessID string) (model.StoreHours, error)
	GetShifts(ctx context.Context, businessID, weekStart string) ([]model.Shift, error)
	ReplaceWeekShifts(ctx context.Context, businessID, weekStart string, shifts []model.Shift) error
}

// Strategies holds the constructed strategies. Generative is nil when no generator is configured.
type Strategies struct {
	Deterministic allocator.Strategy
	Generative    allocator.Strategy
}

// GenerateScheduleRequest identifies the week to schedule
type GenerateScheduleRequest struct {
	BusinessID  string
	WeekStart   string // YYYY-MM-DD
	Strategy    string // "deterministic" or "generative"; empty uses the configured strategy
	Preferences string
	DryRun      bool
}

// GenerateScheduleResult contains the outcome of a generation run
type GenerateScheduleResult struct {
	ShiftsCreated int // shifts written to the store; zero on a dry run
	Warnings      []string
	Coverage      []allocator.DayCoverage
	StrategyUsed  string
	Shifts        []model.Shift
}

// GenerateSchedule builds a week's schedule and replaces any existing schedule for that week.
//
// Employees, availability, demand, store hours and the prior schedule are loaded from the store.
// The chosen strategy's output must pass validation before anything is written; a
// *allocator.ValidationError or *allocator.GenerationError leaves the stored week untouched.
func GenerateSchedule(
	ctx context.Context,
	store GenerateScheduleStore,
	strategies Strategies,
	cfg *config.Config,
	logger *zap.Logger,
	req GenerateScheduleRequest,
) (*GenerateScheduleResult, error) {
	businessID := req.BusinessID
	if businessID == "" {
		businessID = cfg.BusinessID
	}
	weekStart, err := model.ParseDate(req.WeekStart)
	if err != nil {
		return nil, fmt.Errorf("invalid week start: %w", err)
	}
	weekKey := weekStart.Format(model.DateLayout)

	planConfig, err := selectStrategies(strategies, cfg, req.Strategy)
	if err != nil {
		return nil, err
	}

	logger.Debug("Generating schedule",
		zap.String("business_id", businessID),
		zap.String("week_start", weekKey),
		zap.String("strategy", planConfig.Primary.Name()),
		zap.Bool("dry_run", req.DryRun))

	// Load employees and availability
	employees, err := store.ListEmployees(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}
	entries, err := store.ListAvailability(ctx, businessID, weekKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}

	logger.Debug("Loaded employees and availability",
		zap.Int("employee_count", len(employees)),
		zap.Int("availability_count", len(entries)))

	pool := allocator.ResolveAvailability(allocator.ResolveInput{
		BusinessID: businessID,
		WeekStart:  weekStart,
		Employees:  employees,
		Entries:    entries,
		Policy:     allocator.AvailabilityPolicy(cfg.Scheduling.AvailabilityPolicy),
	}, logger)

	// Load demand and apply overrides
	catalog, err := loadCatalog(ctx, store, cfg, businessID, weekStart, logger)
	if err != nil {
		return nil, err
	}

	storeHours, err := loadStoreHours(ctx, store, businessID)
	if err != nil {
		return nil, err
	}

	prior, err := loadPriorSchedule(ctx, store, businessID, weekStart, logger)
	if err != nil {
		return nil, err
	}

	outcome, err := allocator.Plan(ctx, &allocator.Request{
		BusinessID:    businessID,
		WeekStart:     weekStart,
		Catalog:       catalog,
		Pool:          pool,
		StoreHours:    storeHours,
		Preferences:   req.Preferences,
		PriorSchedule: prior,
	}, planConfig, logger)
	if err != nil {
		return nil, err
	}

	shifts := buildShifts(outcome.Shifts, businessID, weekKey, storeHours, cfg.Scheduling)

	created := 0
	if req.DryRun {
		logger.Info("Dry run: schedule not saved", zap.Int("shift_count", len(shifts)))
	} else {
		if err := store.ReplaceWeekShifts(ctx, businessID, weekKey, shifts); err != nil {
			return nil, fmt.Errorf("failed to save shifts: %w", err)
		}
		created = len(shifts)
		logger.Debug("Saved schedule", zap.Int("shift_count", created))
	}

	return &GenerateScheduleResult{
		ShiftsCreated: created,
		Warnings:      outcome.Warnings,
		Coverage:      outcome.Coverage,
		StrategyUsed:  outcome.StrategyUsed,
		Shifts:        shifts,
	}, nil
}

// selectStrategies maps the requested strategy name onto primary and fallback strategies
func selectStrategies(strategies Strategies, cfg *config.Config, name string) (allocator.PlanConfig, error) {
	if name == "" {
		name = cfg.Scheduling.Strategy
	}

	planConfig := allocator.PlanConfig{
		Criteria: criteria.Default(criteria.Options{MaxDaysPerWeek: cfg.Scheduling.MaxDaysPerWeek}),
	}

	switch name {
	case "", "deterministic":
		if strategies.Deterministic == nil {
			return planConfig, fmt.Errorf("deterministic strategy is not available")
		}
		planConfig.Primary = strategies.Deterministic
	case "generative":
		if strategies.Generative == nil {
			return planConfig, fmt.Errorf("generative strategy requested but no generator is configured")
		}
		planConfig.Primary = strategies.Generative
		if cfg.Scheduling.FallsBack() {
			planConfig.Fallback = strategies.Deterministic
		}
	default:
		return planConfig, fmt.Errorf("unknown strategy %q (expected deterministic or generative)", name)
	}

	return planConfig, nil
}

// loadCatalog fetches slots and rules and applies the configured demand overrides for the week
func loadCatalog(ctx context.Context, store GenerateScheduleStore, cfg *config.Config, businessID string, weekStart time.Time, logger *zap.Logger) (*allocator.Catalog, error) {
	slots, err := store.ListShiftSlots(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift slots: %w", err)
	}
	rules, err := store.ListStaffingRules(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staffing rules: %w", err)
	}

	overrides, err := resolveDemandOverrides(cfg.Scheduling.DemandOverrides, weekStart, logger)
	if err != nil {
		return nil, err
	}
	slots, rules = applyDemandOverrides(slots, rules, overrides)

	logger.Debug("Loaded demand",
		zap.Int("slot_count", len(slots)),
		zap.Int("rule_count", len(rules)),
		zap.Int("overridden_days", len(overrides)))

	return allocator.NewCatalog(slots, rules), nil
}

// loadStoreHours returns the business's hours, or the defaults when none are saved
func loadStoreHours(ctx context.Context, store GenerateScheduleStore, businessID string) (model.StoreHours, error) {
	hours, err := store.GetStoreHours(ctx, businessID)
	if errors.Is(err, db.ErrNotFound) {
		return model.DefaultStoreHours(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch store hours: %w", err)
	}
	return hours, nil
}

// loadPriorSchedule returns the week's existing shifts, or the previous week's when the week is
// empty, as a hint for the generative strategy
func loadPriorSchedule(ctx context.Context, store GenerateScheduleStore, businessID string, weekStart time.Time, logger *zap.Logger) ([]allocator.CandidateShift, error) {
	for _, start := range []time.Time{weekStart, weekStart.AddDate(0, 0, -7)} {
		key := start.Format(model.DateLayout)
		shifts, err := store.GetShifts(ctx, businessID, key)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch shifts for %s: %w", key, err)
		}
		if len(shifts) > 0 {
			logger.Debug("Using prior schedule", zap.String("week_start", key), zap.Int("shift_count", len(shifts)))
			return toCandidates(shifts), nil
		}
	}
	return nil, nil
}

func toCandidates(shifts []model.Shift) []allocator.CandidateShift {
	candidates := make([]allocator.CandidateShift, len(shifts))
	for i, s := range shifts {
		candidates[i] = allocator.CandidateShift{
			Day:        s.Day,
			EmployeeID: s.EmployeeID,
			StartTime:  s.StartTime,
			EndTime:    s.EndTime,
		}
	}
	return candidates
}

// buildShifts converts validated candidates into persisted shifts. Shifts without a time window
// take the day's store hours, or the configured default shift times when the store is closed.
func buildShifts(candidates []allocator.CandidateShift, businessID, weekStart string, hours model.StoreHours, scheduling config.SchedulingConfig) []model.Shift {
	shifts := make([]model.Shift, 0, len(candidates))
	for _, c := range candidates {
		start, end := c.StartTime, c.EndTime
		if !c.HasWindow() {
			start, end = defaultShiftTimes(c.Day, hours, scheduling)
		}
		shifts = append(shifts, model.Shift{
			ID:         uuid.New().String(),
			BusinessID: businessID,
			WeekStart:  weekStart,
			Day:        c.Day,
			EmployeeID: c.EmployeeID,
			StartTime:  start,
			EndTime:    end,
		})
	}
	return shifts
}

func defaultShiftTimes(day model.Weekday, hours model.StoreHours, scheduling config.SchedulingConfig) (string, string) {
	if h, ok := hours[day]; ok && !h.Closed && h.Open != "" && h.Close != "" {
		return h.Open, h.Close
	}
	start, end := scheduling.DefaultShiftStart, scheduling.DefaultShiftEnd
	if start == "" || end == "" {
		return config.DefaultShiftStart, config.DefaultShiftEnd
	}
	return start, end
}
