package allocator

import (
	"fmt"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

// Allocator fills demand units from a resolved employee pool, one unit at a time
type Allocator struct {
	config AllocationConfig

	// usedOn tracks which employees already hold a shift on each weekday
	usedOn map[model.Weekday]map[string]bool

	shifts   []CandidateShift
	unfilled []UnfilledUnit
}

// AllocationConfig contains the configuration for a deterministic allocation run
type AllocationConfig struct {
	// Demand is the ordered list of units to fill. Units are processed in this order.
	Demand []DemandUnit

	// Pool is the resolved employee pool. Its order is the tie-break within a tier.
	Pool Pool

	// PairNewWithLead pulls a new employee forward behind each lead when ranking
	PairNewWithLead bool
}

// UnfilledUnit records a demand unit that could not be staffed to its required headcount
type UnfilledUnit struct {
	Unit     DemandUnit
	Assigned int
}

// Shortfall returns how many more employees the unit needed
func (u UnfilledUnit) Shortfall() int {
	return u.Unit.Required - u.Assigned
}

// AllocationOutcome represents the result of a deterministic allocation
type AllocationOutcome struct {
	// Shifts are the candidate shifts in unit order, then ranked order within a unit
	Shifts []CandidateShift

	// Success indicates whether every unit was filled to its required headcount
	Success bool

	// Unfilled contains the units left under-staffed
	Unfilled []UnfilledUnit
}

// Allocate runs the greedy per-unit solver.
//
// For each demand unit in order:
//  1. Filter employees available that weekday who hold no shift that weekday yet and whose
//     declared time window (if any) covers the unit
//  2. Rank them by skill tier, stable on pool order
//  3. Take the first Required employees
//
// Under-staffing is not an error: the unit is filled as far as possible and reported in
// Unfilled. Units requiring zero (or fewer) employees are skipped.
func Allocate(config AllocationConfig) (*AllocationOutcome, error) {
	for i, unit := range config.Demand {
		if !unit.Day.IsValid() {
			return nil, fmt.Errorf("demand unit %d has invalid day %q", i, unit.Day)
		}
	}

	allocator := &Allocator{
		config: config,
		usedOn: make(map[model.Weekday]map[string]bool),
	}

	for _, unit := range config.Demand {
		allocator.allocateUnit(unit)
	}

	return allocator.buildOutcome(), nil
}

// allocateUnit assigns up to unit.Required of the best-ranked eligible employees
func (a *Allocator) allocateUnit(unit DemandUnit) {
	if unit.Required <= 0 {
		return
	}

	ranked := RankEmployees(a.eligibleFor(unit), a.config.PairNewWithLead)

	assigned := 0
	for _, emp := range ranked {
		if assigned == unit.Required {
			break
		}
		a.assign(emp, unit)
		assigned++
	}

	if assigned < unit.Required {
		a.unfilled = append(a.unfilled, UnfilledUnit{Unit: unit, Assigned: assigned})
	}
}

// eligibleFor returns pool employees who can take the unit, preserving pool order
func (a *Allocator) eligibleFor(unit DemandUnit) Pool {
	used := a.usedOn[unit.Day]

	eligible := make(Pool, 0, len(a.config.Pool))
	for _, emp := range a.config.Pool {
		if used[emp.ID] {
			continue
		}
		if !emp.CanCover(unit) {
			continue
		}
		eligible = append(eligible, emp)
	}
	return eligible
}

func (a *Allocator) assign(emp *PoolEmployee, unit DemandUnit) {
	if a.usedOn[unit.Day] == nil {
		a.usedOn[unit.Day] = make(map[string]bool)
	}
	a.usedOn[unit.Day][emp.ID] = true

	a.shifts = append(a.shifts, CandidateShift{
		Day:        unit.Day,
		EmployeeID: emp.ID,
		StartTime:  unit.StartTime,
		EndTime:    unit.EndTime,
	})
}

func (a *Allocator) buildOutcome() *AllocationOutcome {
	shifts := a.shifts
	if shifts == nil {
		shifts = []CandidateShift{}
	}
	return &AllocationOutcome{
		Shifts:   shifts,
		Success:  len(a.unfilled) == 0,
		Unfilled: a.unfilled,
	}
}
