package allocator

import "github.com/jakechorley/shift-scheduler/pkg/core/model"

// Severity classifies a violation as blocking (error) or advisory (warning)
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Violation represents a single constraint breach found in a candidate schedule
type Violation struct {
	CriterionName string
	Severity      Severity
	Day           model.Weekday
	EmployeeID    string
	Description   string
}

// ScheduleState is everything a criterion needs to judge a candidate schedule
type ScheduleState struct {
	Shifts  []CandidateShift
	Pool    Pool
	Catalog *Catalog

	poolByID map[string]*PoolEmployee
}

// NewScheduleState creates a state for validating shifts against pool and catalog
func NewScheduleState(shifts []CandidateShift, pool Pool, catalog *Catalog) *ScheduleState {
	if catalog == nil {
		catalog = NewCatalog(nil, nil)
	}
	return &ScheduleState{
		Shifts:   shifts,
		Pool:     pool,
		Catalog:  catalog,
		poolByID: pool.ByID(),
	}
}

// Employee looks up a pool employee by ID
func (s *ScheduleState) Employee(id string) (*PoolEmployee, bool) {
	if s.poolByID == nil {
		s.poolByID = s.Pool.ByID()
	}
	emp, ok := s.poolByID[id]
	return emp, ok
}

// ShiftsOn returns the shifts scheduled on day, in input order
func (s *ScheduleState) ShiftsOn(day model.Weekday) []CandidateShift {
	var result []CandidateShift
	for _, shift := range s.Shifts {
		if shift.Day == day {
			result = append(result, shift)
		}
	}
	return result
}

// Criterion defines the interface for schedule rules applied after a strategy has produced
// candidate shifts. Core invariants (double booking and availability) are always checked by
// Validate; criteria add the business-specific rules on top.
type Criterion interface {
	// Name returns a human-readable identifier for this criterion
	Name() string

	// ValidateSchedule checks the candidate schedule and returns every violation found.
	// Violations with SeverityError make the schedule invalid; warnings are reported only.
	ValidateSchedule(state *ScheduleState) []Violation
}
