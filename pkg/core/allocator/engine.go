package allocator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

// Request is the input shared by every strategy
type Request struct {
	BusinessID string
	WeekStart  time.Time
	Catalog    *Catalog
	Pool       Pool

	// StoreHours and Preferences are only consulted by the generative strategy
	StoreHours  model.StoreHours
	Preferences string

	// PriorSchedule is an existing schedule used as a hint to minimise churn
	PriorSchedule []CandidateShift
}

// Demand returns the request's ordered demand units
func (r *Request) Demand() []DemandUnit {
	if r.Catalog == nil {
		return nil
	}
	return r.Catalog.DemandUnits()
}

// Strategy produces candidate shifts for a request. Callers never need to know which strategy
// ran: every output goes through the same validation.
type Strategy interface {
	Name() string
	Produce(ctx context.Context, req *Request) ([]CandidateShift, error)
}

// Committer is implemented by strategies that remember their output between runs. Commit is
// called once a schedule has passed validation and will be used; Discard when it was rejected.
type Committer interface {
	Commit(ctx context.Context, req *Request, shifts []CandidateShift)
	Discard(ctx context.Context, req *Request)
}

// DeterministicStrategy is the greedy tier-ranked solver
type DeterministicStrategy struct {
	PairNewWithLead bool
}

// NewDeterministicStrategy creates the deterministic solver strategy
func NewDeterministicStrategy(pairNewWithLead bool) *DeterministicStrategy {
	return &DeterministicStrategy{PairNewWithLead: pairNewWithLead}
}

func (s *DeterministicStrategy) Name() string {
	return "deterministic"
}

func (s *DeterministicStrategy) Produce(ctx context.Context, req *Request) ([]CandidateShift, error) {
	outcome, err := Allocate(AllocationConfig{
		Demand:          req.Demand(),
		Pool:            req.Pool,
		PairNewWithLead: s.PairNewWithLead,
	})
	if err != nil {
		return nil, err
	}
	return outcome.Shifts, nil
}

// PlanConfig selects strategies and criteria for a planning run
type PlanConfig struct {
	// Primary is the strategy tried first
	Primary Strategy

	// Fallback runs when Primary fails or its output is invalid. Nil disables fallback.
	Fallback Strategy

	// Criteria are applied on top of the core invariants
	Criteria []Criterion
}

// PlanOutcome is a validated schedule ready to persist
type PlanOutcome struct {
	Shifts       []CandidateShift
	Validation   ValidationResult
	Coverage     []DayCoverage
	StrategyUsed string
	Warnings     []string
}

// Plan runs strategy -> validation -> coverage for one business-week.
//
// A primary strategy that errors or returns an invalid schedule is retried with the fallback
// strategy (with a warning) when one is configured. Without a fallback, a strategy error is
// returned as a *GenerationError and an invalid schedule as a *ValidationError (wrapped in a
// *GenerationError for non-deterministic strategies). Nothing is returned for persistence
// unless it passed validation.
func Plan(ctx context.Context, req *Request, config PlanConfig, logger *zap.Logger) (*PlanOutcome, error) {
	if len(req.Pool) == 0 {
		return nil, ErrNoEmployees
	}
	if req.Catalog == nil || req.Catalog.IsEmpty() {
		return nil, ErrNoDemand
	}
	if config.Primary == nil {
		return nil, fmt.Errorf("no scheduling strategy configured")
	}

	var warnings []string

	shifts, validation, err := runStrategy(ctx, req, config.Primary, config.Criteria, logger)
	settle(ctx, req, config.Primary, shifts, err)
	strategyUsed := config.Primary.Name()

	if err != nil {
		if config.Fallback == nil || config.Fallback == config.Primary {
			return nil, err
		}

		logger.Warn("Primary strategy failed, falling back",
			zap.String("business_id", req.BusinessID),
			zap.String("primary", config.Primary.Name()),
			zap.String("fallback", config.Fallback.Name()),
			zap.Error(err))
		warnings = append(warnings, fmt.Sprintf("%s strategy failed (%v); used %s strategy instead",
			config.Primary.Name(), err, config.Fallback.Name()))

		shifts, validation, err = runStrategy(ctx, req, config.Fallback, config.Criteria, logger)
		settle(ctx, req, config.Fallback, shifts, err)
		if err != nil {
			return nil, err
		}
		strategyUsed = config.Fallback.Name()
	}

	coverage := CalculateCoverage(shifts, req.Demand())

	warnings = append(warnings, validation.Warnings...)
	warnings = append(warnings, CoverageWarnings(coverage)...)

	logger.Debug("Schedule planned",
		zap.String("business_id", req.BusinessID),
		zap.String("strategy", strategyUsed),
		zap.Int("shifts", len(shifts)),
		zap.Int("warnings", len(warnings)))

	return &PlanOutcome{
		Shifts:       shifts,
		Validation:   validation,
		Coverage:     coverage,
		StrategyUsed: strategyUsed,
		Warnings:     warnings,
	}, nil
}

// runStrategy produces and validates one strategy's schedule
func runStrategy(ctx context.Context, req *Request, strategy Strategy, criteria []Criterion, logger *zap.Logger) ([]CandidateShift, ValidationResult, error) {
	_, deterministic := strategy.(*DeterministicStrategy)

	shifts, err := strategy.Produce(ctx, req)
	if err != nil {
		var genErr *GenerationError
		if errors.As(err, &genErr) {
			return nil, ValidationResult{}, err
		}
		return nil, ValidationResult{}, &GenerationError{Strategy: strategy.Name(), Err: err}
	}

	logger.Debug("Strategy produced candidate shifts",
		zap.String("strategy", strategy.Name()),
		zap.Int("count", len(shifts)))

	validation := Validate(NewScheduleState(shifts, req.Pool, req.Catalog), criteria)
	if !validation.Valid {
		logger.Warn("Candidate schedule failed validation",
			zap.String("strategy", strategy.Name()),
			zap.Strings("errors", validation.Errors))

		validationErr := NewValidationError(validation)
		if deterministic {
			return nil, validation, validationErr
		}
		return nil, validation, &GenerationError{Strategy: strategy.Name(), Err: validationErr}
	}

	return shifts, validation, nil
}

// settle reports a strategy's validated or rejected output back to it
func settle(ctx context.Context, req *Request, strategy Strategy, shifts []CandidateShift, err error) {
	committer, ok := strategy.(Committer)
	if !ok {
		return
	}
	if err != nil {
		committer.Discard(ctx, req)
		return
	}
	committer.Commit(ctx, req, shifts)
}
