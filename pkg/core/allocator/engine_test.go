package allocator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

// fakeStrategy returns canned shifts or an error
type fakeStrategy struct {
	shifts []CandidateShift
	err    error
	calls  int
}

func (s *fakeStrategy) Name() string { return "fake" }

func (s *fakeStrategy) Produce(ctx context.Context, req *Request) ([]CandidateShift, error) {
	s.calls++
	return s.shifts, s.err
}

func fridayRequest() *Request {
	return &Request{
		BusinessID: "biz",
		WeekStart:  testWeekStart,
		Catalog: NewCatalog([]model.ShiftSlot{
			{ID: "morning", Day: model.Friday, StartTime: "08:00", EndTime: "12:00", RequiredCount: 1},
			{ID: "evening", Day: model.Friday, StartTime: "16:00", EndTime: "22:00", RequiredCount: 1},
		}, nil),
		Pool: Pool{
			poolEmployee("5", model.TierLead, model.Friday),
			poolEmployee("6", model.TierNormal, model.Friday),
		},
	}
}

func TestPlan_DeterministicOnly(t *testing.T) {
	outcome, err := Plan(context.Background(), fridayRequest(), PlanConfig{
		Primary: NewDeterministicStrategy(true),
	}, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "deterministic", outcome.StrategyUsed)
	assert.Len(t, outcome.Shifts, 2)
	assert.True(t, outcome.Validation.Valid)
	require.Len(t, outcome.Coverage, 1)
	assert.Equal(t, 100.0, outcome.Coverage[0].CoveragePct)
	assert.Empty(t, outcome.Warnings)
}

func TestPlan_GeneratedDoubleBookingFallsBack(t *testing.T) {
	generated := &fakeStrategy{shifts: []CandidateShift{
		{Day: model.Friday, EmployeeID: "5", StartTime: "08:00", EndTime: "12:00"},
		{Day: model.Friday, EmployeeID: "5", StartTime: "16:00", EndTime: "22:00"},
	}}

	outcome, err := Plan(context.Background(), fridayRequest(), PlanConfig{
		Primary:  generated,
		Fallback: NewDeterministicStrategy(true),
	}, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "deterministic", outcome.StrategyUsed)
	assert.Equal(t, []string{"5", "6"}, employeeIDs(outcome.Shifts))
	require.NotEmpty(t, outcome.Warnings)
	assert.Contains(t, outcome.Warnings[0], "Employee 5 scheduled twice on Friday")
}

func TestPlan_GeneratedInvalidWithoutFallback(t *testing.T) {
	generated := &fakeStrategy{shifts: []CandidateShift{
		{Day: model.Friday, EmployeeID: "5", StartTime: "08:00", EndTime: "12:00"},
		{Day: model.Friday, EmployeeID: "5", StartTime: "16:00", EndTime: "22:00"},
	}}

	outcome, err := Plan(context.Background(), fridayRequest(), PlanConfig{Primary: generated}, zap.NewNop())
	require.Error(t, err)
	assert.Nil(t, outcome)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "fake", genErr.Strategy)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Schedule validation failed", validationErr.Message)
	assert.Equal(t, []string{"Employee 5 scheduled twice on Friday"}, validationErr.Errors)
}

func TestPlan_GeneratorErrorFallsBack(t *testing.T) {
	generated := &fakeStrategy{err: errors.New("timeout")}

	outcome, err := Plan(context.Background(), fridayRequest(), PlanConfig{
		Primary:  generated,
		Fallback: NewDeterministicStrategy(false),
	}, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 1, generated.calls)
	assert.Equal(t, "deterministic", outcome.StrategyUsed)
	assert.Contains(t, outcome.Warnings[0], "timeout")
}

func TestPlan_GeneratorErrorWithoutFallback(t *testing.T) {
	generated := &fakeStrategy{err: ErrMalformedResponse}

	_, err := Plan(context.Background(), fridayRequest(), PlanConfig{Primary: generated}, zap.NewNop())

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestPlan_CoverageWarningsForUnderStaffing(t *testing.T) {
	req := &Request{
		WeekStart: testWeekStart,
		Catalog: NewCatalog(nil, []model.StaffingRule{
			{Day: model.Monday, RequiredCount: 1},
			{Day: model.Tuesday, RequiredCount: 1},
		}),
		Pool: Pool{poolEmployee("1", model.TierNormal, model.Monday)},
	}

	outcome, err := Plan(context.Background(), req, PlanConfig{Primary: NewDeterministicStrategy(true)}, zap.NewNop())
	require.NoError(t, err)

	assert.Len(t, outcome.Shifts, 1)
	require.Len(t, outcome.Warnings, 1)
	assert.Contains(t, outcome.Warnings[0], "Tuesday")
}

func TestPlan_InputErrors(t *testing.T) {
	req := fridayRequest()
	req.Pool = nil
	_, err := Plan(context.Background(), req, PlanConfig{Primary: NewDeterministicStrategy(true)}, zap.NewNop())
	assert.ErrorIs(t, err, ErrNoEmployees)

	req = fridayRequest()
	req.Catalog = NewCatalog(nil, nil)
	_, err = Plan(context.Background(), req, PlanConfig{Primary: NewDeterministicStrategy(true)}, zap.NewNop())
	assert.ErrorIs(t, err, ErrNoDemand)
}

func TestPlan_CriteriaWarningsReported(t *testing.T) {
	criterion := &stubCriterion{violations: []Violation{
		{CriterionName: "Stub", Severity: SeverityWarning, Description: "uneven distribution"},
	}}

	outcome, err := Plan(context.Background(), fridayRequest(), PlanConfig{
		Primary:  NewDeterministicStrategy(true),
		Criteria: []Criterion{criterion},
	}, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []string{"uneven distribution"}, outcome.Warnings)
}

// committingStrategy records whether its output was committed or discarded
type committingStrategy struct {
	fakeStrategy
	committed [][]CandidateShift
	discarded int
}

func (s *committingStrategy) Commit(ctx context.Context, req *Request, shifts []CandidateShift) {
	s.committed = append(s.committed, shifts)
}

func (s *committingStrategy) Discard(ctx context.Context, req *Request) {
	s.discarded++
}

func TestPlan_CommitsAcceptedSchedule(t *testing.T) {
	strategy := &committingStrategy{fakeStrategy: fakeStrategy{shifts: []CandidateShift{
		{Day: model.Friday, EmployeeID: "5", StartTime: "08:00", EndTime: "12:00"},
	}}}

	_, err := Plan(context.Background(), fridayRequest(), PlanConfig{Primary: strategy}, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, strategy.committed, 1)
	assert.Equal(t, []string{"5"}, employeeIDs(strategy.committed[0]))
	assert.Zero(t, strategy.discarded)
}

func TestPlan_DiscardsRejectedSchedule(t *testing.T) {
	strategy := &committingStrategy{fakeStrategy: fakeStrategy{shifts: []CandidateShift{
		{Day: model.Friday, EmployeeID: "5", StartTime: "08:00", EndTime: "12:00"},
		{Day: model.Friday, EmployeeID: "5", StartTime: "16:00", EndTime: "22:00"},
	}}}

	outcome, err := Plan(context.Background(), fridayRequest(), PlanConfig{
		Primary:  strategy,
		Fallback: NewDeterministicStrategy(true),
	}, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "deterministic", outcome.StrategyUsed)
	assert.Empty(t, strategy.committed)
	assert.Equal(t, 1, strategy.discarded)
}

func TestPlan_DiscardsOnStrategyError(t *testing.T) {
	strategy := &committingStrategy{fakeStrategy: fakeStrategy{err: errors.New("timeout")}}

	_, err := Plan(context.Background(), fridayRequest(), PlanConfig{Primary: strategy}, zap.NewNop())
	require.Error(t, err)
	assert.Equal(t, 1, strategy.discarded)
}
