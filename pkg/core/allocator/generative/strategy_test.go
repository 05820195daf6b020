package generative

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-scheduler/pkg/core/allocator"
	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

// scriptedGenerator replays canned replies in order
type scriptedGenerator struct {
	replies []string
	err     error
	prompts []string
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	reply := g.replies[0]
	if len(g.replies) > 1 {
		g.replies = g.replies[1:]
	}
	return reply, nil
}

// blockingGenerator waits for its context to end
type blockingGenerator struct{}

func (g *blockingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func slotCatalog() *allocator.Catalog {
	return allocator.NewCatalog([]model.ShiftSlot{
		{Day: model.Friday, StartTime: "08:00", EndTime: "12:00", RequiredCount: 1},
	}, nil)
}

func TestStrategy_Produce(t *testing.T) {
	generator := &scriptedGenerator{replies: []string{
		`{"shifts": [{"employee_id": 1, "day": "fri", "start_time": "08:00", "end_time": "12:00"}]}`,
	}}
	strategy := NewStrategy(generator, Config{}, zap.NewNop())

	assert.Equal(t, "generative", strategy.Name())

	shifts, err := strategy.Produce(context.Background(), testRequest(slotCatalog()))
	require.NoError(t, err)

	assert.Equal(t, []allocator.CandidateShift{
		{Day: model.Friday, EmployeeID: "1", StartTime: "08:00", EndTime: "12:00"},
	}, shifts)
	assert.Len(t, generator.prompts, 1)
}

func TestStrategy_RetriesOnceOnMalformed(t *testing.T) {
	generator := &scriptedGenerator{replies: []string{
		"Sorry, here is a schedule...",
		`{"shifts": [{"employee_id": "2", "day": "fri"}]}`,
	}}
	strategy := NewStrategy(generator, Config{}, zap.NewNop())

	shifts, err := strategy.Produce(context.Background(), testRequest(slotCatalog()))
	require.NoError(t, err)

	assert.Len(t, generator.prompts, 2)
	assert.Equal(t, "2", shifts[0].EmployeeID)
}

func TestStrategy_PersistentMalformed(t *testing.T) {
	generator := &scriptedGenerator{replies: []string{"nope"}}
	strategy := NewStrategy(generator, Config{MaxAttempts: 2}, zap.NewNop())

	shifts, err := strategy.Produce(context.Background(), testRequest(slotCatalog()))
	assert.Nil(t, shifts)

	var genErr *allocator.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.ErrorIs(t, err, allocator.ErrMalformedResponse)
	assert.Len(t, generator.prompts, 2)
}

func TestStrategy_TransportErrorNotRetried(t *testing.T) {
	generator := &scriptedGenerator{err: errors.New("connection refused")}
	strategy := NewStrategy(generator, Config{}, zap.NewNop())

	_, err := strategy.Produce(context.Background(), testRequest(slotCatalog()))

	var genErr *allocator.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Len(t, generator.prompts, 1)
}

func TestStrategy_Timeout(t *testing.T) {
	strategy := NewStrategy(&blockingGenerator{}, Config{Timeout: 20 * time.Millisecond}, zap.NewNop())

	_, err := strategy.Produce(context.Background(), testRequest(slotCatalog()))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "timed out")
}

func TestStrategy_FallsBackThroughPlan(t *testing.T) {
	// Generator double-books employee 1, so the plan falls back to the deterministic solver
	generator := &scriptedGenerator{replies: []string{`{"shifts": [
		{"employee_id": 1, "day": "fri", "start_time": "08:00", "end_time": "12:00"},
		{"employee_id": 1, "day": "fri", "start_time": "08:00", "end_time": "12:00"}
	]}`}}

	outcome, err := allocator.Plan(context.Background(), testRequest(slotCatalog()), allocator.PlanConfig{
		Primary:  NewStrategy(generator, Config{}, zap.NewNop()),
		Fallback: allocator.NewDeterministicStrategy(true),
	}, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "deterministic", outcome.StrategyUsed)
	assert.Equal(t, []allocator.CandidateShift{
		{Day: model.Friday, EmployeeID: "1", StartTime: "08:00", EndTime: "12:00"},
	}, outcome.Shifts)
}

// recordingGenerator is a scripted generator that also remembers replies
type recordingGenerator struct {
	scriptedGenerator
	recorded  map[string]string
	forgotten int
}

func (g *recordingGenerator) Record(ctx context.Context, prompt, reply string) {
	if g.recorded == nil {
		g.recorded = make(map[string]string)
	}
	g.recorded[prompt] = reply
}

func (g *recordingGenerator) Forget(ctx context.Context, prompt string) {
	delete(g.recorded, prompt)
	g.forgotten++
}

func TestStrategy_ForgetsMalformedReplyBeforeRetry(t *testing.T) {
	generator := &recordingGenerator{scriptedGenerator: scriptedGenerator{replies: []string{
		"not json",
		`{"shifts": [{"employee_id": "2", "day": "fri"}]}`,
	}}}
	strategy := NewStrategy(generator, Config{}, zap.NewNop())

	_, err := strategy.Produce(context.Background(), testRequest(slotCatalog()))
	require.NoError(t, err)

	assert.Equal(t, 1, generator.forgotten)
	assert.Empty(t, generator.recorded, "nothing is recorded until the schedule is committed")
}

func TestStrategy_CommitRecordsParseableReply(t *testing.T) {
	generator := &recordingGenerator{}
	strategy := NewStrategy(generator, Config{}, zap.NewNop())
	req := testRequest(slotCatalog())
	shifts := []allocator.CandidateShift{
		{Day: model.Friday, EmployeeID: "1", StartTime: "08:00", EndTime: "12:00"},
		{Day: model.Monday, EmployeeID: "2"},
	}

	strategy.Commit(context.Background(), req, shifts)

	prompt, err := BuildPrompt(req)
	require.NoError(t, err)
	reply, ok := generator.recorded[prompt]
	require.True(t, ok)

	parsed, err := ParseResponse(reply)
	require.NoError(t, err)
	assert.Equal(t, shifts, parsed)

	strategy.Discard(context.Background(), req)
	assert.Empty(t, generator.recorded)
}
