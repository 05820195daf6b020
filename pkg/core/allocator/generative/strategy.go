package generative

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-scheduler/pkg/core/allocator"
)

// Generator sends a prompt to an external text generation service and returns the raw reply
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ReplyRecorder is implemented by generators that remember replies across calls, such as a
// cache. Only replies that produced a validated schedule are recorded.
type ReplyRecorder interface {
	Record(ctx context.Context, prompt, reply string)
	Forget(ctx context.Context, prompt string)
}

// Config contains the settings for a generative strategy
type Config struct {
	// Timeout bounds each generation call. Zero means no timeout beyond the caller's context.
	Timeout time.Duration

	// MaxAttempts is the number of calls made when a response is malformed (default 2)
	MaxAttempts int
}

// Strategy delegates slot-filling to an external generator.
// Its output is untrusted and must be validated by the caller.
type Strategy struct {
	generator Generator
	config    Config
	logger    *zap.Logger
}

// NewStrategy creates a generative strategy around an already constructed generator
func NewStrategy(generator Generator, config Config, logger *zap.Logger) *Strategy {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 2
	}
	return &Strategy{
		generator: generator,
		config:    config,
		logger:    logger,
	}
}

func (s *Strategy) Name() string {
	return "generative"
}

// Produce renders the prompt, calls the generator and parses its reply. A malformed reply is
// retried until MaxAttempts is reached; transport errors and timeouts are not retried.
func (s *Strategy) Produce(ctx context.Context, req *allocator.Request) ([]allocator.CandidateShift, error) {
	prompt, err := BuildPrompt(req)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Rendered generation prompt",
		zap.String("business_id", req.BusinessID),
		zap.Int("prompt_length", len(prompt)))

	var lastErr error
	for attempt := 1; attempt <= s.config.MaxAttempts; attempt++ {
		text, err := s.generate(ctx, prompt)
		if err != nil {
			return nil, &allocator.GenerationError{Strategy: s.Name(), Err: err}
		}

		shifts, err := ParseResponse(text)
		if err == nil {
			s.logger.Debug("Parsed generated schedule",
				zap.Int("attempt", attempt),
				zap.Int("shifts", len(shifts)))
			return shifts, nil
		}

		lastErr = err
		s.logger.Warn("Generator returned a malformed response",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", s.config.MaxAttempts),
			zap.Error(err))

		// A remembered reply would be served again on the retry
		if recorder, ok := s.generator.(ReplyRecorder); ok {
			recorder.Forget(ctx, prompt)
		}
	}

	return nil, &allocator.GenerationError{Strategy: s.Name(), Err: lastErr}
}

func (s *Strategy) generate(ctx context.Context, prompt string) (string, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("generator timed out after %s: %w", s.config.Timeout, err)
		}
		return "", err
	}
	return text, nil
}

// Commit records the validated schedule as the reply for the request's prompt
func (s *Strategy) Commit(ctx context.Context, req *allocator.Request, shifts []allocator.CandidateShift) {
	recorder, ok := s.generator.(ReplyRecorder)
	if !ok {
		return
	}

	prompt, err := BuildPrompt(req)
	if err != nil {
		s.logger.Warn("Failed to render prompt for recording", zap.Error(err))
		return
	}
	reply, err := EncodeResponse(shifts)
	if err != nil {
		s.logger.Warn("Failed to encode schedule for recording", zap.Error(err))
		return
	}
	recorder.Record(ctx, prompt, reply)
}

// Discard forgets any reply remembered for the request's prompt
func (s *Strategy) Discard(ctx context.Context, req *allocator.Request) {
	recorder, ok := s.generator.(ReplyRecorder)
	if !ok {
		return
	}

	prompt, err := BuildPrompt(req)
	if err != nil {
		return
	}
	recorder.Forget(ctx, prompt)
}
