package qdistance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/theapemachine/errnie"
)

/*
Session is a live backend acquired through WithSession. It is only valid
inside the callback; the server behind it is stopped as soon as the callback
returns.
*/
type Session struct {
	backend Backend
	breaker *Breaker
	metrics *Metrics
}

/*
WithSession starts server, hands fn a Session, and stops the server when fn
returns, fails or panics. A Stop failure is joined into the returned error.

Parameters:
  - ctx: Bounds the start of the server and every run in the session
  - server: The backend process to acquire
  - config: Breaker settings; nil uses NewConfig
  - fn: The work to do while the backend is live
  - opts: Optional shared metrics or breaker
*/
func WithSession(ctx context.Context, server Server, config *Config, fn func(*Session) error, opts ...SessionOption) (err error) {
	if config == nil {
		config = NewConfig()
	}

	sess := &Session{
		breaker: NewBreaker(config.BreakerMaxFailures, config.BreakerResetTimeout, config.BreakerHalfOpenMax),
		metrics: NewMetrics(),
	}
	for _, opt := range opts {
		opt(sess)
	}

	sess.backend, err = server.Start(ctx)
	if err != nil {
		return &ExecutionError{Op: "start", Err: err}
	}

	defer func() {
		if stopErr := server.Stop(); stopErr != nil {
			err = errors.Join(err, &ExecutionError{Op: "stop", Err: stopErr})
		}
	}()

	return fn(sess)
}

// SessionOption configures a Session before its server is started.
type SessionOption func(*Session)

// WithMetrics makes the session record into m instead of fresh counters.
func WithMetrics(m *Metrics) SessionOption {
	return func(s *Session) {
		s.metrics = m
	}
}

// WithBreaker shares a breaker across sessions.
func WithBreaker(b *Breaker) SessionOption {
	return func(s *Session) {
		s.breaker = b
	}
}

// Metrics returns the counters collected during this session.
func (s *Session) Metrics() *Metrics {
	return s.metrics
}

func (s *Session) Breaker() *Breaker {
	return s.breaker
}

func (s *Session) Compile(circuit *Circuit) (Program, error) {
	prog, err := s.backend.Compile(circuit)
	s.metrics.recordCompile(err == nil)
	return prog, err
}

/*
Run executes prog once through the breaker. A backend that reports
ErrBackendUnavailable counts against the breaker; every error is returned
as-is, without retrying. A run is all-or-nothing: a backend that returns
a different number of shots than requested fails the run.
*/
func (s *Session) Run(ctx context.Context, prog Program, shots int) ([]Shot, error) {
	if !s.breaker.Allow() {
		s.metrics.recordRejection()
		return nil, &ExecutionError{Op: "run", Err: ErrBreakerOpen}
	}

	start := time.Now()
	result, err := s.backend.Run(ctx, prog, shots)
	s.metrics.recordRun(start, shots, err == nil)

	switch {
	case err == nil:
		s.breaker.RecordSuccess()
	case errors.Is(err, ErrBackendUnavailable):
		s.breaker.RecordFailure()
	}

	if err != nil {
		errnie.Info("Session - run failed: %v", err)
		return nil, err
	}
	if len(result) != shots {
		errnie.Info("Session - backend returned %d of %d shots", len(result), shots)
		return nil, &ExecutionError{
			Op:  "run",
			Err: fmt.Errorf("backend returned %d shots, requested %d", len(result), shots),
		}
	}
	return result, nil
}

// Sample compiles circuit, runs it and tallies the shots.
func (s *Session) Sample(ctx context.Context, circuit *Circuit, shots int) (Counts, error) {
	prog, err := s.Compile(circuit)
	if err != nil {
		return nil, err
	}

	result, err := s.Run(ctx, prog, shots)
	if err != nil {
		return nil, err
	}

	return Tally(result)
}
