package qdistance

import (
	"sync"
	"time"

	"github.com/theapemachine/errnie"
)

/*
BreakerState tracks whether a session still sends runs to its backend.
*/
type BreakerState int

const (
	BreakerClosed   BreakerState = iota // runs reach the backend
	BreakerOpen                         // backend reported unavailable too often, runs fail fast
	BreakerHalfOpen                     // probing whether the backend came back
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

/*
Breaker stops a session from hammering a backend that keeps reporting itself
unavailable. It never retries anything: an open breaker turns the next Run
into an immediate ErrBreakerOpen, and the caller decides whether to start a
fresh session later.

Only ErrBackendUnavailable counts as a failure. Compilation errors and
statistical failures are properties of the input, not of the backend.
*/
type Breaker struct {
	mu               sync.Mutex
	maxFailures      int           // Maximum failures before opening
	resetTimeout     time.Duration // Time to wait before probing again
	halfOpenMax      int           // Successful probes needed to close
	failureCount     int
	state            BreakerState
	openTime         time.Time
	halfOpenAttempts int
}

/*
NewBreaker creates a breaker in the closed state.

Parameters:
  - maxFailures: Number of consecutive unavailable errors before opening
  - resetTimeout: Duration to wait before probing an open backend
  - halfOpenMax: Successful probes required to close again
*/
func NewBreaker(maxFailures int, resetTimeout time.Duration, halfOpenMax int) *Breaker {
	if maxFailures < 1 {
		maxFailures = 1
	}
	if halfOpenMax < 1 {
		halfOpenMax = 1
	}
	return &Breaker{
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		halfOpenMax:  halfOpenMax,
		state:        BreakerClosed,
	}
}

func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// RecordFailure records an unavailable backend and opens the breaker at the threshold.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failureCount++

	switch b.state {
	case BreakerHalfOpen:
		b.state = BreakerOpen
		b.openTime = time.Now()
		errnie.Info("Breaker - reopened from half-open after %d failures", b.failureCount)
	case BreakerClosed:
		if b.failureCount >= b.maxFailures {
			b.state = BreakerOpen
			b.openTime = time.Now()
			errnie.Info("Breaker - opened after %d failures", b.failureCount)
		}
	}
}

// RecordSuccess closes a half-open breaker after enough probes and resets the count.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerHalfOpen:
		b.halfOpenAttempts++
		if b.halfOpenAttempts >= b.halfOpenMax {
			b.state = BreakerClosed
			b.failureCount = 0
			b.halfOpenAttempts = 0
			errnie.Info("Breaker - closed from half-open")
		}
	case BreakerClosed:
		b.failureCount = 0
	}
}

// Allow reports whether the next run may reach the backend.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		return true
	case BreakerOpen:
		if time.Since(b.openTime) > b.resetTimeout {
			b.state = BreakerHalfOpen
			b.halfOpenAttempts = 0
			return true
		}
		return false
	case BreakerHalfOpen:
		return b.halfOpenAttempts < b.halfOpenMax
	default:
		return false
	}
}
