package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreaker trips after FailureThreshold consecutive failures, rejects
// calls for OpenTimeout, then admits up to HalfOpenMaxReq probes. The circuit
// closes once every probe has succeeded and reopens on the first failed one.
type CircuitBreaker struct {
	mu  sync.Mutex
	cfg CircuitBreakerConfig
	now func() time.Time

	state     CircuitState
	failures  int
	probes    int
	passed    int
	openUntil time.Time
	onChange  func(CircuitState)
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		cfg:   NormalizeCircuitBreakerConfig(cfg),
		now:   time.Now,
		state: CircuitStateClosed,
	}
}

// OnStateChange registers fn to be called, under the breaker lock, whenever
// the state changes. fn must not call back into the breaker.
func (b *CircuitBreaker) OnStateChange(fn func(CircuitState)) {
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

// Execute runs fn when the breaker admits it and records the outcome.
// Errors for which isFailure returns false count as successes, so permanent
// errors such as a 404 do not open the circuit.
func (b *CircuitBreaker) Execute(fn func() error, isFailure func(error) bool) error {
	if err := b.Allow(); err != nil {
		return err
	}

	err := fn()
	if err == nil || (isFailure != nil && !isFailure(err)) {
		b.RecordSuccess()
	} else {
		b.RecordFailure()
	}
	return err
}

func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen {
		if b.now().Before(b.openUntil) {
			return ErrCircuitOpen
		}
		b.transition(CircuitStateHalfOpen)
	}
	if b.state == CircuitStateHalfOpen {
		if b.probes >= b.cfg.HalfOpenMaxReq {
			return ErrCircuitOpen
		}
		b.probes++
	}
	return nil
}

// RecordSuccess and RecordFailure report the outcome of a call admitted by
// Allow. Execute calls them for its own fn.
func (b *CircuitBreaker) RecordSuccess() { b.record(true) }

func (b *CircuitBreaker) RecordFailure() { b.record(false) }

func (b *CircuitBreaker) record(ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		if ok {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.transition(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		if !ok {
			b.transition(CircuitStateOpen)
			return
		}
		b.passed++
		if b.passed >= b.cfg.HalfOpenMaxReq {
			b.transition(CircuitStateClosed)
		}
	case CircuitStateOpen:
		if !ok {
			b.openUntil = b.now().Add(b.cfg.OpenTimeout)
		}
	}
}

// State reports the current state. An open circuit whose timeout elapsed is
// reported as half-open even before the next call moves it there.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && !b.now().Before(b.openUntil) {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) transition(to CircuitState) {
	b.failures, b.probes, b.passed = 0, 0, 0
	b.openUntil = time.Time{}
	if to == CircuitStateOpen {
		b.openUntil = b.now().Add(b.cfg.OpenTimeout)
	}

	if b.state == to {
		return
	}
	b.state = to
	if b.onChange != nil {
		b.onChange(to)
	}
}
