package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// Settings tunes a CircuitBreaker. Zero values fall back to defaults.
type Settings struct {
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenProbes   int
}

// CircuitBreaker trips after FailureThreshold consecutive failures and rejects
// calls until OpenTimeout has passed. It then lets HalfOpenProbes calls
// through; one failure reopens it, all of them succeeding closes it.
type CircuitBreaker struct {
	mu       sync.Mutex
	settings Settings

	state     State
	failures  int
	openedAt  time.Time
	inFlight  int
	successes int
	now       func() time.Time
}

func NewCircuitBreaker(settings Settings) *CircuitBreaker {
	if settings.FailureThreshold < 1 {
		settings.FailureThreshold = 5
	}
	if settings.OpenTimeout <= 0 {
		settings.OpenTimeout = 15 * time.Second
	}
	if settings.HalfOpenProbes < 1 {
		settings.HalfOpenProbes = 1
	}
	return &CircuitBreaker{settings: settings, now: time.Now}
}

// Execute runs fn when the breaker admits the call and records its outcome.
// Errors for which ignore returns true count as successes.
func (b *CircuitBreaker) Execute(fn func() error, ignore func(error) bool) error {
	if err := b.admit(); err != nil {
		return err
	}
	err := fn()
	if err == nil || (ignore != nil && ignore(err)) {
		b.onSuccess()
	} else {
		b.onFailure()
	}
	return err
}

func (b *CircuitBreaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.settings.OpenTimeout {
		return StateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if b.now().Sub(b.openedAt) < b.settings.OpenTimeout {
			return ErrCircuitOpen
		}
		b.set(StateHalfOpen)
	}
	if b.state == StateHalfOpen {
		if b.inFlight >= b.settings.HalfOpenProbes {
			return ErrCircuitOpen
		}
		b.inFlight++
	}
	return nil
}

func (b *CircuitBreaker) onSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures = 0
	case StateHalfOpen:
		b.inFlight = max(b.inFlight-1, 0)
		b.successes++
		if b.successes >= b.settings.HalfOpenProbes && b.inFlight == 0 {
			b.set(StateClosed)
		}
	}
}

func (b *CircuitBreaker) onFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures++
		if b.failures >= b.settings.FailureThreshold {
			b.set(StateOpen)
		}
	case StateHalfOpen:
		b.set(StateOpen)
	case StateOpen:
		b.openedAt = b.now()
	}
}

// set moves the breaker to state and clears the per-state counters.
func (b *CircuitBreaker) set(state State) {
	b.state = state
	b.failures = 0
	b.inFlight = 0
	b.successes = 0
	b.openedAt = time.Time{}
	if state == StateOpen {
		b.openedAt = b.now()
	}
}
