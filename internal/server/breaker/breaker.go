// Package breaker guards outbound collaborator calls with a circuit
// breaker. State changes and call outcomes are exported as metrics.
package breaker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dramahub/internal/common"
	"github.com/dmitrijs2005/dramahub/internal/logging"
	"github.com/dmitrijs2005/dramahub/internal/metrics"
	gobreaker "github.com/sony/gobreaker/v2"
)

// Settings tunes when the breaker opens and how long it stays open.
type Settings struct {
	// MinRequests is the number of calls in the current interval needed
	// before the failure ratio is considered.
	MinRequests  uint32
	FailureRatio float64
	Interval     time.Duration
	OpenTimeout  time.Duration
	// HalfOpenRequests is the number of trial calls let through while half-open.
	HalfOpenRequests uint32
}

func DefaultSettings() Settings {
	return Settings{
		MinRequests:      10,
		FailureRatio:     0.6,
		Interval:         time.Minute,
		OpenTimeout:      30 * time.Second,
		HalfOpenRequests: 3,
	}
}

// ErrBadRequest marks an upstream reply that rejects the request itself
// (HTTP 4xx other than 429). The call fails but the upstream is healthy, so
// the breaker does not count it.
var ErrBadRequest = errors.New("request rejected by upstream")

// notCounted carries an error that must not trip the breaker.
type notCounted struct{ err error }

func (e *notCounted) Error() string { return e.err.Error() }
func (e *notCounted) Unwrap() error { return e.err }

type Breaker[T any] struct {
	cb     *gobreaker.CircuitBreaker[T]
	name   string
	logger logging.Logger
}

func New[T any](name string, s Settings, l logging.Logger) *Breaker[T] {
	l = l.With("breaker", name)

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        name,
		MaxRequests: s.HalfOpenRequests,
		Interval:    s.Interval,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= s.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			l.Warn(context.Background(), "circuit breaker state change", "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
		IsSuccessful: func(err error) bool {
			var nc *notCounted
			return err == nil || errors.As(err, &nc)
		},
	})

	return &Breaker[T]{cb: cb, name: name, logger: l}
}

// Execute runs fn unless the breaker is open. A rejected call returns an
// error matching common.ErrorCollaboratorUnavailable.
//
// Failures that happen after ctx is done, or that wrap ErrBadRequest, are
// returned to the caller but do not count towards opening the breaker.
func (b *Breaker[T]) Execute(ctx context.Context, fn func() (T, error)) (T, error) {
	res, err := b.cb.Execute(func() (T, error) {
		res, err := fn()
		if err != nil && (ctx.Err() != nil || errors.Is(err, ErrBadRequest)) {
			return res, &notCounted{err: err}
		}
		return res, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CollaboratorRequests.WithLabelValues(b.name, "rejected").Inc()
			var zero T
			return zero, fmt.Errorf("%w: %s: %v", common.ErrorCollaboratorUnavailable, b.name, err)
		}
		var nc *notCounted
		if errors.As(err, &nc) {
			metrics.CollaboratorRequests.WithLabelValues(b.name, "ignored").Inc()
			return res, nc.err
		}
		metrics.CollaboratorRequests.WithLabelValues(b.name, "failure").Inc()
		return res, err
	}

	metrics.CollaboratorRequests.WithLabelValues(b.name, "success").Inc()
	return res, nil
}

func (b *Breaker[T]) State() gobreaker.State {
	return b.cb.State()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
