package breaker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/dramahub/internal/common"
	"github.com/dmitrijs2005/dramahub/internal/logging"
	"github.com/dmitrijs2005/dramahub/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func testSettings() Settings {
	return Settings{
		MinRequests:      4,
		FailureRatio:     0.5,
		Interval:         time.Minute,
		OpenTimeout:      50 * time.Millisecond,
		HalfOpenRequests: 1,
	}
}

func TestBreaker_PassesThrough(t *testing.T) {
	ctx := context.Background()
	b := New[int](t.Name(), testSettings(), logging.NewNop())

	v, err := b.Execute(ctx, func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	_, err = b.Execute(ctx, func() (int, error) { return 0, errBoom })
	assert.ErrorIs(t, err, errBoom)
	assert.NotErrorIs(t, err, common.ErrorCollaboratorUnavailable)
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestBreaker_OpensAndRecovers(t *testing.T) {
	name := t.Name()
	ctx := context.Background()
	b := New[string](name, testSettings(), logging.NewNop())

	for i := 0; i < 4; i++ {
		_, _ = b.Execute(ctx, func() (string, error) { return "", errBoom })
	}
	require.Equal(t, gobreaker.StateOpen, b.State())
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues(name)))

	called := false
	_, err := b.Execute(ctx, func() (string, error) { called = true; return "x", nil })
	assert.False(t, called)
	assert.ErrorIs(t, err, common.ErrorCollaboratorUnavailable)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CollaboratorRequests.WithLabelValues(name, "rejected")))

	time.Sleep(80 * time.Millisecond)

	v, err := b.Execute(ctx, func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, gobreaker.StateClosed, b.State())
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues(name)))
}

func TestBreaker_IgnoresBadRequests(t *testing.T) {
	name := t.Name()
	ctx := context.Background()
	b := New[int](name, testSettings(), logging.NewNop())

	rejected := fmt.Errorf("item 0: status 404: %w", ErrBadRequest)
	for i := 0; i < 10; i++ {
		_, err := b.Execute(ctx, func() (int, error) { return 0, rejected })
		assert.ErrorIs(t, err, ErrBadRequest)
		assert.NotErrorIs(t, err, common.ErrorCollaboratorUnavailable)
	}

	assert.Equal(t, gobreaker.StateClosed, b.State())
	assert.Equal(t, 10.0, testutil.ToFloat64(metrics.CollaboratorRequests.WithLabelValues(name, "ignored")))
}

func TestBreaker_IgnoresFailuresAfterCallerGaveUp(t *testing.T) {
	b := New[int](t.Name(), testSettings(), logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 10; i++ {
		_, err := b.Execute(ctx, func() (int, error) { return 0, errBoom })
		assert.ErrorIs(t, err, errBoom)
	}
	assert.Equal(t, gobreaker.StateClosed, b.State())

	// the same errors with a live context do count
	live := context.Background()
	for i := 0; i < 10; i++ {
		_, _ = b.Execute(live, func() (int, error) { return 0, errBoom })
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())
}
