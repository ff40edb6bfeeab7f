package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b := NewCircuitBreaker(2, 5*time.Second, 1)

	now := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	var transitions []CircuitState
	b.OnStateChange(func(_, to CircuitState) { transitions = append(transitions, to) })

	require.NoError(t, b.Allow())

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	require.NoError(t, b.Allow())
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}

	assert.Equal(t, []CircuitState{CircuitStateOpen, CircuitStateHalfOpen, CircuitStateClosed}, transitions)
}

func TestCircuitBreaker_Execute(t *testing.T) {
	b := NewCircuitBreaker(1, time.Minute, 1)
	ctx := context.Background()

	err := b.Execute(ctx, func(context.Context) error { return context.Canceled })
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, CircuitStateClosed, b.State(), "cancellation must not trip the breaker")

	boom := errors.New("redis down")
	err = b.Execute(ctx, func(context.Context) error { return boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, CircuitStateOpen, b.State())

	called := false
	err = b.Execute(ctx, func(context.Context) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_NilAllowsEverything(t *testing.T) {
	b := NewCircuitBreakerFromConfig(CircuitBreakerConfig{Enabled: false})
	require.Nil(t, b)

	calls := 0
	for i := 0; i < 3; i++ {
		_ = b.Execute(context.Background(), func(context.Context) error {
			calls++
			return errors.New("fail")
		})
	}
	assert.Equal(t, 3, calls)
	assert.Equal(t, CircuitStateClosed, b.State())
}
