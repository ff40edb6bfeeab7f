package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	store := NewStore(time.Minute)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "settings", 1)
	_, ok := store.Get(context.Background(), "settings")
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = store.Get(context.Background(), "settings")
	assert.False(t, ok)
}

func TestLoad_TypedAndErrorsNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()
	calls := 0

	_, err := Load(ctx, store, "roster", func(context.Context) ([]string, error) {
		calls++
		return nil, errors.New("db down")
	})
	require.Error(t, err)

	got, err := Load(ctx, store, "roster", func(context.Context) ([]string, error) {
		calls++
		return []string{"p1"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, got)

	got, err = Load(ctx, store, "roster", func(context.Context) ([]string, error) {
		calls++
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, got)
	assert.Equal(t, 2, calls)

	store.DeletePrefix(ctx, "ros")
	_, ok := store.Get(ctx, "roster")
	assert.False(t, ok)
}

var errUnexpectedValue = errors.New("unexpected loaded value")
