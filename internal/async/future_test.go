package async

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoReturnsValue(t *testing.T) {
	f := Go(context.Background(), func(context.Context) (int, error) {
		return 42, nil
	})
	got, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestGoPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Bridge(context.Background(), func(context.Context) (string, error) {
		return "", boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestGoRecoversPanic(t *testing.T) {
	_, err := Bridge(context.Background(), func(context.Context) (int, error) {
		panic("kaboom")
	})
	var pe PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "kaboom", pe.Value)
}

func TestCompletedBeforeAwait(t *testing.T) {
	f := Go(context.Background(), func(context.Context) (string, error) {
		return "early", nil
	})
	time.Sleep(10 * time.Millisecond)

	got, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, "early", got)

	got, err = f.Await()
	require.NoError(t, err)
	assert.Equal(t, "early", got)
}

func TestFirstCompletionWins(t *testing.T) {
	f := newFuture[int]()
	assert.True(t, f.complete(1, nil))
	assert.False(t, f.complete(2, errors.New("late")))

	got, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestBridgedCallsDoNotOverlap(t *testing.T) {
	var inFlight, maxInFlight int32
	step := func(context.Context) (struct{}, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			m := atomic.LoadInt32(&maxInFlight)
			if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return struct{}{}, nil
	}
	for i := 0; i < 5; i++ {
		_, err := Bridge(context.Background(), step)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&maxInFlight))
}
