package genarena

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParallelEach_MatchesSequential(t *testing.T) {
	arena := NewStandard[int]()
	want := map[StandardIndex]int{}
	for i := 0; i < 5000; i++ {
		idx := arena.Insert(i)
		want[idx] = i
		if i%3 == 0 {
			arena.TryRemove(idx)
			delete(want, idx)
		}
	}

	for _, workers := range []int{0, 1, 4} {
		var mu sync.Mutex
		got := map[StandardIndex]int{}

		err := arena.ParallelEach(context.Background(), workers, func(idx StandardIndex, v int) error {
			mu.Lock()
			defer mu.Unlock()
			_, dup := got[idx]
			if dup {
				return errors.New("index visited twice")
			}
			got[idx] = v
			return nil
		})
		require.NoError(t, err, "workers=%d", workers)
		require.Equal(t, want, got, "workers=%d", workers)
	}
}

func TestParallelEach_SnapshotConcurrentReads(t *testing.T) {
	arena := NewStandard[int]()
	for i := 0; i < 10000; i++ {
		arena.Insert(i)
	}
	snap := arena.Clone()

	// Keep mutating the original while many goroutines traverse the
	// snapshot; the snapshot's sums must all agree.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			idx := arena.Insert(-1)
			arena.TryRemove(idx)
		}
	}()

	var wg sync.WaitGroup
	sums := make([]int64, 4)
	errs := make([]error, 4)
	for w := range sums {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var sum atomic.Int64
			errs[w] = snap.ParallelEach(context.Background(), 4, func(_ StandardIndex, v int) error {
				sum.Add(int64(v))
				return nil
			})
			sums[w] = sum.Load()
		}()
	}
	wg.Wait()
	<-done

	for w := range sums {
		require.NoError(t, errs[w])
		require.Equal(t, sums[0], sums[w])
	}
}

func TestParallelEach_ErrorAborts(t *testing.T) {
	arena := NewStandard[int]()
	for i := 0; i < 1000; i++ {
		arena.Insert(i)
	}

	boom := errors.New("boom")
	err := arena.ParallelEach(context.Background(), 4, func(idx StandardIndex, v int) error {
		if v == 500 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
}

func TestParallelEach_ContextCancel(t *testing.T) {
	arena := NewStandard[int]()
	for i := 0; i < 1000; i++ {
		arena.Insert(i)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := arena.ParallelEach(ctx, 4, func(StandardIndex, int) error { return nil })
	require.ErrorIs(t, err, context.Canceled)

	err = arena.ParallelEach(ctx, 1, func(StandardIndex, int) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}

func TestParallelEach_Empty(t *testing.T) {
	arena := NewStandard[int]()
	err := arena.ParallelEach(context.Background(), 8, func(StandardIndex, int) error {
		return errors.New("should not be called")
	})
	require.NoError(t, err)
}
