package genarena

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParallelEach calls fn for every live element, splitting the table's leaf
// chunks across workers goroutines. workers <= 0 means GOMAXPROCS.
//
// The traversal is read-only over the receiver's table handle at call time,
// so it needs no locking even while other goroutines read the same
// snapshot. fn runs concurrently and must be safe for that; element order
// is unspecified. The first error from fn, or ctx expiring, cancels the
// remaining work and is returned.
func (a *Arena[T, S, G]) ParallelEach(ctx context.Context, workers int, fn func(Index[S, G], T) error) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	table := a.table

	if workers == 1 {
		for pos, e := range table.All() {
			if e.state != slotOccupied {
				continue
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(Index[S, G]{slot: S(pos), gen: e.gen}, e.value); err != nil {
				return err
			}
		}
		return nil
	}

	type chunk struct {
		start int
		items []entry[T, S, G]
	}

	g, ctx := errgroup.WithContext(ctx)
	chunks := make(chan chunk)

	g.Go(func() error {
		defer close(chunks)
		for start, items := range table.Chunks() {
			select {
			case chunks <- chunk{start: start, items: items}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for range workers {
		g.Go(func() error {
			for c := range chunks {
				if err := ctx.Err(); err != nil {
					return err
				}
				for j, e := range c.items {
					if e.state != slotOccupied {
						continue
					}
					if err := fn(Index[S, G]{slot: S(c.start + j), gen: e.gen}, e.value); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}

	return g.Wait()
}
