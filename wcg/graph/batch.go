package graph

import (
	"context"
	"runtime"

	"github.com/sourcegraph/conc/pool"
)

// DescendantCounts runs DescendantInstances for each label on up to workers
// goroutines and returns the instance count per label. workers <= 0 means
// GOMAXPROCS. Cancelling ctx stops outstanding work and returns its error.
func (e *Engine) DescendantCounts(ctx context.Context, labels []string, workers int) (map[string]int, error) {
	counts := make([]int, len(labels))
	err := fanOut(ctx, len(labels), workers, func(i int) {
		counts[i] = e.descendantHandles(labels[i]).Len()
	})
	if err != nil {
		return nil, err
	}

	out := make(map[string]int, len(labels))
	for i, label := range labels {
		out[label] = counts[i]
	}
	return out, nil
}

// BatchAncestors runs AncestorCategories for each title concurrently.
func (e *Engine) BatchAncestors(ctx context.Context, titles []string, workers int) (map[string]Set, error) {
	sets := make([]Set, len(titles))
	err := fanOut(ctx, len(titles), workers, func(i int) {
		sets[i] = e.AncestorCategories(titles[i])
	})
	if err != nil {
		return nil, err
	}

	out := make(map[string]Set, len(titles))
	for i, title := range titles {
		out[title] = sets[i]
	}
	return out, nil
}

// fanOut calls fn(i) for i in [0, n). Each fn writes only its own slot.
// Tasks fail only when ctx is done, so the error returned is exactly ctx.Err().
func fanOut(ctx context.Context, n, workers int, fn func(i int)) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := pool.New().WithMaxGoroutines(workers).WithContext(ctx).WithFirstError()
	for i := 0; i < n; i++ {
		i := i
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(i)
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}
