package worker

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const Parallelism = 4

// Do calls work for every item with at most parallelism concurrent calls. The
// first error cancels ctx for the remaining calls and is returned
func Do[T any](ctx context.Context, parallelism int, items []T, work func(context.Context, int, T) error) error {
	if parallelism <= 0 {
		parallelism = Parallelism
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(parallelism)
	for index, item := range items {
		index, item := index, item
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			return work(ctx, index, item)
		})
	}

	return group.Wait()
}
