// Package nursery implements Nurseries, a form of structured concurrency as
// described in
// https://vorpus.org/blog/notes-on-structured-concurrency-or-go-statement-considered-harmful/.
package nursery

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Nursery provides a structured way to work with parent and child goroutine
// lifecycles.
type Nursery struct {
	g *errgroup.Group
}

// Block is a function that is executed in the context of a Nursery, which can
// be used to run multiple goroutines that all must exit before returning
// control to the caller of nursery.Run.
type Block func(context.Context, *Nursery)

// Run creates a nursery that runs the given function. Run executes the block,
// running any requested goroutines until they are all completed, using the
// same semantics as an ErrGroup with a Context.
func Run(ctx context.Context, block Block) error {
	g, childCtx := errgroup.WithContext(ctx)
	n := &Nursery{
		g: g,
	}

	block(childCtx, n)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("run nursery: %w", err)
	}

	return nil
}

// Go spawns a goroutine for the given function, ensuring that it will be waited on.
// The function is expected to accept a context and properly deal with context
// cancellation.
func (n *Nursery) Go(f func() error) {
	n.g.Go(f)
}

// RunPool runs work over the integers [0, numItems) using at most
// concurrency goroutines at once. It generalizes Run from "one goroutine
// per Go call" to "a fixed-size pool pulling from a shared item queue", so
// the number of concurrently running items is bounded independently of how
// many items there are. work should check ctx.Err() before starting
// anything expensive so a sibling's failure stops the pool promptly.
func RunPool(ctx context.Context, concurrency, numItems int, work func(ctx context.Context, item int) error) error {
	if concurrency <= 0 {
		concurrency = 1
	}
	if concurrency > numItems {
		concurrency = numItems
	}

	items := make(chan int)
	return Run(ctx, func(ctx context.Context, n *Nursery) {
		n.Go(func() error {
			defer close(items)
			for i := 0; i < numItems; i++ {
				select {
				case items <- i:
				case <-ctx.Done():
					return nil
				}
			}
			return nil
		})
		for w := 0; w < concurrency; w++ {
			n.Go(func() error {
				for {
					select {
					case item, ok := <-items:
						if !ok {
							return nil
						}
						if err := work(ctx, item); err != nil {
							return err
						}
					case <-ctx.Done():
						return ctx.Err()
					}
				}
			})
		}
	})
}
