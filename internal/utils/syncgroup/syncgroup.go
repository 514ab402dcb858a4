package syncgroup

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

type (
	Group interface {
		Go(fn func() error)
		Wait() error
	}

	Option func(group *groupImpl)

	groupImpl struct {
		group *errgroup.Group
		ctx   context.Context
		err   error
		sem   *semaphore.Weighted
	}
)

func New(ctx context.Context, opts ...Option) (Group, context.Context) {
	g, ctx := errgroup.WithContext(ctx)
	group := &groupImpl{
		group: g,
		ctx:   ctx,
	}

	for _, opt := range opts {
		opt(group)
	}

	return group, ctx
}

// WithThrottling caps the number of goroutines running at the same time.
func WithThrottling(limit int) Option {
	return func(group *groupImpl) {
		group.sem = semaphore.NewWeighted(int64(limit))
	}
}

func (g *groupImpl) Go(fn func() error) {
	if g.sem == nil {
		g.group.Go(fn)
		return
	}

	// Block until a slot is available.
	if err := g.sem.Acquire(g.ctx, 1); err != nil {
		// When any worker returns an error, the context is cancelled by
		// errgroup, causing Acquire to fail. Save the error and return it in Wait.
		g.err = err
		return
	}

	g.group.Go(func() error {
		defer g.sem.Release(1)
		return fn()
	})
}

func (g *groupImpl) Wait() error {
	// The error returned by the worker is more important than the one from the semaphore.
	if err := g.group.Wait(); err != nil {
		return err
	}

	if g.err != nil {
		return g.err
	}

	return nil
}
