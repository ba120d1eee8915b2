package task

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vnykmshr/lazyflow/pkg/streaming/stream"
)

// JoinAll waits for every future and returns their results in argument
// order. It returns early with the first fault observed.
func JoinAll[R any](ctx context.Context, futures ...*Future[R]) ([]R, error) {
	results := make([]R, len(futures))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range futures {
		g.Go(func() error {
			r, err := f.Join(gctx)
			results[i] = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

type futureSource[R any] struct {
	futures []*Future[R]
	next    int
}

func (s *futureSource[R]) Next(ctx context.Context) (R, bool, error) {
	var zero R
	if s.next >= len(s.futures) {
		return zero, false, nil
	}
	r, err := s.futures[s.next].Join(ctx)
	if err != nil && ctx.Err() != nil {
		return zero, true, err
	}
	s.next++
	return r, true, err
}

// Stream yields the outcome of each future in argument order, waiting for
// each in turn. A failed task becomes a fault on its element.
func Stream[R any](futures ...*Future[R]) *stream.Stream[R] {
	return stream.New[R](&futureSource[R]{futures: futures})
}
