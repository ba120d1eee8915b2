package stream

import "context"

// Waiter blocks until the caller may proceed. *bucket.Limiter implements it.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Throttle returns a stream that waits on w before every pull from s. A
// failed wait is emitted as a faulted element and s is not pulled for it.
func Throttle[T any](s *Stream[T], w Waiter) *Stream[T] {
	s.inner = true
	return &Stream[T]{
		src: throttled[T]{from: s, w: w},
		obs: s.obs,
	}
}

type throttled[T any] struct {
	from *Stream[T]
	w    Waiter
}

func (t throttled[T]) pull(ctx context.Context) (Result[T], bool) {
	if t.from.Exhausted() {
		return Result[T]{}, false
	}
	if err := t.w.Wait(ctx); err != nil {
		var zero T
		return Fault(zero, err), true
	}
	return t.from.Raw(ctx)
}

func (t throttled[T]) close() error {
	return t.from.Close()
}
