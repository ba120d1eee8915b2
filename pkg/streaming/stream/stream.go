package stream

import (
	"context"
	"iter"
	"sync/atomic"

	lferrors "github.com/vnykmshr/lazyflow/pkg/common/errors"
)

// ErrConcurrentPull is returned when a stream is pulled while another pull on
// it is still in progress. A stream has exactly one consumer.
var ErrConcurrentPull = lferrors.ErrConcurrentPull

// Source represents a data source for streams.
type Source[T any] interface {
	// Next returns the next element and true, or zero value and false if no more elements.
	// A non-nil error becomes a faulted element; the source may be pulled again afterwards.
	Next(ctx context.Context) (T, bool, error)
}

// Stage transforms one element envelope. A stage belongs to exactly one stream
// and may keep private state across calls for the lifetime of that stream.
type Stage[T any] interface {
	Apply(r Result[T]) Result[T]
}

// StageFunc adapts a stateless function to Stage.
type StageFunc[T any] func(r Result[T]) Result[T]

// Apply implements Stage.
func (f StageFunc[T]) Apply(r Result[T]) Result[T] {
	return f(r)
}

// rawSource yields raw envelopes. Sources of plain values, upstream streams and
// merges all implement it.
type rawSource[T any] interface {
	pull(ctx context.Context) (Result[T], bool)
}

// Stream is a lazy, single-consumer cursor over a source and an ordered chain
// of stages. Combinator methods append a stage in place and return the same
// stream, so chaining is destructive. Functions that change the element type
// (Map, Collisions, Call, ...) return a new stream that pulls from this one;
// keep using the returned stream after calling them.
type Stream[T any] struct {
	src     rawSource[T]
	stages  []Stage[T]
	latched bool
	busy    atomic.Bool
	obs     *observer

	// countPulls is false when src is another stream, whose own kernel
	// already counted the pull.
	countPulls bool
	// inner is set once another stream pulls from this one; only skips are
	// reported then, the outer stream reports everything it emits.
	inner bool
}

// New creates a new Stream from a Source.
func New[T any](source Source[T]) *Stream[T] {
	return &Stream[T]{
		src:        sourceAdapter[T]{source: source},
		obs:        newObserver(),
		countPulls: true,
	}
}

func newRaw[T any](src rawSource[T]) *Stream[T] {
	return &Stream[T]{src: src, obs: newObserver(), countPulls: true}
}

// From returns s unchanged. It exists so that code accepting "a sequence or a
// stream" does not wrap a stream twice.
func From[T any](s *Stream[T]) *Stream[T] {
	return s
}

// Via registers a custom stage and returns the stream.
func (s *Stream[T]) Via(stage Stage[T]) *Stream[T] {
	s.stages = append(s.stages, stage)
	return s
}

// Len returns the number of registered stages.
func (s *Stream[T]) Len() int {
	return len(s.stages)
}

// Exhausted reports whether the stream has latched: every further pull ends
// immediately without consulting the source.
func (s *Stream[T]) Exhausted() bool {
	return s.latched
}

// produce runs the pull loop. It is iterative: a skip restarts the loop with
// a fresh raw element instead of re-entering produce.
func (s *Stream[T]) produce(ctx context.Context) (Result[T], bool) {
	var zero Result[T]
	for {
		if s.latched {
			return zero, false
		}
		if err := ctx.Err(); err != nil {
			return Fault(zero.Value, err), true
		}

		raw, ok := s.src.pull(ctx)
		if !ok {
			raw = Result[T]{Signal: SignalStop}
		} else if s.countPulls {
			s.obs.pulled()
		}

		for _, stage := range s.stages {
			raw = stage.Apply(raw)
		}

		if !s.inner || raw.Signal == SignalSkip {
			s.obs.settled(raw.Signal)
		}

		switch raw.Signal {
		case SignalSkip:
			continue
		case SignalStop:
			s.latched = true
			s.obs.ended(SignalStop)
			return zero, false
		case SignalStopAfter:
			s.latched = true
			s.obs.ended(SignalStopAfter)
			raw.Signal = SignalNormal
			return raw, true
		default:
			return raw, true
		}
	}
}

// Raw returns the next element of the raw sequence: a normal element, a
// faulted element, or false at the end of the stream. Multi-stream
// combinators merge raw sequences so that faults survive the merge.
func (s *Stream[T]) Raw(ctx context.Context) (Result[T], bool) {
	if !s.busy.CompareAndSwap(false, true) {
		var zero T
		return Fault(zero, ErrConcurrentPull), true
	}
	defer s.busy.Store(false)
	return s.produce(ctx)
}

// Next returns the next value and true, or zero value and false at the end of
// the stream. A faulted element is returned as a non-nil error; the stream is
// not ended by it and may be pulled again.
func (s *Stream[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	r, ok := s.Raw(ctx)
	if !ok {
		return zero, false, nil
	}
	if r.Signal == SignalError {
		s.obs.surfaced(r.Err)
		return zero, false, r.Err
	}
	return r.Value, true, nil
}

// Seq returns a single-use iterator over the stream. Iteration stops after
// the first fault, which is yielded with a zero value.
func (s *Stream[T]) Seq(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			v, ok, err := s.Next(ctx)
			if err != nil {
				yield(v, err)
				return
			}
			if !ok || !yield(v, nil) {
				return
			}
		}
	}
}

// Close releases the source if it holds resources. Streams over plain values
// need no teardown.
func (s *Stream[T]) Close() error {
	if c, ok := s.src.(interface{ close() error }); ok {
		return c.close()
	}
	return nil
}

// sourceAdapter lifts a Source of values into a raw source.
type sourceAdapter[T any] struct {
	source Source[T]
}

func (a sourceAdapter[T]) pull(ctx context.Context) (Result[T], bool) {
	v, ok, err := a.source.Next(ctx)
	if err != nil {
		return Fault(v, err), true
	}
	if !ok {
		return Result[T]{}, false
	}
	return Ok(v), true
}

func (a sourceAdapter[T]) close() error {
	if c, ok := a.source.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// upstream pulls the raw sequence of another stream and converts each element.
type upstream[T, R any] struct {
	from *Stream[T]
	conv func(Result[T]) Result[R]
}

func (u upstream[T, R]) pull(ctx context.Context) (Result[R], bool) {
	r, ok := u.from.Raw(ctx)
	if !ok {
		return Result[R]{}, false
	}
	return u.conv(r), true
}

func (u upstream[T, R]) close() error {
	return u.from.Close()
}

// narrow builds the stream of R that continues s through conv. conv sees every
// raw element of s, faults included.
func narrow[T, R any](s *Stream[T], conv func(Result[T]) Result[R]) *Stream[R] {
	s.inner = true
	return &Stream[R]{
		src: upstream[T, R]{from: s, conv: conv},
		obs: s.obs,
	}
}
