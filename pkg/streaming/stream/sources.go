package stream

import (
	"context"
	"iter"
	"math/rand/v2"

	lferrors "github.com/vnykmshr/lazyflow/pkg/common/errors"
	"github.com/vnykmshr/lazyflow/pkg/common/validation"
	"github.com/vnykmshr/lazyflow/pkg/mathx/primes"
)

// sliceSource implements Source for slices.
type sliceSource[T any] struct {
	slice []T
	index int
}

func (s *sliceSource[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	if s.index >= len(s.slice) {
		return zero, false, nil
	}
	v := s.slice[s.index]
	s.index++
	return v, true, nil
}

// FromSlice creates a stream over the elements of slice.
func FromSlice[T any](slice []T) *Stream[T] {
	return New[T](&sliceSource[T]{slice: slice})
}

// Of creates a stream over values.
func Of[T any](values ...T) *Stream[T] {
	return FromSlice(values)
}

// seqSource implements Source for range-over-func sequences.
type seqSource[T any] struct {
	next func() (T, bool)
	stop func()
}

func (s *seqSource[T]) Next(_ context.Context) (T, bool, error) {
	v, ok := s.next()
	if !ok {
		s.stop()
	}
	return v, ok, nil
}

func (s *seqSource[T]) Close() error {
	s.stop()
	return nil
}

// FromSeq creates a stream over seq. Close the stream if it is abandoned
// before the end so that seq can release its resources.
func FromSeq[T any](seq iter.Seq[T]) *Stream[T] {
	next, stop := iter.Pull(seq)
	return New[T](&seqSource[T]{next: next, stop: stop})
}

// channelSource implements Source for channels.
type channelSource[T any] struct {
	ch <-chan T
}

func (s *channelSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	select {
	case value, ok := <-s.ch:
		if !ok {
			return zero, false, nil
		}
		return value, true, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

// FromChannel creates a stream that receives from ch until it is closed.
func FromChannel[T any](ch <-chan T) *Stream[T] {
	return New[T](&channelSource[T]{ch: ch})
}

// generatorSource implements Source for generator functions.
type generatorSource[T any] struct {
	generator func() T
}

func (s *generatorSource[T]) Next(_ context.Context) (T, bool, error) {
	return s.generator(), true, nil
}

// Generate creates an infinite stream of generator's results.
func Generate[T any](generator func() T) *Stream[T] {
	return New[T](&generatorSource[T]{generator: generator})
}

// emptySource implements Source for empty streams.
type emptySource[T any] struct{}

func (s emptySource[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	return zero, false, nil
}

// Empty creates a stream with no elements.
func Empty[T any]() *Stream[T] {
	return New[T](emptySource[T]{})
}

// countSource counts from start by step, forever.
type countSource struct {
	cur, step int
}

func (c *countSource) Next(_ context.Context) (int, bool, error) {
	v := c.cur
	c.cur += c.step
	return v, true, nil
}

// Count yields start, start+step, start+2*step, ... without end.
func Count(start, step int) *Stream[int] {
	return New[int](&countSource{cur: start, step: step})
}

// Naturals yields 0, 1, 2, ...
func Naturals() *Stream[int] { return Count(0, 1) }

// N is an alias for Naturals.
func N() *Stream[int] { return Naturals() }

// N0 is an alias for Naturals.
func N0() *Stream[int] { return Naturals() }

// N1 yields 1, 2, 3, ...
func N1() *Stream[int] { return Count(1, 1) }

// Integers yields every integer once: 0, 1, -1, 2, -2, ...
func Integers() *Stream[int] {
	return Robin(Count(0, -1), Count(1, 1))
}

// I is an alias for Integers.
func I() *Stream[int] { return Integers() }

// Fibonacci yields 0, 1, 1, 2, 3, 5, ...
func Fibonacci() *Stream[int] {
	a, b := 0, 1
	return Generate(func() int {
		v := a
		a, b = b, a+b
		return v
	})
}

type primeSource struct {
	sieve *primes.Sieve
}

func (p primeSource) Next(_ context.Context) (int, bool, error) {
	return p.sieve.Next(), true, nil
}

// Primes yields the primes in ascending order.
func Primes() *Stream[int] {
	return New[int](primeSource{sieve: primes.New()})
}

type rangeSource struct {
	cur, stop, step int
}

func (r *rangeSource) Next(_ context.Context) (int, bool, error) {
	if (r.step > 0 && r.cur >= r.stop) || (r.step < 0 && r.cur <= r.stop) {
		return 0, false, nil
	}
	v := r.cur
	r.cur += r.step
	return v, true, nil
}

// Range yields a bounded arithmetic sequence. Range(stop) counts from 0,
// Range(start, stop) counts by one and Range(start, stop, step) counts by
// step; stop is excluded. It panics with a validation error on a zero step or
// a wrong number of arguments.
func Range(args ...int) *Stream[int] {
	r := rangeSource{step: 1}
	switch len(args) {
	case 1:
		r.stop = args[0]
	case 2:
		r.cur, r.stop = args[0], args[1]
	case 3:
		r.cur, r.stop, r.step = args[0], args[1], args[2]
	default:
		panic(lferrors.NewValidationError("stream", "range arguments", len(args), "expected 1 to 3 arguments").
			WithHint("use Range(stop), Range(start, stop) or Range(start, stop, step)"))
	}
	if err := validation.ValidateNonZero("stream", "step", r.step); err != nil {
		panic(err)
	}
	return New[int](&r)
}

// Rand yields uniform floats in [0, 1) from the shared random source.
func Rand() *Stream[float64] {
	return Generate(rand.Float64)
}

// Random is an alias for Rand.
func Random() *Stream[float64] { return Rand() }

// RandFrom is Rand over src, for reproducible sequences.
func RandFrom(src rand.Source) *Stream[float64] {
	return Generate(rand.New(src).Float64)
}

// RandInt yields uniform integers in [a, b], bounds included. It panics with
// a validation error if a > b.
func RandInt(a, b int) *Stream[int] {
	return randInt(rand.Uint64N, rand.Uint64, a, b)
}

// RandIntFrom is RandInt over src.
func RandIntFrom(src rand.Source, a, b int) *Stream[int] {
	r := rand.New(src)
	return randInt(r.Uint64N, r.Uint64, a, b)
}

func randInt(uintN func(uint64) uint64, full func() uint64, a, b int) *Stream[int] {
	if err := validation.ValidateOrdered("stream", "randint bounds", a, b); err != nil {
		panic(err)
	}
	// The span wraps to zero when [a, b] covers every int.
	span := uint64(b-a) + 1
	if span == 0 {
		return Generate(func() int { return int(full()) })
	}
	return Generate(func() int { return int(uint64(a) + uintN(span)) })
}
