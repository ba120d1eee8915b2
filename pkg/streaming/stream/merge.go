package stream

import (
	"context"
	"errors"
)

// merged builds a stream whose raw source pulls the raw sequences of inputs.
func merged[T any, S any](src rawSource[T], inputs []*Stream[S]) *Stream[T] {
	for _, in := range inputs {
		in.inner = true
	}
	return &Stream[T]{src: src, obs: newObserver()}
}

func closeAll[T any](inputs []*Stream[T]) error {
	var errs []error
	for _, in := range inputs {
		if err := in.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type robinSource[T any] struct {
	inputs  []*Stream[T]
	pending []Result[T]
	done    bool
}

func (r *robinSource[T]) pull(ctx context.Context) (Result[T], bool) {
	if len(r.pending) == 0 {
		if r.done || len(r.inputs) == 0 {
			return Result[T]{}, false
		}
		group := make([]Result[T], 0, len(r.inputs))
		for _, in := range r.inputs {
			e, ok := in.Raw(ctx)
			if !ok {
				r.done = true
				return Result[T]{}, false
			}
			group = append(group, e)
		}
		r.pending = group
	}
	e := r.pending[0]
	r.pending = r.pending[1:]
	return e, true
}

func (r *robinSource[T]) close() error { return closeAll(r.inputs) }

// Robin interleaves the inputs one element each, in argument order. It stops
// as soon as one input ends while a round is being collected, so a round is
// only emitted when every input contributed to it. Faults pass through as
// members of the round.
func Robin[T any](inputs ...*Stream[T]) *Stream[T] {
	return merged[T](&robinSource[T]{inputs: inputs}, inputs)
}

type robinLongestSource[T any] struct {
	inputs []*Stream[T]
	live   []bool
	next   int
	alive  int
}

func (r *robinLongestSource[T]) pull(ctx context.Context) (Result[T], bool) {
	for r.alive > 0 {
		i := r.next
		r.next = (r.next + 1) % len(r.inputs)
		if !r.live[i] {
			continue
		}
		if e, ok := r.inputs[i].Raw(ctx); ok {
			return e, true
		}
		r.live[i] = false
		r.alive--
	}
	return Result[T]{}, false
}

func (r *robinLongestSource[T]) close() error { return closeAll(r.inputs) }

// RobinLongest interleaves the inputs like Robin but keeps going until every
// input has ended, leaving out the inputs that already ended.
func RobinLongest[T any](inputs ...*Stream[T]) *Stream[T] {
	live := make([]bool, len(inputs))
	for i := range live {
		live[i] = true
	}
	return merged[T](&robinLongestSource[T]{inputs: inputs, live: live, alive: len(inputs)}, inputs)
}

type catSource[T any] struct {
	inputs []*Stream[T]
	cur    int
}

func (c *catSource[T]) pull(ctx context.Context) (Result[T], bool) {
	for c.cur < len(c.inputs) {
		if e, ok := c.inputs[c.cur].Raw(ctx); ok {
			return e, true
		}
		c.cur++
	}
	return Result[T]{}, false
}

func (c *catSource[T]) close() error { return closeAll(c.inputs) }

// Cat yields every element of each input in turn.
func Cat[T any](inputs ...*Stream[T]) *Stream[T] {
	return merged[T](&catSource[T]{inputs: inputs}, inputs)
}

type zipSource[T any] struct {
	inputs  []*Stream[T]
	live    []bool
	fill    T
	longest bool
	done    bool
}

func (z *zipSource[T]) pull(ctx context.Context) (Result[[]T], bool) {
	if z.done || len(z.inputs) == 0 {
		return Result[[]T]{}, false
	}
	tuple := make([]T, len(z.inputs))
	var errs []error
	ended := 0
	for i, in := range z.inputs {
		if !z.live[i] {
			tuple[i] = z.fill
			ended++
			continue
		}
		e, ok := in.Raw(ctx)
		switch {
		case !ok && !z.longest:
			z.done = true
			return Result[[]T]{}, false
		case !ok:
			z.live[i] = false
			tuple[i] = z.fill
			ended++
		case e.IsFault():
			errs = append(errs, e.Err)
		default:
			tuple[i] = e.Value
		}
	}
	if ended == len(z.inputs) {
		z.done = true
		return Result[[]T]{}, false
	}
	if len(errs) > 0 {
		return Fault(tuple, &MergeError{Errs: errs}), true
	}
	return Ok(tuple), true
}

func (z *zipSource[T]) close() error { return closeAll(z.inputs) }

func newZip[T any](fill T, longest bool, inputs []*Stream[T]) *Stream[[]T] {
	live := make([]bool, len(inputs))
	for i := range live {
		live[i] = true
	}
	return merged[[]T](&zipSource[T]{inputs: inputs, live: live, fill: fill, longest: longest}, inputs)
}

// Zip groups the elements of the inputs by position and stops at the
// shortest input. A group with faults becomes one faulted element carrying a
// *MergeError; its tuple holds the zero value in the faulted slots.
func Zip[T any](inputs ...*Stream[T]) *Stream[[]T] {
	var zero T
	return newZip(zero, false, inputs)
}

// ZipLongest is Zip up to the longest input; ended inputs contribute fill.
func ZipLongest[T any](fill T, inputs ...*Stream[T]) *Stream[[]T] {
	return newZip(fill, true, inputs)
}

// Pair is one group of Zip2.
type Pair[A, B any] struct {
	First  A
	Second B
}

type zip2Source[A, B any] struct {
	a    *Stream[A]
	b    *Stream[B]
	done bool
}

func (z *zip2Source[A, B]) pull(ctx context.Context) (Result[Pair[A, B]], bool) {
	if z.done {
		return Result[Pair[A, B]]{}, false
	}
	ea, ok := z.a.Raw(ctx)
	if !ok {
		z.done = true
		return Result[Pair[A, B]]{}, false
	}
	eb, ok := z.b.Raw(ctx)
	if !ok {
		z.done = true
		return Result[Pair[A, B]]{}, false
	}
	var (
		p    Pair[A, B]
		errs []error
	)
	if ea.IsFault() {
		errs = append(errs, ea.Err)
	} else {
		p.First = ea.Value
	}
	if eb.IsFault() {
		errs = append(errs, eb.Err)
	} else {
		p.Second = eb.Value
	}
	if len(errs) > 0 {
		return Fault(p, &MergeError{Errs: errs}), true
	}
	return Ok(p), true
}

func (z *zip2Source[A, B]) close() error {
	return errors.Join(z.a.Close(), z.b.Close())
}

// Zip2 pairs two streams of different element types, with the fault handling
// of Zip.
func Zip2[A, B any](a *Stream[A], b *Stream[B]) *Stream[Pair[A, B]] {
	a.inner, b.inner = true, true
	return &Stream[Pair[A, B]]{src: &zip2Source[A, B]{a: a, b: b}, obs: newObserver()}
}
