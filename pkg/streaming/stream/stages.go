package stream

import (
	"cmp"
	"errors"
	"fmt"
	"reflect"

	"github.com/vnykmshr/lazyflow/pkg/common/validation"
)

// ErrUnhashable is the fault recorded by Unique and Duplicates for values that
// cannot be used as set members.
var ErrUnhashable = errors.New("stream: value is not hashable")

// predicateStage assigns onTrue or onFalse to normal elements by pred.
type predicateStage[T any] struct {
	pred    func(T) bool
	onTrue  Signal
	onFalse Signal
}

func (p predicateStage[T]) Apply(r Result[T]) Result[T] {
	if !r.IsNormal() {
		return r
	}
	var ok bool
	if err := capture(func() { ok = p.pred(r.Value) }); err != nil {
		return Fault(r.Value, err)
	}
	if ok {
		return r.withSignal(p.onTrue)
	}
	return r.withSignal(p.onFalse)
}

// Filter keeps the elements that satisfy predicate.
func (s *Stream[T]) Filter(predicate func(T) bool) *Stream[T] {
	return s.Via(predicateStage[T]{pred: predicate, onTrue: SignalNormal, onFalse: SignalSkip})
}

// FilterOut drops the elements that satisfy predicate.
func (s *Stream[T]) FilterOut(predicate func(T) bool) *Stream[T] {
	return s.Via(predicateStage[T]{pred: predicate, onTrue: SignalSkip, onFalse: SignalNormal})
}

// Stop ends the stream at the first element that satisfies predicate, without
// emitting it.
func (s *Stream[T]) Stop(predicate func(T) bool) *Stream[T] {
	return s.Via(predicateStage[T]{pred: predicate, onTrue: SignalStop, onFalse: SignalNormal})
}

// StopAfter emits the first element that satisfies predicate and then ends
// the stream.
func (s *Stream[T]) StopAfter(predicate func(T) bool) *Stream[T] {
	return s.Via(predicateStage[T]{pred: predicate, onTrue: SignalStopAfter, onFalse: SignalNormal})
}

type limitStage[T any] struct {
	n    int
	seen int
}

func (l *limitStage[T]) Apply(r Result[T]) Result[T] {
	if !r.IsNormal() {
		return r
	}
	if l.seen >= l.n {
		return r.withSignal(SignalStop)
	}
	l.seen++
	return r
}

// Limit passes the first n normal elements and stops on the next one.
// It panics with a validation error if n is negative.
func (s *Stream[T]) Limit(n int) *Stream[T] {
	if err := validation.ValidateNonNegative("stream", "limit", n); err != nil {
		panic(err)
	}
	return s.Via(&limitStage[T]{n: n})
}

// Take is an alias for Limit.
func (s *Stream[T]) Take(n int) *Stream[T] {
	return s.Limit(n)
}

type skipStage[T any] struct {
	n       int
	skipped int
}

func (k *skipStage[T]) Apply(r Result[T]) Result[T] {
	if !r.IsNormal() || k.skipped >= k.n {
		return r
	}
	k.skipped++
	return r.withSignal(SignalSkip)
}

// Skip drops the first n normal elements.
// It panics with a validation error if n is negative.
func (s *Stream[T]) Skip(n int) *Stream[T] {
	if err := validation.ValidateNonNegative("stream", "skip", n); err != nil {
		panic(err)
	}
	return s.Via(&skipStage[T]{n: n})
}

// Evr registers fn as a stage over the full envelope, faults included.
// A panic inside fn becomes a fault on the element. When the source runs
// out, fn also sees the end marker, an element with SignalStop; return it
// unchanged or the stream will not end.
func (s *Stream[T]) Evr(fn func(Result[T]) Result[T]) *Stream[T] {
	return s.Via(StageFunc[T](func(r Result[T]) Result[T] {
		out := r
		if err := capture(func() { out = fn(r) }); err != nil {
			return Fault(r.Value, err)
		}
		return out
	}))
}

type recoverStage[T any] struct {
	match  Matcher
	action Recovery
	deep   bool
}

func (e recoverStage[T]) Apply(r Result[T]) Result[T] {
	if !r.IsFault() {
		return r
	}
	matched := true
	if e.match != nil {
		if e.deep {
			matched = matchTree(r.Err, e.match)
		} else {
			matched = matchChain(r.Err, e.match)
		}
	}
	if !matched {
		return r
	}
	return r.withSignal(e.action.signal())
}

// Exc recovers faults that match: the faulted element is skipped or ends the
// stream, according to action. The wrap chain of the fault is searched; a nil
// match recovers every fault. Unmatched faults pass through.
func (s *Stream[T]) Exc(match Matcher, action Recovery) *Stream[T] {
	return s.Via(recoverStage[T]{match: match, action: action})
}

// Excg is Exc for aggregate faults: members of errors exposing
// Unwrap() []error, such as *MergeError, are searched too.
func (s *Stream[T]) Excg(match Matcher, action Recovery) *Stream[T] {
	return s.Via(recoverStage[T]{match: match, action: action, deep: true})
}

// hashKey returns v as a map key, or ErrUnhashable.
func hashKey(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if !reflect.TypeOf(v).Comparable() {
		return nil, fmt.Errorf("%w: %T", ErrUnhashable, v)
	}
	return v, nil
}

// countStage counts occurrences of each value and emits the occurrence
// selected by keep.
type countStage[T any] struct {
	counts map[any]int
	keep   func(n int) bool
}

func (c *countStage[T]) Apply(r Result[T]) Result[T] {
	if !r.IsNormal() {
		return r
	}
	key, err := hashKey(r.Value)
	if err != nil {
		return Fault(r.Value, err)
	}
	var n int
	// Interface values with incomparable dynamic fields still panic here.
	if err := capture(func() {
		c.counts[key]++
		n = c.counts[key]
	}); err != nil {
		return Fault(r.Value, err)
	}
	if c.keep(n) {
		return r
	}
	return r.withSignal(SignalSkip)
}

// Unique drops values already seen.
func (s *Stream[T]) Unique() *Stream[T] {
	return s.Via(&countStage[T]{counts: make(map[any]int), keep: func(n int) bool { return n == 1 }})
}

// Duplicates emits a value only the second time it is seen. First and later
// occurrences are dropped.
func (s *Stream[T]) Duplicates() *Stream[T] {
	return s.Via(&countStage[T]{counts: make(map[any]int), keep: func(n int) bool { return n == 2 }})
}

type uniqueKeyStage[T any] struct {
	key  func(T) any
	seen map[any]struct{}
}

func (u *uniqueKeyStage[T]) Apply(r Result[T]) Result[T] {
	if !r.IsNormal() {
		return r
	}
	var dup bool
	if err := capture(func() {
		k := u.key(r.Value)
		if _, dup = u.seen[k]; !dup {
			u.seen[k] = struct{}{}
		}
	}); err != nil {
		return Fault(r.Value, err)
	}
	if dup {
		return r.withSignal(SignalSkip)
	}
	return r
}

// UniqueRet drops elements whose key was already seen. The computed keys are
// remembered, not the values.
func (s *Stream[T]) UniqueRet(key func(T) any) *Stream[T] {
	return s.Via(&uniqueKeyStage[T]{key: key, seen: make(map[any]struct{})})
}

// Act calls fn on each value for its side effect. The value passes on
// unchanged; an error or panic from fn faults the element.
func (s *Stream[T]) Act(fn func(T) error) *Stream[T] {
	return s.Via(StageFunc[T](func(r Result[T]) Result[T] {
		if !r.IsNormal() {
			return r
		}
		var ferr error
		if err := capture(func() { ferr = fn(r.Value) }); err != nil {
			return Fault(r.Value, err)
		}
		if ferr != nil {
			return Fault(r.Value, ferr)
		}
		return r
	}))
}

// Tap calls fn on each value for its side effect.
func (s *Stream[T]) Tap(fn func(T)) *Stream[T] {
	return s.Act(func(v T) error {
		fn(v)
		return nil
	})
}

type stalinStage[T any] struct {
	compare func(a, b T) int
	max     T
	started bool
}

func (st *stalinStage[T]) Apply(r Result[T]) Result[T] {
	if !r.IsNormal() {
		return r
	}
	if !st.started {
		st.started, st.max = true, r.Value
		return r
	}
	var c int
	if err := capture(func() { c = st.compare(r.Value, st.max) }); err != nil {
		return Fault(r.Value, err)
	}
	if c <= 0 {
		return r.withSignal(SignalSkip)
	}
	st.max = r.Value
	return r
}

// Stalin keeps the first value and then only values strictly greater than
// the largest value kept so far. compare returns a negative number, zero or a
// positive number as a is less than, equal to or greater than b.
func (s *Stream[T]) Stalin(compare func(a, b T) int) *Stream[T] {
	return s.Via(&stalinStage[T]{compare: compare})
}

// StalinOrdered is Stalin over the natural order of T.
func StalinOrdered[T cmp.Ordered](s *Stream[T]) *Stream[T] {
	return s.Stalin(cmp.Compare[T])
}

// Map converts each value with fn. An error or panic from fn faults the element.
// The returned stream continues s; s must not be pulled directly afterwards.
func Map[T, R any](s *Stream[T], fn func(T) (R, error)) *Stream[R] {
	return narrow(s, func(r Result[T]) Result[R] {
		if !r.IsNormal() {
			return faultAs[R](r)
		}
		var (
			out  R
			ferr error
		)
		if err := capture(func() { out, ferr = fn(r.Value) }); err != nil {
			return Fault(out, err)
		}
		if ferr != nil {
			return Fault(out, ferr)
		}
		return Ok(out)
	})
}

// Eval is Map for functions that cannot fail other than by panicking.
func Eval[T, R any](s *Stream[T], fn func(T) R) *Stream[R] {
	return Map(s, func(v T) (R, error) {
		return fn(v), nil
	})
}

// MapResult is the type-changing form of Evr: fn sees every raw element,
// faults included, and decides the outgoing envelope.
func MapResult[T, R any](s *Stream[T], fn func(Result[T]) Result[R]) *Stream[R] {
	return narrow(s, func(r Result[T]) Result[R] {
		var out Result[R]
		if err := capture(func() { out = fn(r) }); err != nil {
			return Fault(out.Value, err)
		}
		return out
	})
}

// Collision reports a value whose key was already produced by Previous.
type Collision[T any, K comparable] struct {
	Current  T
	Previous T
	Key      K
}

type collisionStage[T any, K comparable] struct {
	key  func(T) K
	last map[K]T
}

func (c *collisionStage[T, K]) apply(r Result[T]) Result[Collision[T, K]] {
	if !r.IsNormal() {
		return faultAs[Collision[T, K]](r)
	}
	var k K
	if err := capture(func() { k = c.key(r.Value) }); err != nil {
		return Fault(Collision[T, K]{Current: r.Value}, err)
	}
	prev, seen := c.last[k]
	c.last[k] = r.Value
	if !seen {
		return Result[Collision[T, K]]{Signal: SignalSkip}
	}
	return Ok(Collision[T, K]{Current: r.Value, Previous: prev, Key: k})
}

// Collisions emits a Collision each time a value maps to a key seen before,
// pairing it with the last value of that key. First sightings are dropped.
func Collisions[T any, K comparable](s *Stream[T], key func(T) K) *Stream[Collision[T, K]] {
	c := &collisionStage[T, K]{key: key, last: make(map[K]T)}
	return narrow(s, c.apply)
}
