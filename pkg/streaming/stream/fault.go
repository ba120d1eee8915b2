package stream

import (
	"errors"
	"fmt"
	"reflect"
	"runtime/debug"
	"strings"
)

// PanicError is the fault recorded when a user-supplied function panics inside
// a stage. It unwraps to the panic value when that value is an error, so a
// runtime.Error such as an integer division by zero can be matched with As.
type PanicError struct {
	Value any
	Stack []byte
}

// NewPanicError captures the recovered value v and the current stack.
func NewPanicError(v any) *PanicError {
	return &PanicError{Value: v, Stack: debug.Stack()}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value if it is an error, nil otherwise.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// MergeError aggregates the faults found in one positional group of a zip.
type MergeError struct {
	Errs []error
}

func (e *MergeError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d faults in merged group: %s", len(e.Errs), strings.Join(msgs, "; "))
}

// Unwrap exposes the member faults to errors.Is, errors.As and Excg.
func (e *MergeError) Unwrap() []error {
	return e.Errs
}

// capture runs fn and converts a panic into a *PanicError.
func capture(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewPanicError(r)
		}
	}()
	fn()
	return nil
}

// Matcher decides whether a single error value, not its wrapped causes, is of
// the kind a recovery stage handles. Exc and Excg decide how far to descend.
type Matcher func(err error) bool

// Is matches errors equal to target, or whose Is method reports target.
func Is(target error) Matcher {
	canCompare := target == nil || reflect.TypeOf(target).Comparable()
	return func(err error) bool {
		if x, ok := err.(interface{ Is(error) bool }); ok && x.Is(target) {
			return true
		}
		return canCompare && err == target
	}
}

// As matches errors whose dynamic type is E, or whose As method accepts an E.
func As[E error]() Matcher {
	return func(err error) bool {
		if _, ok := err.(E); ok {
			return true
		}
		if x, ok := err.(interface{ As(any) bool }); ok {
			var target E
			return x.As(&target)
		}
		return false
	}
}

// MatchFunc adapts an arbitrary predicate.
func MatchFunc(fn func(error) bool) Matcher {
	return Matcher(fn)
}

// AnyOf matches when any of ms matches.
func AnyOf(ms ...Matcher) Matcher {
	return func(err error) bool {
		for _, m := range ms {
			if m(err) {
				return true
			}
		}
		return false
	}
}

// matchChain walks the single-cause wrap chain of err.
func matchChain(err error, m Matcher) bool {
	for err != nil {
		if m(err) {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// matchTree walks err and, through Unwrap() []error, every member of an aggregate.
func matchTree(err error, m Matcher) bool {
	if err == nil {
		return false
	}
	if m(err) {
		return true
	}
	switch x := err.(type) {
	case interface{ Unwrap() error }:
		return matchTree(x.Unwrap(), m)
	case interface{ Unwrap() []error }:
		for _, member := range x.Unwrap() {
			if matchTree(member, m) {
				return true
			}
		}
	}
	return false
}

// Recovery is what Exc and Excg do with a matched fault.
type Recovery int

const (
	// RecoverSkip drops the faulted element and pulls the next one.
	RecoverSkip Recovery = iota
	// RecoverStop ends the stream at the faulted element.
	RecoverStop
)

func (r Recovery) signal() Signal {
	if r == RecoverStop {
		return SignalStop
	}
	return SignalSkip
}
