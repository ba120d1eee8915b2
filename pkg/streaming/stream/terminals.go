package stream

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/vnykmshr/lazyflow/pkg/structs/bag"
)

// each pulls values into fn until the stream ends, fn returns false or a
// fault surfaces. The fault is returned.
func (s *Stream[T]) each(ctx context.Context, fn func(T) bool) error {
	for {
		v, ok, err := s.Next(ctx)
		if err != nil {
			return err
		}
		if !ok || !fn(v) {
			return nil
		}
	}
}

// ToSlice collects all elements into a slice.
func (s *Stream[T]) ToSlice(ctx context.Context) ([]T, error) {
	var result []T
	err := s.each(ctx, func(v T) bool {
		result = append(result, v)
		return true
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = []T{}
	}
	return result, nil
}

// Drain pulls the stream to the end and discards the values.
func (s *Stream[T]) Drain(ctx context.Context) error {
	return s.each(ctx, func(T) bool { return true })
}

// ForEach calls fn for each element. Values delivered before a fault stay
// delivered.
func (s *Stream[T]) ForEach(ctx context.Context, fn func(T)) error {
	return s.each(ctx, func(v T) bool {
		fn(v)
		return true
	})
}

// Count returns the number of elements.
func (s *Stream[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.each(ctx, func(T) bool {
		count++
		return true
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// First returns the first element, or false if the stream is empty.
func (s *Stream[T]) First(ctx context.Context) (T, bool, error) {
	return s.Next(ctx)
}

// AnyMatch returns true if any element matches the predicate.
func (s *Stream[T]) AnyMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	found := false
	err := s.each(ctx, func(v T) bool {
		found = predicate(v)
		return !found
	})
	return found && err == nil, err
}

// AllMatch returns true if all elements match the predicate.
func (s *Stream[T]) AllMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	all := true
	err := s.each(ctx, func(v T) bool {
		all = predicate(v)
		return all
	})
	if err != nil {
		return false, err
	}
	return all, nil
}

// NoneMatch returns true if no elements match the predicate.
func (s *Stream[T]) NoneMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	found, err := s.AnyMatch(ctx, predicate)
	if err != nil {
		return false, err
	}
	return !found, nil
}

// Reduce folds the elements left to right, seeded by the first one. It
// returns def for an empty stream; fn is not called for a single element.
func (s *Stream[T]) Reduce(ctx context.Context, fn func(acc, v T) T, def T) (T, error) {
	var (
		acc     T
		started bool
	)
	err := s.each(ctx, func(v T) bool {
		if !started {
			acc, started = v, true
			return true
		}
		acc = fn(acc, v)
		return true
	})
	if err != nil {
		return def, err
	}
	if !started {
		return def, nil
	}
	return acc, nil
}

// Format renders each element with the fmt verb format and joins them as
// "[a, b, c]".
func (s *Stream[T]) Format(ctx context.Context, format string) (string, error) {
	var parts []string
	err := s.each(ctx, func(v T) bool {
		parts = append(parts, fmt.Sprintf(format, v))
		return true
	})
	if err != nil {
		return "", err
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

// Print writes the Format rendering of the stream and a newline to w.
func (s *Stream[T]) Print(ctx context.Context, w io.Writer, format string) error {
	out, err := s.Format(ctx, format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// ToSet collects the distinct elements of s.
func ToSet[T comparable](ctx context.Context, s *Stream[T]) (map[T]struct{}, error) {
	set := make(map[T]struct{})
	err := s.each(ctx, func(v T) bool {
		set[v] = struct{}{}
		return true
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// Any reports whether some element is not the zero value of T.
func Any[T comparable](ctx context.Context, s *Stream[T]) (bool, error) {
	var zero T
	return s.AnyMatch(ctx, func(v T) bool { return v != zero })
}

// All reports whether no element is the zero value of T. It is true for an
// empty stream.
func All[T comparable](ctx context.Context, s *Stream[T]) (bool, error) {
	var zero T
	return s.AllMatch(ctx, func(v T) bool { return v != zero })
}

// None reports whether every element is the zero value of T.
func None[T comparable](ctx context.Context, s *Stream[T]) (bool, error) {
	var zero T
	return s.NoneMatch(ctx, func(v T) bool { return v != zero })
}

// Fold folds the elements left to right starting from init.
func Fold[T, A any](ctx context.Context, s *Stream[T], init A, fn func(acc A, v T) A) (A, error) {
	acc := init
	err := s.each(ctx, func(v T) bool {
		acc = fn(acc, v)
		return true
	})
	if err != nil {
		return init, err
	}
	return acc, nil
}

// GroupBy collects the elements into a bag keyed by key. Keys keep the order
// in which they were first seen, values keep stream order.
func GroupBy[T any, K comparable](ctx context.Context, s *Stream[T], key func(T) K) (*bag.Bag[K, T], error) {
	b := bag.New[K, T]()
	err := s.each(ctx, func(v T) bool {
		b.Append(key(v), v)
		return true
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}
