package stream

import (
	"reflect"
)

// ArgsKind tells how a value was destructured into call arguments.
type ArgsKind int

const (
	// ArgsSingle passes the value as the only argument.
	ArgsSingle ArgsKind = iota
	// ArgsPositional spreads a slice or array.
	ArgsPositional
	// ArgsKeyword spreads a map with string keys.
	ArgsKeyword
	// ArgsBoth spreads a two-element pair of a sequence and a string-keyed map,
	// in either order.
	ArgsBoth
)

// Args is a value destructured by shape for Call.
type Args struct {
	Kind       ArgsKind
	Positional []any
	Keyword    map[string]any
	Single     any
}

// Arg returns the i-th positional argument, or nil.
func (a Args) Arg(i int) any {
	if i < 0 || i >= len(a.Positional) {
		return nil
	}
	return a.Positional[i]
}

// Kw returns the keyword argument name and whether it was present.
func (a Args) Kw(name string) (any, bool) {
	v, ok := a.Keyword[name]
	return v, ok
}

// ArgsOf classifies v. An Args value is returned as is; a two-element []any
// holding a sequence and a string-keyed map is ArgsBoth; any other slice or
// array is ArgsPositional; a string-keyed map is ArgsKeyword; everything else
// is ArgsSingle.
func ArgsOf(v any) Args {
	if a, ok := v.(Args); ok {
		return a
	}
	if pair, ok := v.([]any); ok && len(pair) == 2 {
		first, second := reflect.ValueOf(pair[0]), reflect.ValueOf(pair[1])
		switch {
		case isSequence(first) && isKeywordMap(second):
			return Args{Kind: ArgsBoth, Positional: spread(first), Keyword: keywords(second)}
		case isKeywordMap(first) && isSequence(second):
			return Args{Kind: ArgsBoth, Positional: spread(second), Keyword: keywords(first)}
		}
	}
	rv := reflect.ValueOf(v)
	switch {
	case isSequence(rv):
		return Args{Kind: ArgsPositional, Positional: spread(rv)}
	case isKeywordMap(rv):
		return Args{Kind: ArgsKeyword, Keyword: keywords(rv)}
	}
	return Args{Kind: ArgsSingle, Single: v}
}

func isSequence(rv reflect.Value) bool {
	k := rv.Kind()
	return k == reflect.Slice || k == reflect.Array
}

func isKeywordMap(rv reflect.Value) bool {
	return rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String
}

func spread(rv reflect.Value) []any {
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func keywords(rv reflect.Value) map[string]any {
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out
}

// Call destructures each value with ArgsOf and replaces it by fn's result.
// An error or panic from fn faults the element.
func Call[T, R any](s *Stream[T], fn func(Args) (R, error)) *Stream[R] {
	return Map(s, func(v T) (R, error) {
		return fn(ArgsOf(v))
	})
}
