// Package bag provides multimaps whose keys keep the order in which they were
// first added.
//
// A Bag keeps every value appended under a key, in order. A Sack keeps each
// value at most once per key. Pouch and Stash derive the key from the value.
package bag

import (
	"fmt"
	"iter"
	"slices"
)

// Bag maps each key to the list of values appended under it.
type Bag[K comparable, V any] struct {
	keys []K
	data map[K][]V
}

// New creates an empty Bag.
func New[K comparable, V any]() *Bag[K, V] {
	return &Bag[K, V]{data: make(map[K][]V)}
}

// Append adds v under key.
func (b *Bag[K, V]) Append(key K, v V) {
	vs, ok := b.data[key]
	if !ok {
		b.keys = append(b.keys, key)
	}
	b.data[key] = append(vs, v)
}

// Extend appends every key/value pair of seq.
func (b *Bag[K, V]) Extend(seq iter.Seq2[K, V]) {
	for k, v := range seq {
		b.Append(k, v)
	}
}

// Join appends every pair of other.
func (b *Bag[K, V]) Join(other *Bag[K, V]) {
	b.Extend(other.Items())
}

// Get returns a copy of the values under key; nil if the key is absent.
func (b *Bag[K, V]) Get(key K) []V {
	return slices.Clone(b.data[key])
}

// Has reports whether key has at least one value.
func (b *Bag[K, V]) Has(key K) bool {
	_, ok := b.data[key]
	return ok
}

// Keys returns the keys in first-seen order.
func (b *Bag[K, V]) Keys() []K {
	return slices.Clone(b.keys)
}

// Len returns the number of keys.
func (b *Bag[K, V]) Len() int {
	return len(b.keys)
}

// Items yields every key/value pair, grouped by key.
func (b *Bag[K, V]) Items() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range b.keys {
			for _, v := range b.data[k] {
				if !yield(k, v) {
					return
				}
			}
		}
	}
}

// Elements yields every value, grouped by key.
func (b *Bag[K, V]) Elements() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range b.Items() {
			if !yield(v) {
				return
			}
		}
	}
}

func (b *Bag[K, V]) String() string {
	return formatGroups("Bag", b.keys, func(k K) any { return b.data[k] })
}

// Pouch is a Bag that derives the key of each value.
type Pouch[K comparable, V any] struct {
	*Bag[K, V]
	key func(V) K
}

// NewPouch creates an empty Pouch keyed by key.
func NewPouch[K comparable, V any](key func(V) K) *Pouch[K, V] {
	return &Pouch[K, V]{Bag: New[K, V](), key: key}
}

// Add appends v under its key.
func (p *Pouch[K, V]) Add(v V) {
	p.Append(p.key(v), v)
}

// Adds appends each of vs under its key.
func (p *Pouch[K, V]) Adds(vs ...V) {
	for _, v := range vs {
		p.Add(v)
	}
}

// Sack maps each key to a set of values. Values keep insertion order.
type Sack[K, V comparable] struct {
	keys []K
	data map[K][]V
	seen map[K]map[V]struct{}
}

// NewSack creates an empty Sack.
func NewSack[K, V comparable]() *Sack[K, V] {
	return &Sack[K, V]{
		data: make(map[K][]V),
		seen: make(map[K]map[V]struct{}),
	}
}

// Append adds v under key unless it is already there.
func (s *Sack[K, V]) Append(key K, v V) {
	set, ok := s.seen[key]
	if !ok {
		set = make(map[V]struct{})
		s.seen[key] = set
		s.keys = append(s.keys, key)
	}
	if _, dup := set[v]; dup {
		return
	}
	set[v] = struct{}{}
	s.data[key] = append(s.data[key], v)
}

// Extend appends every key/value pair of seq.
func (s *Sack[K, V]) Extend(seq iter.Seq2[K, V]) {
	for k, v := range seq {
		s.Append(k, v)
	}
}

// Join appends every pair of other.
func (s *Sack[K, V]) Join(other *Sack[K, V]) {
	s.Extend(other.Items())
}

// Get returns a copy of the values under key.
func (s *Sack[K, V]) Get(key K) []V {
	return slices.Clone(s.data[key])
}

// Has reports whether key has at least one value.
func (s *Sack[K, V]) Has(key K) bool {
	_, ok := s.seen[key]
	return ok
}

// Contains reports whether v is stored under any key.
func (s *Sack[K, V]) Contains(v V) bool {
	for _, set := range s.seen {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}

// Keys returns the keys in first-seen order.
func (s *Sack[K, V]) Keys() []K {
	return slices.Clone(s.keys)
}

// Len returns the number of keys.
func (s *Sack[K, V]) Len() int {
	return len(s.keys)
}

// Items yields every key/value pair, grouped by key.
func (s *Sack[K, V]) Items() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range s.keys {
			for _, v := range s.data[k] {
				if !yield(k, v) {
					return
				}
			}
		}
	}
}

func (s *Sack[K, V]) String() string {
	return formatGroups("Sack", s.keys, func(k K) any { return s.data[k] })
}

// Stash is a Sack that derives the key of each value.
type Stash[K, V comparable] struct {
	*Sack[K, V]
	key func(V) K
}

// NewStash creates an empty Stash keyed by key.
func NewStash[K, V comparable](key func(V) K) *Stash[K, V] {
	return &Stash[K, V]{Sack: NewSack[K, V](), key: key}
}

// Add stores v under its key.
func (s *Stash[K, V]) Add(v V) {
	s.Append(s.key(v), v)
}

// Adds stores each of vs under its key.
func (s *Stash[K, V]) Adds(vs ...V) {
	for _, v := range vs {
		s.Add(v)
	}
}

func formatGroups[K comparable](kind string, keys []K, values func(K) any) string {
	out := kind + "("
	for i, k := range keys {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%v:%v", k, values(k))
	}
	return out + ")"
}
