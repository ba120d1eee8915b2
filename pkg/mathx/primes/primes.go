// Package primes enumerates prime numbers.
//
// Sieve is an incremental sieve of Eratosthenes: it yields primes in
// ascending order without an upper bound, keeping one pending composite per
// prime found so far.
package primes

import "iter"

// Sieve yields ascending primes. The zero value is not usable; call New.
type Sieve struct {
	// composites maps the next pending composite to the primes that reach it.
	composites map[int][]int
	next       int
}

// New returns a Sieve positioned before 2.
func New() *Sieve {
	return &Sieve{composites: make(map[int][]int), next: 2}
}

// Next returns the next prime.
func (s *Sieve) Next() int {
	for {
		n := s.next
		s.next++
		factors, composite := s.composites[n]
		if !composite {
			s.composites[n*n] = append(s.composites[n*n], n)
			return n
		}
		for _, p := range factors {
			s.composites[n+p] = append(s.composites[n+p], p)
		}
		delete(s.composites, n)
	}
}

// Seq yields the primes in ascending order, without end.
func Seq() iter.Seq[int] {
	return func(yield func(int) bool) {
		s := New()
		for yield(s.Next()) {
		}
	}
}

// Below returns the primes less than n in ascending order.
func Below(n int) []int {
	if n <= 2 {
		return nil
	}
	composite := make([]bool, n)
	var out []int
	for i := 2; i < n; i++ {
		if composite[i] {
			continue
		}
		out = append(out, i)
		for j := i * i; j < n; j += i {
			composite[j] = true
		}
	}
	return out
}

// IsPrime reports whether n is prime.
func IsPrime(n int) bool {
	switch {
	case n < 2:
		return false
	case n%2 == 0:
		return n == 2
	case n%3 == 0:
		return n == 3
	}
	for i := 5; i*i <= n; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}
