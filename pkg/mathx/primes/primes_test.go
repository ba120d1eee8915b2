package primes

import (
	"testing"

	"github.com/vnykmshr/lazyflow/internal/testutil"
)

func TestSieveFirstPrimes(t *testing.T) {
	s := New()
	got := make([]int, 8)
	for i := range got {
		got[i] = s.Next()
	}
	testutil.AssertSliceEqual(t, got, []int{2, 3, 5, 7, 11, 13, 17, 19})
}

func TestSieveMatchesBelow(t *testing.T) {
	want := Below(5000)
	s := New()
	for i, p := range want {
		if got := s.Next(); got != p {
			t.Fatalf("prime #%d = %d, want %d", i, got, p)
		}
	}
}

func TestBelow(t *testing.T) {
	testutil.AssertSliceEqual(t, Below(20), []int{2, 3, 5, 7, 11, 13, 17, 19})
	testutil.AssertSliceEqual(t, Below(2), nil)
	testutil.AssertSliceEqual(t, Below(3), []int{2})
}

func TestIsPrime(t *testing.T) {
	tests := []struct {
		n    int
		want bool
	}{
		{-7, false},
		{0, false},
		{1, false},
		{2, true},
		{3, true},
		{4, false},
		{25, false},
		{49, false},
		{97, true},
		{7919, true},
		{7917, false},
	}

	for _, tt := range tests {
		testutil.AssertEqual(t, IsPrime(tt.n), tt.want)
	}
}

func TestSeqStopsWhenConsumerStops(t *testing.T) {
	var got []int
	for p := range Seq() {
		if p > 10 {
			break
		}
		got = append(got, p)
	}
	testutil.AssertSliceEqual(t, got, []int{2, 3, 5, 7})
}
