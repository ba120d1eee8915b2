package stream

import (
	"context"
	"testing"

	"github.com/vnykmshr/lazyflow/internal/testutil"
)

func TestToSliceOfEmptyIsNotNil(t *testing.T) {
	result, err := Empty[int]().ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	if result == nil {
		t.Fatal("ToSlice() returned nil slice")
	}
}

func TestToSet(t *testing.T) {
	set, err := ToSet(context.Background(), Of(1, 2, 2, 3, 1))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(set), 3)
	for _, v := range []int{1, 2, 3} {
		if _, ok := set[v]; !ok {
			t.Errorf("set is missing %d", v)
		}
	}

	_, err = ToSet(context.Background(), Map(Of(0), failZero))
	testutil.AssertErrorIs(t, err, errZero)
}

func TestTruthiness(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name                       string
		values                     []int
		wantAny, wantAll, wantNone bool
	}{
		{"empty", nil, false, true, true},
		{"all zero", []int{0, 0}, false, false, true},
		{"mixed", []int{0, 3}, true, false, false},
		{"all set", []int{1, 2}, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotAny, err := Any(ctx, FromSlice(tt.values))
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, gotAny, tt.wantAny)

			gotAll, err := All(ctx, FromSlice(tt.values))
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, gotAll, tt.wantAll)

			gotNone, err := None(ctx, FromSlice(tt.values))
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, gotNone, tt.wantNone)
		})
	}

	truth, err := Any(ctx, Eval(Range(5), func(x int) bool { return x > 3 }))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, truth, true)
}

func TestMatchShortCircuits(t *testing.T) {
	src := testutil.NewScriptedSource(1, 2, 3, 4)
	found, err := New[int](src).AnyMatch(context.Background(), func(x int) bool { return x == 2 })
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, found, true)
	testutil.AssertEqual(t, src.Pulls(), int64(2))

	all, err := Of(2, 4, 5).AllMatch(context.Background(), even)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, all, false)

	none, err := Of(1, 3).NoneMatch(context.Background(), even)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, none, true)
}

func TestMatchSurfacesFaults(t *testing.T) {
	_, err := Map(Of(0, 1), failZero).AnyMatch(context.Background(), odd)
	testutil.AssertErrorIs(t, err, errZero)

	_, err = Map(Of(0, 1), failZero).AllMatch(context.Background(), odd)
	testutil.AssertErrorIs(t, err, errZero)
}

func TestCountTerminal(t *testing.T) {
	count, err := Range(10).Filter(even).Count(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, count, int64(5))
}

func TestReduce(t *testing.T) {
	ctx := context.Background()
	calls := 0
	sum := func(a, b int) int {
		calls++
		return a + b
	}

	got, err := Empty[int]().Reduce(ctx, sum, -1)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, -1)

	got, err = Of(7).Reduce(ctx, sum, -1)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, 7)
	testutil.AssertEqual(t, calls, 0)

	got, err = Range(1, 5).Reduce(ctx, sum, -1)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, 10)
	testutil.AssertEqual(t, calls, 3)

	_, err = Map(Of(1, 0), failZero).Reduce(ctx, sum, -1)
	testutil.AssertErrorIs(t, err, errZero)
}

func TestFold(t *testing.T) {
	got, err := Fold(context.Background(), Of("a", "bb", "ccc"), 0, func(acc int, s string) int {
		return acc + len(s)
	})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, 6)
}

func TestGroupBy(t *testing.T) {
	b, err := GroupBy(context.Background(), Range(7), func(x int) int { return x % 3 })
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, b.Keys(), []int{0, 1, 2})
	testutil.AssertSliceEqual(t, b.Get(0), []int{0, 3, 6})
	testutil.AssertSliceEqual(t, b.Get(2), []int{2, 5})
}

func TestFormatAndPrint(t *testing.T) {
	ctx := context.Background()

	out, err := Of(1, 2, 3).Format(ctx, "%d")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, out, "[1, 2, 3]")

	out, err = Of(0.5, 0.25).Format(ctx, "%.2f")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, out, "[0.50, 0.25]")

	out, err = Empty[int]().Format(ctx, "%d")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, out, "[]")

	w := testutil.NewMockWriter()
	testutil.AssertNoError(t, Of("x", "y").Print(ctx, w, "%q"))
	testutil.AssertEqual(t, w.String(), "[\"x\", \"y\"]\n")

	w = testutil.NewMockWriter()
	err = Map(Of(0), failZero).Print(ctx, w, "%d")
	testutil.AssertErrorIs(t, err, errZero)
	testutil.AssertEqual(t, w.WriteCount(), 0)

	w = testutil.NewMockWriter()
	w.SetAlwaysError(errBoom)
	err = Of(1).Print(ctx, w, "%d")
	testutil.AssertErrorIs(t, err, errBoom)
	testutil.AssertEqual(t, w.WriteCount(), 1)
}

func TestFirst(t *testing.T) {
	v, ok, err := Primes().First(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, v, 2)

	_, ok, err = Empty[int]().First(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ok, false)
}

func TestCall(t *testing.T) {
	upTo := func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	sum := func(a Args) (int, error) {
		total := 0
		for _, v := range a.Positional {
			total += v.(int)
		}
		return total, nil
	}

	s := Call(Eval(Eval(Range(5), func(x int) int { return x + 3 }), upTo), sum)
	testutil.AssertSliceEqual(t, collect(t, s), []int{3, 6, 10, 15, 21})
}

func TestCallPanicBecomesFault(t *testing.T) {
	s := Call(Of[any]("not a list"), func(a Args) (int, error) {
		return a.Positional[0].(int), nil
	})
	_, err := s.ToSlice(context.Background())
	testutil.AssertError(t, err)
}

func TestArgsOf(t *testing.T) {
	kw := map[string]any{"k": 1}
	tests := []struct {
		name  string
		value any
		kind  ArgsKind
		npos  int
		nkw   int
	}{
		{"positional then keyword", []any{[]int{1, 2}, kw}, ArgsBoth, 2, 1},
		{"keyword then positional", []any{kw, []string{"a"}}, ArgsBoth, 1, 1},
		{"pair of scalars", []any{1, 2}, ArgsPositional, 2, 0},
		{"slice", []int{1, 2, 3}, ArgsPositional, 3, 0},
		{"array", [2]string{"a", "b"}, ArgsPositional, 2, 0},
		{"keyword map", map[string]int{"a": 1, "b": 2}, ArgsKeyword, 0, 2},
		{"int keyed map", map[int]int{1: 1}, ArgsSingle, 0, 0},
		{"string", "abc", ArgsSingle, 0, 0},
		{"nil", nil, ArgsSingle, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := ArgsOf(tt.value)
			testutil.AssertEqual(t, a.Kind, tt.kind)
			testutil.AssertEqual(t, len(a.Positional), tt.npos)
			testutil.AssertEqual(t, len(a.Keyword), tt.nkw)
		})
	}
}

func TestArgsAccessors(t *testing.T) {
	a := ArgsOf([]any{[]int{4, 5}, map[string]any{"sep": ","}})
	testutil.AssertEqual(t, a.Arg(1), any(5))
	testutil.AssertEqual(t, a.Arg(2), nil)

	sep, ok := a.Kw("sep")
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, sep, any(","))

	same := ArgsOf(a)
	testutil.AssertEqual(t, same.Kind, ArgsBoth)

	single := ArgsOf(42)
	testutil.AssertEqual(t, single.Single, any(42))
}
