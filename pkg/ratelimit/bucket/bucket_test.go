package bucket

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/vnykmshr/lazyflow/internal/testutil"
	lferrors "github.com/vnykmshr/lazyflow/pkg/common/errors"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestEvery(t *testing.T) {
	testutil.AssertEqual(t, Every(100*time.Millisecond), Limit(10))
	testutil.AssertEqual(t, Every(0), Inf)
}

func TestNewValidation(t *testing.T) {
	_, err := New(-1, 1)
	if !lferrors.IsValidationError(err) {
		t.Errorf("expected validation error for negative rate, got %v", err)
	}
	_, err = New(1, 0)
	if !lferrors.IsValidationError(err) {
		t.Errorf("expected validation error for zero burst, got %v", err)
	}
}

func TestAllowRefills(t *testing.T) {
	clock := newFakeClock()
	l, err := NewWithConfig(Config{Rate: 2, Burst: 2, Clock: clock, InitialTokens: -1})
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, l.Allow(), true)
	testutil.AssertEqual(t, l.Allow(), true)
	testutil.AssertEqual(t, l.Allow(), false)

	clock.Advance(500 * time.Millisecond)
	testutil.AssertEqual(t, l.Allow(), true)
	testutil.AssertEqual(t, l.Allow(), false)

	clock.Advance(10 * time.Second)
	testutil.AssertEqual(t, l.Tokens(), 2.0)
}

func TestInfAllowsEverything(t *testing.T) {
	l, err := New(Inf, 1)
	testutil.AssertNoError(t, err)
	for range 100 {
		if !l.Allow() {
			t.Fatal("infinite limiter refused an event")
		}
	}
	testutil.AssertNoError(t, l.Wait(context.Background()))
}

func TestWaitPaces(t *testing.T) {
	l, err := New(Every(20*time.Millisecond), 1)
	testutil.AssertNoError(t, err)

	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	start := time.Now()
	for range 3 {
		testutil.AssertNoError(t, l.Wait(ctx))
	}
	if elapsed := time.Since(start); elapsed < 35*time.Millisecond {
		t.Errorf("expected pacing of about 40ms, took %v", elapsed)
	}
}

func TestWaitCanceled(t *testing.T) {
	l, err := New(Every(time.Hour), 1)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, l.Allow(), true)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	testutil.AssertErrorIs(t, l.Wait(ctx), context.DeadlineExceeded)
	if tokens := l.Tokens(); tokens < 0 {
		t.Errorf("canceled wait should refund its token, have %v", tokens)
	}
}

func TestWaitZeroRate(t *testing.T) {
	l, err := NewWithConfig(Config{Rate: 0, Burst: 1, InitialTokens: 1})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, l.Wait(context.Background()))
	err = l.Wait(context.Background())
	testutil.AssertErrorIs(t, err, context.DeadlineExceeded)
}
