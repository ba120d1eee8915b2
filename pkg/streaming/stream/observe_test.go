package stream

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/vnykmshr/lazyflow/internal/testutil"
	"github.com/vnykmshr/lazyflow/pkg/metrics"
)

func TestNameIsGeneratedOnce(t *testing.T) {
	s := Of(1)
	name := s.Name()
	if !strings.HasPrefix(name, "stream-") {
		t.Fatalf("Name() = %q, want stream- prefix", name)
	}
	testutil.AssertEqual(t, s.Name(), name)
	testutil.AssertEqual(t, s.Named("orders").Name(), "orders")
}

func TestMetricsCountSignals(t *testing.T) {
	reg := metrics.NewRegistry(prometheus.NewRegistry())
	s := Of(1, 2, 3, 4).Named("evens").WithMetrics(reg).Filter(even)

	result := collect(t, s)
	testutil.AssertSliceEqual(t, result, []int{2, 4})

	testutil.AssertEqual(t, promtest.ToFloat64(reg.StreamPulls.WithLabelValues("evens")), 4.0)
	testutil.AssertEqual(t, promtest.ToFloat64(reg.StreamItems.WithLabelValues("evens", "normal")), 2.0)
	testutil.AssertEqual(t, promtest.ToFloat64(reg.StreamItems.WithLabelValues("evens", "skip")), 2.0)
	testutil.AssertEqual(t, promtest.ToFloat64(reg.StreamItems.WithLabelValues("evens", "stop")), 1.0)
}

func TestMetricsFollowNarrowedStream(t *testing.T) {
	reg := metrics.NewRegistry(prometheus.NewRegistry())
	inner := Of(1, 2, 3).Named("squares").WithMetrics(reg).Filter(odd)
	s := Map(inner, failZero).Exc(Is(errZero), RecoverSkip)

	testutil.AssertSliceEqual(t, collect(t, s), []int{1, 3})
	testutil.AssertEqual(t, promtest.ToFloat64(reg.StreamPulls.WithLabelValues("squares")), 3.0)
	testutil.AssertEqual(t, promtest.ToFloat64(reg.StreamItems.WithLabelValues("squares", "normal")), 2.0)
	testutil.AssertEqual(t, promtest.ToFloat64(reg.StreamItems.WithLabelValues("squares", "skip")), 1.0)
	testutil.AssertEqual(t, promtest.ToFloat64(reg.StreamItems.WithLabelValues("squares", "stop")), 1.0)
}

func TestSurfacedFaultIsLoggedAndCounted(t *testing.T) {
	var buf bytes.Buffer
	reg := metrics.NewRegistry(prometheus.NewRegistry())
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	s := Map(Of(1, 0), failZero).Named("inverse").WithLogger(logger).WithMetrics(reg)
	_, err := s.ToSlice(context.Background())
	testutil.AssertErrorIs(t, err, errZero)

	testutil.AssertEqual(t, promtest.ToFloat64(reg.StreamFaults.WithLabelValues("inverse")), 1.0)
	out := buf.String()
	if !strings.Contains(out, `"message":"fault reached consumer"`) || !strings.Contains(out, `"stream":"inverse"`) {
		t.Fatalf("log output = %s", out)
	}
}

func TestExhaustionIsLoggedAtDebug(t *testing.T) {
	var buf bytes.Buffer
	s := Of(1).Named("short").WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))

	testutil.AssertNoError(t, s.Drain(context.Background()))
	if !strings.Contains(buf.String(), `"signal":"stop"`) {
		t.Fatalf("log output = %s", buf.String())
	}

	buf.Reset()
	s = Of(1).WithLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))
	testutil.AssertNoError(t, s.Drain(context.Background()))
	testutil.AssertEqual(t, buf.Len(), 0)
}

func TestMisuseIsLoggedAsError(t *testing.T) {
	var buf bytes.Buffer
	s := Of(1, 2).Named("reentrant").WithLogger(zerolog.New(&buf).Level(zerolog.ErrorLevel))

	var inner error
	s.Tap(func(int) {
		if inner == nil {
			_, _, inner = s.Next(context.Background())
		}
	})

	testutil.AssertSliceEqual(t, collect(t, s), []int{1, 2})
	testutil.AssertErrorIs(t, inner, ErrConcurrentPull)
	if !strings.Contains(buf.String(), `"message":"stream misused"`) || !strings.Contains(buf.String(), `"level":"error"`) {
		t.Fatalf("log output = %s", buf.String())
	}
}
