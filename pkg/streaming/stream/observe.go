package stream

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	lferrors "github.com/vnykmshr/lazyflow/pkg/common/errors"
	"github.com/vnykmshr/lazyflow/pkg/metrics"
)

// observer carries the optional name, logger and metrics of a stream. It is
// shared by every stream of one chain, so a name or registry attached after a
// narrowing combinator also reports for the stages registered before it.
type observer struct {
	name    string
	log     zerolog.Logger
	metrics *metrics.Registry
}

func newObserver() *observer {
	return &observer{log: zerolog.Nop()}
}

// label returns the stream name, generating one on first use.
func (o *observer) label() string {
	if o.name == "" {
		o.name = "stream-" + uuid.NewString()[:8]
	}
	return o.name
}

func (o *observer) pulled() {
	if o.metrics == nil {
		return
	}
	o.metrics.StreamPulls.WithLabelValues(o.label()).Inc()
}

func (o *observer) settled(sig Signal) {
	if o.metrics == nil {
		return
	}
	o.metrics.StreamItems.WithLabelValues(o.label(), sig.String()).Inc()
}

func (o *observer) ended(sig Signal) {
	if o.log.GetLevel() > zerolog.DebugLevel {
		return
	}
	o.log.Debug().Str("stream", o.label()).Stringer("signal", sig).Msg("stream exhausted")
}

func (o *observer) surfaced(err error) {
	if o.metrics != nil {
		o.metrics.StreamFaults.WithLabelValues(o.label()).Inc()
	}
	if lferrors.IsProtocolMisuse(err) {
		o.log.Error().Str("stream", o.label()).Err(err).Msg("stream misused")
		return
	}
	if o.log.GetLevel() > zerolog.WarnLevel {
		return
	}
	o.log.Warn().Str("stream", o.label()).Err(err).Msg("fault reached consumer")
}

// Named sets the name used in log lines and as the stream_name metric label.
func (s *Stream[T]) Named(name string) *Stream[T] {
	s.obs.name = name
	return s
}

// Name returns the stream name, generating one if none was set.
func (s *Stream[T]) Name() string {
	return s.obs.label()
}

// WithLogger routes the stream's diagnostics to l. Streams log nothing by default.
func (s *Stream[T]) WithLogger(l zerolog.Logger) *Stream[T] {
	s.obs.log = l
	return s
}

// WithMetrics records pulls, per-signal outcomes and surfaced faults in reg.
// The stream name is the stream_name label; call Named first, since a
// generated name is unique per stream and every unnamed stream adds new series.
func (s *Stream[T]) WithMetrics(reg *metrics.Registry) *Stream[T] {
	s.obs.metrics = reg
	return s
}
