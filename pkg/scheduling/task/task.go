package task

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	lferrors "github.com/vnykmshr/lazyflow/pkg/common/errors"
	"github.com/vnykmshr/lazyflow/pkg/metrics"
	"github.com/vnykmshr/lazyflow/pkg/streaming/stream"
)

// ErrStillRunning is returned when the outcome of a running task is requested.
var ErrStillRunning = lferrors.ErrStillRunning

// Func is the work run by a task.
type Func[R any] func(ctx context.Context) (R, error)

// Future is the handle of a task running on its own goroutine. The outcome
// is either a result or a fault: the error returned by the function, or a
// *stream.PanicError if it panicked.
type Future[R any] struct {
	name string
	done chan struct{}

	result R
	err    error
}

type options struct {
	name     string
	registry *metrics.Registry
	log      zerolog.Logger
}

// Option configures a task.
type Option func(*options)

// WithName sets the name used in logs and as the task_name metric label.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithMetrics records starts, completions, failures and durations in reg.
func WithMetrics(reg *metrics.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithLogger logs task completion at debug and failures at error level.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// Go starts fn on a new goroutine and returns its future. ctx is handed to fn
// unchanged; cancelling it is how a task is asked to stop early.
func Go[R any](ctx context.Context, fn Func[R], opts ...Option) *Future[R] {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.name == "" {
		o.name = "task-" + uuid.NewString()[:8]
	}

	f := &Future[R]{name: o.name, done: make(chan struct{})}
	if o.registry != nil {
		o.registry.TasksStarted.WithLabelValues(o.name).Inc()
	}

	go func() {
		start := time.Now()
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.err = stream.NewPanicError(r)
			}
			o.finished(f.err, time.Since(start))
		}()

		f.result, f.err = fn(ctx)
	}()

	return f
}

func (o *options) finished(err error, took time.Duration) {
	if o.registry != nil {
		o.registry.TaskDuration.WithLabelValues(o.name).Observe(took.Seconds())
		if err != nil {
			o.registry.TasksFailed.WithLabelValues(o.name).Inc()
		} else {
			o.registry.TasksCompleted.WithLabelValues(o.name).Inc()
		}
	}
	if err != nil {
		o.log.Error().Str("task", o.name).Err(err).Dur("duration", took).Msg("task failed")
		return
	}
	o.log.Debug().Str("task", o.name).Dur("duration", took).Msg("task completed")
}

// Name returns the task name.
func (f *Future[R]) Name() string {
	return f.name
}

// Done returns a channel that is closed when the task has finished.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}

// Alive reports whether the task is still running.
func (f *Future[R]) Alive() bool {
	select {
	case <-f.done:
		return false
	default:
		return true
	}
}

// Result returns the value of a finished task. It returns ErrStillRunning
// while the task runs and the task's fault if it failed.
func (f *Future[R]) Result() (R, error) {
	var zero R
	if f.Alive() {
		return zero, ErrStillRunning
	}
	if f.err != nil {
		return zero, f.err
	}
	return f.result, nil
}

// Err returns the fault of a finished task, or nil if it succeeded. It
// returns ErrStillRunning while the task runs.
func (f *Future[R]) Err() error {
	if f.Alive() {
		return ErrStillRunning
	}
	return f.err
}

// Join waits for the task and returns its outcome. If ctx ends first, Join
// returns ctx.Err() and the task keeps running; Join may be called again.
func (f *Future[R]) Join(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.Result()
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}
