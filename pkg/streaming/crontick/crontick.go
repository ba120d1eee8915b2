// Package crontick provides streams of cron activation times.
//
// Expressions use the standard five fields, an optional leading seconds
// field, or a descriptor such as "@hourly" or "@every 90m".
package crontick

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vnykmshr/lazyflow/pkg/streaming/stream"
)

var parser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Parse validates expr and returns its schedule.
func Parse(expr string) (cron.Schedule, error) {
	if expr == "" {
		return nil, fmt.Errorf("cron expression cannot be empty")
	}
	schedule, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression '%s': %w", expr, err)
	}
	return schedule, nil
}

// timesSource walks a schedule forward from a fixed instant without waiting.
type timesSource struct {
	schedule cron.Schedule
	last     time.Time
}

func (s *timesSource) Next(_ context.Context) (time.Time, bool, error) {
	next := s.schedule.Next(s.last)
	if next.IsZero() {
		return time.Time{}, false, nil
	}
	s.last = next
	return next, true, nil
}

// Times returns the activation times of expr strictly after from, in order.
// The stream ends if the schedule has no further activation.
func Times(expr string, from time.Time) (*stream.Stream[time.Time], error) {
	schedule, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	return stream.New[time.Time](&timesSource{schedule: schedule, last: from}).Named("cron " + expr), nil
}

// liveSource blocks each pull until the next activation.
type liveSource struct {
	schedule cron.Schedule
	now      func() time.Time
}

func (s *liveSource) Next(ctx context.Context) (time.Time, bool, error) {
	next := s.schedule.Next(s.now())
	if next.IsZero() {
		return time.Time{}, false, nil
	}
	timer := time.NewTimer(time.Until(next))
	defer timer.Stop()

	select {
	case <-timer.C:
		return next, true, nil
	case <-ctx.Done():
		return time.Time{}, false, ctx.Err()
	}
}

// Live returns a stream that waits for each activation of expr and yields
// its scheduled time. Cancel the pull context to stop waiting.
func Live(expr string) (*stream.Stream[time.Time], error) {
	schedule, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	return stream.New[time.Time](&liveSource{schedule: schedule, now: time.Now}).Named("cron " + expr), nil
}
