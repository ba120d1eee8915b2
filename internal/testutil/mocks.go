package testutil

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// MockWriter is a test writer that can simulate write errors and counts
// writes.
type MockWriter struct {
	buf         *bytes.Buffer
	mu          sync.Mutex
	errorOnNth  int
	writeCount  int
	shouldError bool
	err         error
}

// NewMockWriter creates a new MockWriter.
func NewMockWriter() *MockWriter {
	return &MockWriter{
		buf: &bytes.Buffer{},
	}
}

// Write implements io.Writer interface with configurable behavior.
func (mw *MockWriter) Write(p []byte) (int, error) {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	mw.writeCount++

	if mw.shouldError {
		return 0, mw.err
	}

	if mw.errorOnNth > 0 && mw.writeCount == mw.errorOnNth {
		return 0, errors.New("simulated error")
	}

	return mw.buf.Write(p)
}

// String returns the current buffer contents.
func (mw *MockWriter) String() string {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	return mw.buf.String()
}

// WriteCount returns the number of Write calls.
func (mw *MockWriter) WriteCount() int {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	return mw.writeCount
}

// SetErrorOnNth configures the writer to error on the nth write.
func (mw *MockWriter) SetErrorOnNth(n int) {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	mw.errorOnNth = n
}

// SetAlwaysError configures the writer to always return the given error.
func (mw *MockWriter) SetAlwaysError(err error) {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	mw.shouldError = true
	mw.err = err
}

// Step is one scripted answer of a ScriptedSource.
type Step[T any] struct {
	Value T
	Err   error
}

// ScriptedSource replays Steps and then reports the end of the sequence.
// It records how often it was pulled and whether it was closed. When Gate is
// set, every pull blocks until Gate yields or ctx is done.
type ScriptedSource[T any] struct {
	Steps []Step[T]
	Gate  chan struct{}

	pos    int
	pulls  atomic.Int64
	closed atomic.Bool
}

// NewScriptedSource returns a source that yields values in order.
func NewScriptedSource[T any](values ...T) *ScriptedSource[T] {
	steps := make([]Step[T], len(values))
	for i, v := range values {
		steps[i] = Step[T]{Value: v}
	}
	return &ScriptedSource[T]{Steps: steps}
}

// Next replays the next step.
func (s *ScriptedSource[T]) Next(ctx context.Context) (T, bool, error) {
	s.pulls.Add(1)
	var zero T
	if s.Gate != nil {
		select {
		case <-s.Gate:
		case <-ctx.Done():
			return zero, false, ctx.Err()
		}
	}
	if s.pos >= len(s.Steps) {
		return zero, false, nil
	}
	step := s.Steps[s.pos]
	s.pos++
	return step.Value, true, step.Err
}

// Close marks the source closed.
func (s *ScriptedSource[T]) Close() error {
	s.closed.Store(true)
	return nil
}

// Pulls returns the number of Next calls so far.
func (s *ScriptedSource[T]) Pulls() int64 {
	return s.pulls.Load()
}

// Closed reports whether Close was called.
func (s *ScriptedSource[T]) Closed() bool {
	return s.closed.Load()
}
