package stream

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain enables goroutine leak detection for all tests in this package.
// FromSeq runs its sequence on a coroutine that must be released by
// exhausting or closing the stream.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
