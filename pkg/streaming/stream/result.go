package stream

// Signal is the per-element flow outcome a stage assigns to a Result.
type Signal int

const (
	// SignalNormal passes the element on to the next stage and, at the end of
	// the chain, to the consumer.
	SignalNormal Signal = iota
	// SignalSkip discards the element; the kernel pulls a fresh raw element and
	// restarts the whole stage chain on it.
	SignalSkip
	// SignalStop ends the stream without emitting the element.
	SignalStop
	// SignalStopAfter emits the element, then latches the stream exhausted.
	SignalStopAfter
	// SignalError marks a faulted element. It keeps flowing through later
	// stages until a recovery stage converts it or the consumer observes it.
	SignalError
)

var signalNames = [...]string{
	SignalNormal:    "normal",
	SignalSkip:      "skip",
	SignalStop:      "stop",
	SignalStopAfter: "stop_after",
	SignalError:     "error",
}

func (s Signal) String() string {
	if s < 0 || int(s) >= len(signalNames) {
		return "unknown"
	}
	return signalNames[s]
}

// Result is the envelope passed between stages: a value, an optional fault and
// the flow signal. Stages receive a Result by value and return a new one.
type Result[T any] struct {
	Value  T
	Err    error
	Signal Signal
}

// Ok wraps v as a normal element.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fault wraps v as an element carrying err.
func Fault[T any](v T, err error) Result[T] {
	return Result[T]{Value: v, Err: err, Signal: SignalError}
}

// IsNormal reports whether the element continues unchanged to the consumer.
func (r Result[T]) IsNormal() bool {
	return r.Signal == SignalNormal
}

// IsFault reports whether the element carries a fault.
func (r Result[T]) IsFault() bool {
	return r.Signal == SignalError
}

// withSignal returns a copy of r with the signal replaced and the fault cleared.
func (r Result[T]) withSignal(sig Signal) Result[T] {
	return Result[T]{Value: r.Value, Signal: sig}
}

// faultAs carries r's fault over to an element of another type.
func faultAs[R, T any](r Result[T]) Result[R] {
	var zero R
	return Result[R]{Value: zero, Err: r.Err, Signal: r.Signal}
}
