/*
Package stream provides lazy, pull-based pipelines over sequences of values.

A Stream owns a source, an ordered chain of stages and an exhausted latch.
Nothing runs until a consumer pulls: each pull takes one raw element from the
source, passes it through every stage in registration order and interprets
the resulting signal.

Core Concepts:

Every element travels in a Result envelope carrying the value, an optional
fault and a Signal:

  - SignalNormal: the element continues to the consumer
  - SignalSkip: the element is dropped and a fresh one is pulled
  - SignalStop: the stream ends without the element
  - SignalStopAfter: the element is emitted, then the stream ends
  - SignalError: the element carries a fault

Faults are data. An error returned by, or a panic raised inside, a function
handed to a stage marks the element with SignalError. Later stages pass it
through untouched until a recovery stage (Exc, Excg) matches it, or the
consumer receives it as an error.

Basic Usage:

	ctx := context.Background()

	evens, err := stream.Naturals().
		Filter(func(x int) bool { return x%2 == 0 }).
		Limit(5).
		ToSlice(ctx)
	// evens == [0 2 4 6 8]

Combinator methods append a stage to the stream they are called on and return
it, so a chain mutates one stream. Functions that change the element type
return a new stream that pulls from the old one:

	inverses := stream.Map(stream.Range(4), func(x int) (float64, error) {
		if x == 0 {
			return 0, errDivide
		}
		return 1 / float64(x), nil
	}).Exc(stream.Is(errDivide), stream.RecoverSkip)

Multiple Streams:

Robin, RobinLongest, Cat, Zip, ZipLongest and Zip2 merge the raw sequences of
their inputs, so faults survive the merge. Zip reports a group with faults as
one element carrying a *MergeError; use Excg to match its members.

Context and Cancellation:

Every pull and every terminal accepts a context.Context. It is checked once
per pulled element; cancellation surfaces as a fault carrying ctx.Err(). A
pipeline that skips every element of an infinite source only ends this way.

Observability:

Streams are silent by default. WithLogger attaches a zerolog.Logger (debug
events when the stream ends, warnings when a fault reaches the consumer) and
WithMetrics records pulls, per-signal outcomes and surfaced faults in a
metrics.Registry.

Thread Safety:

A stream has one consumer. A pull that overlaps another pull on the same
stream fails with ErrConcurrentPull instead of corrupting stage state.
*/
package stream
