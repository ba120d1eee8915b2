/*
Package lazyflow provides lazy, pull-based streams with in-band faults,
flow signals and the sources, merges and helpers that feed them.

Streaming (pkg/streaming):
  - stream: Lazy streams, stages, merges and terminals
  - redislist: Streams over Redis lists
  - crontick: Streams of cron schedule fire times

Scheduling (pkg/scheduling):
  - task: Goroutine-backed futures, joined directly or as a stream

Support:
  - structs/bag: Ordered multimaps used for grouping
  - mathx/primes: Incremental prime sieve
  - ratelimit/bucket: Token bucket used to pace pulls
  - logging: zerolog loggers with multiple destinations
  - metrics: Prometheus instrumentation for streams and tasks

Example usage:

	import "github.com/vnykmshr/lazyflow/pkg/streaming/stream"

	squares := stream.Eval(stream.Naturals(), func(n int) int { return n * n })
	first, err := squares.Filter(func(n int) bool { return n > 50 }).Limit(3).ToSlice(ctx)
	// first == []int{64, 81, 100}
*/
package lazyflow
