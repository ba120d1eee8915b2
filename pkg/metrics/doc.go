// Package metrics provides Prometheus instrumentation for lazyflow components.
//
// Streams and tasks are not instrumented by default. Attach a Registry to opt in:
//
//	reg := metrics.NewRegistry(prometheus.NewRegistry())
//	s := stream.Naturals().Named("ids").WithMetrics(reg).Limit(10)
//
//	f := task.Go(ctx, fetch, task.WithName("fetch"), task.WithMetrics(reg))
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//
// # Available Metrics
//
// ## Streaming Metrics
//
//   - lazyflow_stream_pulls_total: raw elements pulled from a stream's source
//   - lazyflow_stream_items_total: elements by final signal (normal, skip, stop, stop_after, error)
//   - lazyflow_stream_faults_total: faults surfaced to a consumer
//
// ## Task Metrics
//
//   - lazyflow_task_started_total
//   - lazyflow_task_completed_total
//   - lazyflow_task_failed_total
//   - lazyflow_task_duration_seconds
//
// # Labels
//
//   - stream_name: name given with Stream.Named, or a generated identifier
//   - signal: flow signal name
//   - task_name: name given with task.WithName
//
// # Configuration
//
//	config := metrics.Config{
//		Enabled:   true,
//		Registry:  prometheus.NewRegistry(),
//		Namespace: "myapp",
//		Labels:    prometheus.Labels{"version": "1.0"},
//	}
//	reg := metrics.NewRegistryWithConfig(config)
package metrics
