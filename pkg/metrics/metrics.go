// Package metrics provides Prometheus instrumentation for lazyflow components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultNamespace prefixes every metric name unless Config.Namespace overrides it.
const DefaultNamespace = "lazyflow"

// Registry holds all metric instances for lazyflow components.
type Registry struct {
	// Streaming Metrics
	StreamPulls  *prometheus.CounterVec
	StreamItems  *prometheus.CounterVec
	StreamFaults *prometheus.CounterVec

	// Task Metrics
	TasksStarted   *prometheus.CounterVec
	TasksCompleted *prometheus.CounterVec
	TasksFailed    *prometheus.CounterVec
	TaskDuration   *prometheus.HistogramVec
}

// DefaultRegistry is the default metrics registry used by lazyflow components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return NewRegistryWithConfig(Config{Enabled: true, Registry: reg})
}

// NewRegistryWithConfig creates a metrics registry honouring the namespace and
// constant labels of config. A nil config.Registry falls back to the default
// registerer. It returns nil when config.Enabled is false.
func NewRegistryWithConfig(config Config) *Registry {
	if !config.Enabled {
		return nil
	}
	reg := config.Registry
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	ns := config.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}
	factory := promauto.With(reg)

	return &Registry{
		StreamPulls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "stream",
				Name:        "pulls_total",
				Help:        "Total number of raw elements pulled from stream sources",
				ConstLabels: config.Labels,
			},
			[]string{"stream_name"},
		),

		StreamItems: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "stream",
				Name:        "items_total",
				Help:        "Total number of elements by the flow signal that ended their pass through the stage chain",
				ConstLabels: config.Labels,
			},
			[]string{"stream_name", "signal"},
		),

		StreamFaults: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "stream",
				Name:        "faults_total",
				Help:        "Total number of faults surfaced to stream consumers",
				ConstLabels: config.Labels,
			},
			[]string{"stream_name"},
		),

		TasksStarted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "task",
				Name:        "started_total",
				Help:        "Total number of tasks started",
				ConstLabels: config.Labels,
			},
			[]string{"task_name"},
		),

		TasksCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "task",
				Name:        "completed_total",
				Help:        "Total number of tasks completed successfully",
				ConstLabels: config.Labels,
			},
			[]string{"task_name"},
		),

		TasksFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "task",
				Name:        "failed_total",
				Help:        "Total number of tasks that returned an error or panicked",
				ConstLabels: config.Labels,
			},
			[]string{"task_name"},
		),

		TaskDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   ns,
				Subsystem:   "task",
				Name:        "duration_seconds",
				Help:        "Time spent executing tasks",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: config.Labels,
			},
			[]string{"task_name"},
		),
	}
}
