package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Example_basicUsage demonstrates basic metrics configuration.
func Example_basicUsage() {
	registry := NewRegistry(prometheus.NewRegistry())

	registry.StreamPulls.WithLabelValues("ids").Add(10)
	registry.StreamItems.WithLabelValues("ids", "normal").Add(8)
	registry.StreamItems.WithLabelValues("ids", "skip").Add(2)

	fmt.Println(testutil.ToFloat64(registry.StreamPulls.WithLabelValues("ids")))
	fmt.Println(testutil.ToFloat64(registry.StreamItems.WithLabelValues("ids", "skip")))

	// Output:
	// 10
	// 2
}

// Example_configuration demonstrates different metrics configurations.
func Example_configuration() {
	defaultConfig := DefaultConfig()
	fmt.Printf("Default enabled: %v\n", defaultConfig.Enabled)
	fmt.Printf("Default namespace: %s\n", defaultConfig.Namespace)

	customConfig := Config{
		Enabled:   false,
		Namespace: "myapp",
	}
	fmt.Printf("Custom enabled: %v\n", customConfig.Enabled)
	fmt.Printf("Custom namespace: %s\n", customConfig.Namespace)

	// Output:
	// Default enabled: true
	// Default namespace: lazyflow
	// Custom enabled: false
	// Custom namespace: myapp
}
