package monitoring

import (
	"sync"
	"time"
)

// Monitor collects and provides runtime stats for the planner
type Monitor struct {
	metrics      map[string]interface{}
	metricsMutex sync.RWMutex
	startTime    time.Time
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	return &Monitor{
		metrics:   make(map[string]interface{}),
		startTime: time.Now(),
	}
}

// RecordMetric records a metric value
func (m *Monitor) RecordMetric(name string, value interface{}) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics[name] = value
}

// GetMetric returns a specific metric value
func (m *Monitor) GetMetric(name string) (interface{}, bool) {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()
	value, exists := m.metrics[name]
	return value, exists
}

// GetMetrics returns all current metrics
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	// Create a copy to avoid concurrent map access
	metrics := make(map[string]interface{}, len(m.metrics))
	for k, v := range m.metrics {
		metrics[k] = v
	}

	// Add system metrics
	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()

	return metrics
}

// Reset clears all metrics
func (m *Monitor) Reset() {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics = make(map[string]interface{})
}

// RecordGeneration records the outcome of a task generation run for a
// menu, keyed by menu id.
func (m *Monitor) RecordGeneration(menuID string, total, shopping, prepTasks int) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()

	prefix := "menu_" + menuID + "_"
	m.metrics[prefix+"tasks_total"] = total
	m.metrics[prefix+"tasks_shopping"] = shopping
	m.metrics[prefix+"tasks_prep"] = prepTasks
	m.metrics[prefix+"last_generated"] = time.Now().Format(time.RFC3339)
}
