package monitoring

import "github.com/prometheus/client_golang/prometheus"

// Prometheus counters exported on the metrics port.
var (
	ShoppingListsBuilt = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mise_shopping_lists_built_total",
		Help: "Number of shopping lists aggregated.",
	})
	PrepTimelinesBuilt = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mise_prep_timelines_built_total",
		Help: "Number of prep timelines extracted.",
	})
	TaskGenerations = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mise_task_generations_total",
		Help: "Number of task generation runs.",
	})
	TasksWritten = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mise_tasks_written_total",
		Help: "Number of auto task rows written by generation runs.",
	})
)

func init() {
	prometheus.MustRegister(
		ShoppingListsBuilt,
		PrepTimelinesBuilt,
		TaskGenerations,
		TasksWritten,
	)
}
