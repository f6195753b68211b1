// Package metrics provides Prometheus observability metrics for the
// capacity planner: source fetch health and report computation visibility.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// SourceFetchErrorsTotal tracks failed roster/allocation fetches by source.
var SourceFetchErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "planner",
	Name:      "source_fetch_errors_total",
	Help:      "Total failed source table fetches by source name",
}, []string{"source"})

// SourceFetchDurationSeconds tracks how long a full snapshot refresh takes.
var SourceFetchDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "planner",
	Name:      "source_fetch_duration_seconds",
	Help:      "Time taken to fetch and parse both source tables",
	Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
})

// RowsParsedTotal tracks rows successfully normalized by table.
var RowsParsedTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "planner",
	Name:      "rows_parsed_total",
	Help:      "Total source rows successfully normalized by table",
}, []string{"table"})

// RowsDroppedTotal tracks allocation rows excluded from aggregation by reason.
var RowsDroppedTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "planner",
	Name:      "rows_dropped_total",
	Help:      "Total allocation rows dropped during aggregation by reason",
}, []string{"reason"})

// ReportBuildDurationSeconds tracks time to run one computation pass.
var ReportBuildDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "planner",
	Name:      "report_build_duration_seconds",
	Help:      "Time taken to compute a utilization report",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
})

// EmployeesReported tracks the number of employees in the latest report.
var EmployeesReported = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "planner",
	Name:      "employees_reported",
	Help:      "Number of employees in the most recently computed report",
})
