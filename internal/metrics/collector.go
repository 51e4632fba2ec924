// Package metrics exposes Prometheus metrics about tracker operations.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/allenwsellars/Cycles/internal/importer"
	"github.com/allenwsellars/Cycles/internal/models"
)

const metricsNamespace = "cycles"

// Result label values.
const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// Collector is a prometheus.Collector that collects metrics about the
// tracker service.
type Collector struct {
	operations     *prometheus.CounterVec
	importFailures *prometheus.CounterVec
	bikes          prometheus.Gauge
	records        prometheus.Gauge
}

// NewCollector returns a new Collector.
func NewCollector() *Collector {
	return &Collector{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "operations_total",
				Help:      "The number of tracker operations by result.",
			}, []string{"operation", "result"},
		),
		importFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "import_failures_total",
				Help:      "The number of rejected imports by reason.",
			}, []string{"reason"},
		),
		bikes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "bikes",
				Help:      "The number of tracked bikes.",
			},
		),
		records: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "service_records",
				Help:      "The number of stored service records.",
			},
		),
	}
}

// ObserveOperation counts one operation. Errors caused by user input count
// as "invalid"; anything else as "error".
func (c *Collector) ObserveOperation(operation string, err error, invalid func(error) bool) {
	result := ResultOK
	if err != nil {
		result = ResultError
		if invalid != nil && invalid(err) {
			result = ResultInvalid
		}
	}
	c.operations.WithLabelValues(operation, result).Inc()
}

// ObserveImportFailure counts a rejected import.
func (c *Collector) ObserveImportFailure(err error) {
	reason := "other"
	var schemaErr *importer.SchemaError
	switch {
	case errors.Is(err, importer.ErrInvalidJSON):
		reason = "invalid_json"
	case errors.As(err, &schemaErr):
		reason = "schema"
	}
	c.importFailures.WithLabelValues(reason).Inc()
}

// ObserveState records the size of the current state.
func (c *Collector) ObserveState(state models.AppState) {
	c.bikes.Set(float64(len(state.Bikes)))
	c.records.Set(float64(len(state.ServiceRecords)))
}

// Describe is part of the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.operations.Describe(ch)
	c.importFailures.Describe(ch)
	c.bikes.Describe(ch)
	c.records.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.operations.Collect(ch)
	c.importFailures.Collect(ch)
	c.bikes.Collect(ch)
	c.records.Collect(ch)
}
