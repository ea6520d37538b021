package resource

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
	outcomeInvalid = "invalid"
)

var operations = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "resource_operations_total",
		Help: "Number of resource manager operations, by table, operation and outcome.",
	},
	[]string{"table", "op", "outcome"},
)

func observe(table string, op Op, outcome string) {
	operations.WithLabelValues(table, string(op), outcome).Inc()
}
