package metrics

import (
	"strconv"

	"go-unique-sdk/models"
	"go-unique-sdk/transaction"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "unique_sdk"
	metricsSubsystem = "extrinsics"
)

// Collector is a transaction observer counting lifecycle transitions per call
type Collector struct {
	submitted *prometheus.CounterVec
	included  *prometheus.CounterVec
	results   *prometheus.CounterVec
	rejected  *prometheus.CounterVec
}

// NewCollector registers the counters with reg, prometheus.DefaultRegisterer when nil
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		submitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "submitted_total",
				Help:      "Total number of extrinsics submitted to the node",
			},
			[]string{"call"},
		),
		included: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "included_total",
				Help:      "Total number of extrinsics included in a block",
			},
			[]string{"call"},
		),
		results: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "results_total",
				Help:      "Total number of extracted results by on chain success",
			},
			[]string{"call", "success"},
		),
		rejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "rejected_total",
				Help:      "Total number of extrinsics rejected before a result",
			},
			[]string{"call", "reason"},
		),
	}
}

func (c *Collector) OnSubmitted(call string) {
	c.submitted.WithLabelValues(call).Inc()
}

func (c *Collector) OnIncluded(call string, _ models.SubmittableResult) {
	c.included.WithLabelValues(call).Inc()
}

func (c *Collector) OnResult(call string, result models.ExtrinsicResult) {
	c.results.WithLabelValues(call, strconv.FormatBool(result.IsSuccess)).Inc()
}

func (c *Collector) OnRejected(call string, err error) {
	c.rejected.WithLabelValues(call, rejectionReason(err)).Inc()
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, transaction.ErrBlockLookup):
		return "block_lookup"
	case errors.Is(err, transaction.ErrStreamClosed):
		return "stream_closed"
	case errors.Is(err, transaction.ErrRejected):
		return "rejected"
	}
	return "other"
}
