// Package metrics exports search and graph statistics as Prometheus series.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/roadpath/astar"
	"github.com/katalvlaran/roadpath/roadgraph"
)

// Search outcomes used as the "outcome" label.
const (
	OutcomeFound       = "found"
	OutcomeUnreachable = "unreachable"
	OutcomeInvalid     = "invalid"
	OutcomeError       = "error"
)

// Collector holds the roadpath series registered on one registry.
type Collector struct {
	// SearchTotal counts queries by algorithm and outcome
	SearchTotal *prometheus.CounterVec

	// SearchExpansions observes nodes finalized per query
	SearchExpansions *prometheus.HistogramVec

	// SearchDuration observes wall time per query
	SearchDuration *prometheus.HistogramVec

	// GraphNodes and GraphArcs describe the loaded graph
	GraphNodes prometheus.Gauge
	GraphArcs  prometheus.Gauge
}

// New creates the collectors and registers them on reg. A nil reg leaves
// them unregistered, which is handy in tests.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		SearchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roadpath_search_total",
				Help: "Total number of shortest-path queries",
			},
			[]string{"algorithm", "outcome"},
		),
		SearchExpansions: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "roadpath_search_expansions",
				Help:    "Nodes expanded per query",
				Buckets: prometheus.ExponentialBuckets(1, 4, 12),
			},
			[]string{"algorithm"},
		),
		SearchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "roadpath_search_duration_seconds",
				Help:    "Wall time per query",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"algorithm"},
		),
		GraphNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "roadpath_graph_nodes",
			Help: "Nodes in the loaded graph",
		}),
		GraphArcs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "roadpath_graph_arcs",
			Help: "Arcs in the loaded graph",
		}),
	}
	if reg != nil {
		reg.MustRegister(c.SearchTotal, c.SearchExpansions, c.SearchDuration, c.GraphNodes, c.GraphArcs)
	}

	return c
}

// Observe records one query. Expansions and duration are only observed for
// queries that actually searched.
func (c *Collector) Observe(algorithm string, res astar.Result, err error, d time.Duration) {
	outcome := Outcome(res, err)
	c.SearchTotal.WithLabelValues(algorithm, outcome).Inc()
	if outcome == OutcomeInvalid || outcome == OutcomeError {
		return
	}
	c.SearchExpansions.WithLabelValues(algorithm).Observe(float64(res.Expansions))
	c.SearchDuration.WithLabelValues(algorithm).Observe(d.Seconds())
}

// SetGraph publishes the size of the loaded graph.
func (c *Collector) SetGraph(s roadgraph.Stats) {
	c.GraphNodes.Set(float64(s.Nodes))
	c.GraphArcs.Set(float64(s.Arcs))
}

// Outcome classifies a Solve result for the "outcome" label.
func Outcome(res astar.Result, err error) string {
	switch {
	case errors.Is(err, astar.ErrInvalidNode):
		return OutcomeInvalid
	case err != nil:
		return OutcomeError
	case res.Found:
		return OutcomeFound
	default:
		return OutcomeUnreachable
	}
}
