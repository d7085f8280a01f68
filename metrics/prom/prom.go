// Package prom adapts a Store's performance counters onto
// github.com/prometheus/client_golang instruments via registry-based
// construction.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sdzldd/ldd"
)

// New constructs the Prometheus instruments backing a Store's
// MetricsSink and registers them with reg.
//   - reg:         registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:     Prometheus namespace and subsystem
//   - constLabels: static labels applied to every metric (may be nil)
//
// prometheus.Counter and prometheus.Gauge already satisfy ldd.Counter and
// ldd.Gauge, so the returned sink needs no adapter struct of its own --
// only the instruments themselves.
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *ldd.MetricsSink {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	gcRuns := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   ns,
		Subsystem:   sub,
		Name:        "gc_runs_total",
		Help:        "Garbage collection cycles run",
		ConstLabels: constLabels,
	})
	nodesCollected := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   ns,
		Subsystem:   sub,
		Name:        "nodes_collected_total",
		Help:        "Nodes reclaimed across every garbage collection cycle",
		ConstLabels: constLabels,
	})
	nodesLive := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   ns,
		Subsystem:   sub,
		Name:        "nodes_live",
		Help:        "Filled node-table slots",
		ConstLabels: constLabels,
	})
	tableCapacity := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   ns,
		Subsystem:   sub,
		Name:        "table_capacity",
		Help:        "Node table capacity",
		ConstLabels: constLabels,
	})
	cacheEntries := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   ns,
		Subsystem:   sub,
		Name:        "cache_entries",
		Help:        "Operation cache occupancy across all operators",
		ConstLabels: constLabels,
	})
	protectionInsertions := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   ns,
		Subsystem:   sub,
		Name:        "protection_insertions_total",
		Help:        "Protection-set slot allocations",
		ConstLabels: constLabels,
	})
	peakRoots := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   ns,
		Subsystem:   sub,
		Name:        "peak_roots",
		Help:        "High-water mark of live protection-set slots",
		ConstLabels: constLabels,
	})

	reg.MustRegister(gcRuns, nodesCollected, nodesLive, tableCapacity, cacheEntries, protectionInsertions, peakRoots)

	return &ldd.MetricsSink{
		GCRuns:               gcRuns,
		NodesCollected:       nodesCollected,
		NodesLive:            nodesLive,
		TableCapacity:        tableCapacity,
		CacheEntries:         cacheEntries,
		ProtectionInsertions: protectionInsertions,
		PeakRoots:            peakRoots,
	}
}
