package ldd

// Counter and Gauge are the minimal instrument shapes this package needs
// to report its performance knobs: protection-set insertions, peak roots,
// table capacity, collected-node counts, cache size. They are satisfied
// directly by github.com/prometheus/client_golang's prometheus.Counter and
// prometheus.Gauge (see metrics/prom), so wiring real metrics never
// requires an adapter struct in the core -- only a MetricsSink built from
// real instruments.
type Counter interface {
	Inc()
	Add(float64)
}

type Gauge interface {
	Set(float64)
}

// MetricsSink bundles the instruments a Store reports into once the sink
// is wired via the Metrics Option and emission is switched on with
// Store.EnablePerformanceMetrics. Any field left nil is simply never
// written to.
type MetricsSink struct {
	GCRuns               Counter
	NodesCollected       Counter
	NodesLive            Gauge
	TableCapacity        Gauge
	CacheEntries         Gauge
	ProtectionInsertions Counter
	PeakRoots            Gauge
}

// storeMetrics adapts a possibly-partial MetricsSink into no-op-safe
// calls, so the hot paths in store.go/gc.go never need nil checks per
// field. enabled additionally gates every call behind
// Store.EnablePerformanceMetrics, off by default: a sink wired via the
// Metrics Option is dormant until the toggle is flipped on, matching
// enable_performance_metrics's own on/off semantics rather than taking
// effect merely by being configured.
type storeMetrics struct {
	sink    MetricsSink
	enabled bool
}

func newStoreMetrics(sink *MetricsSink) *storeMetrics {
	if sink == nil {
		return &storeMetrics{}
	}
	return &storeMetrics{sink: *sink}
}

func (m *storeMetrics) incCounter(c Counter) {
	if m.enabled && c != nil {
		c.Inc()
	}
}

func (m *storeMetrics) addCounter(c Counter, v float64) {
	if m.enabled && c != nil {
		c.Add(v)
	}
}

func (m *storeMetrics) setGauge(g Gauge, v float64) {
	if m.enabled && g != nil {
		g.Set(v)
	}
}
