package ldd

// configs bundles the tunable knobs of a Store, set through functional
// options passed to New.
type configs struct {
	nodesize     int
	cachesize    int
	cacheratio   int
	minfreenodes int
	metrics      *MetricsSink
}

func defaultConfigs() configs {
	return configs{
		nodesize:     1 << 10,
		cachesize:    1 << 8,
		cacheratio:   4,
		minfreenodes: 1 << 6,
	}
}

// Option configures a Store at construction time.
type Option func(*configs)

// Nodesize sets the initial capacity of the node table.
func Nodesize(n int) Option {
	return func(c *configs) { c.nodesize = n }
}

// Cachesize sets the initial capacity reserved per operator in the
// operation cache.
func Cachesize(n int) Option {
	return func(c *configs) { c.cachesize = n }
}

// Cacheratio bounds the operation cache relative to the node table: when
// Union, Minus, Project or RelationalProduct finds more than
// len(table)/ratio cached entries on entry, it runs a garbage collection
// first. A ratio <= 0 disables the check.
func Cacheratio(n int) Option {
	return func(c *configs) { c.cacheratio = n }
}

// Minfreenodes sets the minimum number of free slots a garbage collection
// cycle should leave behind before the table is grown instead.
func Minfreenodes(n int) Option {
	return func(c *configs) { c.minfreenodes = n }
}

// Metrics wires a MetricsSink into the store, typically one built by the
// metrics/prom subpackage from real Prometheus instruments (protection-set
// insertions, peak roots, table capacity, collected-node counts, cache
// size). Wiring a sink does not by itself start emitting into it --
// call Store.EnablePerformanceMetrics(true) to turn emission on.
func Metrics(sink *MetricsSink) Option {
	return func(c *configs) { c.metrics = sink }
}
